package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/resume-doctor/internal/types"
)

// Clock supplies the current time. Injected so window-expiry logic is
// deterministically testable without real delays.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock { return systemClock{} }

// Decision describes the outcome of a quota check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Store persists quota counters keyed by (identity, endpoint).
type Store interface {
	// Take atomically consumes one slot from the counter for key. A counter
	// whose window started at least window ago is reset to a fresh window
	// first. When the counter is already at limit, Take reports a denied
	// decision without consuming anything.
	Take(ctx context.Context, key string, limit int, window time.Duration) (Decision, error)
}

// QuotaExceededError reports that an identity used up its daily limit.
type QuotaExceededError struct {
	Tier        types.Tier
	Endpoint    types.EndpointKind
	Limit       int
	RetryAfter  time.Duration
	ResetAt     time.Time
	UpgradeHint string
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("daily quota exceeded: %d requests per 24h for tier %s on %s", e.Limit, e.Tier, e.Endpoint)
}

// Tracker enforces the numeric daily quota for resolved identities.
// The access gate (Policy.Allows) must run first: a (tier, endpoint) pair
// without access never reaches the store.
type Tracker struct {
	policy *Policy
	store  Store
}

// NewTracker creates a quota tracker over the given policy and counter store.
func NewTracker(policy *Policy, store Store) *Tracker {
	return &Tracker{policy: policy, store: store}
}

// CheckAndConsume consumes one quota slot for the identity and endpoint.
// Returns a QuotaExceededError when the daily limit is reached. Consumed
// quota is never refunded, even if a later processing step fails.
func (t *Tracker) CheckAndConsume(ctx context.Context, id types.Identity, kind types.EndpointKind) (Decision, error) {
	limit, ok := t.policy.Limit(id.Tier, kind)
	if !ok {
		// The gate should have rejected this pair already.
		return Decision{}, fmt.Errorf("tier %s has no access to %s", id.Tier, kind)
	}

	key := id.RateKey() + ":" + string(kind)
	dec, err := t.store.Take(ctx, key, limit, Window)
	if err != nil {
		return Decision{}, fmt.Errorf("quota store: %w", err)
	}

	if !dec.Allowed {
		return dec, &QuotaExceededError{
			Tier:        id.Tier,
			Endpoint:    kind,
			Limit:       limit,
			RetryAfter:  Window,
			ResetAt:     dec.ResetAt,
			UpgradeHint: upgradeHint(id),
		}
	}
	return dec, nil
}

// upgradeHint returns tier-specific messaging for quota rejections.
func upgradeHint(id types.Identity) string {
	if id.Anonymous {
		return "Create a free account to get more daily scans."
	}
	switch id.Tier {
	case types.TierFree:
		return "Upgrade to Pro for higher daily limits."
	case types.TierPro:
		return "Upgrade to Infinite for our highest daily limits."
	default:
		return "You have reached the daily cap. Please try again tomorrow."
	}
}
