// Package ratelimit enforces tiered access control and per-identity daily
// quotas for the analysis endpoints.
package ratelimit

import (
	"time"

	"github.com/jonathan/resume-doctor/internal/types"
)

// Window is the rolling quota window. Limits are per 24 hours, anchored to
// the first request in the window rather than to calendar midnight.
const Window = 24 * time.Hour

// NotPermitted marks a (tier, endpoint) pair with no access at all,
// regardless of remaining quota.
const NotPermitted = 0

// Policy is the static mapping from subscription tier to per-endpoint daily
// limits. It is total: every declared (tier, endpoint) pair has an entry, and
// an unrecognized tier resolves to the least-privileged row so bad labels
// fail closed instead of open.
type Policy struct {
	limits map[types.Tier]map[types.EndpointKind]int
}

// DefaultPolicy returns the production quota table.
func DefaultPolicy() *Policy {
	return &Policy{
		limits: map[types.Tier]map[types.EndpointKind]int{
			types.TierGuest: {
				types.EndpointVitals:   3, // IP-based bot protection
				types.EndpointDeepScan: NotPermitted,
			},
			types.TierFree: {
				types.EndpointVitals:   10,
				types.EndpointDeepScan: NotPermitted,
			},
			types.TierPro: {
				types.EndpointVitals:   20,
				types.EndpointDeepScan: 10,
			},
			types.TierInfinite: {
				types.EndpointVitals:   100,
				types.EndpointDeepScan: 50,
			},
		},
	}
}

// NewPolicy builds a policy from an explicit table. Intended for tests and
// deployments that override the defaults.
func NewPolicy(limits map[types.Tier]map[types.EndpointKind]int) *Policy {
	return &Policy{limits: limits}
}

// NormalizeTier maps a caller-supplied tier label to a known tier.
// Unknown labels resolve to guest.
func (p *Policy) NormalizeTier(label string) types.Tier {
	tier := types.Tier(label)
	if _, ok := p.limits[tier]; ok {
		return tier
	}
	return types.TierGuest
}

// Limit returns the daily limit for the pair and whether the pair is
// permitted at all. An unrecognized tier uses the guest row.
func (p *Policy) Limit(tier types.Tier, kind types.EndpointKind) (int, bool) {
	row, ok := p.limits[tier]
	if !ok {
		row = p.limits[types.TierGuest]
	}
	limit := row[kind]
	if limit <= NotPermitted {
		return 0, false
	}
	return limit, true
}

// Allows reports whether the tier may call the endpoint at all, independent
// of remaining quota.
func (p *Policy) Allows(tier types.Tier, kind types.EndpointKind) bool {
	_, ok := p.Limit(tier, kind)
	return ok
}

// AllowedTiers lists the tiers permitted to call the endpoint, least
// privileged first. Used for upgrade messaging on authorization failures.
func (p *Policy) AllowedTiers(kind types.EndpointKind) []types.Tier {
	var allowed []types.Tier
	for _, tier := range tierOrder {
		if p.Allows(tier, kind) {
			allowed = append(allowed, tier)
		}
	}
	return allowed
}

// RequiredTier returns the least-privileged tier with access to the endpoint,
// or the highest tier if none qualifies.
func (p *Policy) RequiredTier(kind types.EndpointKind) types.Tier {
	for _, tier := range tierOrder {
		if p.Allows(tier, kind) {
			return tier
		}
	}
	return types.TierInfinite
}

// tierOrder lists tiers from least to most privileged.
var tierOrder = []types.Tier{
	types.TierGuest,
	types.TierFree,
	types.TierPro,
	types.TierInfinite,
}
