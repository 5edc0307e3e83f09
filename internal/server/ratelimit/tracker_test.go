package ratelimit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonathan/resume-doctor/internal/types"
)

// fakeClock is a manually advanced clock for deterministic window tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func proIdentity(userID string) types.Identity {
	return types.Identity{UserID: userID, Tier: types.TierPro}
}

func TestTracker_ConsumeUpToLimit(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(clock, 0)
	tracker := NewTracker(DefaultPolicy(), store)
	ctx := context.Background()
	id := proIdentity("u1")

	// Pro deep scans: 10/day. All ten must pass with decreasing remaining.
	for i := 1; i <= 10; i++ {
		dec, err := tracker.CheckAndConsume(ctx, id, types.EndpointDeepScan)
		if err != nil {
			t.Fatalf("request %d: unexpected error: %v", i, err)
		}
		if dec.Remaining != 10-i {
			t.Errorf("request %d: remaining = %d, want %d", i, dec.Remaining, 10-i)
		}
	}

	// The 11th fails and does not increment further.
	_, err := tracker.CheckAndConsume(ctx, id, types.EndpointDeepScan)
	var qe *QuotaExceededError
	if !errors.As(err, &qe) {
		t.Fatalf("expected QuotaExceededError, got %v", err)
	}
	if qe.Limit != 10 || qe.Tier != types.TierPro || qe.RetryAfter != Window {
		t.Errorf("unexpected quota error: %+v", qe)
	}
	if qe.UpgradeHint == "" {
		t.Error("quota error should carry an upgrade hint")
	}
	if got := store.Count(id.RateKey() + ":" + string(types.EndpointDeepScan)); got != 10 {
		t.Errorf("rejected request must not increment counter: count = %d, want 10", got)
	}
}

func TestTracker_WindowResetAfter24Hours(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(clock, 0)
	tracker := NewTracker(DefaultPolicy(), store)
	ctx := context.Background()
	id := types.Identity{ClientIP: "203.0.113.9", Tier: types.TierGuest, Anonymous: true}

	// Exhaust the guest vitals quota (3/day).
	for i := 0; i < 3; i++ {
		if _, err := tracker.CheckAndConsume(ctx, id, types.EndpointVitals); err != nil {
			t.Fatalf("request %d: %v", i+1, err)
		}
	}
	if _, err := tracker.CheckAndConsume(ctx, id, types.EndpointVitals); err == nil {
		t.Fatal("expected quota exceeded at limit")
	}

	// 23h59m later the window still holds.
	clock.Advance(24*time.Hour - time.Minute)
	if _, err := tracker.CheckAndConsume(ctx, id, types.EndpointVitals); err == nil {
		t.Fatal("window must not reset before 24 hours")
	}

	// Crossing the 24h mark resets the counter to 1, regardless of prior count.
	clock.Advance(time.Minute)
	dec, err := tracker.CheckAndConsume(ctx, id, types.EndpointVitals)
	if err != nil {
		t.Fatalf("expected fresh window, got %v", err)
	}
	if dec.Remaining != 2 {
		t.Errorf("remaining after reset = %d, want 2", dec.Remaining)
	}
	if got := store.Count(id.RateKey() + ":" + string(types.EndpointVitals)); got != 1 {
		t.Errorf("count after reset = %d, want 1", got)
	}
}

func TestTracker_IdentitiesAreIndependent(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(clock, 0)
	tracker := NewTracker(DefaultPolicy(), store)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if _, err := tracker.CheckAndConsume(ctx, proIdentity("a"), types.EndpointDeepScan); err != nil {
			t.Fatalf("user a request %d: %v", i+1, err)
		}
	}
	// User a is out of quota; user b is untouched.
	if _, err := tracker.CheckAndConsume(ctx, proIdentity("a"), types.EndpointDeepScan); err == nil {
		t.Fatal("user a should be over quota")
	}
	if _, err := tracker.CheckAndConsume(ctx, proIdentity("b"), types.EndpointDeepScan); err != nil {
		t.Fatalf("user b should have a full quota: %v", err)
	}
}

func TestTracker_DisallowedPairNeverReachesStore(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(clock, 0)
	tracker := NewTracker(DefaultPolicy(), store)
	id := types.Identity{UserID: "f1", Tier: types.TierFree}

	_, err := tracker.CheckAndConsume(context.Background(), id, types.EndpointDeepScan)
	if err == nil {
		t.Fatal("free tier must not pass deep scan quota check")
	}
	var qe *QuotaExceededError
	if errors.As(err, &qe) {
		t.Fatal("no-access error must be distinct from quota exceeded")
	}
	if got := store.Count(id.RateKey() + ":" + string(types.EndpointDeepScan)); got != 0 {
		t.Errorf("disallowed pair consumed quota: count = %d", got)
	}
}

func TestTracker_ConcurrentRequestsAdmitExactlyLimit(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(clock, 0)
	tracker := NewTracker(DefaultPolicy(), store)
	id := proIdentity("concurrent")

	const workers = 50 // limit is 10
	var admitted, rejected atomic.Int64
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, err := tracker.CheckAndConsume(context.Background(), id, types.EndpointDeepScan); err != nil {
				rejected.Add(1)
			} else {
				admitted.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	if admitted.Load() != 10 {
		t.Errorf("admitted = %d, want exactly 10", admitted.Load())
	}
	if rejected.Load() != workers-10 {
		t.Errorf("rejected = %d, want %d", rejected.Load(), workers-10)
	}
}

func TestMemoryStore_Sweep(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(clock, 0)

	_, _ = store.Take(context.Background(), "user:x:vitals", 3, Window)
	clock.Advance(25 * time.Hour)
	store.sweep()

	store.mu.RLock()
	_, exists := store.counters["user:x:vitals"]
	store.mu.RUnlock()
	if exists {
		t.Error("expired counter should have been swept")
	}
}
