package ratelimit

import (
	"testing"

	"github.com/jonathan/resume-doctor/internal/types"
)

func TestDefaultPolicy_Table(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		tier      types.Tier
		kind      types.EndpointKind
		limit     int
		permitted bool
	}{
		{types.TierGuest, types.EndpointVitals, 3, true},
		{types.TierGuest, types.EndpointDeepScan, 0, false},
		{types.TierFree, types.EndpointVitals, 10, true},
		{types.TierFree, types.EndpointDeepScan, 0, false},
		{types.TierPro, types.EndpointVitals, 20, true},
		{types.TierPro, types.EndpointDeepScan, 10, true},
		{types.TierInfinite, types.EndpointVitals, 100, true},
		{types.TierInfinite, types.EndpointDeepScan, 50, true},
	}

	for _, tt := range tests {
		limit, ok := policy.Limit(tt.tier, tt.kind)
		if ok != tt.permitted {
			t.Errorf("Limit(%s, %s) permitted = %v, want %v", tt.tier, tt.kind, ok, tt.permitted)
		}
		if limit != tt.limit {
			t.Errorf("Limit(%s, %s) = %d, want %d", tt.tier, tt.kind, limit, tt.limit)
		}
		if policy.Allows(tt.tier, tt.kind) != tt.permitted {
			t.Errorf("Allows(%s, %s) = %v, want %v", tt.tier, tt.kind, !tt.permitted, tt.permitted)
		}
	}
}

func TestPolicy_UnrecognizedTierBehavesAsGuest(t *testing.T) {
	policy := DefaultPolicy()

	for _, label := range []string{"", "platinum", "PRO", "truly-unknown"} {
		if tier := policy.NormalizeTier(label); tier != types.TierGuest {
			t.Errorf("NormalizeTier(%q) = %s, want guest", label, tier)
		}
	}
	if tier := policy.NormalizeTier("pro"); tier != types.TierPro {
		t.Errorf("NormalizeTier(pro) = %s, want pro", tier)
	}

	// Limit lookups on an unknown tier use the guest row directly.
	limit, ok := policy.Limit(types.Tier("platinum"), types.EndpointVitals)
	if !ok || limit != 3 {
		t.Errorf("Limit(platinum, vitals) = %d, %v, want 3, true", limit, ok)
	}
	if policy.Allows(types.Tier("platinum"), types.EndpointDeepScan) {
		t.Error("unknown tier should not get deep scan access")
	}
}

func TestPolicy_AllowedTiers(t *testing.T) {
	policy := DefaultPolicy()

	deep := policy.AllowedTiers(types.EndpointDeepScan)
	if len(deep) != 2 || deep[0] != types.TierPro || deep[1] != types.TierInfinite {
		t.Errorf("AllowedTiers(deep_scan) = %v, want [pro infinite]", deep)
	}

	vitals := policy.AllowedTiers(types.EndpointVitals)
	if len(vitals) != 4 {
		t.Errorf("AllowedTiers(vitals) = %v, want all four tiers", vitals)
	}

	if got := policy.RequiredTier(types.EndpointDeepScan); got != types.TierPro {
		t.Errorf("RequiredTier(deep_scan) = %s, want pro", got)
	}
	if got := policy.RequiredTier(types.EndpointVitals); got != types.TierGuest {
		t.Errorf("RequiredTier(vitals) = %s, want guest", got)
	}
}
