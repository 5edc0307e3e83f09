// Package types defines the shared domain types for the resume analysis service.
package types

// Tier represents a subscription tier governing feature access and quota size.
type Tier string

// Known subscription tiers, least to most privileged.
const (
	TierGuest    Tier = "guest"
	TierFree     Tier = "free"
	TierPro      Tier = "pro"
	TierInfinite Tier = "infinite"
)

// EndpointKind identifies which analysis operation is being requested.
type EndpointKind string

// Analysis endpoint kinds.
const (
	// EndpointVitals is the lightweight scoring check available to all tiers.
	EndpointVitals EndpointKind = "vitals"
	// EndpointDeepScan is the comprehensive AI audit reserved for paid tiers.
	EndpointDeepScan EndpointKind = "deep_scan"
)

// Identity is the quota-tracking identity resolved from request credentials.
// Authenticated callers are keyed by their stable user ID; anonymous callers
// fall back to a network-address key. It lives only for the request.
type Identity struct {
	UserID    string
	ClientIP  string
	Tier      Tier
	Anonymous bool
}

// RateKey returns the quota counter key for this identity.
// Format matches the upstream gateway convention: "user:<id>" or "ip:<addr>".
func (i Identity) RateKey() string {
	if i.Anonymous || i.UserID == "" {
		return "ip:" + i.ClientIP
	}
	return "user:" + i.UserID
}

// Label returns the identity label reported back to the caller.
func (i Identity) Label() string {
	if i.Anonymous || i.UserID == "" {
		return "guest"
	}
	return i.UserID
}
