// Package identity resolves rate-limit identities and subscription tiers
// from gateway-forwarded request credentials.
package identity

import (
	"errors"
	"net"
	"net/http"

	"github.com/jonathan/resume-doctor/internal/server/ratelimit"
	"github.com/jonathan/resume-doctor/internal/types"
)

// Credential headers forwarded by the upstream gateway. The gateway owns
// sessions and login; this service only verifies the shared secret.
const (
	HeaderAPIKey   = "X-Api-Key"
	HeaderUserID   = "X-User-Id"
	HeaderUserTier = "X-User-Tier"
)

// Authentication failures, distinguishable so handlers can report stable codes.
var (
	ErrMissingAPIKey = errors.New("missing API key")
	ErrInvalidAPIKey = errors.New("invalid API key")
)

// Resolver derives the caller's identity from request headers.
type Resolver struct {
	secret string
	policy *ratelimit.Policy
}

// NewResolver creates a resolver that validates credentials against the
// configured shared secret and normalizes tier labels via the policy.
func NewResolver(secret string, policy *ratelimit.Policy) *Resolver {
	return &Resolver{secret: secret, policy: policy}
}

// Resolve validates the credential and returns the caller's identity.
// Used by endpoints that require authentication: a missing or wrong key is a
// hard failure, never a fallback to anonymous.
func (rs *Resolver) Resolve(r *http.Request) (types.Identity, error) {
	key := r.Header.Get(HeaderAPIKey)
	if key == "" {
		return types.Identity{}, ErrMissingAPIKey
	}
	if key != rs.secret {
		return types.Identity{}, ErrInvalidAPIKey
	}

	tierLabel := r.Header.Get(HeaderUserTier)
	tier := types.TierFree // lowest paid tier when the gateway omits the label
	if tierLabel != "" {
		tier = rs.policy.NormalizeTier(tierLabel)
	}

	userID := r.Header.Get(HeaderUserID)
	if userID == "guest" {
		// Placeholder id from the gateway; quota falls back to the IP key.
		userID = ""
	}

	return types.Identity{
		UserID:   userID,
		ClientIP: ClientIP(r),
		Tier:     tier,
	}, nil
}

// ResolveOptional returns the caller's identity, degrading to an anonymous
// guest identity when the credential is missing or invalid. An
// unauthenticated caller's self-reported tier label is never trusted.
func (rs *Resolver) ResolveOptional(r *http.Request) types.Identity {
	id, err := rs.Resolve(r)
	if err != nil {
		return rs.Anonymous(r)
	}
	return id
}

// Anonymous returns the network-address identity with the least-privileged
// tier.
func (rs *Resolver) Anonymous(r *http.Request) types.Identity {
	return types.Identity{
		ClientIP:  ClientIP(r),
		Tier:      types.TierGuest,
		Anonymous: true,
	}
}

// ClientIP extracts the client address from RemoteAddr ("IP:port").
// X-Forwarded-For is deliberately ignored until trusted-proxy support lands.
func ClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
