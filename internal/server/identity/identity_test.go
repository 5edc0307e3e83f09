package identity

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/jonathan/resume-doctor/internal/server/ratelimit"
	"github.com/jonathan/resume-doctor/internal/types"
)

const testSecret = "test-secret-key"

func newTestResolver() *Resolver {
	return NewResolver(testSecret, ratelimit.DefaultPolicy())
}

func TestResolve_MissingKey(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/v1/analyze/deep-scan", nil)

	_, err := newTestResolver().Resolve(r)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestResolve_InvalidKey(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/v1/analyze/deep-scan", nil)
	r.Header.Set(HeaderAPIKey, "wrong")

	_, err := newTestResolver().Resolve(r)
	if !errors.Is(err, ErrInvalidAPIKey) {
		t.Errorf("expected ErrInvalidAPIKey, got %v", err)
	}
}

func TestResolve_ValidCredential(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/v1/analyze/deep-scan", nil)
	r.RemoteAddr = "192.0.2.4:51234"
	r.Header.Set(HeaderAPIKey, testSecret)
	r.Header.Set(HeaderUserID, "user-42")
	r.Header.Set(HeaderUserTier, "pro")

	id, err := newTestResolver().Resolve(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.Tier != types.TierPro {
		t.Errorf("tier = %s, want pro", id.Tier)
	}
	if id.RateKey() != "user:user-42" {
		t.Errorf("rate key = %q, want user:user-42", id.RateKey())
	}
	if id.Anonymous {
		t.Error("authenticated identity must not be anonymous")
	}
}

func TestResolve_Defaults(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/v1/analyze/vitals", nil)
	r.RemoteAddr = "192.0.2.4:51234"
	r.Header.Set(HeaderAPIKey, testSecret)

	id, err := newTestResolver().Resolve(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// No tier label: default to the lowest paid tier.
	if id.Tier != types.TierFree {
		t.Errorf("tier = %s, want free", id.Tier)
	}
	// No user id: quota falls back to the network address.
	if id.RateKey() != "ip:192.0.2.4" {
		t.Errorf("rate key = %q, want ip:192.0.2.4", id.RateKey())
	}
	if id.Label() != "guest" {
		t.Errorf("label = %q, want guest", id.Label())
	}
}

func TestResolve_UnknownTierLabelFailsClosed(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/v1/analyze/vitals", nil)
	r.Header.Set(HeaderAPIKey, testSecret)
	r.Header.Set(HeaderUserTier, "ultimate-plus")

	id, err := newTestResolver().Resolve(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.Tier != types.TierGuest {
		t.Errorf("tier = %s, want guest for unknown label", id.Tier)
	}
}

func TestResolveOptional_DegradesToAnonymous(t *testing.T) {
	resolver := newTestResolver()

	for _, setup := range []struct {
		name string
		key  string
	}{
		{"missing key", ""},
		{"invalid key", "wrong"},
	} {
		r := httptest.NewRequest("POST", "/api/v1/analyze/vitals", nil)
		r.RemoteAddr = "203.0.113.8:9999"
		if setup.key != "" {
			r.Header.Set(HeaderAPIKey, setup.key)
		}
		// A self-reported tier without a valid credential is never trusted.
		r.Header.Set(HeaderUserTier, "infinite")

		id := resolver.ResolveOptional(r)
		if !id.Anonymous {
			t.Errorf("%s: expected anonymous identity", setup.name)
		}
		if id.Tier != types.TierGuest {
			t.Errorf("%s: tier = %s, want guest", setup.name, id.Tier)
		}
		if id.RateKey() != "ip:203.0.113.8" {
			t.Errorf("%s: rate key = %q", setup.name, id.RateKey())
		}
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/health", nil)
	r.RemoteAddr = "198.51.100.23:40000"
	if got := ClientIP(r); got != "198.51.100.23" {
		t.Errorf("ClientIP = %q, want 198.51.100.23", got)
	}

	r.RemoteAddr = "unparseable"
	if got := ClientIP(r); got != "unparseable" {
		t.Errorf("ClientIP fallback = %q", got)
	}
}
