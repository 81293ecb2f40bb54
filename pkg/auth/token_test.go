package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/Mansi-10-4/nova/pkg/config"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{Secret: "secret", Issuer: "nova", TTL: time.Hour}
}

func TestMintAndParseSessionToken(t *testing.T) {
	cfg := testSessionConfig()
	now := time.Now().UTC()

	token, err := MintSessionToken(cfg, now, "sess-123")
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}

	claims, err := ParseSessionToken(cfg, token)
	if err != nil {
		t.Fatalf("parse session token: %v", err)
	}
	if claims.SessionID() != "sess-123" {
		t.Fatalf("expected session id sess-123, got %q", claims.SessionID())
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %q, got %q", cfg.Issuer, claims.Issuer)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(now) {
		t.Fatalf("expected expiry after now")
	}
	if claims.ID == "" {
		t.Fatalf("expected jti to be set")
	}
}

func TestParseSessionTokenRejectsTampering(t *testing.T) {
	cfg := testSessionConfig()
	token, err := MintSessionToken(cfg, time.Now(), "sess-1")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseSessionToken(other, token); err == nil {
		t.Fatalf("expected signature failure with different secret")
	}

	wrongIssuer := cfg
	wrongIssuer.Issuer = "someone-else"
	if _, err := ParseSessionToken(wrongIssuer, token); err == nil {
		t.Fatalf("expected issuer mismatch")
	}

	if _, err := ParseSessionToken(cfg, strings.TrimSuffix(token, token[len(token)-2:])); err == nil {
		t.Fatalf("expected truncated token to fail")
	}
}

func TestParseSessionTokenRejectsExpired(t *testing.T) {
	cfg := testSessionConfig()
	token, err := MintSessionToken(cfg, time.Now().Add(-2*time.Hour), "sess-1")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseSessionToken(cfg, token); err == nil {
		t.Fatalf("expected expired token to fail")
	}
}

func TestMintSessionTokenValidatesInput(t *testing.T) {
	cfg := testSessionConfig()
	if _, err := MintSessionToken(cfg, time.Now(), " "); err == nil {
		t.Fatalf("expected empty session id to fail")
	}
	noSecret := cfg
	noSecret.Secret = ""
	if _, err := MintSessionToken(noSecret, time.Now(), "s"); err == nil {
		t.Fatalf("expected missing secret to fail")
	}
	noTTL := cfg
	noTTL.TTL = 0
	if _, err := MintSessionToken(noTTL, time.Now(), "s"); err == nil {
		t.Fatalf("expected non-positive ttl to fail")
	}
}
