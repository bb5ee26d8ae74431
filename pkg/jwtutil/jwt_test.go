package jwtutil

import (
	"testing"
	"time"

	"carcrm/pkg/config"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Initialize(&config.SessionConfig{Secret: "test-secret", ExpirationHours: 8})

	token, err := GenerateToken(7, "admin@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.AdminID != 7 {
		t.Errorf("AdminID = %d, want 7", claims.AdminID)
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "admin@example.com")
	}
	if claims.ExpiresAt == nil {
		t.Fatal("ExpiresAt not set")
	}
	// Claim timestamps are truncated to whole seconds.
	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime < 8*time.Hour-2*time.Second || lifetime > 8*time.Hour+2*time.Second {
		t.Errorf("token lifetime = %v, want ~8h", lifetime)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	Initialize(&config.SessionConfig{Secret: "test-secret", ExpirationHours: -1})
	token, err := GenerateToken(1, "admin@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	Initialize(&config.SessionConfig{Secret: "test-secret", ExpirationHours: 8})
	if _, err := ValidateToken(token); err == nil {
		t.Error("expected error for expired token, got none")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	Initialize(&config.SessionConfig{Secret: "secret-one", ExpirationHours: 8})
	token, err := GenerateToken(1, "admin@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	Initialize(&config.SessionConfig{Secret: "secret-two", ExpirationHours: 8})
	if _, err := ValidateToken(token); err == nil {
		t.Error("expected error for wrong secret, got none")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	Initialize(&config.SessionConfig{Secret: "test-secret", ExpirationHours: 8})
	for _, bad := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		if _, err := ValidateToken(bad); err == nil {
			t.Errorf("ValidateToken(%q) expected error, got none", bad)
		}
	}
}

func TestExpiry(t *testing.T) {
	Initialize(&config.SessionConfig{Secret: "test-secret", ExpirationHours: 12})
	if Expiry() != 12*time.Hour {
		t.Errorf("Expiry = %v, want 12h", Expiry())
	}
}
