package auth

import (
	"errors"
	"testing"
	"time"

	"charter/internal/config"
	"charter/internal/domain"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret: "test-secret",
		Issuer: "charter-api",
		Expiry: time.Hour,
	}
}

func TestIssueAndParseToken(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	user := &domain.User{
		ID:    "user-1",
		Email: "pilot@example.com",
		Role:  domain.RolePilot,
	}

	signed, expiresAt, err := IssueToken(cfg, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signed == "" {
		t.Fatal("expected signed token")
	}
	if !expiresAt.After(time.Now()) {
		t.Error("expected expiry in the future")
	}

	claims, err := ParseToken(cfg, signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("expected user-1, got %s", claims.UserID)
	}
	if claims.Email != "pilot@example.com" {
		t.Errorf("expected email preserved, got %s", claims.Email)
	}
	if claims.Role != string(domain.RolePilot) {
		t.Errorf("expected PILOT role, got %s", claims.Role)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	signed, _, err := IssueToken(cfg, &domain.User{ID: "user-1", Role: domain.RoleCustomer})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := cfg
	other.Secret = "a-different-secret"
	if _, err := ParseToken(other, signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	cfg.Expiry = -time.Minute

	signed, _, err := IssueToken(cfg, &domain.User{ID: "user-1", Role: domain.RoleCustomer})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ParseToken(cfg, signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	t.Parallel()

	if _, err := ParseToken(testJWTConfig(), "not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
