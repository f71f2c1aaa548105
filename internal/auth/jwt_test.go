package auth

import (
	"testing"
	"time"

	"homehub/config"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret: "test-secret",
		AccessExpiry: time.Minute,
		Issuer:       "homehub",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateAccessToken(cfg, 42, "jane@test.local", "tenant")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "jane@test.local" || claims.Role != "tenant" {
		t.Errorf("claims mismatch: %+v", claims)
	}
}

func TestWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateAccessToken(cfg, 1, "x@test.local", "tenant")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	other := testJWTConfig()
	other.AccessSecret = "different-secret"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Error("token signed with another secret must not parse")
	}
}

func TestExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessExpiry = -time.Minute
	token, err := GenerateAccessToken(cfg, 1, "x@test.local", "tenant")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Error("expired token must not parse")
	}
}
