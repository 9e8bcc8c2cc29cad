package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("Addr: got %q, want :8080", cfg.Addr)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("TokenTTL: got %v, want 24h", cfg.TokenTTL)
	}
	if cfg.LoginAttempts != 5 {
		t.Fatalf("LoginAttempts: got %d, want 5", cfg.LoginAttempts)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected missing TOKEN_SECRET to be rejected")
	}
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatal("expected invalid TOKEN_TTL to be rejected")
	}
}

func TestLoadRejectsNonPositiveCooldown(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "test-secret")
	t.Setenv("LOGIN_COOLDOWN", "0s")

	if _, err := Load(); err == nil {
		t.Fatal("expected zero LOGIN_COOLDOWN to be rejected")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "3")
	t.Setenv("LOGIN_COOLDOWN", "5m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.TokenTTL != 30*time.Minute || cfg.LoginAttempts != 3 || cfg.LoginCooldown != 5*time.Minute {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
