package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoad_MissingSecretFailsFast(t *testing.T) {
	// An empty secret is as good as none.
	t.Setenv("PASSPORT_SECRET", "")

	_, err := Load(nil)
	if !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	t.Setenv("PASSPORT_SECRET", "unit-test-secret")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("default addr: got %q", cfg.Addr)
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Fatalf("default TTL: got %v", cfg.TokenTTL)
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("default bcrypt cost: got %d", cfg.BcryptCost)
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("PASSPORT_SECRET", "unit-test-secret")
	t.Setenv("PASSPORT_ADDR", ":9090")
	t.Setenv("PASSPORT_TOKEN_TTL", "24h")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Fatalf("env addr override: got %q", cfg.Addr)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("env TTL override: got %v", cfg.TokenTTL)
	}
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("PASSPORT_SECRET", "unit-test-secret")
	t.Setenv("PASSPORT_ADDR", ":9090")

	cfg, err := Load([]string{"-a", ":7070", "-t", "48h"})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Fatalf("flag addr override: got %q", cfg.Addr)
	}
	if cfg.TokenTTL != 48*time.Hour {
		t.Fatalf("flag TTL override: got %v", cfg.TokenTTL)
	}
}

func TestLoad_EnvTTLSurvivesFlagParsing(t *testing.T) {
	// Sub-hour TTLs from the environment must come through intact when no
	// -t flag is given.
	t.Setenv("PASSPORT_SECRET", "unit-test-secret")
	t.Setenv("PASSPORT_TOKEN_TTL", "90m")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.TokenTTL != 90*time.Minute {
		t.Fatalf("env TTL must survive flag parsing: got %v want 90m", cfg.TokenTTL)
	}

	t.Setenv("PASSPORT_TOKEN_TTL", "30m")
	cfg, err = Load(nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("env TTL must survive flag parsing: got %v want 30m", cfg.TokenTTL)
	}
}

func TestLoad_BadTTLEnv(t *testing.T) {
	t.Setenv("PASSPORT_SECRET", "unit-test-secret")
	t.Setenv("PASSPORT_TOKEN_TTL", "not-a-duration")

	if _, err := Load(nil); err == nil {
		t.Fatalf("expected error for malformed PASSPORT_TOKEN_TTL")
	}
}
