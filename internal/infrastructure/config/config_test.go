package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/fundhost/ledger/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	// t.Setenv registers the restore; the vars must be absent, not empty,
	// for envDefault to apply.
	for _, key := range []string{"DATABASE_URL", "PLATFORM_ACCOUNT_ID", "HTTP_PORT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.PlatformAccountID != "platform" {
		t.Fatalf("expected default platform account id, got %q", cfg.PlatformAccountID)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("FX_CACHE_TTL", "30m")
	t.Setenv("BANK_TRANSFER_API_URL", "https://wise.example.com")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if cfg.FxCacheTTL != 30*time.Minute {
		t.Fatalf("expected FX cache TTL override, got %s", cfg.FxCacheTTL)
	}

	if cfg.BankTransferAPIURL != "https://wise.example.com" {
		t.Fatalf("expected bank transfer API URL override, got %s", cfg.BankTransferAPIURL)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
