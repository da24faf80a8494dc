package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "production") // no .env
	t.Setenv("PORT", "")
	t.Setenv("DB_DSN", "")
	t.Setenv("CHAT_POLL_INTERVAL", "")
	t.Setenv("SEED_DEMO", "")

	cfg := Load()

	if cfg.Port != DefaultPort {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
	if cfg.DBDSN != "" {
		t.Fatalf("expected empty dsn, got %q", cfg.DBDSN)
	}
	if cfg.ChatPollInterval != 3*time.Second {
		t.Fatalf("expected 3s poll interval, got %s", cfg.ChatPollInterval)
	}
	if cfg.SeedDemo {
		t.Fatalf("expected seed demo off by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("CHAT_POLL_INTERVAL", "1500ms")
	t.Setenv("SEED_DEMO", "true")
	t.Setenv("RATE_LIMIT_RPS", "abc") // inválido => default

	cfg := Load()

	if cfg.Port != "9090" {
		t.Fatalf("expected 9090, got %q", cfg.Port)
	}
	if cfg.ChatPollInterval != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s, got %s", cfg.ChatPollInterval)
	}
	if !cfg.SeedDemo {
		t.Fatalf("expected seed demo on")
	}
	if cfg.RateLimitRPS != DefaultRateLimitRPS {
		t.Fatalf("expected default rps on invalid value, got %d", cfg.RateLimitRPS)
	}
}

func TestLoad_ZeroRateLimitDisables(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("RATE_LIMIT_RPS", "0")

	if cfg := Load(); cfg.RateLimitRPS != 0 {
		t.Fatalf("expected 0 rps, got %d", cfg.RateLimitRPS)
	}
}
