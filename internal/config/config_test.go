package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.SerpAPI.Engine != "google" || cfg.SerpAPI.Country != "ma" {
		t.Fatalf("unexpected serpapi defaults: %+v", cfg.SerpAPI)
	}
	if cfg.SerpAPI.ResultLimit != 100 {
		t.Fatalf("resultLimit = %d, want 100", cfg.SerpAPI.ResultLimit)
	}
	if cfg.Pipeline.Pause() != time.Second {
		t.Fatalf("pause = %v, want 1s", cfg.Pipeline.Pause())
	}
	if len(cfg.Catalog) != 3 {
		t.Fatalf("expected 3 default language groups, got %d", len(cfg.Catalog))
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://env@localhost/navy")
	t.Setenv("SERPAPI_API_KEY", "env-key")
	t.Setenv("NAVY_NEWS_LISTEN_ADDR", ":9999")

	cfg := Load()

	if cfg.Database.DSN != "postgres://env@localhost/navy" {
		t.Fatalf("dsn override lost: %s", cfg.Database.DSN)
	}
	if cfg.SerpAPI.APIKey != "env-key" {
		t.Fatalf("api key override lost: %s", cfg.SerpAPI.APIKey)
	}
	if cfg.Server.Addr != ":9999" {
		t.Fatalf("addr override lost: %s", cfg.Server.Addr)
	}
}

func TestLoadConfigFileMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
serpapi:
  country: "fr"
pipeline:
  pauseMs: 2500
catalog:
  - language: english
    locale: en
    keywords: ["only keyword"]
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("NAVY_NEWS_CONFIG", path)

	cfg := Load()

	if cfg.SerpAPI.Country != "fr" {
		t.Fatalf("country = %s, want fr", cfg.SerpAPI.Country)
	}
	// Untouched fixed parameters keep their defaults.
	if cfg.SerpAPI.Engine != "google" {
		t.Fatalf("engine = %s, want google", cfg.SerpAPI.Engine)
	}
	if cfg.Pipeline.Pause() != 2500*time.Millisecond {
		t.Fatalf("pause = %v, want 2.5s", cfg.Pipeline.Pause())
	}
	if len(cfg.Catalog) != 1 || cfg.Catalog[0].Keywords[0] != "only keyword" {
		t.Fatalf("catalog override lost: %+v", cfg.Catalog)
	}
}

func TestValidateRequiredSettings(t *testing.T) {
	var cfg Config

	if err := cfg.Validate(); !errors.Is(err, ErrMissingDatabaseDSN) {
		t.Fatalf("expected ErrMissingDatabaseDSN, got %v", err)
	}

	cfg.Database.DSN = "postgres://x"
	if err := cfg.Validate(); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}

	cfg.SerpAPI.APIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}
