package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.HTTP.Port != "3001" {
		t.Errorf("expected default port 3001, got %q", cfg.HTTP.Port)
	}
	if !cfg.Database.ForeignKeys {
		t.Error("expected foreign keys enforced by default")
	}
	if cfg.Database.Path == "" {
		t.Error("expected a default database path")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("DB_FOREIGN_KEYS", "false")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.HTTP.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.HTTP.Port)
	}
	if cfg.Database.ForeignKeys {
		t.Error("expected foreign keys disabled")
	}
	if cfg.Context.RequestTimeout != 30*time.Second {
		t.Errorf("expected 30s request timeout, got %v", cfg.Context.RequestTimeout)
	}
}

func TestAddress(t *testing.T) {
	cfg := &Config{HTTP: HTTPConfig{Host: "127.0.0.1", Port: "3001"}}
	if got := cfg.Address(); got != "127.0.0.1:3001" {
		t.Errorf("expected 127.0.0.1:3001, got %q", got)
	}
}
