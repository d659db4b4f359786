package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 4747 {
		t.Errorf("Port = %d, want 4747", cfg.Port)
	}
	if cfg.DataDir != "./data" {
		t.Errorf("DataDir = %q, want ./data", cfg.DataDir)
	}
	if cfg.TokenTTL != 168*time.Hour {
		t.Errorf("TokenTTL = %v, want 168h", cfg.TokenTTL)
	}
	if cfg.UsageCacheTTL != 5*time.Minute {
		t.Errorf("UsageCacheTTL = %v, want 5m", cfg.UsageCacheTTL)
	}
	if cfg.Addr() != "0.0.0.0:4747" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FRIDAY_PORT", "9090")
	t.Setenv("FRIDAY_TOKEN_TTL", "1h")
	t.Setenv("FRIDAY_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v, want 1h", cfg.TokenTTL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://a.example" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestSlogLevel(t *testing.T) {
	cfg := &Config{LogLevel: "debug"}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel(debug) = %v", cfg.SlogLevel())
	}
	cfg.LogLevel = "garbage"
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Errorf("SlogLevel(garbage) = %v, want info fallback", cfg.SlogLevel())
	}
}
