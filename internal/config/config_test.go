package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Server.PublicBaseURL != "http://localhost:8080" {
		t.Errorf("PublicBaseURL = %q", cfg.Server.PublicBaseURL)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("Session TTL = %v, want 24h", cfg.Session.TTL)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging defaults = %q/%q", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("PUBLIC_BASE_URL", "https://qr.example.com/")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("POSTGRES_MAX_CONNECTIONS", "10")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Server.Port)
	}
	if cfg.Server.PublicBaseURL != "https://qr.example.com" {
		t.Errorf("trailing slash not trimmed: %q", cfg.Server.PublicBaseURL)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("Session TTL = %v, want 30m", cfg.Session.TTL)
	}
	if cfg.Database.Postgres.MaxConnections != 10 {
		t.Errorf("MaxConnections = %d, want 10", cfg.Database.Postgres.MaxConnections)
	}
}

func TestLoadConfigIgnoresMalformedValues(t *testing.T) {
	t.Setenv("SESSION_TTL", "not-a-duration")
	t.Setenv("POSTGRES_MAX_CONNECTIONS", "lots")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("malformed TTL not defaulted: %v", cfg.Session.TTL)
	}
	if cfg.Database.Postgres.MaxConnections != 50 {
		t.Errorf("malformed int not defaulted: %d", cfg.Database.Postgres.MaxConnections)
	}
}

func TestPostgresURL(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db",
		Port:     "5433",
		Database: "qr_tracker",
		User:     "qr",
		Password: "pw",
	}

	want := "postgres://qr:pw@db:5433/qr_tracker?sslmode=disable"
	if got := cfg.PostgresURL(); got != want {
		t.Errorf("PostgresURL = %q, want %q", got, want)
	}
}
