package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", "sqlite")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid STORAGE_DRIVER")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("unexpected StorageDriver: %q", cfg.StorageDriver)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if !cfg.CacheEnabled {
		t.Fatalf("expected CacheEnabled=true by default")
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}
	if cfg.ScorekeeperEnabled {
		t.Fatalf("expected ScorekeeperEnabled=false by default")
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
	if !cfg.TournamentKickoff.IsZero() {
		t.Fatalf("expected zero TournamentKickoff by default")
	}
}

func TestLoad_ScorekeeperRequiresTokenWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SCOREKEEPER_ENABLED", "true")
	t.Setenv("SCOREKEEPER_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when SCOREKEEPER_ENABLED=true without SCOREKEEPER_TOKEN")
	}
}

func TestLoad_ScorekeeperConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SCOREKEEPER_ENABLED", "true")
	t.Setenv("SCOREKEEPER_BASE_URL", "https://scores.example.com")
	t.Setenv("SCOREKEEPER_TOKEN", "token-123")
	t.Setenv("SCOREKEEPER_TIMEOUT", "4s")
	t.Setenv("SCOREKEEPER_MAX_RETRIES", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.ScorekeeperEnabled {
		t.Fatalf("expected ScorekeeperEnabled=true")
	}
	if cfg.ScorekeeperBaseURL != "https://scores.example.com" {
		t.Fatalf("unexpected ScorekeeperBaseURL: %q", cfg.ScorekeeperBaseURL)
	}
	if cfg.ScorekeeperTimeout != 4*time.Second {
		t.Fatalf("unexpected ScorekeeperTimeout: %s", cfg.ScorekeeperTimeout)
	}
	if cfg.ScorekeeperMaxRetries != 3 {
		t.Fatalf("unexpected ScorekeeperMaxRetries: %d", cfg.ScorekeeperMaxRetries)
	}
}

func TestLoad_TournamentKickoffParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("TOURNAMENT_KICKOFF", "2026-06-11T16:00:00Z")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	want := time.Date(2026, 6, 11, 16, 0, 0, 0, time.UTC)
	if !cfg.TournamentKickoff.Equal(want) {
		t.Fatalf("unexpected TournamentKickoff: %s", cfg.TournamentKickoff)
	}

	t.Setenv("TOURNAMENT_KICKOFF", "next tuesday")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for malformed TOURNAMENT_KICKOFF")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_CORSAllowedOriginsParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected second origin: %q", cfg.CORSAllowedOrigins[1])
	}
}
