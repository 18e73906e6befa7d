package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "db.example.com")
	t.Setenv("DB_NAME", "moremori")
	t.Setenv("DB_READ_USER", "site_reader")
	t.Setenv("DB_READ_PASSWORD", "rpw")
	t.Setenv("DB_WRITE_USER", "site_writer")
	t.Setenv("DB_WRITE_PASSWORD", "wpw")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.DB.SSLMode != "require" {
		t.Fatalf("expected default sslmode require, got %q", cfg.DB.SSLMode)
	}
	if cfg.Storage.Bucket != "moremori-images" {
		t.Fatalf("expected default bucket, got %q", cfg.Storage.Bucket)
	}
	if cfg.Cache.TTL != 60*time.Second {
		t.Fatalf("expected default cache TTL 60s, got %s", cfg.Cache.TTL)
	}
	if cfg.Worker.CalendarSweepInterval != time.Hour {
		t.Fatalf("expected default sweep interval 1h, got %s", cfg.Worker.CalendarSweepInterval)
	}
	if cfg.StorageEnabled() {
		t.Fatal("storage should be disabled without SUPABASE_URL")
	}
	if cfg.CacheEnabled() {
		t.Fatal("cache should be disabled without REDIS_HOST")
	}
}

func TestLoadRequiresBothRoles(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_WRITE_USER", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when the write role is missing")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CACHE_TTL", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unparseable CACHE_TTL")
	}
}

func TestLoadEnablesOptionalSubsystems(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-key")
	t.Setenv("REDIS_HOST", "localhost")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.StorageEnabled() {
		t.Fatal("expected storage enabled")
	}
	if !cfg.CacheEnabled() {
		t.Fatal("expected cache enabled")
	}
}
