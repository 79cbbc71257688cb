package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("API_TIMEOUT", "bogus")
	t.Setenv("STORAGE_DRIVER", "cassandra")

	cfg := LoadConfig()

	if cfg.SessionSecret == "" {
		t.Error("development config must generate a session secret")
	}
	if cfg.APITimeout != 15*time.Second {
		t.Errorf("APITimeout = %v, want 15s", cfg.APITimeout)
	}
	if cfg.StorageDriver != StorageSQLite {
		t.Errorf("StorageDriver = %q, want %q", cfg.StorageDriver, StorageSQLite)
	}
	if !cfg.MockFallback {
		t.Error("mock fallback must default to on outside production")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("API_URL", "https://api.example.com/v1")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("STORAGE_DRIVER", StorageMemory)
	t.Setenv("MOCK_FALLBACK", "true")
	t.Setenv("PGHOST", "db")

	cfg := LoadConfig()

	if cfg.APIURL != "https://api.example.com/v1" || cfg.APITimeout != 3*time.Second {
		t.Errorf("unexpected api config: %q %v", cfg.APIURL, cfg.APITimeout)
	}
	if cfg.StorageDriver != StorageMemory || !cfg.MockFallback {
		t.Errorf("unexpected storage config: %q %v", cfg.StorageDriver, cfg.MockFallback)
	}
	if cfg.DatabaseConfig.Host != "db" {
		t.Errorf("PGHOST not applied: %q", cfg.DatabaseConfig.Host)
	}
	if cfg.SessionSecret != "s3cret" {
		t.Errorf("SessionSecret = %q", cfg.SessionSecret)
	}
}

func TestLoadCLIConfigSkipsSessionSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("MOCK_FALLBACK", "")

	cfg := LoadCLIConfig()

	if cfg.SessionSecret != "" {
		t.Errorf("SessionSecret = %q, want empty", cfg.SessionSecret)
	}
	if cfg.MockFallback {
		t.Error("mock fallback must default to off in production")
	}
}
