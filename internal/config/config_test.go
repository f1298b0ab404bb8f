package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t, "DATABASE_URL", "DB_URL", "SERVER_PORT", "PORT", "CSV_PATH", "REDIS_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 3000)
	}
	if cfg.Catalog.CSVPath != "fans_data.csv" {
		t.Errorf("Catalog.CSVPath = %q", cfg.Catalog.CSVPath)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("Cache.TTL = %v, want 5m", cfg.Cache.TTL)
	}
	if !cfg.Rate.Enabled || cfg.Rate.RequestsPerMinute != 300 {
		t.Errorf("Rate = %+v", cfg.Rate)
	}
	if cfg.UsePostgres() {
		t.Error("UsePostgres should be false without DATABASE_URL")
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://localhost/fans")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("CACHE_TTL", "90s")
	defer clearEnv(t, "DATABASE_URL", "SERVER_PORT", "LOG_LEVEL", "CACHE_TTL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.Cache.TTL != 90*time.Second {
		t.Errorf("Cache.TTL = %v", cfg.Cache.TTL)
	}
	if !cfg.UsePostgres() {
		t.Error("UsePostgres should be true with DATABASE_URL")
	}
}

func TestLoad_PortAlias(t *testing.T) {
	clearEnv(t, "SERVER_PORT")
	os.Setenv("PORT", "8081")
	defer clearEnv(t, "PORT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8081 {
		t.Errorf("Server.Port = %d, want %d (from PORT alias)", cfg.Server.Port, 8081)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad port", key: "SERVER_PORT", value: "70000"},
		{name: "non-numeric port", key: "SERVER_PORT", value: "abc"},
		{name: "bad duration", key: "SERVER_READ_TIMEOUT", value: "fast"},
		{name: "bad log level", key: "LOG_LEVEL", value: "loud"},
		{name: "bad log format", key: "LOG_FORMAT", value: "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv(tt.key, tt.value)
			defer os.Unsetenv(tt.key)

			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q should fail", tt.key, tt.value)
			}
		})
	}
}

func TestAddr(t *testing.T) {
	sc := ServerConfig{Host: "127.0.0.1", Port: 3000}
	if got := sc.Addr(); got != "127.0.0.1:3000" {
		t.Errorf("Addr() = %q", got)
	}
}
