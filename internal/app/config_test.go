package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CONFIG_FILE", "PORT", "DB_DRIVER", "POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_DSN",
		"SQLITE_PATH", "JWT_SECRET_KEY", "CORS_ORIGINS", "METRICS_ENABLED", "OTEL_ENABLED",
		"OTEL_SAMPLE_RATIO", "OTEL_EXPORTER_OTLP_HEADERS", "POSTGRES_CONN_MAX_LIFETIME", "OTEL_SERVICE_NAME",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)
	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "8080" || cfg.DB.Driver != "postgres" || cfg.DB.Postgres.Port != "5432" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.JWTSecretKey != "" || cfg.MetricsEnabled || cfg.OTel.Enabled {
		t.Fatalf("optional features should default off: %+v", cfg)
	}
	if cfg.OTel.SampleRatio != 1 || cfg.OTel.ServiceName != "pestops-api" {
		t.Fatalf("unexpected otel defaults: %+v", cfg.OTel)
	}
	if cfg.DB.Postgres.ConnMaxLifetime != 30*time.Minute {
		t.Fatalf("conn lifetime: %v", cfg.DB.Postgres.ConnMaxLifetime)
	}
}

func TestLoadConfigFileOverlayAndEnvOverride(t *testing.T) {
	clearConfigEnv(t)
	path := filepath.Join(t.TempDir(), "pestops.yaml")
	body := `
port: "9090"
database:
  driver: sqlite
  sqlite_path: /tmp/file.db
  conn_max_lifetime: 5m
cors_origins:
  - https://ops.example.com
metrics:
  enabled: true
otel:
  sample_ratio: 0.2
  headers: "x-api-key=abc"
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SQLITE_PATH", "/tmp/env.db")

	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "9090" || cfg.DB.Driver != "sqlite" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.DB.SQLitePath != "/tmp/env.db" {
		t.Fatalf("env should win over file: %q", cfg.DB.SQLitePath)
	}
	if cfg.DB.Postgres.ConnMaxLifetime != 5*time.Minute {
		t.Fatalf("conn lifetime: %v", cfg.DB.Postgres.ConnMaxLifetime)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://ops.example.com" {
		t.Fatalf("cors origins: %v", cfg.CORSOrigins)
	}
	if !cfg.MetricsEnabled || cfg.OTel.SampleRatio != 0.2 || cfg.OTel.Headers["x-api-key"] != "abc" {
		t.Fatalf("metrics/otel overlay: %+v", cfg)
	}

	t.Setenv("METRICS_ENABLED", "false")
	cfg, err = LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.MetricsEnabled {
		t.Fatalf("env false should override file true")
	}
}

func TestLoadConfigBadFile(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := LoadConfig(nil); err == nil {
		t.Fatalf("expected error for missing config file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("port: [unclosed"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	if _, err := LoadConfig(nil); err == nil {
		t.Fatalf("expected parse error")
	}
}
