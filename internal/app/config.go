package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/pestops-backend/internal/data/db"
	"github.com/yungbote/pestops-backend/internal/observability"
	"github.com/yungbote/pestops-backend/internal/platform/envutil"
	"github.com/yungbote/pestops-backend/internal/platform/logger"
)

type Config struct {
	Port        string
	LogMode     string
	ServiceName string

	DB db.Config

	JWTSecretKey string
	CORSOrigins  []string

	MetricsEnabled bool
	MetricsAddr    string
	OTel           observability.OtelConfig
}

// fileConfig is the optional YAML overlay. Environment variables win over it.
type fileConfig struct {
	Port        string `yaml:"port"`
	LogMode     string `yaml:"log_mode"`
	ServiceName string `yaml:"service_name"`
	Database    struct {
		Driver          string `yaml:"driver"`
		DSN             string `yaml:"dsn"`
		Host            string `yaml:"host"`
		Port            string `yaml:"port"`
		User            string `yaml:"user"`
		Password        string `yaml:"password"`
		Name            string `yaml:"name"`
		SSLMode         string `yaml:"sslmode"`
		SQLitePath      string `yaml:"sqlite_path"`
		MaxOpenConns    int    `yaml:"max_open_conns"`
		MaxIdleConns    int    `yaml:"max_idle_conns"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime"`
	} `yaml:"database"`
	CORSOrigins []string `yaml:"cors_origins"`
	Metrics     struct {
		Enabled *bool  `yaml:"enabled"`
		Addr    string `yaml:"addr"`
	} `yaml:"metrics"`
	OTel struct {
		Enabled     *bool   `yaml:"enabled"`
		Endpoint    string  `yaml:"endpoint"`
		Headers     string  `yaml:"headers"`
		Insecure    *bool   `yaml:"insecure"`
		SampleRatio float64 `yaml:"sample_ratio"`
		Environment string  `yaml:"environment"`
	} `yaml:"otel"`
}

// LoadDotEnv loads .env when present. A missing file is not an error.
func LoadDotEnv() {
	_ = godotenv.Load()
}

func readFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	path = strings.TrimSpace(path)
	if path == "" {
		return fc, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

func or(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func orInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func orBool(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func orDuration(v string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
		return d
	}
	return def
}

func LoadConfig(log *logger.Logger) (Config, error) {
	fc, err := readFileConfig(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:        envutil.String("PORT", or(fc.Port, "8080")),
		LogMode:     envutil.String("LOG_MODE", or(fc.LogMode, "development")),
		ServiceName: envutil.String("OTEL_SERVICE_NAME", or(fc.ServiceName, "pestops-api")),
		DB: db.Config{
			Driver: envutil.String("DB_DRIVER", or(fc.Database.Driver, db.DriverPostgres)),
			Postgres: db.PostgresConfig{
				DSN:             envutil.String("POSTGRES_DSN", fc.Database.DSN),
				Host:            envutil.String("POSTGRES_HOST", or(fc.Database.Host, "localhost")),
				Port:            envutil.String("POSTGRES_PORT", or(fc.Database.Port, "5432")),
				User:            envutil.String("POSTGRES_USER", or(fc.Database.User, "postgres")),
				Password:        envutil.String("POSTGRES_PASSWORD", fc.Database.Password),
				Name:            envutil.String("POSTGRES_NAME", or(fc.Database.Name, "pestops")),
				SSLMode:         envutil.String("POSTGRES_SSLMODE", or(fc.Database.SSLMode, "disable")),
				MaxOpenConns:    envutil.Int("POSTGRES_MAX_OPEN_CONNS", orInt(fc.Database.MaxOpenConns, 20)),
				MaxIdleConns:    envutil.Int("POSTGRES_MAX_IDLE_CONNS", orInt(fc.Database.MaxIdleConns, 10)),
				ConnMaxLifetime: envutil.Duration("POSTGRES_CONN_MAX_LIFETIME", orDuration(fc.Database.ConnMaxLifetime, 30*time.Minute)),
			},
			SQLitePath: envutil.String("SQLITE_PATH", or(fc.Database.SQLitePath, "pestops.db")),
		},
		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", ""),
		CORSOrigins:    envutil.List("CORS_ORIGINS", fc.CORSOrigins),
		MetricsEnabled: envutil.Bool("METRICS_ENABLED", orBool(fc.Metrics.Enabled, false)),
		MetricsAddr:    envutil.String("METRICS_ADDR", fc.Metrics.Addr),
		OTel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", orBool(fc.OTel.Enabled, false)),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", fc.OTel.Endpoint),
			Headers:     observability.ParseOTLPHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", fc.OTel.Headers)),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", orBool(fc.OTel.Insecure, false)),
			SampleRatio: sampleRatio(fc.OTel.SampleRatio),
			Environment: envutil.String("APP_ENV", or(fc.OTel.Environment, "development")),
			Version:     envutil.String("APP_VERSION", "dev"),
		},
	}
	cfg.OTel.ServiceName = cfg.ServiceName

	if log != nil {
		log.Info("config loaded",
			"port", cfg.Port,
			"db_driver", cfg.DB.Driver,
			"auth_enabled", cfg.JWTSecretKey != "",
			"metrics_enabled", cfg.MetricsEnabled,
			"otel_enabled", cfg.OTel.Enabled,
		)
	}
	return cfg, nil
}

func sampleRatio(fileValue float64) float64 {
	raw := envutil.String("OTEL_SAMPLE_RATIO", "")
	if raw == "" {
		if fileValue == 0 {
			return 1
		}
		return fileValue
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 1
	}
	return f
}
