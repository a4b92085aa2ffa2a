package db

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/pestops-backend/internal/platform/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Driver     string
	Postgres   PostgresConfig
	SQLitePath string
}

// Database is the handle the app holds regardless of driver.
type Database interface {
	DB() *gorm.DB
	Close() error
}

func Open(logg *logger.Logger, cfg Config) (Database, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverPostgres:
		return NewPostgresService(logg, cfg.Postgres)
	case DriverSQLite, "sqlite3":
		return NewSQLiteService(logg, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
}
