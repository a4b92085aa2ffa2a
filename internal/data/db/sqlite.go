package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/pestops-backend/internal/platform/logger"
)

type SQLiteService struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewSQLiteService opens a file-backed or in-memory (":memory:" or "file:...mode=memory")
// database. The pool is pinned to one connection: sqlite serialises writers anyway and an
// in-memory database only lives as long as its connection.
func NewSQLiteService(logg *logger.Logger, path string) (*SQLiteService, error) {
	serviceLog := logg.With("service", "SQLiteService")

	dsn := strings.TrimSpace(path)
	if dsn == "" {
		dsn = "pestops.db"
	}
	db, err := gorm.Open(sqlite.Open(withPragmas(dsn)), &gorm.Config{
		Logger: newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %q: %w", dsn, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	serviceLog.Info("opened", "path", dsn)
	return &SQLiteService{db: db, log: serviceLog}, nil
}

func (s *SQLiteService) DB() *gorm.DB { return s.db }

func (s *SQLiteService) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// withPragmas appends the connection pragmas the schema relies on. sqlite ships with
// foreign keys off, so child rows would otherwise outlive their appointment.
func withPragmas(dsn string) string {
	for _, pragma := range []string{"_busy_timeout=5000", "_foreign_keys=1"} {
		key := pragma[:strings.Index(pragma, "=")]
		if strings.Contains(dsn, key) {
			continue
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + pragma
	}
	return dsn
}
