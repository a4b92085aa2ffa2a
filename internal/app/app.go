package app

import (
	"context"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/yungbote/pestops-backend/internal/data/db"
	"github.com/yungbote/pestops-backend/internal/observability"
	"github.com/yungbote/pestops-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Metrics  *observability.Metrics
	Repos    Repos
	Services Services
	Server   *Server

	database     db.Database
	otelShutdown func(context.Context) error
}

// New loads configuration and wires the whole process. Callers must Close it.
func New(ctx context.Context) (*App, error) {
	LoadDotEnv()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading configuration...")
	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	otelShutdown := observability.InitOTel(ctx, log, cfg.OTel)
	metrics := observability.Init(log, cfg.MetricsEnabled)

	database, err := db.Open(log, cfg.DB)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	theDB := database.DB()
	if err := db.AutoMigrateAll(theDB); err != nil {
		_ = database.Close()
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	metrics.RegisterDB(log, theDB, cfg.DB.Driver)

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, metrics, reposet)
	server := wireServer(log, cfg, metrics, theDB, serviceset)

	return &App{
		Log:          log,
		DB:           theDB,
		Cfg:          cfg,
		Metrics:      metrics,
		Repos:        reposet,
		Services:     serviceset,
		Server:       server,
		database:     database,
		otelShutdown: otelShutdown,
	}, nil
}

// Migrate opens the configured database, applies the schema and closes it.
func Migrate(ctx context.Context, log *logger.Logger) error {
	LoadDotEnv()
	cfg, err := LoadConfig(log)
	if err != nil {
		return err
	}
	database, err := db.Open(log, cfg.DB)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer database.Close()
	if err := db.AutoMigrateAll(database.DB().WithContext(ctx)); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	log.Info("schema migrated", "driver", cfg.DB.Driver)
	return nil
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(context.Background()); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.database != nil {
		if err := a.database.Close(); err != nil && a.Log != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
