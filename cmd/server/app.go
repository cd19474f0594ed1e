package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mochi-hq/mochi-api/internal/config"
	"github.com/mochi-hq/mochi-api/internal/platform/logger"
	"github.com/mochi-hq/mochi-api/internal/platform/logicapi"
	"github.com/mochi-hq/mochi-api/internal/platform/postgres"
	"github.com/mochi-hq/mochi-api/internal/service/auth"
	"github.com/mochi-hq/mochi-api/internal/store"
)

// application holds the wired dependencies of the running server.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	db          *sql.DB
	cardStore   store.CardStore
	logicClient logicapi.Client
	validator   auth.Validator
}

// initializeApp loads configuration and builds every component the
// server needs, in dependency order. Migrations run before the store is
// handed out so the schema is always current when requests arrive.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, appLogger); err != nil {
		closeDatabase(db, appLogger)
		return nil, err
	}

	validator, err := auth.NewRSAValidator(cfg.Auth.PublicKeyPEM)
	if err != nil {
		closeDatabase(db, appLogger)
		return nil, fmt.Errorf("failed to build token validator: %w", err)
	}

	return &application{
		config:      cfg,
		logger:      appLogger,
		db:          db,
		cardStore:   postgres.NewPostgresCardStore(db, appLogger),
		logicClient: logicapi.NewClient(cfg.Logic.BaseURL, cfg.Logic.Timeout, appLogger),
		validator:   validator,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		closeDatabase(app.db, app.logger)
	}
}
