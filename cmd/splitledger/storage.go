package main

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	"github.com/SscSPs/splitledger/internal/platform/config"
	"github.com/SscSPs/splitledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/splitledger/internal/repositories/database/sqlite"
	"github.com/SscSPs/splitledger/internal/repositories/memory"
	"github.com/SscSPs/splitledger/pkg/database"
)

// migrateSchema brings the configured database up to date. The memory driver has no schema.
func migrateSchema(cfg *config.Config, logger *slog.Logger) error {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return database.MigratePostgres(cfg.DatabaseURL, logger)
	case config.DriverSQLite:
		return database.MigrateSQLite(cfg.SQLitePath, logger)
	case config.DriverMemory:
		logger.Info("Memory driver selected, nothing to migrate")
		return nil
	default:
		return fmt.Errorf("unknown database driver %q", cfg.DBDriver)
	}
}

// openRepositories migrates the schema and connects the configured backend.
func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, error) {
	logger.Info("Running database migrations...", slog.String("driver", cfg.DBDriver))
	if err := migrateSchema(cfg, logger); err != nil {
		return portsrepo.RepositoryProvider{}, err
	}

	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		logger.Info("Database connection pool established.")
		return pgsql.NewRepositoryProvider(pool), nil
	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		logger.Info("SQLite database opened", slog.String("path", cfg.SQLitePath))
		return sqlite.NewRepositoryProvider(db), nil
	default:
		logger.Warn("Using the in-memory store, data is lost on exit")
		return memory.NewRepositoryProvider(), nil
	}
}

func closeRepositories(repos portsrepo.RepositoryProvider, logger *slog.Logger) {
	if repos.Close == nil {
		return
	}
	if err := repos.Close(); err != nil {
		logger.Error("Error closing database", slog.String("error", err.Error()))
	}
}
