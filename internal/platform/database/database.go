// Package database opens the configured store driver.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/campus/internal/platform/config"
	"github.com/aussiebroadwan/campus/internal/store"
	"github.com/aussiebroadwan/campus/internal/store/drivers/postgres"
	"github.com/aussiebroadwan/campus/internal/store/drivers/sqlite"
)

const pingTimeout = 5 * time.Second

// Open connects to the database described by cfg, checks it is reachable
// and applies migrations when enabled.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (store.Store, error) {
	retry := store.RetryPolicy{
		MaxTries:        cfg.RetryMaxTries,
		InitialInterval: cfg.RetryInitialInterval,
	}

	var (
		db  store.Store
		err error
	)
	switch strings.ToLower(cfg.Driver) {
	case config.DriverSQLite:
		db, err = sqlite.NewStore(cfg.DSN, sqlite.WithRetryPolicy(retry))
	case config.DriverPostgres:
		db, err = postgres.NewStore(cfg.DSN,
			postgres.WithRetryPolicy(retry),
			postgres.WithPool(cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime),
		)
	default:
		return nil, fmt.Errorf("database: unsupported driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", cfg.Driver, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.Ping(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: ping %s: %w", cfg.Driver, err)
	}

	if cfg.Migrate {
		if err := db.ApplyMigrations(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("database: migrate: %w", err)
		}
		logger.Info("database migrations applied", "driver", cfg.Driver)
	}

	return db, nil
}
