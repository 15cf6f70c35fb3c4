// Package repository selects a storage backend for the dogs table.
package repository

import (
	"context"
	"fmt"

	"github.com/msomdec/kennel/internal/config"
	"github.com/msomdec/kennel/internal/domain"
	"github.com/msomdec/kennel/internal/repository/memory"
	"github.com/msomdec/kennel/internal/repository/postgres"
	"github.com/msomdec/kennel/internal/repository/sqlite"
)

// Open returns the database named by cfg.DatabaseDriver. The caller owns the
// returned handle and must Close it.
func Open(ctx context.Context, cfg *config.Config) (domain.Database, error) {
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		db, err := sqlite.New(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DatabaseDriver)
	}
}
