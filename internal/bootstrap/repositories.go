package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/CoffeePOS_Go/internal/config"
	"github.com/osse101/CoffeePOS_Go/internal/database"
	"github.com/osse101/CoffeePOS_Go/internal/database/memory"
	"github.com/osse101/CoffeePOS_Go/internal/database/postgres"
	"github.com/osse101/CoffeePOS_Go/internal/database/sqlite"
	"github.com/osse101/CoffeePOS_Go/internal/repository"
)

// OpenStore opens the persistence collaborator selected by STORAGE_DRIVER and
// brings its schema up to date. The caller owns the returned store.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	var (
		store repository.Store
		err   error
	)

	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		store = memory.New()
	case config.StorageDriverSQLite:
		store, err = sqlite.Open(ctx, cfg.SQLitePath)
	case config.StorageDriverPostgres:
		store, err = openPostgres(ctx, cfg)
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownDriver, cfg.StorageDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("%s (%s): %w", ErrMsgFailedOpenStorage, cfg.StorageDriver, err)
	}

	slog.Info(LogMsgStorageOpened, "driver", cfg.StorageDriver)
	return store, nil
}

func openPostgres(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, err
	}
	if err := database.MigratePostgres(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return postgres.NewStore(pool), nil
}
