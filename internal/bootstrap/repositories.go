package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/CaseSim_Go/internal/config"
	"github.com/osse101/CaseSim_Go/internal/database"
	"github.com/osse101/CaseSim_Go/internal/database/cached"
	"github.com/osse101/CaseSim_Go/internal/database/memory"
	"github.com/osse101/CaseSim_Go/internal/database/postgres"
	"github.com/osse101/CaseSim_Go/internal/database/sqlite"
	"github.com/osse101/CaseSim_Go/internal/repository"
)

// Storage is the opened key-value backend
type Storage struct {
	KV     repository.KeyValue
	Pinger repository.Pinger // nil for in-memory storage
	close  []func() error
}

// Close releases the backend connections
func (s *Storage) Close() error {
	var errs []error
	for i := len(s.close) - 1; i >= 0; i-- {
		errs = append(errs, s.close[i]())
	}
	return errors.Join(errs...)
}

// OpenStorage opens and migrates the configured backend. SQL backends are
// wrapped in an LRU read cache when CACHE_SIZE is positive.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	var (
		kv repository.KeyValue
		st = &Storage{}
	)

	switch cfg.StorageDriver {
	case config.DriverMemory:
		st.KV = memory.NewKVRepository()
		slog.Info(LogMsgStorageOpened, "driver", cfg.StorageDriver)
		return st, nil

	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, DirPermission); err != nil {
				return nil, fmt.Errorf("%s: %w", ErrMsgOpenStorage, err)
			}
		}
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgOpenStorage, err)
		}
		st.close = append(st.close, db.Close)
		if err := database.MigrateSQLite(ctx, db); err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgMigrateStorage, err)
		}
		kv = sqlite.NewKVRepository(db)

	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), int(cfg.DBMaxConns), 0, 0)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgOpenStorage, err)
		}
		st.close = append(st.close, func() error { pool.Close(); return nil })
		if err := database.MigratePostgres(ctx, pool); err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgMigrateStorage, err)
		}
		kv = postgres.NewKVRepository(pool)

	default:
		return nil, fmt.Errorf(ErrMsgUnknownDriverFmt, cfg.StorageDriver)
	}

	if cfg.CacheSize > 0 {
		c := cached.NewKVRepository(kv, cfg.CacheSize, cfg.CacheTTL)
		st.KV, st.Pinger = c, c
	} else {
		st.KV = kv
		st.Pinger, _ = kv.(repository.Pinger)
	}

	slog.Info(LogMsgStorageOpened,
		"driver", cfg.StorageDriver,
		"cache_size", cfg.CacheSize)
	return st, nil
}
