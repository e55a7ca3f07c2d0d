package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/stdquest/internal/config"
	"github.com/cory-johannsen/stdquest/internal/game/progress"
	"github.com/cory-johannsen/stdquest/internal/storage/file"
	"github.com/cory-johannsen/stdquest/internal/storage/postgres"
	"github.com/cory-johannsen/stdquest/internal/storage/sqlite"
)

// openStore selects the progress store named by cfg.Persistence.Driver. The
// returned close func releases any connection it holds.
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (progress.Store, func(), error) {
	p := cfg.Persistence
	switch p.Driver {
	case config.DriverMemory:
		logger.Warn("progress will not outlive this session", zap.String("driver", p.Driver))
		return progress.NewMemoryStore(), func() {}, nil

	case config.DriverFile:
		logger.Info("saving progress to file", zap.String("path", p.FilePath))
		return file.NewProgressStore(p.FilePath), func() {}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(p.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("saving progress to sqlite", zap.String("path", p.SQLitePath), zap.String("slot", p.Slot))
		return db.Slot(p.Slot), func() { _ = db.Close() }, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		migrated, err := pool.Migrated(ctx)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		if !migrated {
			pool.Close()
			return nil, nil, fmt.Errorf("database %q has no player_progress table: run cmd/migrate first", cfg.Database.Name)
		}
		logger.Info("saving progress to postgres",
			zap.String("host", cfg.Database.Host),
			zap.String("slot", p.Slot),
		)
		return postgres.NewProgressRepository(pool.DB(), p.Slot), pool.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown persistence driver %q", p.Driver)
}

// listSlots describes every slot held by the configured database store.
func listSlots(ctx context.Context, cfg config.Config) ([]string, error) {
	switch cfg.Persistence.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Persistence.SQLitePath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return db.Slots(ctx)

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		defer pool.Close()
		infos, err := postgres.ListSlots(ctx, pool.DB())
		if err != nil {
			return nil, err
		}
		out := make([]string, 0, len(infos))
		for _, info := range infos {
			out = append(out, fmt.Sprintf("%s\t%s\t%s", info.Slot, info.PlayerID, info.UpdatedAt.Format(time.RFC3339)))
		}
		return out, nil
	}
	return nil, fmt.Errorf("driver %q has no slots", cfg.Persistence.Driver)
}
