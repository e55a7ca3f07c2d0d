// Package main applies the embedded schema migrations to the postgres save
// store.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"github.com/cory-johannsen/stdquest/internal/config"
	"github.com/cory-johannsen/stdquest/internal/observability"
	"github.com/cory-johannsen/stdquest/migrations"
)

type options struct {
	configPath string
	direction  string
	steps      int
	force      int
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "configs/postgres.yaml", "path to configuration file")
	flag.StringVar(&opts.direction, "direction", "up", "up or down")
	flag.IntVar(&opts.steps, "steps", 0, "number of migrations to apply (0 = all)")
	flag.IntVar(&opts.force, "force", -1, "mark the schema clean at this version without running anything")
	flag.Parse()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.Logging.File = ""
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(opts, cfg.Database, logger); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
}

func run(opts options, db config.DatabaseConfig, logger *zap.Logger) error {
	started := time.Now()
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, db.DSN())
	if err != nil {
		return fmt.Errorf("connecting to %s:%d/%s: %w", db.Host, db.Port, db.Name, err)
	}
	defer m.Close()

	err = apply(m, opts)
	unchanged := errors.Is(err, migrate.ErrNoChange)
	if err != nil && !unchanged {
		return err
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("reading schema version: %w", verr)
	}
	logger.Info("schema migrated",
		zap.String("direction", opts.direction),
		zap.Bool("unchanged", unchanged),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
		zap.Duration("elapsed", time.Since(started)),
	)
	return nil
}

func apply(m *migrate.Migrate, opts options) error {
	if opts.force >= 0 {
		return m.Force(opts.force)
	}
	n := opts.steps
	switch opts.direction {
	case "up":
		if n == 0 {
			return m.Up()
		}
	case "down":
		if n == 0 {
			return m.Down()
		}
		n = -n
	default:
		return fmt.Errorf("direction %q: want up or down", opts.direction)
	}
	return m.Steps(n)
}
