// Package postgres saves player progress in PostgreSQL using pgx v5. The
// schema is owned by the migrations package and applied with cmd/migrate.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/stdquest/internal/config"
)

const (
	applicationName = "stdquest"
	connectTimeout  = 5 * time.Second
)

// Pool is the connection pool shared by every save slot.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool connects to the database described by cfg.
//
// Precondition: cfg must contain valid database connection parameters.
// Postcondition: Returns a Pool that answered a ping within connectTimeout,
// or a non-nil error. The schema is not checked; see Migrated.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	p := &Pool{pool: pool}
	if err := p.Health(ctx, connectTimeout); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return p, nil
}

// Health checks that the database is reachable within timeout.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.pool.Ping(ctx)
}

// Migrated reports whether the player_progress table exists.
func (p *Pool) Migrated(ctx context.Context) (bool, error) {
	var ok bool
	err := p.pool.QueryRow(ctx,
		`SELECT to_regclass('public.player_progress') IS NOT NULL`,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("checking schema: %w", err)
	}
	return ok, nil
}

// Close releases all pool resources.
func (p *Pool) Close() { p.pool.Close() }

// DB returns the underlying pgxpool.Pool for repositories.
func (p *Pool) DB() *pgxpool.Pool { return p.pool }
