// Package testutil provides test helpers for running the postgres save store
// against a disposable container.
package testutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/cory-johannsen/stdquest/internal/config"
	"github.com/cory-johannsen/stdquest/internal/storage/postgres"
	"github.com/cory-johannsen/stdquest/migrations"
)

const (
	postgresImage = "postgres:16-alpine"
	dbName        = "stdquest_test"
	dbCredential  = "stdquest"
)

// Postgres is a throwaway database with a connected save-store pool.
type Postgres struct {
	Pool   *postgres.Pool
	Config config.DatabaseConfig
}

// StartPostgres runs a postgres container for the lifetime of t. The test is
// skipped under -short.
//
// Precondition: Docker must be available.
// Postcondition: The container is terminated and the pool closed when t
// finishes.
func StartPostgres(t *testing.T) *Postgres {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container skipped in -short mode")
	}
	ctx := context.Background()
	began := time.Now()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        postgresImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       dbName,
				"POSTGRES_USER":     dbCredential,
				"POSTGRES_PASSWORD": dbCredential,
			},
			// postgres logs readiness once for the init server and once for
			// the real one.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(45 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("postgres container: %v", err)
	}
	t.Cleanup(func() { _ = ctr.Terminate(context.Background()) })

	cfg, err := databaseConfig(ctx, ctr)
	if err != nil {
		t.Fatalf("postgres endpoint: %v", err)
	}
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		t.Fatalf("postgres pool: %v", err)
	}
	t.Cleanup(pool.Close)

	t.Logf("postgres ready at %s:%d after %s", cfg.Host, cfg.Port, time.Since(began).Round(time.Millisecond))
	return &Postgres{Pool: pool, Config: cfg}
}

func databaseConfig(ctx context.Context, ctr testcontainers.Container) (config.DatabaseConfig, error) {
	host, err := ctr.Host(ctx)
	if err != nil {
		return config.DatabaseConfig{}, err
	}
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return config.DatabaseConfig{}, err
	}
	return config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            dbCredential,
		Password:        dbCredential,
		Name:            dbName,
		SSLMode:         "disable",
		MaxConns:        4,
		MinConns:        1,
		MaxConnLifetime: 5 * time.Minute,
	}, nil
}

// DB returns the underlying pgx pool.
func (p *Postgres) DB() *pgxpool.Pool { return p.Pool.DB() }

// Migrator returns a golang-migrate instance over the embedded migrations.
// It is closed when t finishes.
func (p *Postgres) Migrator(t *testing.T) *migrate.Migrate {
	t.Helper()
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		t.Fatalf("embedded migrations: %v", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, p.Config.DSN())
	if err != nil {
		t.Fatalf("migrator: %v", err)
	}
	t.Cleanup(func() { _, _ = m.Close() })
	return m
}

// Migrate applies every up migration, the same way cmd/migrate does.
//
// Postcondition: The player_progress table exists.
func (p *Postgres) Migrate(t *testing.T) {
	t.Helper()
	if err := p.Migrator(t).Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("migrate up: %v", err)
	}
}
