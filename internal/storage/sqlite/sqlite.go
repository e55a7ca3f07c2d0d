// Package sqlite saves player progress in a local SQLite database, one row
// per save slot.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cory-johannsen/stdquest/internal/game/progress"
)

const schema = `
CREATE TABLE IF NOT EXISTS progress_saves (
    slot       TEXT    PRIMARY KEY,
    data       BLOB    NOT NULL,
    updated_at INTEGER NOT NULL
);`

var pragmas = []string{
	"PRAGMA journal_mode=WAL;",
	"PRAGMA synchronous=NORMAL;",
	"PRAGMA busy_timeout=5000;",
}

// DB is an open SQLite save database.
type DB struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema exists.
//
// Precondition: path must be non-empty.
// Postcondition: Returns a ready DB or a non-nil error.
func Open(path string) (*DB, error) {
	if path == "" {
		return nil, errors.New("sqlite: empty db path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %q: %w", path, err)
	}
	// A single connection keeps :memory: databases shared and serializes writes.
	db.SetMaxOpenConns(1)

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("applying %q: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close releases the database.
func (d *DB) Close() error { return d.db.Close() }

// Slot returns the progress store for one save slot.
func (d *DB) Slot(slot string) *ProgressStore {
	return &ProgressStore{db: d.db, slot: slot, now: time.Now}
}

// Slots lists the saved slots in name order.
func (d *DB) Slots(ctx context.Context) ([]string, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT slot FROM progress_saves ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("listing slots: %w", err)
	}
	defer rows.Close()

	var slots []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning slot: %w", err)
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// ProgressStore implements progress.Store for one slot.
type ProgressStore struct {
	db   *sql.DB
	slot string
	now  func() time.Time
}

// Load returns the saved document of the slot.
//
// Postcondition: Returns progress.ErrNoSave when the slot has no row.
func (s *ProgressStore) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM progress_saves WHERE slot = ?`, s.slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, progress.ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("loading slot %q: %w", s.slot, err)
	}
	return data, nil
}

// Save upserts the slot row.
func (s *ProgressStore) Save(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO progress_saves (slot, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		s.slot, data, s.now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("saving slot %q: %w", s.slot, err)
	}
	return nil
}

// Reset deletes the slot row.
func (s *ProgressStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM progress_saves WHERE slot = ?`, s.slot); err != nil {
		return fmt.Errorf("resetting slot %q: %w", s.slot, err)
	}
	return nil
}
