package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/stdquest/internal/game/progress"
)

// SlotInfo summarizes a saved slot.
type SlotInfo struct {
	Slot      string
	PlayerID  string
	UpdatedAt time.Time
}

// ProgressRepository stores one save slot per row of player_progress. It
// implements progress.Store for the slot it was created with.
type ProgressRepository struct {
	db   *pgxpool.Pool
	slot string
}

// NewProgressRepository creates a ProgressRepository for slot.
//
// Precondition: db must be a valid, open connection pool; slot must be non-empty.
func NewProgressRepository(db *pgxpool.Pool, slot string) *ProgressRepository {
	return &ProgressRepository{db: db, slot: slot}
}

// Load returns the saved document of the slot.
//
// Postcondition: Returns progress.ErrNoSave when the slot has no row.
func (r *ProgressRepository) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := r.db.QueryRow(ctx,
		`SELECT data FROM player_progress WHERE slot = $1`,
		r.slot,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, progress.ErrNoSave
		}
		return nil, fmt.Errorf("querying progress: %w", err)
	}
	return data, nil
}

// Save upserts the slot row. The player id column is copied out of the
// document so slots can be listed without decoding them.
//
// Precondition: data must be a JSON object.
func (r *ProgressRepository) Save(ctx context.Context, data []byte) error {
	var head struct {
		PlayerID string `json:"playerId"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return fmt.Errorf("reading player id: %w", err)
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO player_progress (slot, player_id, data)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (slot) DO UPDATE
		 SET player_id = EXCLUDED.player_id, data = EXCLUDED.data, updated_at = NOW()`,
		r.slot, head.PlayerID, data,
	)
	if err != nil {
		return fmt.Errorf("upserting progress: %w", err)
	}
	return nil
}

// Reset deletes the slot row.
func (r *ProgressRepository) Reset(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM player_progress WHERE slot = $1`, r.slot); err != nil {
		return fmt.Errorf("deleting progress: %w", err)
	}
	return nil
}

// ListSlots returns every saved slot, most recently updated first.
func ListSlots(ctx context.Context, db *pgxpool.Pool) ([]SlotInfo, error) {
	rows, err := db.Query(ctx,
		`SELECT slot, player_id::text, updated_at FROM player_progress ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing slots: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (SlotInfo, error) {
		var s SlotInfo
		err := row.Scan(&s.Slot, &s.PlayerID, &s.UpdatedAt)
		return s, err
	})
}
