// Package file saves player progress as a JSON document on local disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cory-johannsen/stdquest/internal/game/progress"
)

// ProgressStore keeps one save in a single file. Writes go through a
// temporary file and a rename so an interrupted save never truncates the
// previous one.
type ProgressStore struct {
	path string
}

// NewProgressStore creates a store for path. The file need not exist.
//
// Precondition: path must be non-empty.
func NewProgressStore(path string) *ProgressStore {
	return &ProgressStore{path: path}
}

// Path returns the save file location.
func (s *ProgressStore) Path() string { return s.path }

// Load reads the save file.
//
// Postcondition: Returns progress.ErrNoSave when the file does not exist.
func (s *ProgressStore) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, progress.ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("reading save %q: %w", s.path, err)
	}
	return data, nil
}

// Save replaces the save file with data.
func (s *ProgressStore) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating save dir %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".stdquest-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp save: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp save: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp save: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing save %q: %w", s.path, err)
	}
	return nil
}

// Reset deletes the save file. A missing file is not an error.
func (s *ProgressStore) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing save %q: %w", s.path, err)
	}
	return nil
}
