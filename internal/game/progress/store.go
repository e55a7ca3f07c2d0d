package progress

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrNoSave is returned by a Store that holds no record.
var ErrNoSave = errors.New("no saved progress")

// Store persists a single encoded progress record.
type Store interface {
	// Load returns the saved record, or ErrNoSave when there is none.
	Load(ctx context.Context) ([]byte, error)
	// Save replaces the saved record.
	Save(ctx context.Context, data []byte) error
	// Reset deletes the saved record. Resetting an empty store is not an error.
	Reset(ctx context.Context) error
}

// Open loads the record from store. A missing record starts fresh; a corrupt
// one is logged and replaced by defaults rather than failing.
//
// Precondition: store and logger must be non-nil.
// Postcondition: Always returns a usable Progress; the error reports storage
// failures other than ErrNoSave.
func Open(ctx context.Context, store Store, d Defaults, logger *zap.Logger) (*Progress, error) {
	data, err := store.Load(ctx)
	if errors.Is(err, ErrNoSave) {
		logger.Info("no saved progress, starting fresh")
		return New(nil, d), nil
	}
	if err != nil {
		return New(nil, d), err
	}
	s, err := Decode(data, d)
	if err != nil {
		logger.Warn("saved progress is corrupt, starting fresh", zap.Error(err))
		return New(nil, d), nil
	}
	logger.Info("progress loaded",
		zap.String("player_id", s.PlayerID),
		zap.Int("level", s.Level),
		zap.String("location", s.CurrentLocation),
	)
	return New(s, d), nil
}

// Persist saves p when it is dirty and clears the flag on success.
func Persist(ctx context.Context, store Store, p *Progress) error {
	if !p.Dirty() {
		return nil
	}
	data, err := Encode(p.Snapshot())
	if err != nil {
		return err
	}
	if err := store.Save(ctx, data); err != nil {
		return err
	}
	p.MarkClean()
	return nil
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNoSave
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryStore) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *MemoryStore) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}
