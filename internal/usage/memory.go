package usage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Store for tests and for running without a database.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
	ids     map[string]struct{}
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ids: make(map[string]struct{})}
}

func (m *MemoryStore) Append(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, dup := m.ids[rec.ID]; dup {
		return fmt.Errorf("usage record %s already exists", rec.ID)
	}
	m.ids[rec.ID] = struct{}{}
	m.records = append(m.records, rec)
	return nil
}

func (m *MemoryStore) List(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Record(nil), m.records...), nil
}

func (m *MemoryStore) Close() error { return nil }
