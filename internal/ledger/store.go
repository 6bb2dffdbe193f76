// Package ledger persists confirmed bookings per user in an injected
// key-value store. The store stands in for the storefront's browser
// storage: one JSON-array value per user key, append-only, best-effort
// under concurrent writers (last write wins).
package ledger

import (
	"context"
	"sync"
)

// Store is the persistence contract the ledger runs on. Get returns
// "" with a nil error when the key is absent, so callers never need a
// not-found sentinel; Set overwrites unconditionally.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// MemoryStore is an in-process Store used in tests and as a fallback
// when no Redis server is reachable at startup. Contents do not
// survive a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
