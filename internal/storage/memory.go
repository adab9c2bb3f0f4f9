package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps documents in process memory. Used for tests and local
// runs with STORE_BACKEND=memory.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.docs[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.docs[key] = value
	return nil
}
