package kv

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns a process-local Store. Values outlive the callers that
// wrote them but not the process.
func NewMemory() Store {
	return &memoryStore{values: make(map[string]string)}
}

func (m *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	v, ok := m.values[key]
	m.mu.RUnlock()
	return v, ok, nil
}

func (m *memoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) Ping(context.Context) error {
	return nil
}
