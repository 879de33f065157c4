package session

import (
	"context"
	"sync"

	"bluetec-catalog/internal/application"
)

// MemoryStore keeps the snapshot in process memory. It survives nothing
// beyond the process and is meant for local runs and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

var _ application.SessionStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load(context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.data == nil {
		return nil, application.ErrNoSnapshot
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryStore) Save(_ context.Context, b []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), b...)
	return nil
}

func (m *MemoryStore) Delete(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

func (m *MemoryStore) Exists(context.Context) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data != nil, nil
}
