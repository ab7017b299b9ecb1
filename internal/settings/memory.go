package settings

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps the settings blob in memory.
type MemoryStore struct {
	mu    sync.Mutex
	saved *AppSettings
	saves int
}

// NewMemoryStore returns an empty store; the first Load yields defaults.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) (AppSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		return Defaults(time.Now()), nil
	}
	return m.saved.Clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, s AppSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := s.Clone()
	m.saved = &c
	m.saves++
	return nil
}

// Saves returns how many times Save was called.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
