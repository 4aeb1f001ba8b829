package storage

import (
	"context"
	"sync"
)

// Memory keeps values in process memory. Used for tests and single-instance development.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	m.mu.Lock()
	m.values[key] = v
	m.mu.Unlock()
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return nil
}
