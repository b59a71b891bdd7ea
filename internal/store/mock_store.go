// ABOUTME: In-memory Backend implementation for testing
// ABOUTME: Allows tests to run without SQLite

package store

import (
	"context"
	"slices"
	"sync"
)

// MockBackend is an in-memory Backend implementation for testing.
type MockBackend struct {
	mu     sync.RWMutex
	values map[string][]byte
	puts   int
	// FailPut, when set, is returned from every Put.
	FailPut error
}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{values: make(map[string][]byte)}
}

// Get returns a copy of the stored value.
func (m *MockBackend) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Put stores a copy of value.
func (m *MockBackend) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailPut != nil {
		return m.FailPut
	}
	m.values[key] = append([]byte(nil), value...)
	m.puts++
	return nil
}

// Delete removes key.
func (m *MockBackend) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

// Keys lists stored keys in lexical order.
func (m *MockBackend) Keys(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

// Close is a no-op.
func (m *MockBackend) Close() error { return nil }

// SetRaw stores bytes directly, bypassing serialization. Useful for corrupt-value tests.
func (m *MockBackend) SetRaw(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Puts returns how many successful writes have happened.
func (m *MockBackend) Puts() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.puts
}

var _ Backend = (*MockBackend)(nil)
