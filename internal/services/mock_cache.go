package services

import (
	"context"
	"sync"
	"time"
)

// MockCache is a mock implementation of Cache for testing
type MockCache struct {
	PingFunc              func(ctx context.Context) error
	SetFunc               func(ctx context.Context, key, value string, expiration time.Duration) error
	GetFunc               func(ctx context.Context, key string) (string, error)
	DelFunc               func(ctx context.Context, keys ...string) error
	CloseFunc             func() error
	WaitForConnectionFunc func(ctx context.Context) error

	mu sync.Mutex

	// Track calls for testing
	PingCalls  int
	SetCalls   []SetCall
	GetCalls   []string
	DelCalls   [][]string
	CloseCalls int

	entries map[string]string
}

type SetCall struct {
	Key        string
	Value      string
	Expiration time.Duration
}

// NewMockCache creates a new mock cache backed by an in-memory map.
func NewMockCache() *MockCache {
	return &MockCache{
		SetCalls: make([]SetCall, 0),
		GetCalls: make([]string, 0),
		DelCalls: make([][]string, 0),
		entries:  make(map[string]string),
	}
}

// Ping mocks cache ping
func (m *MockCache) Ping(ctx context.Context) error {
	m.mu.Lock()
	m.PingCalls++
	m.mu.Unlock()

	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// Set mocks cache set. Expirations are recorded but never enforced.
func (m *MockCache) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	m.mu.Lock()
	m.SetCalls = append(m.SetCalls, SetCall{Key: key, Value: value, Expiration: expiration})
	m.mu.Unlock()

	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, expiration)
	}

	m.mu.Lock()
	m.entries[key] = value
	m.mu.Unlock()
	return nil
}

// Get mocks cache get. Missing keys return ErrNotFound.
func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, key)
	m.mu.Unlock()

	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Del mocks cache delete
func (m *MockCache) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	m.DelCalls = append(m.DelCalls, keys)
	m.mu.Unlock()

	if m.DelFunc != nil {
		return m.DelFunc(ctx, keys...)
	}

	m.mu.Lock()
	for _, key := range keys {
		delete(m.entries, key)
	}
	m.mu.Unlock()
	return nil
}

// Close mocks cache close
func (m *MockCache) Close() error {
	m.mu.Lock()
	m.CloseCalls++
	m.mu.Unlock()

	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// WaitForConnection mocks cache connection waiting
func (m *MockCache) WaitForConnection(ctx context.Context) error {
	if m.WaitForConnectionFunc != nil {
		return m.WaitForConnectionFunc(ctx)
	}
	return nil
}

// SetPingError sets up the mock to return an error on Ping
func (m *MockCache) SetPingError(err error) {
	m.PingFunc = func(ctx context.Context) error {
		return err
	}
}

// Reset clears call tracking and stored entries.
func (m *MockCache) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PingCalls = 0
	m.SetCalls = make([]SetCall, 0)
	m.GetCalls = make([]string, 0)
	m.DelCalls = make([][]string, 0)
	m.CloseCalls = 0
	m.entries = make(map[string]string)
}

// Ensure MockCache implements Cache interface
var _ Cache = (*MockCache)(nil)
