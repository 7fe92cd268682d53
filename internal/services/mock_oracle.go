package services

import (
	"context"
	"sync"
)

// MockOracle is a mock implementation of Oracle for testing
type MockOracle struct {
	CompleteFunc func(ctx context.Context, systemPrompt string, userPrompt string) (string, error)

	// Track calls for testing
	CompleteCalls []CompleteCall

	mu sync.Mutex // protects all fields above
}

// CompleteCall records the arguments of one Complete invocation.
type CompleteCall struct {
	SystemPrompt string
	UserPrompt   string
}

// NewMockOracle creates a new mock oracle
func NewMockOracle() *MockOracle {
	return &MockOracle{
		CompleteCalls: make([]CompleteCall, 0),
	}
}

// Complete mocks a completion request
func (m *MockOracle) Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CompleteCalls = append(m.CompleteCalls, CompleteCall{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
	})

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, systemPrompt, userPrompt)
	}

	// Default behavior - a minimal valid decision
	return `{"action":"walk","reasoning":"mock decision"}`, nil
}

// SetCompleteError sets up the mock to fail every Complete call
func (m *MockOracle) SetCompleteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CompleteFunc = func(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
		return "", &OracleError{Err: err}
	}
}

// SetCompleteResponse sets up the mock to return a fixed reply
func (m *MockOracle) SetCompleteResponse(reply string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CompleteFunc = func(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
		return reply, nil
	}
}

// Reset clears all call tracking
func (m *MockOracle) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CompleteFunc = nil
	m.CompleteCalls = make([]CompleteCall, 0)
}

// Calls returns a copy of the recorded Complete calls.
func (m *MockOracle) Calls() []CompleteCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]CompleteCall, len(m.CompleteCalls))
	copy(calls, m.CompleteCalls)
	return calls
}
