package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/event"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/npc"
)

// MockStorage is an in-memory implementation of Storage for testing.
// Records are deep-copied on read and write so callers cannot mutate
// stored state through aliased slices or maps.
type MockStorage struct {
	mu     sync.RWMutex
	npcs   map[string]*npc.NPC
	events []*event.GameEvent

	// Optional error injection
	FailWith error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates an empty in-memory store
func NewMockStorage() *MockStorage {
	return &MockStorage{
		npcs:   make(map[string]*npc.NPC),
		events: make([]*event.GameEvent, 0),
	}
}

func (m *MockStorage) Ping(ctx context.Context) error {
	return m.FailWith
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) CreateNPC(ctx context.Context, n *npc.NPC) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.npcs[n.ID] = copyNPC(n)
	return nil
}

func (m *MockStorage) GetNPC(ctx context.Context, id string) (*npc.NPC, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.npcs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyNPC(n), nil
}

func (m *MockStorage) ListNPCs(ctx context.Context) ([]*npc.NPC, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*npc.NPC, 0, len(m.npcs))
	for _, n := range m.npcs {
		out = append(out, copyNPC(n))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *MockStorage) SaveNPC(ctx context.Context, n *npc.NPC) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.npcs[n.ID]; !ok {
		return ErrNotFound
	}
	m.npcs[n.ID] = copyNPC(n)
	return nil
}

func (m *MockStorage) DeleteNPC(ctx context.Context, id string) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.npcs[id]; !ok {
		return ErrNotFound
	}
	delete(m.npcs, id)
	return nil
}

func (m *MockStorage) CountNPCs(ctx context.Context) (int64, error) {
	if m.FailWith != nil {
		return 0, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.npcs)), nil
}

func (m *MockStorage) CountNPCsByType(ctx context.Context, t npc.Type) (int64, error) {
	if m.FailWith != nil {
		return 0, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, n := range m.npcs {
		if n.Type == t {
			count++
		}
	}
	return count, nil
}

func (m *MockStorage) CreateEvent(ctx context.Context, e *event.GameEvent) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *e
	m.events = append(m.events, &copied)
	return nil
}

func (m *MockStorage) ListRecentEvents(ctx context.Context, limit int64) ([]*event.GameEvent, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*event.GameEvent, 0, len(m.events))
	for _, e := range m.events {
		copied := *e
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockStorage) CountEvents(ctx context.Context) (int64, error) {
	if m.FailWith != nil {
		return 0, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.events)), nil
}

func (m *MockStorage) CountEventsSince(ctx context.Context, t time.Time) (int64, error) {
	if m.FailWith != nil {
		return 0, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, e := range m.events {
		if !e.Timestamp.Before(t) {
			count++
		}
	}
	return count, nil
}

func copyNPC(n *npc.NPC) *npc.NPC {
	copied := *n
	copied.Schedule = append([]npc.ScheduleEntry(nil), n.Schedule...)
	copied.ShortTermMemory = copyMemories(n.ShortTermMemory)
	copied.LongTermMemory = copyMemories(n.LongTermMemory)
	copied.Relationships = make(map[string]int, len(n.Relationships))
	for id, score := range n.Relationships {
		copied.Relationships[id] = score
	}
	return &copied
}

func copyMemories(memories []npc.Memory) []npc.Memory {
	out := make([]npc.Memory, len(memories))
	copy(out, memories)
	for i := range out {
		if out[i].Location != nil {
			loc := *out[i].Location
			out[i].Location = &loc
		}
		out[i].Participants = append([]string(nil), memories[i].Participants...)
	}
	return out
}
