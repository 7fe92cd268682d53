package sim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/services"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/event"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/npc"
)

// witnessImportanceCap bounds how important a witnessed event can feel;
// even a severity-10 event does not produce a maximum-importance memory.
const witnessImportanceCap = 8

// Broadcaster publishes world events and injects witness memories into
// every NPC near the scene.
type Broadcaster struct {
	store    services.Storage
	manager  *Manager
	memories *Memories
	logger   *slog.Logger
}

// NewBroadcaster creates an event broadcaster.
func NewBroadcaster(store services.Storage, manager *Manager, memories *Memories, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		store:    store,
		manager:  manager,
		memories: memories,
		logger:   logger,
	}
}

// PublishResult reports who was notified of an event. NotifiedCount is the
// number of NPCs in range, independent of per-NPC write failures, which
// are collected in MemoryErrors.
type PublishResult struct {
	EventID       string   `json:"event_id"`
	NotifiedCount int      `json:"notified_npcs"`
	MemoryErrors  []string `json:"memory_errors,omitempty"`
}

// Publish persists the event, then records a witness memory for every NPC
// within the witness radius of its location. Witness memory importance is
// the event severity capped at the witness cap.
func (b *Broadcaster) Publish(ctx context.Context, e *event.GameEvent) (*PublishResult, error) {
	if err := b.store.CreateEvent(ctx, e); err != nil {
		return nil, err
	}

	witnesses, err := b.manager.Near(ctx, e.Location, WitnessRadius)
	if err != nil {
		return nil, err
	}

	result := &PublishResult{
		EventID:       e.ID,
		NotifiedCount: len(witnesses),
	}

	importance := e.Severity
	if importance > witnessImportanceCap {
		importance = witnessImportanceCap
	}

	for _, w := range witnesses {
		memory := npc.NewMemory("witnessed_event", fmt.Sprintf("Witnessed: %s", e.Description), importance)
		loc := e.Location
		memory.Location = &loc
		if err := b.memories.Remember(ctx, w.ID, memory); err != nil {
			b.logger.Error("Failed to record witness memory", "npc_id", w.ID, "event_id", e.ID, "error", err)
			result.MemoryErrors = append(result.MemoryErrors, fmt.Sprintf("npc %s: %v", w.ID, err))
		}
	}

	return result, nil
}
