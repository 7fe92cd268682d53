package sim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/services"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/npc"
)

// Routine applies hour-matched schedule entries to NPCs and derives the
// resulting mood.
type Routine struct {
	store    services.Storage
	memories *Memories
	logger   *slog.Logger
}

// NewRoutine creates a routine engine.
func NewRoutine(store services.Storage, memories *Memories, logger *slog.Logger) *Routine {
	return &Routine{
		store:    store,
		memories: memories,
		logger:   logger,
	}
}

// Tick looks up the NPC's schedule entry for the given hour and, when one
// matches, applies its activity, derives a new mood, and records a
// low-importance routine memory. If no entry matches the hour nothing
// changes. Schedules are expected to be hour-unique; on a duplicate hour
// the first entry in schedule order wins.
func (r *Routine) Tick(ctx context.Context, npcID string, hour int) error {
	n, err := r.store.GetNPC(ctx, npcID)
	if err != nil {
		return err
	}

	var entry *npc.ScheduleEntry
	for i := range n.Schedule {
		if n.Schedule[i].Hour == hour {
			entry = &n.Schedule[i]
			break
		}
	}
	if entry == nil {
		return nil
	}

	n.CurrentActivity = entry.Activity
	n.CurrentMood = MoodFor(entry.Activity, n.Personality, n.StressLevel)
	n.Touch()

	if err := r.store.SaveNPC(ctx, n); err != nil {
		return fmt.Errorf("failed to apply routine for npc %s: %w", npcID, err)
	}

	memory := npc.NewMemory("routine", fmt.Sprintf("Activity change: %s", entry.Activity), 3)
	loc := n.CurrentLocation
	memory.Location = &loc
	return r.memories.Remember(ctx, npcID, memory)
}

// TickResult reports the outcome of one NPC's routine tick in a bulk run.
type TickResult struct {
	NPCID     string `json:"npc_id"`
	Name      string `json:"name"`
	Processed bool   `json:"processed"`
}

// TickAll runs the routine tick for every NPC at the given hour. A failed
// tick is logged and reported, not fatal to the rest of the batch.
func (r *Routine) TickAll(ctx context.Context, hour int) ([]TickResult, error) {
	npcs, err := r.store.ListNPCs(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]TickResult, 0, len(npcs))
	for _, n := range npcs {
		result := TickResult{NPCID: n.ID, Name: n.Name, Processed: true}
		if err := r.Tick(ctx, n.ID, hour); err != nil {
			r.logger.Error("Routine tick failed", "npc_id", n.ID, "error", err)
			result.Processed = false
		}
		results = append(results, result)
	}
	return results, nil
}

// MoodFor derives an NPC's mood from activity, personality, and stress.
// Evaluated in precedence order; high stress overrides everything.
func MoodFor(activity npc.Activity, personality npc.Personality, stress int) npc.Mood {
	if stress > 70 {
		return npc.MoodStressed
	}

	switch {
	case activity == npc.ActivitySocializing && personality.Sociability > 7:
		return npc.MoodHappy
	case activity == npc.ActivityCriminal && personality.Aggression > 7:
		return npc.MoodExcited
	case activity == npc.ActivityWorking:
		return npc.MoodNeutral
	default:
		return npc.MoodNeutral
	}
}
