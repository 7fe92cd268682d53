package sim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/services"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/npc"
)

// Memories enforces the two-tier memory lifecycle on NPC memory streams.
// Short-term is a bounded FIFO; entries evicted off its tail are promoted
// to long-term only when important enough. Long-term eviction is
// unconditional FIFO regardless of importance.
type Memories struct {
	store  services.Storage
	logger *slog.Logger
}

// NewMemories creates a memory manager over the given store.
func NewMemories(store services.Storage, logger *slog.Logger) *Memories {
	return &Memories{
		store:  store,
		logger: logger,
	}
}

// Remember appends a memory to the NPC's short-term stream, applies
// eviction and promotion, and persists the result. The NPC's last-updated
// timestamp is refreshed.
func (m *Memories) Remember(ctx context.Context, npcID string, memory npc.Memory) error {
	n, err := m.store.GetNPC(ctx, npcID)
	if err != nil {
		return err
	}

	Apply(n, memory)
	n.Touch()

	if err := m.store.SaveNPC(ctx, n); err != nil {
		return fmt.Errorf("failed to persist memory for npc %s: %w", npcID, err)
	}
	return nil
}

// Apply runs the tier bookkeeping on an in-memory NPC without persisting:
// append to short-term, evict the oldest short-term entry past the cap
// (promoting it iff importance >= the promotion threshold, original
// timestamp preserved), then evict the oldest long-term entry past its cap.
func Apply(n *npc.NPC, memory npc.Memory) {
	n.ShortTermMemory = append(n.ShortTermMemory, memory)

	if len(n.ShortTermMemory) > npc.ShortTermLimit {
		evicted := n.ShortTermMemory[0]
		n.ShortTermMemory = n.ShortTermMemory[1:]
		if evicted.Importance >= npc.PromotionImportance {
			n.LongTermMemory = append(n.LongTermMemory, evicted)
		}
	}

	if len(n.LongTermMemory) > npc.LongTermLimit {
		n.LongTermMemory = n.LongTermMemory[1:]
	}
}
