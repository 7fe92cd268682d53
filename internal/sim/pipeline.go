package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/services"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/decision"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/npc"
)

// fallbackReasoning marks a decision produced without the reasoning model.
const fallbackReasoning = "Fallback decision - AI unavailable"

// Pipeline runs NPC decisions: assemble context, consult the reasoning
// model, validate its reply, and degrade to the deterministic-shape
// fallback policy when the model fails. A decision request always yields a
// well-formed decision as long as the NPC exists and storage is reachable.
type Pipeline struct {
	store    services.Storage
	oracle   services.Oracle
	manager  *Manager
	memories *Memories
	rng      *lockedRand
	now      func() time.Time
	logger   *slog.Logger
}

// NewPipeline creates a decision pipeline. rng seeds the fallback policy
// and may be nil; now may be nil to use wall-clock time.
func NewPipeline(store services.Storage, oracle services.Oracle, manager *Manager, memories *Memories, rng *rand.Rand, now func() time.Time, logger *slog.Logger) *Pipeline {
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		store:    store,
		oracle:   oracle,
		manager:  manager,
		memories: memories,
		rng:      newLockedRand(rng),
		now:      now,
		logger:   logger,
	}
}

// Decide runs one decision for the NPC. Oracle and parse failures are
// absorbed by the fallback policy; only ErrNotFound and persistence
// failures propagate.
func (p *Pipeline) Decide(ctx context.Context, npcID string, decisionContext map[string]interface{}) (*decision.Outcome, error) {
	n, err := p.store.GetNPC(ctx, npcID)
	if err != nil {
		return nil, err
	}

	if decisionContext == nil {
		decisionContext = map[string]interface{}{}
	}

	nearby, err := p.manager.Near(ctx, n.CurrentLocation, DecisionRadius)
	if err != nil {
		return nil, err
	}
	nearbyIDs := make([]string, 0, len(nearby))
	for _, other := range nearby {
		if other.ID != npcID {
			nearbyIDs = append(nearbyIDs, other.ID)
		}
	}

	weather := "sunny"
	if w, ok := decisionContext["weather"].(string); ok && w != "" {
		weather = w
	}

	req := &decision.Request{
		NPCID:      npcID,
		Context:    decisionContext,
		NearbyNPCs: nearbyIDs,
		TimeOfDay:  p.now().Hour(),
		Weather:    weather,
	}

	resp := p.consult(ctx, n, req)

	memory := npc.NewMemory("decision", fmt.Sprintf("Decision: %s - %s", resp.Action, resp.Reasoning), 5)
	loc := n.CurrentLocation
	memory.Location = &loc
	if err := p.memories.Remember(ctx, npcID, memory); err != nil {
		return nil, err
	}

	if resp.TargetLocation != nil {
		update := npc.UpdateRequest{CurrentLocation: resp.TargetLocation}
		current, err := p.store.GetNPC(ctx, npcID)
		if err != nil {
			return nil, err
		}
		update.Apply(current)
		current.LastDecisionTime = p.now().UTC()
		if err := p.store.SaveNPC(ctx, current); err != nil {
			return nil, err
		}
	}

	return &decision.Outcome{
		NPCID:     npcID,
		Decision:  *resp,
		Timestamp: p.now().UTC(),
	}, nil
}

// consult asks the reasoning model and falls back on any failure. Errors
// from the model are logged, never returned.
func (p *Pipeline) consult(ctx context.Context, n *npc.NPC, req *decision.Request) *decision.Response {
	raw, err := p.oracle.Complete(ctx, systemPrompt, buildPrompt(n, req))
	if err != nil {
		p.logger.Warn("Oracle call failed, using fallback", "npc_id", n.ID, "error", err)
		return p.fallback(n)
	}

	resp, err := decision.ParseResponse(raw)
	if err != nil {
		p.logger.Warn("Unparsable oracle reply, using fallback", "npc_id", n.ID, "error", err)
		return p.fallback(n)
	}
	return resp
}

// fallback picks uniformly from the type-conditioned action set. The shape
// matches a real model decision so downstream consumers need no
// special-casing.
func (p *Pipeline) fallback(n *npc.NPC) *decision.Response {
	actions := []string{"walk", "drive", "socialize"}
	switch n.Type {
	case npc.TypeCriminal:
		actions = append(actions, "commit_crime", "hide")
	case npc.TypePolice:
		actions = append(actions, "patrol")
	}

	return &decision.Response{
		Action:    actions[p.rng.intn(len(actions))],
		Reasoning: fallbackReasoning,
	}
}

// BulkItem pairs an NPC id with a decision context for bulk processing.
type BulkItem struct {
	NPCID   string                 `json:"npc_id"`
	Context map[string]interface{} `json:"context"`
}

// BulkResult is the outcome of one item in a bulk decision run. Err is set
// when that NPC's decision failed; failures do not abort the batch.
type BulkResult struct {
	NPCID   string            `json:"npc_id"`
	Outcome *decision.Outcome `json:"outcome,omitempty"`
	Err     string            `json:"error,omitempty"`
}

// DecideBulk runs decisions for many NPCs concurrently. Results come back
// in submission order regardless of completion order.
func (p *Pipeline) DecideBulk(ctx context.Context, items []BulkItem) []BulkResult {
	results := make([]BulkResult, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item BulkItem) {
			defer wg.Done()
			outcome, err := p.Decide(ctx, item.NPCID, item.Context)
			results[i] = BulkResult{NPCID: item.NPCID, Outcome: outcome}
			if err != nil {
				results[i].Err = err.Error()
			}
		}(i, item)
	}
	wg.Wait()

	return results
}
