package sim

import (
	"context"
	"math/rand"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/services"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/npc"
)

// Default query radii, in world units.
const (
	DecisionRadius = 100.0
	WitnessRadius  = 200.0
)

// Manager owns NPC record lifecycle: creation with generated personality
// and schedule, and the proximity query used by the pipeline, the
// broadcaster, and the nearby endpoint.
type Manager struct {
	store services.Storage
	rng   *lockedRand
}

// NewManager creates an NPC manager. rng may be nil, in which case an
// unseeded source is used; tests pass a seeded one.
func NewManager(store services.Storage, rng *rand.Rand) *Manager {
	return &Manager{
		store: store,
		rng:   newLockedRand(rng),
	}
}

// Create builds and persists a new NPC. When the request carries no
// personality, one is rolled from the type's trait ranges; the schedule is
// always the type default.
func (m *Manager) Create(ctx context.Context, req *npc.CreateRequest) (*npc.NPC, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var personality npc.Personality
	if req.Personality != nil {
		personality = *req.Personality
	} else {
		personality = m.generatePersonality(req.Type)
	}

	n := npc.New(req.Name, req.Type, personality, req.CurrentLocation)
	n.Schedule = DefaultSchedule(req.Type)

	if err := m.store.CreateNPC(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (m *Manager) generatePersonality(t npc.Type) npc.Personality {
	p := npc.DefaultPersonality()
	switch t {
	case npc.TypeCriminal:
		p.Aggression = m.rng.between(7, 10)
		p.Honesty = m.rng.between(1, 4)
		p.Courage = m.rng.between(6, 9)
	case npc.TypePolice:
		p.Honesty = m.rng.between(7, 10)
		p.Courage = m.rng.between(8, 10)
		p.Aggression = m.rng.between(6, 8)
	case npc.TypeCivilian:
		p.Aggression = m.rng.between(3, 7)
		p.Honesty = m.rng.between(5, 8)
		p.Sociability = m.rng.between(4, 8)
	}
	return p
}

// Near returns every NPC whose location is within radius units of loc,
// boundary inclusive. A full scan with a distance filter is fine at this
// scale. The query origin is not excluded; callers filter self out.
func (m *Manager) Near(ctx context.Context, loc npc.Location, radius float64) ([]*npc.NPC, error) {
	all, err := m.store.ListNPCs(ctx)
	if err != nil {
		return nil, err
	}

	nearby := make([]*npc.NPC, 0)
	for _, n := range all {
		if loc.DistanceTo(n.CurrentLocation) <= radius {
			nearby = append(nearby, n)
		}
	}
	return nearby, nil
}
