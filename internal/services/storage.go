package services

import (
	"context"
	"errors"
	"time"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/event"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/npc"
)

// ErrNotFound is returned when a referenced NPC or event does not exist.
// It propagates to the API boundary as a 404.
var ErrNotFound = errors.New("not found")

// HealthChecker defines basic health check capabilities
type HealthChecker interface {
	// Ping tests the service connection
	Ping(ctx context.Context) error
}

// Closer defines cleanup capabilities
type Closer interface {
	// Close closes the service connection
	Close() error
}

// Storage is the persistence collaborator for NPCs and world events. The
// core depends on nothing beyond per-entity CRUD, simple equality/range
// filtering, and sort+limit.
type Storage interface {
	HealthChecker
	Closer

	// CreateNPC persists a new NPC record.
	CreateNPC(ctx context.Context, n *npc.NPC) error

	// GetNPC retrieves an NPC by id. Returns ErrNotFound when absent.
	GetNPC(ctx context.Context, id string) (*npc.NPC, error)

	// ListNPCs returns all NPCs.
	ListNPCs(ctx context.Context) ([]*npc.NPC, error)

	// SaveNPC overwrites an existing NPC record in full.
	// Returns ErrNotFound when absent.
	SaveNPC(ctx context.Context, n *npc.NPC) error

	// DeleteNPC removes an NPC by id. Returns ErrNotFound when absent.
	DeleteNPC(ctx context.Context, id string) error

	// CountNPCs returns the total number of NPCs.
	CountNPCs(ctx context.Context) (int64, error)

	// CountNPCsByType returns the number of NPCs of the given type.
	CountNPCsByType(ctx context.Context, t npc.Type) (int64, error)

	// CreateEvent persists a world event.
	CreateEvent(ctx context.Context, e *event.GameEvent) error

	// ListRecentEvents returns up to limit events, most recent first.
	ListRecentEvents(ctx context.Context, limit int64) ([]*event.GameEvent, error)

	// CountEvents returns the total number of events.
	CountEvents(ctx context.Context) (int64, error)

	// CountEventsSince returns the number of events at or after t.
	CountEventsSince(ctx context.Context, t time.Time) (int64, error)
}
