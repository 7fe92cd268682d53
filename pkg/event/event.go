// Package event defines world events that NPCs can witness.
package event

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/npc"
)

// GameEvent is something that happened in the world: a crime, an accident,
// a police chase. Events are persisted independently of NPCs and drive
// witness-memory injection for NPCs near the scene.
type GameEvent struct {
	ID           string       `json:"id" bson:"id"`
	Timestamp    time.Time    `json:"timestamp" bson:"timestamp"`
	EventType    string       `json:"event_type" bson:"event_type"`
	Location     npc.Location `json:"location" bson:"location"`
	Participants []string     `json:"participants" bson:"participants"`
	Description  string       `json:"description" bson:"description"`
	Severity     int          `json:"severity" bson:"severity"`
}

// New builds a GameEvent with a fresh id and timestamp. Severity is clamped
// to [1,10].
func New(eventType, description string, location npc.Location, participants []string, severity int) *GameEvent {
	if participants == nil {
		participants = []string{}
	}
	return &GameEvent{
		ID:           uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		EventType:    eventType,
		Location:     location,
		Participants: participants,
		Description:  description,
		Severity:     npc.ClampInt(severity, 1, 10),
	}
}

// CreateRequest is the payload for publishing a world event.
type CreateRequest struct {
	EventType    string       `json:"event_type"`
	Location     npc.Location `json:"location"`
	Participants []string     `json:"participants,omitempty"`
	Description  string       `json:"description"`
	Severity     int          `json:"severity"`
}

// Validate checks required fields on an event create request.
func (r *CreateRequest) Validate() error {
	if r.EventType == "" {
		return fmt.Errorf("event_type is required")
	}
	if r.Description == "" {
		return fmt.Errorf("description is required")
	}
	return nil
}
