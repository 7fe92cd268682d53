package npc

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Type categorizes an NPC's role in the city. Behavior differences between
// types (personality ranges, schedules, fallback actions) are table lookups
// keyed by Type, not subtypes.
type Type string

const (
	TypeCivilian   Type = "civilian"
	TypeCriminal   Type = "criminal"
	TypePolice     Type = "police"
	TypeShopkeeper Type = "shopkeeper"
	TypeWorker     Type = "worker"
)

// Types lists every known NPC type, in a stable order.
var Types = []Type{TypeCivilian, TypeCriminal, TypePolice, TypeShopkeeper, TypeWorker}

// Valid reports whether t is a known NPC type.
func (t Type) Valid() bool {
	switch t {
	case TypeCivilian, TypeCriminal, TypePolice, TypeShopkeeper, TypeWorker:
		return true
	}
	return false
}

// Mood is an NPC's current emotional state.
type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodNeutral  Mood = "neutral"
	MoodAngry    Mood = "angry"
	MoodScared   Mood = "scared"
	MoodExcited  Mood = "excited"
	MoodStressed Mood = "stressed"
)

// Activity is what an NPC is currently doing.
type Activity string

const (
	ActivityWorking     Activity = "working"
	ActivityShopping    Activity = "shopping"
	ActivityDriving     Activity = "driving"
	ActivityWalking     Activity = "walking"
	ActivitySocializing Activity = "socializing"
	ActivityCriminal    Activity = "criminal_activity"
	ActivityPatrolling  Activity = "patrolling"
	ActivitySleeping    Activity = "sleeping"
	ActivityEating      Activity = "eating"
)

// Location is a point in the game world plus the named area it falls in.
type Location struct {
	X        float64 `json:"x" bson:"x"`
	Y        float64 `json:"y" bson:"y"`
	Z        float64 `json:"z" bson:"z"`
	AreaName string  `json:"area_name" bson:"area_name"`
}

// DistanceTo returns the 3D Euclidean distance between two locations.
func (l Location) DistanceTo(other Location) float64 {
	dx := l.X - other.X
	dy := l.Y - other.Y
	dz := l.Z - other.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Personality holds the six behavioral traits that weight an NPC's decisions.
// Every trait is clamped to [1,10] at write time.
type Personality struct {
	Aggression   int `json:"aggression" bson:"aggression"`
	Honesty      int `json:"honesty" bson:"honesty"`
	Sociability  int `json:"sociability" bson:"sociability"`
	Intelligence int `json:"intelligence" bson:"intelligence"`
	Courage      int `json:"courage" bson:"courage"`
	WealthLevel  int `json:"wealth_level" bson:"wealth_level"`
}

// DefaultPersonality returns a personality with every trait at the midpoint.
func DefaultPersonality() Personality {
	return Personality{
		Aggression:   5,
		Honesty:      5,
		Sociability:  5,
		Intelligence: 5,
		Courage:      5,
		WealthLevel:  5,
	}
}

// Clamp forces every trait into [1,10].
func (p *Personality) Clamp() {
	p.Aggression = ClampInt(p.Aggression, 1, 10)
	p.Honesty = ClampInt(p.Honesty, 1, 10)
	p.Sociability = ClampInt(p.Sociability, 1, 10)
	p.Intelligence = ClampInt(p.Intelligence, 1, 10)
	p.Courage = ClampInt(p.Courage, 1, 10)
	p.WealthLevel = ClampInt(p.WealthLevel, 1, 10)
}

// ScheduleEntry maps an hour of the day to a planned activity.
type ScheduleEntry struct {
	Hour               int      `json:"hour" bson:"hour"`
	Activity           Activity `json:"activity" bson:"activity"`
	LocationPreference string   `json:"location_preference,omitempty" bson:"location_preference,omitempty"`
	Priority           int      `json:"priority" bson:"priority"`
}

// Memory is a single remembered event. Memories are immutable once created;
// they only move between tiers or get evicted.
type Memory struct {
	ID           string    `json:"id" bson:"id"`
	Timestamp    time.Time `json:"timestamp" bson:"timestamp"`
	EventType    string    `json:"event_type" bson:"event_type"`
	Description  string    `json:"description" bson:"description"`
	Participants []string  `json:"participants" bson:"participants"`
	Location     *Location `json:"location,omitempty" bson:"location,omitempty"`
	Importance   int       `json:"importance" bson:"importance"`
}

// NewMemory builds a memory with a fresh id and timestamp. Importance is
// clamped to [1,10].
func NewMemory(eventType, description string, importance int) Memory {
	return Memory{
		ID:           uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		EventType:    eventType,
		Description:  description,
		Participants: []string{},
		Importance:   ClampInt(importance, 1, 10),
	}
}

// Memory tier bounds. Short-term overflow may promote into long-term;
// long-term overflow is destroyed.
const (
	ShortTermLimit      = 20
	LongTermLimit       = 100
	PromotionImportance = 7
)

// NPC is a simulated character with persistent state.
type NPC struct {
	ID          string      `json:"id" bson:"id"`
	Name        string      `json:"name" bson:"name"`
	Type        Type        `json:"npc_type" bson:"npc_type"`
	Personality Personality `json:"personality" bson:"personality"`

	CurrentLocation Location `json:"current_location" bson:"current_location"`
	CurrentMood     Mood     `json:"current_mood" bson:"current_mood"`
	CurrentActivity Activity `json:"current_activity" bson:"current_activity"`

	Schedule []ScheduleEntry `json:"schedule" bson:"schedule"`

	ShortTermMemory []Memory `json:"short_term_memory" bson:"short_term_memory"`
	LongTermMemory  []Memory `json:"long_term_memory" bson:"long_term_memory"`

	// Relationships maps a peer NPC id to an affinity score in [-10,10].
	Relationships map[string]int `json:"relationships" bson:"relationships"`

	Health           int       `json:"health" bson:"health"`
	StressLevel      int       `json:"stress_level" bson:"stress_level"`
	LastDecisionTime time.Time `json:"last_decision_time" bson:"last_decision_time"`

	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	LastUpdated time.Time `json:"last_updated" bson:"last_updated"`
}

// New builds an NPC with defaults applied. Callers normally go through the
// manager, which fills in generated personality and schedule.
func New(name string, npcType Type, personality Personality, location Location) *NPC {
	now := time.Now().UTC()
	personality.Clamp()
	return &NPC{
		ID:               uuid.NewString(),
		Name:             name,
		Type:             npcType,
		Personality:      personality,
		CurrentLocation:  location,
		CurrentMood:      MoodNeutral,
		CurrentActivity:  ActivityWalking,
		Schedule:         []ScheduleEntry{},
		ShortTermMemory:  []Memory{},
		LongTermMemory:   []Memory{},
		Relationships:    map[string]int{},
		Health:           100,
		StressLevel:      0,
		LastDecisionTime: now,
		CreatedAt:        now,
		LastUpdated:      now,
	}
}

// Clamp forces every bounded numeric field into its declared range.
func (n *NPC) Clamp() {
	n.Personality.Clamp()
	n.Health = ClampInt(n.Health, 0, 100)
	n.StressLevel = ClampInt(n.StressLevel, 0, 100)
	for id, score := range n.Relationships {
		n.Relationships[id] = ClampInt(score, -10, 10)
	}
}

// Touch refreshes the last-updated timestamp.
func (n *NPC) Touch() {
	n.LastUpdated = time.Now().UTC()
}

// CreateRequest is the payload for creating an NPC. Personality is optional;
// when nil one is generated from the NPC type.
type CreateRequest struct {
	Name            string       `json:"name"`
	Type            Type         `json:"npc_type"`
	Personality     *Personality `json:"personality,omitempty"`
	CurrentLocation Location     `json:"current_location"`
}

// Validate checks required fields on a create request.
func (r *CreateRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !r.Type.Valid() {
		return fmt.Errorf("unknown npc_type %q", r.Type)
	}
	return nil
}

// UpdateRequest is a partial NPC update. Only non-nil fields are applied.
type UpdateRequest struct {
	CurrentLocation *Location `json:"current_location,omitempty"`
	CurrentMood     *Mood     `json:"current_mood,omitempty"`
	CurrentActivity *Activity `json:"current_activity,omitempty"`
	Health          *int      `json:"health,omitempty"`
	StressLevel     *int      `json:"stress_level,omitempty"`
}

// Apply merges the non-nil fields of the update into the NPC, clamps bounded
// fields, and refreshes the last-updated timestamp.
func (r *UpdateRequest) Apply(n *NPC) {
	if r.CurrentLocation != nil {
		n.CurrentLocation = *r.CurrentLocation
	}
	if r.CurrentMood != nil {
		n.CurrentMood = *r.CurrentMood
	}
	if r.CurrentActivity != nil {
		n.CurrentActivity = *r.CurrentActivity
	}
	if r.Health != nil {
		n.Health = *r.Health
	}
	if r.StressLevel != nil {
		n.StressLevel = *r.StressLevel
	}
	n.Clamp()
	n.Touch()
}

// ClampInt bounds v to [min,max].
func ClampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
