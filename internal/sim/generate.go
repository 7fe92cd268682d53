// Package sim implements the NPC behavior core: personality and schedule
// generation, the two-tier memory lifecycle, the schedule-driven routine
// engine, the AI decision pipeline with its deterministic fallback, and
// world-event broadcasting to witnesses.
package sim

import (
	"math/rand"
	"sync"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/npc"
)

// lockedRand guards a rand.Rand for use from concurrent decisions.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newLockedRand(rng *rand.Rand) *lockedRand {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &lockedRand{rng: rng}
}

// intn returns a random int in [0,n).
func (l *lockedRand) intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Intn(n)
}

// between returns a random int in [min,max].
func (l *lockedRand) between(min, max int) int {
	return min + l.intn(max-min+1)
}

// DefaultSchedule returns the built-in daily schedule for an NPC type.
// Types without a defined routine get an empty schedule.
func DefaultSchedule(t npc.Type) []npc.ScheduleEntry {
	switch t {
	case npc.TypeCivilian:
		return []npc.ScheduleEntry{
			{Hour: 8, Activity: npc.ActivityWorking, Priority: 8},
			{Hour: 12, Activity: npc.ActivityEating, Priority: 6},
			{Hour: 14, Activity: npc.ActivityWorking, Priority: 8},
			{Hour: 18, Activity: npc.ActivityShopping, Priority: 5},
			{Hour: 20, Activity: npc.ActivitySocializing, Priority: 4},
			{Hour: 23, Activity: npc.ActivitySleeping, Priority: 9},
		}
	case npc.TypeCriminal:
		return []npc.ScheduleEntry{
			{Hour: 10, Activity: npc.ActivityWalking, Priority: 3},
			{Hour: 14, Activity: npc.ActivityCriminal, Priority: 7},
			{Hour: 22, Activity: npc.ActivityCriminal, Priority: 8},
			{Hour: 2, Activity: npc.ActivitySleeping, Priority: 6},
		}
	case npc.TypePolice:
		return []npc.ScheduleEntry{
			{Hour: 8, Activity: npc.ActivityPatrolling, Priority: 9},
			{Hour: 12, Activity: npc.ActivityEating, Priority: 5},
			{Hour: 13, Activity: npc.ActivityPatrolling, Priority: 9},
			{Hour: 20, Activity: npc.ActivityPatrolling, Priority: 8},
		}
	}
	return []npc.ScheduleEntry{}
}
