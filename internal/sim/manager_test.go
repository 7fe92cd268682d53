package sim

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/services"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/npc"
)

func TestCreate_GeneratedPersonalityRanges(t *testing.T) {
	tests := []struct {
		name  string
		typ   npc.Type
		check func(t *testing.T, p npc.Personality)
	}{
		{
			name: "criminal",
			typ:  npc.TypeCriminal,
			check: func(t *testing.T, p npc.Personality) {
				assert.GreaterOrEqual(t, p.Aggression, 7)
				assert.LessOrEqual(t, p.Aggression, 10)
				assert.GreaterOrEqual(t, p.Honesty, 1)
				assert.LessOrEqual(t, p.Honesty, 4)
				assert.GreaterOrEqual(t, p.Courage, 6)
				assert.LessOrEqual(t, p.Courage, 9)
				assert.Equal(t, 5, p.Intelligence)
			},
		},
		{
			name: "police",
			typ:  npc.TypePolice,
			check: func(t *testing.T, p npc.Personality) {
				assert.GreaterOrEqual(t, p.Honesty, 7)
				assert.LessOrEqual(t, p.Honesty, 10)
				assert.GreaterOrEqual(t, p.Courage, 8)
				assert.LessOrEqual(t, p.Courage, 10)
				assert.GreaterOrEqual(t, p.Aggression, 6)
				assert.LessOrEqual(t, p.Aggression, 8)
			},
		},
		{
			name: "civilian",
			typ:  npc.TypeCivilian,
			check: func(t *testing.T, p npc.Personality) {
				assert.GreaterOrEqual(t, p.Aggression, 3)
				assert.LessOrEqual(t, p.Aggression, 7)
				assert.GreaterOrEqual(t, p.Honesty, 5)
				assert.LessOrEqual(t, p.Honesty, 8)
				assert.GreaterOrEqual(t, p.Sociability, 4)
				assert.LessOrEqual(t, p.Sociability, 8)
			},
		},
		{
			name: "shopkeeper gets defaults",
			typ:  npc.TypeShopkeeper,
			check: func(t *testing.T, p npc.Personality) {
				assert.Equal(t, npc.DefaultPersonality(), p)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := services.NewMockStorage()
			manager := NewManager(store, rand.New(rand.NewSource(42)))

			// Generation is randomized; sample repeatedly to cover the range
			for i := 0; i < 25; i++ {
				n, err := manager.Create(context.Background(), &npc.CreateRequest{
					Name: "Test", Type: tt.typ,
				})
				require.NoError(t, err)
				tt.check(t, n.Personality)
			}
		})
	}
}

func TestCreate_SuppliedPersonalityWins(t *testing.T) {
	store := services.NewMockStorage()
	manager := NewManager(store, rand.New(rand.NewSource(1)))

	p := npc.Personality{Aggression: 2, Honesty: 9, Sociability: 3, Intelligence: 8, Courage: 1, WealthLevel: 7}
	n, err := manager.Create(context.Background(), &npc.CreateRequest{
		Name: "Custom", Type: npc.TypeCriminal, Personality: &p,
	})
	require.NoError(t, err)
	assert.Equal(t, p, n.Personality)
}

func TestCreate_TypeSchedules(t *testing.T) {
	store := services.NewMockStorage()
	manager := NewManager(store, rand.New(rand.NewSource(1)))
	ctx := context.Background()

	civilian, err := manager.Create(ctx, &npc.CreateRequest{Name: "C", Type: npc.TypeCivilian})
	require.NoError(t, err)
	assert.Len(t, civilian.Schedule, 6)
	assert.Equal(t, npc.ActivityWorking, civilian.Schedule[0].Activity)

	criminal, err := manager.Create(ctx, &npc.CreateRequest{Name: "K", Type: npc.TypeCriminal})
	require.NoError(t, err)
	assert.Len(t, criminal.Schedule, 4)

	police, err := manager.Create(ctx, &npc.CreateRequest{Name: "P", Type: npc.TypePolice})
	require.NoError(t, err)
	assert.Len(t, police.Schedule, 4)
	assert.Equal(t, npc.ActivityPatrolling, police.Schedule[0].Activity)

	shopkeeper, err := manager.Create(ctx, &npc.CreateRequest{Name: "S", Type: npc.TypeShopkeeper})
	require.NoError(t, err)
	assert.Empty(t, shopkeeper.Schedule)
}

func TestCreate_InvalidRequest(t *testing.T) {
	store := services.NewMockStorage()
	manager := NewManager(store, nil)

	_, err := manager.Create(context.Background(), &npc.CreateRequest{Type: npc.TypeCivilian})
	assert.Error(t, err)
}

func TestNear_BoundaryInclusive(t *testing.T) {
	store := services.NewMockStorage()
	manager := NewManager(store, nil)
	ctx := context.Background()

	origin := npc.Location{X: 0, Y: 0, Z: 0}
	inside := seedNPC(t, store, "Inside", npc.TypeCivilian, npc.Location{X: 30, Y: 40, Z: 0})       // distance 50
	boundary := seedNPC(t, store, "Boundary", npc.TypeCivilian, npc.Location{X: 100, Y: 0, Z: 0})   // distance exactly 100
	outside := seedNPC(t, store, "Outside", npc.TypeCivilian, npc.Location{X: 100.1, Y: 0, Z: 0})   // just past
	atOrigin := seedNPC(t, store, "AtOrigin", npc.TypeCivilian, npc.Location{X: 0, Y: 0, Z: 0})     // distance 0

	near, err := manager.Near(ctx, origin, 100)
	require.NoError(t, err)

	ids := make(map[string]bool, len(near))
	for _, n := range near {
		ids[n.ID] = true
	}

	assert.True(t, ids[inside.ID])
	assert.True(t, ids[boundary.ID], "NPC exactly at radius must be included")
	assert.True(t, ids[atOrigin.ID], "NPC at the query origin is not excluded")
	assert.False(t, ids[outside.ID])
	assert.Len(t, near, 3)
}

func TestNear_UsesAllThreeAxes(t *testing.T) {
	store := services.NewMockStorage()
	manager := NewManager(store, nil)
	ctx := context.Background()

	// Horizontal distance is 0 but vertical puts it out of range
	seedNPC(t, store, "Above", npc.TypeCivilian, npc.Location{X: 0, Y: 0, Z: 150})

	near, err := manager.Near(ctx, npc.Location{}, 100)
	require.NoError(t, err)
	assert.Empty(t, near)
}

func TestGetNPC_Idempotent(t *testing.T) {
	store := services.NewMockStorage()
	ctx := context.Background()

	n := seedNPC(t, store, "Bob", npc.TypeCivilian, npc.Location{X: 1, Y: 2, Z: 3})

	first, err := store.GetNPC(ctx, n.ID)
	require.NoError(t, err)
	second, err := store.GetNPC(ctx, n.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// Mutating a returned copy must not affect the stored record
	first.Health = 1
	third, err := store.GetNPC(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, third.Health)
}
