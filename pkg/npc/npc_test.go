package npc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonalityClamp(t *testing.T) {
	p := Personality{
		Aggression:   15,
		Honesty:      0,
		Sociability:  -3,
		Intelligence: 10,
		Courage:      1,
		WealthLevel:  11,
	}
	p.Clamp()

	assert.Equal(t, 10, p.Aggression)
	assert.Equal(t, 1, p.Honesty)
	assert.Equal(t, 1, p.Sociability)
	assert.Equal(t, 10, p.Intelligence)
	assert.Equal(t, 1, p.Courage)
	assert.Equal(t, 10, p.WealthLevel)
}

func TestNPCClamp_BoundedFields(t *testing.T) {
	n := New("Test", TypeCivilian, DefaultPersonality(), Location{})
	n.Health = 150
	n.StressLevel = -10
	n.Relationships["peer"] = 42
	n.Clamp()

	assert.Equal(t, 100, n.Health)
	assert.Equal(t, 0, n.StressLevel)
	assert.Equal(t, 10, n.Relationships["peer"])
}

func TestUpdateRequest_AppliesOnlyNonNilFields(t *testing.T) {
	n := New("Test", TypeCivilian, DefaultPersonality(), Location{AreaName: "Downtown"})
	originalMood := n.CurrentMood
	before := n.LastUpdated

	stress := 120
	req := UpdateRequest{StressLevel: &stress}
	req.Apply(n)

	assert.Equal(t, originalMood, n.CurrentMood)
	assert.Equal(t, "Downtown", n.CurrentLocation.AreaName)
	assert.Equal(t, 100, n.StressLevel, "stress should be clamped on write")
	assert.False(t, n.LastUpdated.Before(before))
}

func TestUpdateRequest_Location(t *testing.T) {
	n := New("Test", TypeCivilian, DefaultPersonality(), Location{})
	loc := Location{X: 1, Y: 2, Z: 3, AreaName: "Vinewood"}
	req := UpdateRequest{CurrentLocation: &loc}
	req.Apply(n)

	assert.Equal(t, loc, n.CurrentLocation)
}

func TestDistanceTo(t *testing.T) {
	a := Location{X: 0, Y: 0, Z: 0}
	b := Location{X: 3, Y: 4, Z: 0}
	assert.InDelta(t, 5.0, a.DistanceTo(b), 1e-9)

	c := Location{X: 1, Y: 2, Z: 2}
	assert.InDelta(t, 3.0, a.DistanceTo(c), 1e-9)
}

func TestCreateRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateRequest
		wantErr bool
	}{
		{name: "valid", req: CreateRequest{Name: "Bob", Type: TypeCivilian}, wantErr: false},
		{name: "missing name", req: CreateRequest{Type: TypeCivilian}, wantErr: true},
		{name: "unknown type", req: CreateRequest{Name: "Bob", Type: Type("alien")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewMemory_ClampsImportance(t *testing.T) {
	m := NewMemory("test", "something happened", 99)
	require.NotEmpty(t, m.ID)
	assert.Equal(t, 10, m.Importance)

	m = NewMemory("test", "something happened", -1)
	assert.Equal(t, 1, m.Importance)
}
