package handlers

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/services"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/sim"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/event"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/npc"
)

func newEventsFixture() (*services.MockStorage, *EventsHandler) {
	logger := testLogger()
	store := services.NewMockStorage()
	manager := sim.NewManager(store, rand.New(rand.NewSource(11)))
	memories := sim.NewMemories(store, logger)
	broadcaster := sim.NewBroadcaster(store, manager, memories, logger)
	return store, NewEventsHandler(store, broadcaster, logger)
}

func TestEventsHandler_Publish(t *testing.T) {
	store, handler := newEventsFixture()

	witness := npc.New("Bystander", npc.TypeCivilian, npc.DefaultPersonality(), npc.Location{X: 150})
	require.NoError(t, store.CreateNPC(context.Background(), witness))
	far := npc.New("Faraway", npc.TypeCivilian, npc.DefaultPersonality(), npc.Location{X: 5000})
	require.NoError(t, store.CreateNPC(context.Background(), far))

	w := doJSON(t, handler, http.MethodPost, "/api/events", event.CreateRequest{
		EventType:   "robbery",
		Description: "Liquor store robbed at gunpoint",
		Location:    npc.Location{AreaName: "Strawberry"},
		Severity:    7,
	})

	require.Equal(t, http.StatusOK, w.Code)
	var result sim.PublishResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.NotEmpty(t, result.EventID)
	assert.Equal(t, 1, result.NotifiedCount)
	assert.Empty(t, result.MemoryErrors)

	got, err := store.GetNPC(context.Background(), witness.ID)
	require.NoError(t, err)
	require.Len(t, got.ShortTermMemory, 1)
	assert.Equal(t, "Witnessed: Liquor store robbed at gunpoint", got.ShortTermMemory[0].Description)
	assert.Equal(t, 7, got.ShortTermMemory[0].Importance)
}

func TestEventsHandler_PublishDefaultSeverity(t *testing.T) {
	store, handler := newEventsFixture()

	w := doJSON(t, handler, http.MethodPost, "/api/events", event.CreateRequest{
		EventType:   "traffic_accident",
		Description: "Fender bender on the highway",
	})

	require.Equal(t, http.StatusOK, w.Code)

	events, err := store.ListRecentEvents(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 5, events[0].Severity)
}

func TestEventsHandler_PublishValidation(t *testing.T) {
	_, handler := newEventsFixture()

	tests := []struct {
		name string
		req  event.CreateRequest
	}{
		{"missing type", event.CreateRequest{Description: "something happened"}},
		{"missing description", event.CreateRequest{EventType: "robbery"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, handler, http.MethodPost, "/api/events", tt.req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestEventsHandler_List(t *testing.T) {
	store, handler := newEventsFixture()

	base := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		e := event.New("robbery", "heist", npc.Location{}, nil, 5)
		e.Timestamp = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, store.CreateEvent(context.Background(), e))
	}

	w := doJSON(t, handler, http.MethodGet, "/api/events?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var events []event.GameEvent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	require.Len(t, events, 2)
	assert.True(t, events[0].Timestamp.After(events[1].Timestamp), "newest first")
}

func TestEventsHandler_ListBadLimit(t *testing.T) {
	_, handler := newEventsFixture()

	for _, raw := range []string{"0", "-1", "abc"} {
		w := doJSON(t, handler, http.MethodGet, "/api/events?limit="+raw, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "limit=%s", raw)
	}
}
