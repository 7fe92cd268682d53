package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/services"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/event"
	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/pkg/npc"
)

var statsNow = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func seedStatsData(t *testing.T, store *services.MockStorage) {
	t.Helper()
	ctx := context.Background()

	for _, typ := range []npc.Type{npc.TypeCivilian, npc.TypeCivilian, npc.TypePolice} {
		n := npc.New("N", typ, npc.DefaultPersonality(), npc.Location{})
		require.NoError(t, store.CreateNPC(ctx, n))
	}

	today := event.New("robbery", "today", npc.Location{}, nil, 5)
	today.Timestamp = statsNow.Add(-time.Hour)
	require.NoError(t, store.CreateEvent(ctx, today))

	yesterday := event.New("robbery", "yesterday", npc.Location{}, nil, 5)
	yesterday.Timestamp = statsNow.Add(-20 * time.Hour)
	require.NoError(t, store.CreateEvent(ctx, yesterday))
}

func TestStatsHandler_Collect(t *testing.T) {
	store := services.NewMockStorage()
	seedStatsData(t, store)
	handler := NewStatsHandler(store, nil, func() time.Time { return statsNow }, testLogger())

	w := doJSON(t, handler, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(3), stats.TotalNPCs)
	assert.Equal(t, int64(2), stats.NPCTypes["civilian"])
	assert.Equal(t, int64(1), stats.NPCTypes["police"])
	assert.Equal(t, int64(0), stats.NPCTypes["criminal"])
	assert.Equal(t, int64(2), stats.TotalEvents)
	assert.Equal(t, int64(1), stats.RecentEvents24h, "only events since midnight UTC count")
	assert.Equal(t, "operational", stats.SystemStatus)
	assert.Equal(t, statsNow, stats.Timestamp)
}

func TestStatsHandler_CachePopulatedOnMiss(t *testing.T) {
	store := services.NewMockStorage()
	seedStatsData(t, store)
	cache := services.NewMockCache()
	handler := NewStatsHandler(store, cache, func() time.Time { return statsNow }, testLogger())

	w := doJSON(t, handler, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, cache.SetCalls, 1)
	assert.Equal(t, "stats", cache.SetCalls[0].Key)
	assert.Equal(t, 15*time.Second, cache.SetCalls[0].Expiration)
}

func TestStatsHandler_CacheHitSkipsStore(t *testing.T) {
	store := services.NewMockStorage()
	store.FailWith = assert.AnError
	cache := services.NewMockCache()
	require.NoError(t, cache.Set(context.Background(), "stats", `{"system_status":"operational"}`, time.Minute))
	cache.SetCalls = nil
	handler := NewStatsHandler(store, cache, func() time.Time { return statsNow }, testLogger())

	w := doJSON(t, handler, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, "operational", stats.SystemStatus)
	assert.Empty(t, cache.SetCalls, "cached response is served as-is")
}

func TestStatsHandler_StorageError(t *testing.T) {
	store := services.NewMockStorage()
	store.FailWith = assert.AnError
	handler := NewStatsHandler(store, nil, nil, testLogger())

	w := doJSON(t, handler, http.MethodGet, "/api/stats", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestStatsHandler_MethodNotAllowed(t *testing.T) {
	handler := NewStatsHandler(services.NewMockStorage(), nil, nil, testLogger())

	w := doJSON(t, handler, http.MethodPost, "/api/stats", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
