package storage

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/services"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewRedisCache(mr.Addr(), logger), mr
}

func TestRedisCache_SetAndGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	err := cache.Set(ctx, "stats", `{"total_npcs":3}`, time.Minute)
	require.NoError(t, err)

	val, err := cache.Get(ctx, "stats")
	require.NoError(t, err)
	assert.Equal(t, `{"total_npcs":3}`, val)
}

func TestRedisCache_GetMissing(t *testing.T) {
	cache, _ := newTestCache(t)

	_, err := cache.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, services.ErrNotFound))
}

func TestRedisCache_Del(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "v", 0))
	require.NoError(t, cache.Del(ctx, "k"))

	_, err := cache.Get(ctx, "k")
	assert.True(t, errors.Is(err, services.ErrNotFound))
}

func TestRedisCache_Expiration(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "v", 30*time.Second))
	mr.FastForward(time.Minute)

	_, err := cache.Get(ctx, "k")
	assert.True(t, errors.Is(err, services.ErrNotFound))
}

func TestRedisCache_Ping(t *testing.T) {
	cache, mr := newTestCache(t)
	require.NoError(t, cache.Ping(context.Background()))

	mr.Close()
	assert.Error(t, cache.Ping(context.Background()))
}
