package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/NANODLAPISCINE/Gta-5-los-santos-became-alive/internal/services"
)

// RedisCache implements the Cache interface using Redis. It fronts the
// aggregate read paths (stats, recent events) so the game mod can poll
// them without hammering MongoDB.
type RedisCache struct {
	client *redis.Client
	logger *slog.Logger
}

// Ensure RedisCache implements Cache interface
var _ services.Cache = (*RedisCache)(nil)

// NewRedisCache creates a new Redis cache instance
func NewRedisCache(redisURL string, logger *slog.Logger) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	return &RedisCache{
		client: rdb,
		logger: logger,
	}
}

func (r *RedisCache) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	if err := r.client.Set(ctx, key, value, expiration).Err(); err != nil {
		r.logger.Error("Failed to set cache key", "key", key, "error", err)
		return fmt.Errorf("failed to set cache key: %w", err)
	}
	return nil
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", services.ErrNotFound
		}
		r.logger.Error("Failed to get cache key", "key", key, "error", err)
		return "", fmt.Errorf("failed to get cache key: %w", err)
	}
	return val, nil
}

func (r *RedisCache) Del(ctx context.Context, keys ...string) error {
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Error("Failed to delete cache keys", "keys", keys, "error", err)
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	return nil
}

func (r *RedisCache) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisCache) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}
