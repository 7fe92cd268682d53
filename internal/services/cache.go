package services

import (
	"context"
	"time"
)

// Cache is an optional key-value cache used to keep cheap aggregate reads
// (stats, recent events) off the primary store. The API runs fine without
// one configured.
type Cache interface {
	// Ping tests the cache connection
	Ping(ctx context.Context) error

	// Set stores a key-value pair with optional expiration
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Get retrieves a value by key. Returns ErrNotFound on a miss.
	Get(ctx context.Context, key string) (string, error)

	// Del deletes one or more keys
	Del(ctx context.Context, keys ...string) error

	// Close closes the cache connection
	Close() error

	// WaitForConnection waits for cache to be available with retries
	WaitForConnection(ctx context.Context) error
}
