package port

import (
	"context"
	"time"
)

// Cache is the minimal contract for a key-value cache. Implementations must
// be concurrency-safe and context-aware. Values are strings to keep the port
// free of serialization concerns.
type Cache interface {
	// Get fetches the value for key, returning ErrMiss when the key is
	// absent; a non-nil error other than ErrMiss means transport or server
	// failure.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value at key with the provided TTL. Zero or negative TTL
	// means no expiration.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Ping verifies connectivity with the cache backend.
	Ping(ctx context.Context) error

	// Close releases any resources held by the cache.
	Close() error
}

// ErrMiss signals a cache miss in a typed way so callers can tell misses
// from transport errors.
var ErrMiss = errMiss{}

type errMiss struct{}

func (e errMiss) Error() string { return "cache: miss" }
