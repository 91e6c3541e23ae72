package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrCacheMiss indicates the requested key was not found or has expired.
	ErrCacheMiss = errors.New("cache miss")
)

// Store is the TTL-based cache contract shared by all backends. Values are
// raw bytes; expired entries behave exactly like absent ones.
//
// Implementations must be safe for concurrent use. Racing populates of the
// same key are allowed; the last write wins.
type Store interface {
	// Get retrieves the value for key. Returns ErrCacheMiss if the key does
	// not exist or its entry has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key for the given TTL, replacing any previous
	// entry. A TTL <= 0 is treated as already expired and nothing is stored.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the entry for key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
