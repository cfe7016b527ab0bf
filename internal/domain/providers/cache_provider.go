package providers

import (
	"context"
)

// CacheProvider defines the interface for caching operations. Entries
// expire by TTL; nothing in this system invalidates explicitly.
type CacheProvider interface {
	// Get retrieves a value from cache. A miss is an error.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with expiration
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error
}
