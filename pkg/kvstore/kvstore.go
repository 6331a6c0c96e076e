// Package kvstore provides the string key-value storage the cart snapshot is
// persisted to. Implementations: Redis (production), SQL via GORM, and an
// in-memory map for local development and tests.
package kvstore

import "context"

// Store is an opaque get/set-by-key service.
type Store interface {
	// Get returns the value stored at key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Pinger is implemented by stores backed by a remote dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}
