// Package cache stores layout results and diagrams between runs.
//
// All backends implement [Cache]: a byte-oriented get/set/delete store with
// per-entry TTLs. Keys come from a [Keyer] so that the CLI and the HTTP API
// derive identical keys for identical inputs.
//
// Backends:
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [BoltCache]: a single embedded bbolt database file
//   - [RedisCache]: a shared Redis server
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: caching disabled
//
// Use [Open] to construct a backend from configuration.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A zero TTL stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default TTLs per entry type.
const (
	TTLLayout  = 24 * time.Hour
	TTLDiagram = 7 * 24 * time.Hour
)
