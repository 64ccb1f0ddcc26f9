package cache

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendBolt  = "bolt"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Backends lists the backend names accepted by Open.
var Backends = []string{BackendFile, BackendBolt, BackendRedis, BackendMongo, BackendNone}

// Config selects and configures a backend.
type Config struct {
	// Backend is one of Backends. Empty means BackendFile.
	Backend string

	// Dir is the directory for the file backend and the parent of the bolt
	// database.
	Dir string

	// URL is the server address for the redis and mongo backends.
	URL string

	// Database and Collection name the MongoDB location.
	Database   string
	Collection string
}

// Open constructs the configured backend.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file cache: no directory configured")
		}
		return NewFileCache(cfg.Dir)
	case BackendBolt:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("bolt cache: no directory configured")
		}
		return NewBoltCache(filepath.Join(cfg.Dir, "cache.db"))
	case BackendRedis:
		if cfg.URL == "" {
			return nil, fmt.Errorf("redis cache: no url configured")
		}
		return NewRedisCache(ctx, cfg.URL)
	case BackendMongo:
		if cfg.URL == "" {
			return nil, fmt.Errorf("mongo cache: no url configured")
		}
		return NewMongoCache(ctx, cfg.URL, cfg.Database, cfg.Collection)
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownBackend, cfg.Backend, strings.Join(Backends, ", "))
	}
}
