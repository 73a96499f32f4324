// Package store persists layout snapshots.
//
// A Store is a flat key/value space of encoded snapshots. Five backends are
// provided:
//
//   - MemoryStore: process-local map, for tests and the HTTP server default
//   - FileStore: one JSON file per key in a directory
//   - SQLiteStore: a single table in an SQLite database (pure Go driver)
//   - RedisStore: plain string keys in Redis
//   - MongoStore: one document per key in a MongoDB collection
//
// Open picks a backend from a URL:
//
//	memory:
//	file:/var/lib/tilegrid
//	sqlite:/var/lib/tilegrid/layouts.db
//	redis://localhost:6379/0
//	mongodb://localhost:27017/tilegrid
//
// Missing keys are reported as a miss (ok == false) rather than an error.
// SaveSnapshot and LoadSnapshot encode and decode through pkg/snapshot.
package store

import (
	"context"
	"strings"

	"github.com/matzehuels/tilegrid/pkg/errors"
)

// Store is a key/value store for encoded snapshots.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key, replacing any previous value.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Open returns the store described by url. A bare path without a scheme is
// treated as a file store directory.
func Open(ctx context.Context, url string) (Store, error) {
	scheme, rest, found := strings.Cut(url, ":")
	if !found || len(scheme) == 1 {
		// no scheme, or a Windows drive letter
		return NewFileStore(url)
	}
	switch scheme {
	case "memory":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(strings.TrimPrefix(rest, "//"))
	case "sqlite":
		return NewSQLiteStore(strings.TrimPrefix(rest, "//"))
	case "redis", "rediss":
		return NewRedisStore(ctx, url)
	case "mongodb", "mongodb+srv":
		return NewMongoStore(ctx, url)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unknown store scheme %q", scheme)
}

// Backend returns a short name for the store's backend, used in logs and
// hooks.
func Backend(s Store) string {
	switch s.(type) {
	case *MemoryStore:
		return "memory"
	case *FileStore:
		return "file"
	case *SQLiteStore:
		return "sqlite"
	case *RedisStore:
		return "redis"
	case *MongoStore:
		return "mongo"
	}
	return "custom"
}
