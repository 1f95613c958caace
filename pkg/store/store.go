// Package store provides the key/value backends used as the local tier of
// checksum and repository lookups.
//
// Keys are slash-separated relative paths such as
// "3f/3fa1...e2.json" or "junit/junit/4.13.2/junit-4.13.2.pom". Values are
// opaque bytes. Stores are write-once in practice: a key is only ever
// written with the content the remote returned for it, so concurrent writers
// of the same key race harmlessly.
//
// # Backends
//
//   - [FileStore]: a directory tree mirroring the key layout (default)
//   - [RedisStore]: a shared index in Redis, for teams running several
//     auditors against one cache
//   - [MongoStore]: the same, in a MongoDB collection
//   - [NullStore]: stores nothing
//
// [Open] selects a backend from configuration.
package store

import (
	"context"
	"strings"

	"github.com/matzehuels/jarscope/pkg/errors"
)

// Store is a byte-oriented key/value store. A missing key is reported by
// ok=false and a nil error from Get.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	// Clear removes every entry owned by the store.
	Clear(ctx context.Context) error
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	// Dir is the root of a file store.
	Dir string
	// RedisURL is a redis:// URL.
	RedisURL string
	// MongoURI, MongoDatabase and MongoCollection locate a MongoDB collection.
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	// Prefix namespaces keys in shared backends (Redis, MongoDB).
	Prefix string
}

// Open creates the backend named by opts.Backend. An empty name selects the
// file store.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendFile:
		return NewFileStore(opts.Dir)
	case BackendRedis:
		return NewRedisStore(opts.RedisURL, opts.Prefix)
	case BackendMongo:
		return NewMongoStore(ctx, opts.MongoURI, opts.MongoDatabase, opts.MongoCollection, opts.Prefix)
	case BackendNone:
		return NewNullStore(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", opts.Backend)
	}
}
