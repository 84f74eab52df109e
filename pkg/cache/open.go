package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Backends lists the accepted backend names.
var Backends = []string{BackendFile, BackendRedis, BackendMongo, BackendNone}

// OpenOptions selects and configures a backend.
type OpenOptions struct {
	Backend string

	// Dir is the FileCache directory.
	Dir string

	// URL is the redis:// or mongodb:// connection string.
	URL string

	// Prefix scopes Redis keys.
	Prefix string

	// Database and Collection select the MongoDB collection.
	Database   string
	Collection string
}

// Open creates the backend named by opts.Backend. An empty backend means
// BackendFile.
func Open(ctx context.Context, opts OpenOptions) (Cache, error) {
	switch opts.Backend {
	case "", BackendFile:
		if opts.Dir == "" {
			return nil, fmt.Errorf("file cache: no directory")
		}
		return NewFileCache(opts.Dir)
	case BackendRedis:
		prefix := opts.Prefix
		if prefix == "" {
			prefix = "graphstat:"
		}
		return DialRedis(ctx, opts.URL, prefix)
	case BackendMongo:
		db, coll := opts.Database, opts.Collection
		if db == "" {
			db = "graphstat"
		}
		if coll == "" {
			coll = "cache"
		}
		return DialMongo(ctx, opts.URL, db, coll)
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
