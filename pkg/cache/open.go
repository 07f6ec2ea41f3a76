package cache

import (
	"context"
	"fmt"
	"path/filepath"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendSQLite = "sqlite"
	BackendNone   = "none"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend string `toml:"backend"`

	// Dir is the root for the file backend and the default location of the
	// SQLite database.
	Dir string `toml:"dir"`

	RedisURL string `toml:"redis_url"`

	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`

	SQLitePath string `toml:"sqlite_path"`

	// Prefix namespaces keys in shared backends (redis).
	Prefix string `toml:"prefix"`
}

// Pruner is implemented by backends that can drop expired entries on demand.
type Pruner interface {
	Prune(ctx context.Context) (int, error)
}

// Open builds the backend named by cfg.Backend. An empty backend selects
// the file cache.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file cache: %w", ErrMissingAddress)
		}
		c, err := NewFileCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("redis cache: %w", ErrMissingAddress)
		}
		c, err := DialRedis(ctx, cfg.RedisURL, cfg.Prefix)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("mongo cache: %w", ErrMissingAddress)
		}
		db := cfg.MongoDatabase
		if db == "" {
			db = "constellation"
		}
		c, err := DialMongo(ctx, cfg.MongoURI, db, cfg.MongoCollection)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendSQLite:
		path := cfg.SQLitePath
		if path == "" {
			if cfg.Dir == "" {
				return nil, fmt.Errorf("sqlite cache: %w", ErrMissingAddress)
			}
			path = filepath.Join(cfg.Dir, "cache.db")
		}
		c, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

