// Package cache provides the key/value caches behind the constellation
// pipeline.
//
// Three kinds of values are cached, each with its own key builder on
// [Keyer] and default TTL:
//
//   - Topic provider responses ([TTLHTTP], short)
//   - Computed layouts ([TTLLayout])
//   - Rendered artifacts ([TTLArtifact])
//
// # Backends
//
//   - [FileCache]: JSON files under a directory, the CLI default
//   - [RedisCache]: shared cache for several server instances
//   - [MongoCache]: document store with a TTL index
//   - [SQLiteCache]: single-file database, no server needed
//   - [NullCache]: caching disabled
//
// [Open] picks a backend from a [Config], which is how both the CLI and the
// HTTP server construct their cache.
package cache
