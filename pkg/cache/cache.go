package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss with ok == false and a nil error. Backends treat
// corrupt or expired entries as misses. A ttl of zero means no expiry.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default time-to-live values per entry kind.
const (
	// TTLHTTP bounds how stale the topic provider's response may get. New
	// journal entries change the topics, so this is short.
	TTLHTTP = 10 * time.Minute

	// TTLLayout applies to computed layouts, which are pure functions of
	// their key.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact applies to rendered SVG/PNG/PDF/DOT output.
	TTLArtifact = 7 * 24 * time.Hour
)
