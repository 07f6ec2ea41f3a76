package cache

import "errors"

// Sentinel errors for caching operations.
var (
	// ErrUnknownBackend is returned by Open for an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown cache backend")

	// ErrMissingAddress is returned by Open when a networked backend has no
	// address configured.
	ErrMissingAddress = errors.New("cache backend address not configured")
)
