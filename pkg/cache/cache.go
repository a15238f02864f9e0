// Package cache stores rendered mmCIF documents between CLI runs.
//
// A document is keyed by the content of everything that went into it: the
// job, the metadata files, every coordinate and result file the export read,
// and the writer options. Re-running an unchanged export returns the stored
// document without touching the exporter.
//
// [FileCache] keeps entries under an XDG cache directory; [NullCache]
// disables caching.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
	Close() error
}
