// Package cache stores computed chart reports.
//
// # Backends
//
// [Cache] is implemented by [FileCache] for the CLI, [RedisCache] for shared
// deployments and [NullCache] when caching is disabled. Values are opaque
// bytes; callers serialize.
//
// # Keys
//
// A [Keyer] derives keys from a content hash of the chart definition plus the
// options that change the result. [ScopedKeyer] prefixes keys to isolate
// tenants sharing a backend.
//
// # Retries
//
// Backends wrap transient failures with [Retryable]; [RetryWithBackoff] retries
// only those.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with expiration.
type Cache interface {
	// Get returns the value for key. hit is false when the key is absent or
	// expired.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// TTLReport is how long a computed report stays cached.
const TTLReport = 24 * time.Hour

// ReportKeyOpts are the options that change a report for the same chart.
type ReportKeyOpts struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ReportKey returns the key of the report computed for the chart with
	// the given definition hash.
	ReportKey(definitionHash string, opts ReportKeyOpts) string
}

// DefaultKeyer is the unscoped Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ReportKey implements Keyer.
func (DefaultKeyer) ReportKey(definitionHash string, opts ReportKeyOpts) string {
	return hashKey("report", definitionHash, opts)
}
