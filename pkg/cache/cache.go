// Package cache provides byte caches for decomposition results.
//
// The pipeline stores serialized decompositions keyed by the content hash
// of the input graph together with the solve options, so repeated runs on
// the same input skip the search entirely. Three backends are provided: a
// file cache for CLI usage, a Redis cache for the HTTP service, and a
// null cache that disables caching.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with an optional TTL.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache is a no-op cache that never stores anything. It disables
// caching without branching at the call sites.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return &NullCache{} }

// Get always reports a miss.
func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards the value.
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete does nothing.
func (*NullCache) Delete(context.Context, string) error { return nil }

// Close does nothing.
func (*NullCache) Close() error { return nil }

// DecompositionKeyOpts are the solve options that contribute to a
// decomposition cache key. Two runs with equal graph hash and equal opts
// produce interchangeable results.
type DecompositionKeyOpts struct {
	Strategy            string
	Seed                uint64
	Iterations          int
	NonImprovementLimit int
	Compression         bool
	ComputeInducedEdges bool
}

// Keyer generates cache keys.
type Keyer interface {
	// DecompositionKey generates a key for a solve result.
	DecompositionKey(graphHash string, opts DecompositionKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// DecompositionKey generates a key for a solve result.
func (k *DefaultKeyer) DecompositionKey(graphHash string, opts DecompositionKeyOpts) string {
	return hashKey("decomp", graphHash, opts)
}
