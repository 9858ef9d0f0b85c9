// Package cache provides content-addressed caching for computed layouts and
// rendered artifacts.
//
// Keys are derived from a SHA-256 hash of the people snapshot plus the
// options that shaped the computation, so a cache entry can never go stale
// relative to its input: any edit to the snapshot or the layout options
// produces a different key. TTLs are supported by the backends but are not
// required for correctness.
//
// Backends: [FileCache] for CLI usage, [RedisCache] for the server, and
// [NullCache] to disable caching.
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/kinview/pkg/kin/layout"
)

// Default TTLs. Layout and artifact keys are content-addressed, so entries
// never go stale; TTLs only bound disk and memory growth.
const (
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the options that distinguish one layout computation
// from another over the same snapshot.
type LayoutKeyOpts struct {
	Strategy    string
	Orientation string
	RootID      string
	Config      layout.Config
}

// ArtifactKeyOpts distinguish rendered artifacts derived from one layout.
type ArtifactKeyOpts struct {
	Format   string // "svg", "png", "dot"
	Detailed bool
}

// Keyer generates cache keys. Implementations must be deterministic: the
// same inputs always produce the same key.
type Keyer interface {
	// LayoutKey keys a computed layout by snapshot hash and options.
	LayoutKey(snapshotHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by layout hash and options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(snapshotHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", snapshotHash, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
