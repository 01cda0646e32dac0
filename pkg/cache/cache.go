// Package cache provides caching for pipeline stages.
//
// The pipeline caches at two levels: positioned schematics keyed by the
// source document hash, and rendered artifacts keyed by the schematic hash
// plus rendering options. Backends share a single [Cache] interface so the
// CLI (file cache), the API server (Redis or MongoDB), and tests (null
// cache) all plug into the same runner.
package cache

import (
	"context"
	"time"
)

// Default TTLs for the two cache levels. Schematics are pure functions of
// the source, so they could live forever; the TTLs bound backend growth.
const (
	TTLSchematic = 24 * time.Hour
	TTLArtifact  = 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// SchematicKey generates a key for a positioned schematic, derived
	// from the hash of the source document.
	SchematicKey(sourceHash string) string

	// ArtifactKey generates a key for a rendered artifact, derived from
	// the schematic hash and the rendering options.
	ArtifactKey(schematicHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the rendering options that distinguish artifacts of
// the same schematic.
type ArtifactKeyOpts struct {
	// Format is the output format ("svg", "json", "dot", "png").
	Format string
	// Theme is the theme fingerprint, empty for the default theme.
	Theme string
}

// DefaultKeyer generates versioned, hash-based keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SchematicKey generates a key for schematic caching.
func (k *DefaultKeyer) SchematicKey(sourceHash string) string {
	return hashKey("schematic:v1", sourceHash)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(schematicHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:v1", schematicHash, opts.Format, opts.Theme)
}
