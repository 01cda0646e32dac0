package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful behind the HTTP API where different deployments or
// namespaces need separate cache key spaces over a shared backend.
//
// Example usage:
//
//	// Per-tenant keys over a shared Redis
//	tenantKeyer := NewScopedKeyer(NewDefaultKeyer(), "tenant:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SchematicKey generates a prefixed key for schematic caching.
func (k *ScopedKeyer) SchematicKey(sourceHash string) string {
	return k.prefix + k.inner.SchematicKey(sourceHash)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(schematicHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(schematicHash, opts)
}
