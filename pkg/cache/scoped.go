package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// Deployments use this to keep per-project cache namespaces apart when
// several targets share one Redis instance.
//
// Example usage:
//
//	// Project-specific keys
//	projKeyer := NewScopedKeyer(NewDefaultKeyer(), "proj:abc123:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
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

// RoutesKey generates a prefixed key for route-collection caching.
func (k *ScopedKeyer) RoutesKey(sourceHash string, opts RoutesKeyOpts) string {
	return k.prefix + k.inner.RoutesKey(sourceHash, opts)
}

// ClusterKey generates a prefixed key for clustering-result caching.
func (k *ScopedKeyer) ClusterKey(routesHash string, opts ClusterKeyOpts) string {
	return k.prefix + k.inner.ClusterKey(routesHash, opts)
}

// SubclusterKey generates a prefixed key for subcluster-result caching.
func (k *ScopedKeyer) SubclusterKey(clustersHash string, postProcess bool) string {
	return k.prefix + k.inner.SubclusterKey(clustersHash, postProcess)
}

// ArtifactKey generates a prefixed key for rendered-artifact caching.
func (k *ScopedKeyer) ArtifactKey(contentHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(contentHash, opts)
}
