// Package cache provides content-addressed caching for pipeline stages.
//
// Cache keys are derived from content hashes of the stage inputs plus the
// options that shape the stage output, so a change to either invalidates the
// entry. Three backends are provided: [FileCache] for CLI usage, [RedisCache]
// for the server, and [NullCache] to disable caching.
package cache

import (
	"context"
	"time"
)

// TTL defaults per pipeline stage. Route collections change when the search
// tree is re-exported; clustering results are pure functions of the routes
// and live longer.
const (
	TTLRoutes    = 24 * time.Hour
	TTLClusters  = 7 * 24 * time.Hour
	TTLArtifacts = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
// Get reports a miss with (nil, false, nil); errors are reserved for backend
// failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// RoutesKeyOpts captures the options that change a collected route set.
type RoutesKeyOpts struct {
	// Reduce indicates the routes were reduced to their largest component.
	Reduce bool
}

// ClusterKeyOpts captures the options that change a clustering result.
type ClusterKeyOpts struct {
	// UseStrategicBonds selects strategic-bond grouping over full-graph
	// signatures.
	UseStrategicBonds bool
}

// ArtifactKeyOpts captures the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string // "svg", "dot"
	Width  int    // Target width in pixels, 0 for natural size
}

// Keyer generates cache keys for each pipeline stage.
type Keyer interface {
	// RoutesKey keys a collected route set by the source content hash.
	RoutesKey(sourceHash string, opts RoutesKeyOpts) string

	// ClusterKey keys a clustering result by the route-collection hash.
	ClusterKey(routesHash string, opts ClusterKeyOpts) string

	// SubclusterKey keys a subcluster result by the clustering hash.
	// postProcess distinguishes raw from post-processed subgroups.
	SubclusterKey(clustersHash string, postProcess bool) string

	// ArtifactKey keys a rendered artifact by its content hash.
	ArtifactKey(contentHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates keys of the form "stage:sha256(inputs)".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// RoutesKey generates a key for route-collection caching.
func (k *DefaultKeyer) RoutesKey(sourceHash string, opts RoutesKeyOpts) string {
	return hashKey("routes", sourceHash, opts)
}

// ClusterKey generates a key for clustering-result caching.
func (k *DefaultKeyer) ClusterKey(routesHash string, opts ClusterKeyOpts) string {
	return hashKey("clusters", routesHash, opts)
}

// SubclusterKey generates a key for subcluster-result caching.
func (k *DefaultKeyer) SubclusterKey(clustersHash string, postProcess bool) string {
	return hashKey("subclusters", clustersHash, postProcess)
}

// ArtifactKey generates a key for rendered-artifact caching.
func (k *DefaultKeyer) ArtifactKey(contentHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", contentHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
