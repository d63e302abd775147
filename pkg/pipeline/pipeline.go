// Package pipeline provides the core clustering pipeline.
//
// This package implements the complete collect → cluster → subcluster
// pipeline that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Collect: Gather route graphs from a route source, optionally reducing
//     each to its largest connected component
//  2. Cluster: Group routes by strategic-bond pattern or full signature
//  3. Subcluster: Refine each cluster by synthon shape and optionally
//     post-process constant leaving groups
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Target:      "benzocaine",
//	    Reduce:      true,
//	    PostProcess: true,
//	}
//	result, err := runner.Execute(ctx, source, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/synforge/routecluster/pkg/cache"
	"github.com/synforge/routecluster/pkg/cluster"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMaxRoutes caps how many routes one run will collect. Search
	// trees for rich targets can hold tens of thousands of accepted routes;
	// clustering stays interactive below this bound.
	DefaultMaxRoutes = 10000
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the clustering pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Collect options
	Target    string `json:"target,omitempty"`     // Target name, for reports
	RouteID   string `json:"route_id,omitempty"`   // Restrict the run to one route
	Reduce    bool   `json:"reduce,omitempty"`     // Keep only the largest component per route
	MaxRoutes int    `json:"max_routes,omitempty"` // Cap on collected routes
	Refresh   bool   `json:"refresh,omitempty"`    // Bypass the collect cache

	// Cluster options
	UseStrategicBonds bool `json:"use_strategic_bonds,omitempty"`

	// Subcluster options
	Subcluster  bool `json:"subcluster,omitempty"`
	PostProcess bool `json:"post_process,omitempty"`

	// SourceHash is the content hash of the route source, used for collect
	// cache keys. Leave empty to disable collect caching.
	SourceHash string `json:"source_hash,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.MaxRoutes < 0 {
		return fmt.Errorf("max_routes must not be negative")
	}
	if o.MaxRoutes == 0 {
		o.MaxRoutes = DefaultMaxRoutes
	}
	if o.PostProcess && !o.Subcluster {
		// Post-processing operates on subgroups, so it implies the stage.
		o.Subcluster = true
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// RoutesKeyOpts returns cache key options for route collection.
func (o *Options) RoutesKeyOpts() cache.RoutesKeyOpts {
	return cache.RoutesKeyOpts{Reduce: o.Reduce}
}

// ClusterKeyOpts returns cache key options for clustering.
func (o *Options) ClusterKeyOpts() cache.ClusterKeyOpts {
	return cache.ClusterKeyOpts{UseStrategicBonds: o.UseStrategicBonds}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Routes is the collected route set.
	Routes cluster.RouteMap

	// RoutesHash is the content hash of the collected routes.
	RoutesHash string

	// Clusters maps cluster ids to clusters.
	Clusters map[string]*cluster.Cluster

	// Subgroups maps cluster ids to their refined subgroups, keyed by synthon
	// descriptor. Nil when the subcluster stage was not requested.
	Subgroups map[string]map[string]*cluster.Subgroup

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RouteCount     int
	ClusterCount   int
	SubgroupCount  int
	CollectTime    time.Duration
	ClusterTime    time.Duration
	SubclusterTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	CollectHit    bool // Whether the route set came from cache
	ClusterHit    bool // Whether the clustering came from cache
	SubclusterHit bool // Whether the subgroups came from cache
}
