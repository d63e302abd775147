package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/synforge/routecluster/pkg/cache"
	"github.com/synforge/routecluster/pkg/cluster"
	"github.com/synforge/routecluster/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete collect → cluster → subcluster pipeline with
// caching.
func (r *Runner) Execute(ctx context.Context, src cluster.RouteSource, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Collect
	collectStart := time.Now()
	observability.Pipeline().OnCollectStart(ctx, opts.Target)
	routes, collectHit, err := r.CollectWithCacheInfo(ctx, src, opts)
	observability.Pipeline().OnCollectComplete(ctx, opts.Target, len(routes), time.Since(collectStart), err)
	if err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}
	result.Routes = routes
	result.Stats.CollectTime = time.Since(collectStart)
	result.Stats.RouteCount = len(routes)
	result.CacheInfo.CollectHit = collectHit

	// Compute route-set hash for cache keys and API responses
	if data, err := MarshalRoutes(routes); err == nil {
		result.RoutesHash = cache.Hash(data)
	}

	r.Logger.Info("collected routes",
		"routes", len(routes),
		"reduced", opts.Reduce,
		"duration", result.Stats.CollectTime)

	// Stage 2: Cluster
	clusterStart := time.Now()
	observability.Pipeline().OnClusterStart(ctx, len(routes))
	clusters, clusterHit, err := r.ClusterWithCacheInfo(ctx, routes, result.RoutesHash, opts)
	observability.Pipeline().OnClusterComplete(ctx, len(clusters), time.Since(clusterStart), err)
	if err != nil {
		return nil, fmt.Errorf("cluster: %w", err)
	}
	result.Clusters = clusters
	result.Stats.ClusterTime = time.Since(clusterStart)
	result.Stats.ClusterCount = len(clusters)
	result.CacheInfo.ClusterHit = clusterHit

	r.Logger.Info("clustered routes",
		"clusters", len(clusters),
		"strategic", opts.UseStrategicBonds,
		"duration", result.Stats.ClusterTime)

	// Stage 3: Subcluster (optional)
	if opts.Subcluster {
		subStart := time.Now()
		observability.Pipeline().OnSubclusterStart(ctx, len(clusters))
		subgroups, subHit, err := r.SubclusterWithCacheInfo(ctx, clusters, routes, opts)
		subCount := 0
		for _, subs := range subgroups {
			subCount += len(subs)
		}
		observability.Pipeline().OnSubclusterComplete(ctx, subCount, time.Since(subStart), err)
		if err != nil {
			return nil, fmt.Errorf("subcluster: %w", err)
		}
		result.Subgroups = subgroups
		result.Stats.SubclusterTime = time.Since(subStart)
		result.CacheInfo.SubclusterHit = subHit
		result.Stats.SubgroupCount = subCount

		r.Logger.Info("refined subgroups",
			"subgroups", result.Stats.SubgroupCount,
			"post_processed", opts.PostProcess,
			"duration", result.Stats.SubclusterTime)
	}

	return result, nil
}

// CollectWithCacheInfo gathers routes with caching and returns cache hit
// info. Caching requires opts.SourceHash; without it the source is always
// consulted.
func (r *Runner) CollectWithCacheInfo(ctx context.Context, src cluster.RouteSource, opts Options) (cluster.RouteMap, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	cacheKey := ""
	if opts.SourceHash != "" {
		scope := opts.SourceHash
		if opts.RouteID != "" {
			scope += "#" + opts.RouteID
		}
		cacheKey = r.Keyer.RoutesKey(scope, opts.RoutesKeyOpts())
	}

	// Try cache first (unless refresh requested)
	if cacheKey != "" && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if routes, err := UnmarshalRoutes(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "routes")
				return routes, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "routes")
	}

	routes, err := collect(src, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if cacheKey != "" {
		if data, err := MarshalRoutes(routes); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLRoutes)
			observability.Cache().OnCacheSet(ctx, "routes", len(data))
		}
	}

	return routes, false, nil // Cache miss
}

// Collect is a convenience wrapper that discards the cache hit info.
func (r *Runner) Collect(ctx context.Context, src cluster.RouteSource, opts Options) (cluster.RouteMap, error) {
	routes, _, err := r.CollectWithCacheInfo(ctx, src, opts)
	return routes, err
}

// ClusterWithCacheInfo groups routes with caching and returns cache hit info.
func (r *Runner) ClusterWithCacheInfo(ctx context.Context, routes cluster.RouteMap, routesHash string, opts Options) (map[string]*cluster.Cluster, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	if routesHash == "" {
		data, err := MarshalRoutes(routes)
		if err != nil {
			return nil, false, fmt.Errorf("serialize routes for cache key: %w", err)
		}
		routesHash = cache.Hash(data)
	}
	cacheKey := r.Keyer.ClusterKey(routesHash, opts.ClusterKeyOpts())

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		if clusters, err := UnmarshalClusters(data); err == nil {
			observability.Cache().OnCacheHit(ctx, "clusters")
			return clusters, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "clusters")

	clusters := cluster.ClusterRoutes(routes, opts.UseStrategicBonds)

	// Cache the result
	if data, err := MarshalClusters(clusters); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLClusters)
		observability.Cache().OnCacheSet(ctx, "clusters", len(data))
	}

	return clusters, false, nil // Cache miss
}

// SubclusterWithCacheInfo refines clusters with caching and returns cache
// hit info. When opts.PostProcess is set, every subgroup is post-processed
// before being returned or cached.
func (r *Runner) SubclusterWithCacheInfo(ctx context.Context, clusters map[string]*cluster.Cluster, routes cluster.RouteMap, opts Options) (map[string]map[string]*cluster.Subgroup, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	data, err := MarshalClusters(clusters)
	if err != nil {
		return nil, false, fmt.Errorf("serialize clusters for cache key: %w", err)
	}
	cacheKey := r.Keyer.SubclusterKey(cache.Hash(data), opts.PostProcess)

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		if subgroups, err := UnmarshalSubgroups(data); err == nil {
			observability.Cache().OnCacheHit(ctx, "subclusters")
			return subgroups, true, nil // Cache hit
		}
	}
	observability.Cache().OnCacheMiss(ctx, "subclusters")

	subgroups, err := cluster.SubclusterAll(clusters, routes, nil)
	if err != nil {
		return nil, false, err
	}
	if opts.PostProcess {
		for _, subs := range subgroups {
			for _, sg := range subs {
				cluster.PostProcess(sg)
			}
		}
	}

	// Cache the result
	if data, err := MarshalSubgroups(subgroups); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLClusters)
		observability.Cache().OnCacheSet(ctx, "subclusters", len(data))
	}

	return subgroups, false, nil // Cache miss
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// collect gathers routes from the source per the options, capping the
// collection at MaxRoutes by id order so truncation is deterministic.
func collect(src cluster.RouteSource, opts Options) (cluster.RouteMap, error) {
	if opts.RouteID != "" {
		if opts.Reduce {
			return cluster.CollectReducedOne(src, cluster.RouteID(opts.RouteID))
		}
		return cluster.CollectOne(src, cluster.RouteID(opts.RouteID))
	}

	var routes cluster.RouteMap
	if opts.Reduce {
		routes = cluster.CollectReduced(src)
	} else {
		routes = cluster.Collect(src)
	}

	if opts.MaxRoutes > 0 && len(routes) > opts.MaxRoutes {
		capped := make(cluster.RouteMap, opts.MaxRoutes)
		for _, id := range routes.RouteIDs()[:opts.MaxRoutes] {
			capped[id] = routes[id]
		}
		routes = capped
	}
	return routes, nil
}
