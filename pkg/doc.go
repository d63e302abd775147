// Package pkg provides the core libraries for routecluster.
//
// # Overview
//
// Routecluster groups computer-generated synthesis routes by their
// disconnection strategy. Each route is condensed into a single
// transformation graph: the target molecule's atoms plus the bonds that
// change along the route, each bond tagged with its dynamics (formed,
// broken, order-changed, unchanged). Routes that share the same condensed
// graph belong to the same strategy.
//
// # Architecture
//
// The typical data flow:
//
//	Route source (JSON files, search trees, HTTP requests)
//	         ↓
//	    [cluster] package (collect → reduce → cluster → subcluster → post-process)
//	         ↓
//	    [store] package (persisted reports)
//	         ↓
//	    [report] package (summaries, DOT, SVG)
//
// # Main Packages
//
// [chem] - Transformation graphs: atoms, dynamic bonds, connected
// components, Weisfeiler-Lehman signatures, synthon decomposition along
// strategic bonds, and reaction assembly from fragments.
//
// [cluster] - The clustering pipeline stages. Collects routes from a
// [cluster.RouteSource], optionally reduces each to its largest component,
// groups routes by their strategic-bond subgraphs, refines clusters into
// synthon-shape subgroups, and collapses constant leaving groups.
//
// [graphio] - JSON serialization of transformation graphs and route
// collections.
//
// [pipeline] - Orchestration of the full run with per-stage caching,
// used by both CLI and server.
//
// [report] - Text summaries plus Graphviz DOT and SVG rendering of
// representative graphs and synthon reactions.
//
// # Infrastructure
//
// [cache] - Cache interface with file, redis, and null backends, and a
// Keyer that derives deterministic keys from content hashes and options.
//
// [store] - Report persistence with file and mongo backends.
//
// [errors] - Structured error codes shared by CLI and server.
//
// [observability] - Optional hooks for metrics and tracing around
// pipeline stages and cache operations.
//
// # Quick Start
//
// Cluster a set of routes and print a summary:
//
//	routes, _ := graphio.ImportRoutes("routes.json")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(ctx, routes, pipeline.Options{
//	    UseStrategicBonds: true,
//	    PostProcess:       true,
//	})
//	fmt.Print(report.ClusterSummary(result.Clusters))
//
// [chem]: https://pkg.go.dev/github.com/synforge/routecluster/pkg/chem
// [cluster]: https://pkg.go.dev/github.com/synforge/routecluster/pkg/cluster
// [cluster.RouteSource]: https://pkg.go.dev/github.com/synforge/routecluster/pkg/cluster#RouteSource
// [graphio]: https://pkg.go.dev/github.com/synforge/routecluster/pkg/graphio
// [pipeline]: https://pkg.go.dev/github.com/synforge/routecluster/pkg/pipeline
// [report]: https://pkg.go.dev/github.com/synforge/routecluster/pkg/report
// [cache]: https://pkg.go.dev/github.com/synforge/routecluster/pkg/cache
// [store]: https://pkg.go.dev/github.com/synforge/routecluster/pkg/store
// [errors]: https://pkg.go.dev/github.com/synforge/routecluster/pkg/errors
// [observability]: https://pkg.go.dev/github.com/synforge/routecluster/pkg/observability
package pkg
