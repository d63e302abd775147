// Package cluster implements the route-clustering pipeline: reducing a
// route's transformation graph to its reacting skeleton, grouping routes by
// the structural signature of their strategic bonds, refining each group by
// synthon shape, and collapsing leaving-group variation that is constant
// across a subgroup.
//
// Stages compose strictly downward and each consumes the previous stage's
// output unchanged in shape:
//
//	Collect → Reduce → ClusterRoutes → SubclusterAll → PostProcess
//
// All operations are deterministic, synchronous, and pure with respect to
// their inputs, except [PostProcess], which mutates its subgroup in place
// behind a one-way Processed guard.
package cluster
