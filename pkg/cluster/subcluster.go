package cluster

import (
	"errors"
	"fmt"

	"github.com/synforge/routecluster/pkg/chem"
)

// ErrSubclusterFailed is returned by [SubclusterAll] when any cluster fails
// to produce synthon data. The whole batch fails rather than returning a
// partial mapping, since downstream grouping assumes total route coverage.
var ErrSubclusterFailed = errors.New("cluster: synthon decomposition failed")

// Subgroup refines a cluster by synthon shape: the member routes share the
// same reacting cores but may differ in the leaving groups attached at the
// synthon attachment points.
//
// A subgroup is created raw by [SubclusterAll] and transitions exactly once
// to processed via [PostProcess]; there is no reverse transition.
type Subgroup struct {
	// SynthonStructure is the first member route's full synthon set (cores
	// plus leaving groups) as one disjoint graph. PostProcess replaces it
	// with the reduced structure.
	SynthonStructure *chem.Graph

	// AttachPoints are the synthon attachment points, ordered by atom
	// number. PostProcess drops the points whose leaving group is constant
	// and shifts the remainder down.
	AttachPoints []chem.AttachPoint

	// RouteIDs lists the member routes, always sorted.
	RouteIDs []RouteID

	// RoutesData holds, per route, one leaving group per attachment point,
	// aligned with AttachPoints. Nil entries mean no leaving group.
	RoutesData map[RouteID][]*chem.Graph

	// Processed guards the one-way raw → processed transition.
	Processed bool

	// SynthonReaction is the canonical reaction rebuilt from the reduced
	// synthon structure. Nil until PostProcess runs.
	SynthonReaction *chem.Reaction

	// GroupLGs partitions the member routes by their residual
	// (non-constant) leaving-group assignment, keyed by each part's lowest
	// route id. Nil until PostProcess runs.
	GroupLGs map[RouteID][]RouteID
}

// Size returns the number of member routes.
func (s *Subgroup) Size() int { return len(s.RouteIDs) }

// SubclusterAll refines every cluster independently: the member routes are
// regrouped by the synthon shape their own graph exhibits when cut at its
// strategic bonds. Routes whose fragments differ only in leaving groups land
// in the same subgroup.
//
// Route graphs are looked up in strategic first and fall back to routes, so
// callers can pass the reduced skeletons alongside the full graphs.
//
// If any cluster's synthon cut yields nothing usable the whole call fails
// with ErrSubclusterFailed and a nil result: a partial mapping would
// misrepresent total route coverage.
func SubclusterAll(clusters map[string]*Cluster, strategic, routes RouteMap) (map[string]map[string]*Subgroup, error) {
	out := make(map[string]map[string]*Subgroup, len(clusters))

	for _, cid := range ClusterIDs(clusters) {
		c := clusters[cid]
		if c.Representative.Decompose() == nil {
			return nil, fmt.Errorf("%w: cluster %s has no usable synthon cut", ErrSubclusterFailed, cid)
		}

		subgroups := make(map[string]*Subgroup)
		for _, rid := range c.RouteIDs {
			g, ok := strategic.Resolve(rid)
			if !ok {
				if g, ok = routes.Resolve(rid); !ok {
					continue // construction gap, skip the route
				}
			}

			syn := g.Decompose()
			if syn == nil {
				return nil, fmt.Errorf("%w: route %s in cluster %s", ErrSubclusterFailed, rid, cid)
			}

			key := fmt.Sprintf("%s#%d", syn.Key(), len(syn.Points))
			sg, exists := subgroups[key]
			if !exists {
				sg = &Subgroup{
					SynthonStructure: syn.Structure,
					AttachPoints:     syn.Points,
					RoutesData:       make(map[RouteID][]*chem.Graph),
				}
				subgroups[key] = sg
			}
			sg.RouteIDs = append(sg.RouteIDs, rid)
			sg.RoutesData[rid] = syn.LeavingGroups
		}
		out[cid] = subgroups
	}
	return out, nil
}
