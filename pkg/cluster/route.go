package cluster

import (
	"errors"
	"fmt"
	"sort"

	"github.com/synforge/routecluster/pkg/chem"
)

// ErrRouteNotFound is returned by [CollectOne] and [CollectReducedOne] when
// the requested route id is absent from the resolved source.
var ErrRouteNotFound = errors.New("cluster: route not found")

// RouteID identifies a route. IDs are compared lexically wherever an order
// is needed, so collections keyed by RouteID enumerate deterministically.
type RouteID string

// RouteSource yields route transformation graphs. The two concrete variants
// are [RouteMap] for already-materialized graphs and [SearchTreeSource] for
// sources that construct graphs on demand from a set of accepted route ids.
// Downstream stages never branch on the source's shape.
type RouteSource interface {
	// RouteIDs returns all route ids the source knows about, sorted.
	RouteIDs() []RouteID

	// Resolve returns the graph for the route and true, or nil and false
	// when the route is unknown or its graph cannot be constructed.
	Resolve(id RouteID) (*chem.Graph, bool)
}

// RouteMap is a RouteSource over an explicit RouteID → graph mapping.
type RouteMap map[RouteID]*chem.Graph

// RouteIDs returns the mapping's keys, sorted.
func (m RouteMap) RouteIDs() []RouteID {
	ids := make([]RouteID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Resolve returns the mapped graph. A present key with a nil graph resolves
// to false, matching the skip semantics of construction gaps.
func (m RouteMap) Resolve(id RouteID) (*chem.Graph, bool) {
	g, ok := m[id]
	if !ok || g == nil {
		return nil, false
	}
	return g, true
}

// SearchTreeSource adapts a search tree exposing accepted route ids and a
// per-route graph constructor. Routes whose construction yields nil are
// skipped, never failed.
type SearchTreeSource struct {
	// Accepted lists the route ids the search accepted.
	Accepted []RouteID

	// Build constructs the transformation graph for one route. A nil result
	// (with or without an error) marks the route as unconstructable.
	Build func(id RouteID) (*chem.Graph, error)
}

// RouteIDs returns the accepted ids, sorted and deduplicated.
func (s *SearchTreeSource) RouteIDs() []RouteID {
	ids := make([]RouteID, 0, len(s.Accepted))
	seen := make(map[RouteID]bool, len(s.Accepted))
	for _, id := range s.Accepted {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Resolve builds the route's graph via the constructor.
func (s *SearchTreeSource) Resolve(id RouteID) (*chem.Graph, bool) {
	found := false
	for _, a := range s.Accepted {
		if a == id {
			found = true
			break
		}
	}
	if !found || s.Build == nil {
		return nil, false
	}
	g, err := s.Build(id)
	if err != nil || g == nil {
		return nil, false
	}
	return g, true
}

// Collect resolves every route the source knows about into a RouteID → graph
// mapping. Routes that fail to resolve are skipped; the batch proceeds with
// the remainder.
func Collect(src RouteSource) RouteMap {
	out := make(RouteMap)
	for _, id := range src.RouteIDs() {
		if g, ok := src.Resolve(id); ok {
			out[id] = g
		}
	}
	return out
}

// CollectOne resolves a single route into a one-entry mapping.
// Returns ErrRouteNotFound when the id is absent or unresolvable.
func CollectOne(src RouteSource, id RouteID) (RouteMap, error) {
	g, ok := src.Resolve(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRouteNotFound, id)
	}
	return RouteMap{id: g}, nil
}

// CollectReduced is Collect composed with [Reduce]: every resolved graph is
// reduced to its reacting skeleton before being returned.
func CollectReduced(src RouteSource) RouteMap {
	out := make(RouteMap)
	for id, g := range Collect(src) {
		if r := Reduce(g); r != nil {
			out[id] = r
		}
	}
	return out
}

// CollectReducedOne resolves and reduces a single route, with the same error
// contract as [CollectOne].
func CollectReducedOne(src RouteSource, id RouteID) (RouteMap, error) {
	m, err := CollectOne(src, id)
	if err != nil {
		return nil, err
	}
	return RouteMap{id: Reduce(m[id])}, nil
}
