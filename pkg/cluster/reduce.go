package cluster

import "github.com/synforge/routecluster/pkg/chem"

// Reduce returns the route's reacting skeleton: the induced subgraph on the
// largest connected component of g. When the graph has no components
// (degenerate or empty input) it is returned unchanged rather than treated
// as an error. When several components tie for the maximum, the first in
// component order wins.
func Reduce(g *chem.Graph) *chem.Graph {
	if g == nil {
		return nil
	}
	comps := g.ConnectedComponents()
	if len(comps) == 0 {
		return g
	}

	main := comps[0]
	for _, comp := range comps[1:] {
		if len(comp) > len(main) {
			main = comp
		}
	}

	sub, err := g.Substructure(main)
	if err != nil {
		// Components come from the graph itself, so this cannot miss; keep
		// the defensive default of returning the input.
		return g
	}
	return sub
}
