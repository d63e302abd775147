package chem

import "errors"

// ErrNoFragments is returned by [ReactionFromFragments] when the input graph
// has no atoms to decompose.
var ErrNoFragments = errors.New("no fragments to build reaction from")

// Reaction is a canonical transformation record: reactant fragments on one
// side, product fragments on the other. Reactions are built from already
// immutable graphs and share them.
type Reaction struct {
	Reactants []*Graph
	Products  []*Graph

	// offsets holds display x-offsets per fragment, assigned by Clean2D.
	// Purely presentational; no semantic effect.
	offsets map[*Graph]float64
}

// BuildReaction assembles a reaction record from reactant and product
// fragments. Fragments are taken as-is; no validation of atom balance is
// performed.
func BuildReaction(reactants, products []*Graph) *Reaction {
	return &Reaction{Reactants: reactants, Products: products}
}

// ReactionFromFragments decomposes a (possibly disconnected) graph into a
// reaction record. The fragment containing the largest atom number becomes
// the single product, all others become reactants.
//
// Picking the largest-atom-index fragment as the product is a simplification
// carried over from the route-graph convention that the target carries the
// highest mapping numbers; multi-product targets are not handled.
func ReactionFromFragments(g *Graph) (*Reaction, error) {
	comps := g.ConnectedComponents()
	if len(comps) == 0 {
		return nil, ErrNoFragments
	}

	maxNum := g.MaxAtomNum()
	productIdx := 0
	for i, comp := range comps {
		if comp[len(comp)-1] == maxNum {
			productIdx = i
			break
		}
	}

	rxn := &Reaction{}
	for i, comp := range comps {
		frag, err := g.Substructure(comp)
		if err != nil {
			return nil, err
		}
		if i == productIdx {
			rxn.Products = append(rxn.Products, frag)
		} else {
			rxn.Reactants = append(rxn.Reactants, frag)
		}
	}
	return rxn, nil
}

// Clean2D assigns display offsets to the reaction's fragments: reactants laid
// out left to right, products after them. It mutates only presentation state
// and never the fragment graphs.
func (r *Reaction) Clean2D() {
	r.offsets = make(map[*Graph]float64, len(r.Reactants)+len(r.Products))
	x := 0.0
	for _, frag := range r.Reactants {
		r.offsets[frag] = x
		x += float64(frag.AtomCount()) + 1
	}
	x += 2 // gap for the reaction arrow
	for _, frag := range r.Products {
		r.offsets[frag] = x
		x += float64(frag.AtomCount()) + 1
	}
}

// Offset returns the display x-offset assigned to the fragment by Clean2D,
// or 0 when Clean2D has not run.
func (r *Reaction) Offset(frag *Graph) float64 { return r.offsets[frag] }
