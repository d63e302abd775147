package graphio

import (
	"fmt"

	"github.com/synforge/routecluster/pkg/chem"
)

// Atom is the wire form of a graph vertex.
type Atom struct {
	Num     int    `json:"num" bson:"num"`
	Element string `json:"element" bson:"element"`
	Charge  int    `json:"charge,omitempty" bson:"charge,omitempty"`
}

// Bond is the wire form of a graph edge. Dynamics holds the serialization
// name of the reaction dynamics tag; empty means unchanged.
type Bond struct {
	A1       int    `json:"a1" bson:"a1"`
	A2       int    `json:"a2" bson:"a2"`
	Order    int    `json:"order" bson:"order"`
	Dynamics string `json:"dynamics,omitempty" bson:"dynamics,omitempty"`
}

// Graph is the wire form of a transformation graph.
type Graph struct {
	Atoms []Atom `json:"atoms"`
	Bonds []Bond `json:"bonds"`
}

var dynamicsFromString = map[string]chem.Dynamics{
	"":              chem.BondUnchanged,
	"unchanged":     chem.BondUnchanged,
	"formed":        chem.BondFormed,
	"broken":        chem.BondBroken,
	"order-changed": chem.BondOrderChanged,
}

// Encode converts a transformation graph to its wire form. Atoms and bonds
// come out in the graph's canonical order, so equal graphs encode equally.
// Encoding nil returns nil.
func Encode(g *chem.Graph) *Graph {
	if g == nil {
		return nil
	}
	out := &Graph{
		Atoms: make([]Atom, 0, g.AtomCount()),
		Bonds: make([]Bond, 0, g.BondCount()),
	}
	for _, a := range g.Atoms() {
		out.Atoms = append(out.Atoms, Atom{Num: a.Num, Element: a.Element, Charge: a.Charge})
	}
	for _, b := range g.Bonds() {
		wb := Bond{A1: b.A1, A2: b.A2, Order: b.Order}
		if b.Dynamics.IsDynamic() {
			wb.Dynamics = b.Dynamics.String()
		}
		out.Bonds = append(out.Bonds, wb)
	}
	return out
}

// Decode rebuilds a transformation graph from its wire form.
//
// Decode returns an error if an atom is duplicated or malformed, a bond
// references an unknown atom, or a dynamics name is not recognized. Errors
// are wrapped with the atom number or bond endpoints that caused them.
// Decoding nil returns nil.
func (d *Graph) Decode() (*chem.Graph, error) {
	if d == nil {
		return nil, nil
	}
	g := chem.NewGraph()
	for _, a := range d.Atoms {
		err := g.AddAtom(chem.Atom{Num: a.Num, Element: a.Element, Charge: a.Charge})
		if err != nil {
			return nil, fmt.Errorf("atom %d: %w", a.Num, err)
		}
	}
	for _, b := range d.Bonds {
		dyn, ok := dynamicsFromString[b.Dynamics]
		if !ok {
			return nil, fmt.Errorf("bond %d-%d: unknown dynamics %q", b.A1, b.A2, b.Dynamics)
		}
		err := g.AddBond(chem.Bond{A1: b.A1, A2: b.A2, Order: b.Order, Dynamics: dyn})
		if err != nil {
			return nil, fmt.Errorf("bond %d-%d: %w", b.A1, b.A2, err)
		}
	}
	return g, nil
}
