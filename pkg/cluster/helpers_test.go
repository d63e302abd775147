package cluster

import (
	"testing"

	"github.com/synforge/routecluster/pkg/chem"
)

// buildGraph assembles a graph from literals, failing the test on error.
func buildGraph(t *testing.T, atoms []chem.Atom, bonds []chem.Bond) *chem.Graph {
	t.Helper()
	g := chem.NewGraph()
	for _, a := range atoms {
		if err := g.AddAtom(a); err != nil {
			t.Fatalf("AddAtom(%v): %v", a, err)
		}
	}
	for _, b := range bonds {
		if err := g.AddBond(b); err != nil {
			t.Fatalf("AddBond(%v): %v", b, err)
		}
	}
	return g
}

func c(num int) chem.Atom { return chem.Atom{Num: num, Element: "C"} }

// carbonChain builds a connected chain 1-2-...-n of unchanged single bonds.
func carbonChain(t *testing.T, n int) *chem.Graph {
	t.Helper()
	var atoms []chem.Atom
	var bonds []chem.Bond
	for i := 1; i <= n; i++ {
		atoms = append(atoms, c(i))
	}
	for i := 1; i < n; i++ {
		bonds = append(bonds, chem.Bond{A1: i, A2: i + 1, Order: 1})
	}
	return buildGraph(t, atoms, bonds)
}

// oneBondRoute builds the shared two-synthon skeleton: C1-C2-C3 · C4-C5-C6
// with strategic bond 3-4, a broken bond 2-3, and an order-changed bond 4-5.
// lg3 and lg4 attach leaving-group atoms 7 and 8 at the cut endpoints; empty
// string attaches nothing.
func oneBondRoute(t *testing.T, lg3, lg4 string) *chem.Graph {
	t.Helper()
	atoms := []chem.Atom{c(1), c(2), c(3), c(4), c(5), c(6)}
	bonds := []chem.Bond{
		{A1: 1, A2: 2, Order: 1},
		{A1: 2, A2: 3, Order: 1, Dynamics: chem.BondBroken},
		{A1: 3, A2: 4, Order: 1, Dynamics: chem.BondFormed},
		{A1: 4, A2: 5, Order: 1, Dynamics: chem.BondOrderChanged},
		{A1: 5, A2: 6, Order: 1},
	}
	if lg3 != "" {
		atoms = append(atoms, chem.Atom{Num: 7, Element: lg3})
		bonds = append(bonds, chem.Bond{A1: 3, A2: 7, Order: 1})
	}
	if lg4 != "" {
		atoms = append(atoms, chem.Atom{Num: 8, Element: lg4})
		bonds = append(bonds, chem.Bond{A1: 4, A2: 8, Order: 1})
	}
	return buildGraph(t, atoms, bonds)
}

// twoBondRoute builds a route with two strategic bonds (2-3 and 4-5).
func twoBondRoute(t *testing.T) *chem.Graph {
	t.Helper()
	return buildGraph(t,
		[]chem.Atom{c(1), c(2), c(3), c(4), c(5), c(6)},
		[]chem.Bond{
			{A1: 1, A2: 2, Order: 1, Dynamics: chem.BondBroken},
			{A1: 2, A2: 3, Order: 1, Dynamics: chem.BondFormed},
			{A1: 3, A2: 4, Order: 1, Dynamics: chem.BondOrderChanged},
			{A1: 4, A2: 5, Order: 1, Dynamics: chem.BondFormed},
			{A1: 5, A2: 6, Order: 1, Dynamics: chem.BondBroken},
		})
}
