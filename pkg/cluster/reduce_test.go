package cluster

import (
	"testing"

	"github.com/synforge/routecluster/pkg/chem"
)

func TestReduceSingleComponentUnchanged(t *testing.T) {
	g := carbonChain(t, 4)
	r := Reduce(g)
	if !chem.Equal(g, r) {
		t.Error("reducing a connected graph must preserve its structure")
	}
	if r.AtomCount() != 4 {
		t.Errorf("atoms = %d, want 4", r.AtomCount())
	}
}

func TestReduceKeepsLargestComponent(t *testing.T) {
	// Components {1,2} and {5,6,7}: the larger one survives.
	g := buildGraph(t,
		[]chem.Atom{c(1), c(2), c(5), c(6), c(7)},
		[]chem.Bond{{A1: 1, A2: 2, Order: 1}, {A1: 5, A2: 6, Order: 1}, {A1: 6, A2: 7, Order: 1}})

	r := Reduce(g)
	if r.AtomCount() != 3 {
		t.Fatalf("atoms = %d, want 3", r.AtomCount())
	}
	if _, ok := r.Atom(1); ok {
		t.Error("spectator component should be gone")
	}
	for _, n := range []int{5, 6, 7} {
		if _, ok := r.Atom(n); !ok {
			t.Errorf("atom %d missing from reduced graph", n)
		}
	}

	// Component invariant: reduced size equals the maximum component size.
	max := 0
	for _, comp := range g.ConnectedComponents() {
		if len(comp) > max {
			max = len(comp)
		}
	}
	if r.AtomCount() != max {
		t.Errorf("reduced size = %d, want max component size %d", r.AtomCount(), max)
	}
}

func TestReduceTieKeepsFirstComponent(t *testing.T) {
	g := buildGraph(t,
		[]chem.Atom{c(1), c(2), c(5), c(6)},
		[]chem.Bond{{A1: 1, A2: 2, Order: 1}, {A1: 5, A2: 6, Order: 1}})

	r := Reduce(g)
	if _, ok := r.Atom(1); !ok {
		t.Error("tie should keep the first component in component order")
	}
}

func TestReduceDegenerate(t *testing.T) {
	empty := chem.NewGraph()
	if Reduce(empty) != empty {
		t.Error("empty graph should be returned unchanged")
	}
	if Reduce(nil) != nil {
		t.Error("nil graph should pass through")
	}
}

func TestReduceIdempotent(t *testing.T) {
	g := buildGraph(t,
		[]chem.Atom{c(1), c(2), c(5), c(6), c(7)},
		[]chem.Bond{{A1: 1, A2: 2, Order: 1}, {A1: 5, A2: 6, Order: 1}, {A1: 6, A2: 7, Order: 1}})

	once := Reduce(g)
	twice := Reduce(once)
	if !chem.Equal(once, twice) {
		t.Error("Reduce(Reduce(g)) must equal Reduce(g)")
	}
}
