package chem

import "testing"

func TestSignatureRenumberingInvariant(t *testing.T) {
	// Propanol-like skeleton under two different atom numberings.
	a := mustGraph(t,
		[]Atom{carbon(1), carbon(2), carbon(3), {Num: 4, Element: "O"}},
		[]Bond{{A1: 1, A2: 2, Order: 1}, {A1: 2, A2: 3, Order: 1}, {A1: 3, A2: 4, Order: 1}})
	b := mustGraph(t,
		[]Atom{carbon(10), carbon(20), carbon(30), {Num: 40, Element: "O"}},
		[]Bond{{A1: 30, A2: 40, Order: 1}, {A1: 20, A2: 30, Order: 1}, {A1: 10, A2: 20, Order: 1}})

	if a.Signature() != b.Signature() {
		t.Error("renumbered graph should have identical signature")
	}
	if !Equal(a, b) {
		t.Error("Equal should hold for renumbered graphs")
	}
}

func TestSignatureDistinguishes(t *testing.T) {
	base := mustGraph(t,
		[]Atom{carbon(1), carbon(2)},
		[]Bond{{A1: 1, A2: 2, Order: 1}})

	tests := []struct {
		name  string
		build func(t *testing.T) *Graph
	}{
		{
			name: "Element",
			build: func(t *testing.T) *Graph {
				return mustGraph(t,
					[]Atom{carbon(1), {Num: 2, Element: "N"}},
					[]Bond{{A1: 1, A2: 2, Order: 1}})
			},
		},
		{
			name: "Charge",
			build: func(t *testing.T) *Graph {
				return mustGraph(t,
					[]Atom{carbon(1), {Num: 2, Element: "C", Charge: 1}},
					[]Bond{{A1: 1, A2: 2, Order: 1}})
			},
		},
		{
			name: "BondOrder",
			build: func(t *testing.T) *Graph {
				return mustGraph(t,
					[]Atom{carbon(1), carbon(2)},
					[]Bond{{A1: 1, A2: 2, Order: 2}})
			},
		},
		{
			name: "Dynamics",
			build: func(t *testing.T) *Graph {
				return mustGraph(t,
					[]Atom{carbon(1), carbon(2)},
					[]Bond{{A1: 1, A2: 2, Order: 1, Dynamics: BondFormed}})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Equal(base, tt.build(t)) {
				t.Error("signature should differ from base graph")
			}
		})
	}
}

func TestSignatureEmptyAndDeterministic(t *testing.T) {
	if NewGraph().Signature() != "empty" {
		t.Error("empty graph signature should be the empty marker")
	}

	g := chain(t, 6)
	if g.Signature() != g.Signature() {
		t.Error("signature must be stable across calls")
	}
}
