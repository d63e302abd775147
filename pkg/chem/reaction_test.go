package chem

import (
	"errors"
	"reflect"
	"testing"
)

func TestReactionFromFragments(t *testing.T) {
	g := mustGraph(t,
		[]Atom{carbon(1), carbon(2), carbon(5), carbon(6), carbon(7)},
		[]Bond{{A1: 1, A2: 2, Order: 1}, {A1: 5, A2: 6, Order: 1}, {A1: 6, A2: 7, Order: 1}})

	rxn, err := ReactionFromFragments(g)
	if err != nil {
		t.Fatalf("ReactionFromFragments: %v", err)
	}
	if len(rxn.Products) != 1 {
		t.Fatalf("products = %d, want 1", len(rxn.Products))
	}
	// The fragment holding the highest atom number is the product.
	if got := rxn.Products[0].AtomNums(); !reflect.DeepEqual(got, []int{5, 6, 7}) {
		t.Errorf("product atoms = %v, want [5 6 7]", got)
	}
	if len(rxn.Reactants) != 1 {
		t.Fatalf("reactants = %d, want 1", len(rxn.Reactants))
	}
	if got := rxn.Reactants[0].AtomNums(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("reactant atoms = %v, want [1 2]", got)
	}
}

func TestReactionFromFragmentsEmpty(t *testing.T) {
	if _, err := ReactionFromFragments(NewGraph()); !errors.Is(err, ErrNoFragments) {
		t.Errorf("err = %v, want ErrNoFragments", err)
	}
}

func TestReactionFromFragmentsSingleComponent(t *testing.T) {
	g := chain(t, 3)
	rxn, err := ReactionFromFragments(g)
	if err != nil {
		t.Fatalf("ReactionFromFragments: %v", err)
	}
	if len(rxn.Reactants) != 0 || len(rxn.Products) != 1 {
		t.Errorf("got %d reactants, %d products; want 0 and 1",
			len(rxn.Reactants), len(rxn.Products))
	}
}

func TestClean2D(t *testing.T) {
	g := mustGraph(t,
		[]Atom{carbon(1), carbon(2), carbon(5), carbon(6)},
		[]Bond{{A1: 1, A2: 2, Order: 1}, {A1: 5, A2: 6, Order: 1}})

	rxn, err := ReactionFromFragments(g)
	if err != nil {
		t.Fatal(err)
	}

	before := rxn.Reactants[0].Signature()
	rxn.Clean2D()
	if rxn.Reactants[0].Signature() != before {
		t.Error("Clean2D must not alter graph structure")
	}
	if rxn.Offset(rxn.Products[0]) <= rxn.Offset(rxn.Reactants[0]) {
		t.Error("product offset should follow reactant offsets")
	}
}
