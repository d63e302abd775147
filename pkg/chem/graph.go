package chem

import (
	"errors"
	"slices"
	"sort"
)

var (
	// ErrInvalidAtomNum is returned by [Graph.AddAtom] when the atom number
	// is not positive. Atom numbers follow chemical atom-mapping conventions
	// and start at 1.
	ErrInvalidAtomNum = errors.New("atom number must be positive")

	// ErrDuplicateAtom is returned by [Graph.AddAtom] when an atom with the
	// same number already exists. Atom numbers must be unique per graph.
	ErrDuplicateAtom = errors.New("duplicate atom number")

	// ErrEmptyElement is returned by [Graph.AddAtom] when the element symbol
	// is empty.
	ErrEmptyElement = errors.New("element symbol must not be empty")

	// ErrUnknownAtom is returned by [Graph.AddBond] and [Graph.Substructure]
	// when a referenced atom does not exist in the graph.
	ErrUnknownAtom = errors.New("unknown atom")

	// ErrSelfBond is returned by [Graph.AddBond] when both endpoints are the
	// same atom.
	ErrSelfBond = errors.New("bond endpoints must differ")

	// ErrDuplicateBond is returned by [Graph.AddBond] when a bond between the
	// same pair of atoms already exists.
	ErrDuplicateBond = errors.New("duplicate bond")
)

// Dynamics tags a bond with its behavior across the reaction sequence a
// transformation graph condenses. Unchanged bonds are spectators; the other
// three kinds are "dynamic" and mark where chemistry happens.
type Dynamics int

const (
	// BondUnchanged marks a bond present and identical on both sides of the
	// transformation.
	BondUnchanged Dynamics = iota
	// BondFormed marks a bond created during the transformation. Formed bonds
	// are the retrosynthetic disconnection points (strategic bonds).
	BondFormed
	// BondBroken marks a bond destroyed during the transformation.
	BondBroken
	// BondOrderChanged marks a bond whose order differs between the two sides.
	BondOrderChanged
)

// String returns the serialization name of the dynamics tag.
func (d Dynamics) String() string {
	switch d {
	case BondFormed:
		return "formed"
	case BondBroken:
		return "broken"
	case BondOrderChanged:
		return "order-changed"
	default:
		return "unchanged"
	}
}

// IsDynamic reports whether the tag marks a reacting bond
// (formed, broken, or order-changed).
func (d Dynamics) IsDynamic() bool { return d != BondUnchanged }

// Atom is a vertex of a transformation graph. Num is the atom-map number and
// uniquely identifies the atom within its graph; route graphs for the same
// target share the target's atom numbering.
type Atom struct {
	Num     int    // Atom-map number, unique per graph, >= 1
	Element string // Element symbol ("C", "N", "O", ...)
	Charge  int    // Formal charge
}

// Bond is an edge between two atoms, annotated with its reaction dynamics.
// Endpoints are unordered; accessors normalize them so A1 < A2.
type Bond struct {
	A1, A2   int      // Endpoint atom numbers
	Order    int      // Bond order (1 = single, 2 = double, ...)
	Dynamics Dynamics // Behavior across the transformation
}

// Endpoints returns the bond's atom numbers in ascending order.
func (b Bond) Endpoints() (int, int) {
	if b.A1 > b.A2 {
		return b.A2, b.A1
	}
	return b.A1, b.A2
}

// bondKey is the normalized map key for a bond (a < b).
type bondKey struct{ a, b int }

func keyFor(a1, a2 int) bondKey {
	if a1 > a2 {
		a1, a2 = a2, a1
	}
	return bondKey{a1, a2}
}

// Graph is a condensed transformation graph: atoms as vertices, bonds tagged
// with their reaction dynamics as edges. It may be disconnected; components
// partition the atom set.
//
// Graphs are treated as immutable values once built. Mutating constructors
// (Substructure, CutAtBonds, Without*) always return new graphs and never
// touch the receiver. Graph is not safe for concurrent mutation; concurrent
// reads are fine.
type Graph struct {
	atoms map[int]Atom
	bonds map[bondKey]Bond
	adj   map[int][]int // atom -> neighbor atom numbers
}

// NewGraph creates an empty transformation graph.
func NewGraph() *Graph {
	return &Graph{
		atoms: make(map[int]Atom),
		bonds: make(map[bondKey]Bond),
		adj:   make(map[int][]int),
	}
}

// AddAtom adds an atom to the graph.
// Returns ErrInvalidAtomNum, ErrEmptyElement, or ErrDuplicateAtom on bad input.
func (g *Graph) AddAtom(a Atom) error {
	if a.Num <= 0 {
		return ErrInvalidAtomNum
	}
	if a.Element == "" {
		return ErrEmptyElement
	}
	if _, exists := g.atoms[a.Num]; exists {
		return ErrDuplicateAtom
	}
	g.atoms[a.Num] = a
	return nil
}

// AddBond adds a bond between two existing atoms.
// Returns ErrUnknownAtom, ErrSelfBond, or ErrDuplicateBond on bad input.
func (g *Graph) AddBond(b Bond) error {
	if b.A1 == b.A2 {
		return ErrSelfBond
	}
	if _, ok := g.atoms[b.A1]; !ok {
		return ErrUnknownAtom
	}
	if _, ok := g.atoms[b.A2]; !ok {
		return ErrUnknownAtom
	}
	k := keyFor(b.A1, b.A2)
	if _, exists := g.bonds[k]; exists {
		return ErrDuplicateBond
	}
	b.A1, b.A2 = b.Endpoints()
	g.bonds[k] = b
	g.adj[b.A1] = append(g.adj[b.A1], b.A2)
	g.adj[b.A2] = append(g.adj[b.A2], b.A1)
	return nil
}

// AtomCount returns the number of atoms.
func (g *Graph) AtomCount() int { return len(g.atoms) }

// BondCount returns the number of bonds.
func (g *Graph) BondCount() int { return len(g.bonds) }

// Atom returns the atom with the given number and true, or a zero Atom and
// false if not present.
func (g *Graph) Atom(num int) (Atom, bool) {
	a, ok := g.atoms[num]
	return a, ok
}

// Bond returns the bond between the two atoms and true, or a zero Bond and
// false if not present. Endpoint order does not matter.
func (g *Graph) Bond(a1, a2 int) (Bond, bool) {
	b, ok := g.bonds[keyFor(a1, a2)]
	return b, ok
}

// Atoms returns all atoms sorted by atom number.
func (g *Graph) Atoms() []Atom {
	out := make([]Atom, 0, len(g.atoms))
	for _, a := range g.atoms {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Num < out[j].Num })
	return out
}

// AtomNums returns all atom numbers in ascending order.
func (g *Graph) AtomNums() []int {
	out := make([]int, 0, len(g.atoms))
	for n := range g.atoms {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Bonds returns all bonds sorted by their normalized endpoints.
func (g *Graph) Bonds() []Bond {
	out := make([]Bond, 0, len(g.bonds))
	for _, b := range g.bonds {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A1 != out[j].A1 {
			return out[i].A1 < out[j].A1
		}
		return out[i].A2 < out[j].A2
	})
	return out
}

// Neighbors returns the atom numbers adjacent to the given atom, ascending.
// Returns nil for isolated or unknown atoms.
func (g *Graph) Neighbors(num int) []int {
	ns := g.adj[num]
	if len(ns) == 0 {
		return nil
	}
	out := slices.Clone(ns)
	sort.Ints(out)
	return out
}

// Degree returns the number of bonds incident to the atom.
func (g *Graph) Degree(num int) int { return len(g.adj[num]) }

// MaxAtomNum returns the highest atom number in the graph, or 0 when empty.
func (g *Graph) MaxAtomNum() int {
	max := 0
	for n := range g.atoms {
		if n > max {
			max = n
		}
	}
	return max
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	out := NewGraph()
	for n, a := range g.atoms {
		out.atoms[n] = a
	}
	for k, b := range g.bonds {
		out.bonds[k] = b
	}
	for n, ns := range g.adj {
		out.adj[n] = slices.Clone(ns)
	}
	return out
}

// ConnectedComponents returns the atom numbers of each connected component.
// Atoms within a component are sorted ascending; components are ordered by
// their smallest atom number. Returns nil for an empty graph.
func (g *Graph) ConnectedComponents() [][]int {
	if len(g.atoms) == 0 {
		return nil
	}
	seen := make(map[int]bool, len(g.atoms))
	var comps [][]int
	for _, start := range g.AtomNums() {
		if seen[start] {
			continue
		}
		comp := []int{}
		queue := []int{start}
		seen[start] = true
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			comp = append(comp, n)
			for _, nb := range g.adj[n] {
				if !seen[nb] {
					seen[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		sort.Ints(comp)
		comps = append(comps, comp)
	}
	return comps
}

// Substructure returns the induced subgraph on the given atom numbers:
// the named atoms plus every bond whose endpoints are both included.
// Returns ErrUnknownAtom if any atom is not part of the graph.
func (g *Graph) Substructure(nums []int) (*Graph, error) {
	out := NewGraph()
	keep := make(map[int]bool, len(nums))
	for _, n := range nums {
		a, ok := g.atoms[n]
		if !ok {
			return nil, ErrUnknownAtom
		}
		if keep[n] {
			continue
		}
		keep[n] = true
		out.atoms[n] = a
	}
	for k, b := range g.bonds {
		if keep[b.A1] && keep[b.A2] {
			out.bonds[k] = b
			out.adj[b.A1] = append(out.adj[b.A1], b.A2)
			out.adj[b.A2] = append(out.adj[b.A2], b.A1)
		}
	}
	return out, nil
}

// WithoutAtoms returns a copy of the graph with the given atoms (and their
// incident bonds) removed. Unknown atom numbers are ignored.
func (g *Graph) WithoutAtoms(nums []int) *Graph {
	drop := make(map[int]bool, len(nums))
	for _, n := range nums {
		drop[n] = true
	}
	keep := make([]int, 0, len(g.atoms))
	for n := range g.atoms {
		if !drop[n] {
			keep = append(keep, n)
		}
	}
	sub, _ := g.Substructure(keep)
	return sub
}

// WithoutBonds returns a copy of the graph with the given bonds removed.
// Atoms are kept. Bonds not present in the graph are ignored.
func (g *Graph) WithoutBonds(bonds []Bond) *Graph {
	drop := make(map[bondKey]bool, len(bonds))
	for _, b := range bonds {
		drop[keyFor(b.A1, b.A2)] = true
	}
	out := NewGraph()
	for n, a := range g.atoms {
		out.atoms[n] = a
	}
	for k, b := range g.bonds {
		if drop[k] {
			continue
		}
		out.bonds[k] = b
		out.adj[b.A1] = append(out.adj[b.A1], b.A2)
		out.adj[b.A2] = append(out.adj[b.A2], b.A1)
	}
	return out
}
