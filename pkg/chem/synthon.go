package chem

import (
	"fmt"
	"sort"
	"strings"
)

// StrategicBonds returns the bonds flagged as retrosynthetic disconnection
// points: the bonds formed across the route. The sequence is ordered by
// normalized endpoints, so two graphs with the same bond set yield the same
// sequence.
func (g *Graph) StrategicBonds() []Bond {
	var out []Bond
	for _, b := range g.Bonds() {
		if b.Dynamics == BondFormed {
			out = append(out, b)
		}
	}
	return out
}

// StrategicKey returns the grouping key for the graph's strategic-bond set:
// the bond count plus the signature of the subgraph induced by the strategic
// bonds' endpoint atoms. Graphs whose disconnection patterns are structurally
// identical produce equal keys regardless of atom numbering.
func (g *Graph) StrategicKey() string {
	sb := g.StrategicBonds()
	if len(sb) == 0 {
		return "0|none"
	}
	seen := make(map[int]bool)
	var nums []int
	for _, b := range sb {
		for _, n := range []int{b.A1, b.A2} {
			if !seen[n] {
				seen[n] = true
				nums = append(nums, n)
			}
		}
	}
	sort.Ints(nums)
	sub, err := g.Substructure(nums)
	if err != nil {
		// Endpoints always belong to the graph; fall back to a count-only key.
		return fmt.Sprintf("%d|invalid", len(sb))
	}
	return fmt.Sprintf("%d|%s", len(sb), sub.Signature())
}

// CutAtBonds removes the given bonds and returns the resulting connected
// fragments (synthons) as induced substructures, ordered by their smallest
// atom number. Returns nil when bonds is empty: cutting nothing produces no
// usable synthon decomposition.
func (g *Graph) CutAtBonds(bonds []Bond) []*Graph {
	if len(bonds) == 0 {
		return nil
	}
	cut := g.WithoutBonds(bonds)
	comps := cut.ConnectedComponents()
	frags := make([]*Graph, 0, len(comps))
	for _, comp := range comps {
		sub, err := cut.Substructure(comp)
		if err != nil {
			continue
		}
		frags = append(frags, sub)
	}
	return frags
}

// AttachPoint marks an atom of a synthon fragment where a strategic bond was
// cut. LGAtoms lists the atoms of the leaving group hanging off the point in
// the graph the point was derived from; empty when the point bears no
// leaving group.
type AttachPoint struct {
	Atom    int   `json:"atom" bson:"atom"`
	LGAtoms []int `json:"lg_atoms,omitempty" bson:"lg_atoms,omitempty"`
}

// Synthons carries the result of decomposing a route graph at its strategic
// bonds and separating each fragment into a reacting core and the leaving
// groups attached at the cut points.
type Synthons struct {
	// Structure is the disjoint union of the full fragments (cores plus
	// leaving groups) as one graph.
	Structure *Graph
	// Cores are the fragment cores, ordered by smallest atom number.
	Cores []*Graph
	// Points are the attachment points across all fragments, ordered by
	// atom number. Index positions are the leaving-group table indices.
	Points []AttachPoint
	// LeavingGroups holds one graph per attachment point, aligned with
	// Points. A nil entry means no leaving group at that point.
	LeavingGroups []*Graph
}

// Key returns the synthon-detail descriptor: the sorted core signatures
// joined into one string. Routes with identical descriptors exhibit the same
// synthon shape even when their leaving groups differ.
func (s *Synthons) Key() string {
	sigs := make([]string, len(s.Cores))
	for i, c := range s.Cores {
		sigs[i] = c.Signature()
	}
	sort.Strings(sigs)
	return strings.Join(sigs, "+")
}

// Decompose cuts the graph at its strategic bonds and splits every fragment
// into its reacting core and per-attachment-point leaving groups.
//
// An attachment point is an endpoint of a cut bond. Its leaving group is the
// union of the branches that hang off the point and contain neither a dynamic
// bond nor another attachment point; the core is the fragment without those
// branches. Attachment points are ordered by atom number, which route graphs
// for the same target share, so indices align across routes of a cluster.
//
// Returns nil when the graph has no strategic bonds.
func (g *Graph) Decompose() *Synthons {
	sb := g.StrategicBonds()
	frags := g.CutAtBonds(sb)
	if frags == nil {
		return nil
	}

	attach := make(map[int]bool)
	for _, b := range sb {
		attach[b.A1] = true
		attach[b.A2] = true
	}

	s := &Synthons{Structure: g.WithoutBonds(sb)}
	var points []int
	lgByPoint := make(map[int]*Graph)

	for _, frag := range frags {
		core, lgs := splitFragment(frag, attach)
		s.Cores = append(s.Cores, core)
		for atom, lg := range lgs {
			lgByPoint[atom] = lg
		}
		for _, n := range frag.AtomNums() {
			if attach[n] {
				points = append(points, n)
			}
		}
	}
	sort.Ints(points)

	for _, p := range points {
		lg := lgByPoint[p]
		ap := AttachPoint{Atom: p}
		if lg != nil {
			ap.LGAtoms = lg.AtomNums()
		}
		s.Points = append(s.Points, ap)
		s.LeavingGroups = append(s.LeavingGroups, lg)
	}
	return s
}

// splitFragment separates a synthon fragment into its reacting core and the
// leaving groups at each attachment point it contains. A branch belongs to a
// leaving group only if removing the attachment atom disconnects it from the
// rest of the fragment and it carries no dynamic bond or attachment point of
// its own.
func splitFragment(frag *Graph, attach map[int]bool) (core *Graph, lgs map[int]*Graph) {
	lgs = make(map[int]*Graph)
	var allLGAtoms []int

	for _, p := range frag.AtomNums() {
		if !attach[p] {
			continue
		}
		rest := frag.WithoutAtoms([]int{p})
		var lgAtoms []int
		for _, comp := range rest.ConnectedComponents() {
			if branchIsLeavingGroup(frag, comp, attach) {
				lgAtoms = append(lgAtoms, comp...)
			}
		}
		if len(lgAtoms) == 0 {
			continue
		}
		sort.Ints(lgAtoms)
		lg, err := frag.Substructure(lgAtoms)
		if err != nil {
			continue
		}
		lgs[p] = lg
		allLGAtoms = append(allLGAtoms, lgAtoms...)
	}

	core = frag.WithoutAtoms(allLGAtoms)
	return core, lgs
}

// branchIsLeavingGroup reports whether a component of the fragment-minus-point
// graph qualifies as a leaving group branch: no dynamic bonds within the
// branch and no attachment atoms inside it.
func branchIsLeavingGroup(frag *Graph, comp []int, attach map[int]bool) bool {
	in := make(map[int]bool, len(comp))
	for _, n := range comp {
		if attach[n] {
			return false
		}
		in[n] = true
	}
	for _, b := range frag.Bonds() {
		if b.Dynamics.IsDynamic() && (in[b.A1] || in[b.A2]) {
			return false
		}
	}
	return true
}
