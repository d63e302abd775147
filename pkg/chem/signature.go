package chem

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Signature returns a canonical string for the graph: two graphs that differ
// only in atom numbering or construction order produce the same signature.
// Equality of signatures is the structural-equality oracle used by the
// clustering pipeline.
//
// Labels are computed by iterative neighborhood refinement: each atom starts
// from (element, charge, degree) and repeatedly absorbs the sorted labels of
// its bonded neighbors together with the bond order and dynamics tag, until
// the label partition stabilizes. The signature hashes the sorted final atom
// labels plus the sorted canonical bond descriptors.
func (g *Graph) Signature() string {
	if len(g.atoms) == 0 {
		return "empty"
	}

	labels := make(map[int]string, len(g.atoms))
	for n, a := range g.atoms {
		labels[n] = fmt.Sprintf("%s|%d|%d", a.Element, a.Charge, len(g.adj[n]))
	}

	// Refine until the number of distinct labels stops growing. Capped at
	// the atom count, which bounds the rounds any partition can take.
	prev := countDistinct(labels)
	for range g.atoms {
		next := make(map[int]string, len(labels))
		for n := range g.atoms {
			env := make([]string, 0, len(g.adj[n]))
			for _, nb := range g.adj[n] {
				b := g.bonds[keyFor(n, nb)]
				env = append(env, fmt.Sprintf("%d:%s:%s", b.Order, b.Dynamics, labels[nb]))
			}
			sort.Strings(env)
			next[n] = shortHash(labels[n] + "{" + strings.Join(env, ",") + "}")
		}
		labels = next
		if d := countDistinct(labels); d == prev {
			break
		} else {
			prev = d
		}
	}

	atomPart := make([]string, 0, len(g.atoms))
	for n := range g.atoms {
		atomPart = append(atomPart, labels[n])
	}
	sort.Strings(atomPart)

	bondPart := make([]string, 0, len(g.bonds))
	for _, b := range g.bonds {
		l1, l2 := labels[b.A1], labels[b.A2]
		if l1 > l2 {
			l1, l2 = l2, l1
		}
		bondPart = append(bondPart, fmt.Sprintf("%s~%d:%s~%s", l1, b.Order, b.Dynamics, l2))
	}
	sort.Strings(bondPart)

	sum := sha256.Sum256([]byte(strings.Join(atomPart, ";") + "#" + strings.Join(bondPart, ";")))
	return hex.EncodeToString(sum[:])
}

// Equal reports whether the two graphs have the same signature.
// A nil graph only equals another nil graph.
func Equal(a, b *Graph) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Signature() == b.Signature()
}

func countDistinct(labels map[int]string) int {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return len(set)
}

// shortHash truncates a sha256 to keep refinement labels bounded in size.
func shortHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:8])
}
