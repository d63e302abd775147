package cluster

import (
	"sort"
	"strings"

	"github.com/synforge/routecluster/pkg/chem"
)

// PostProcess collapses the leaving-group variation that is constant across
// an entire subgroup. An attachment point is constant when every member
// route carries a structurally identical leaving group there (including the
// no-leaving-group case). Constant points are stripped from the synthon
// structure, the canonical reaction is rebuilt from the reduced structure,
// and the per-route tables are reindexed with the remaining points shifted
// down.
//
// The subgroup is mutated in place and returned. The Processed flag guards
// the transition: calling PostProcess on a processed subgroup is a no-op
// that returns the same object unchanged.
func PostProcess(sg *Subgroup) *Subgroup {
	if sg == nil || sg.Processed {
		return sg
	}

	n := len(sg.AttachPoints)
	constant := make([]bool, n)
	for i := 0; i < n; i++ {
		seen := make(map[string]bool)
		for _, rid := range sg.RouteIDs {
			seen[lgSignature(routeLG(sg, rid, i))] = true
		}
		constant[i] = len(seen) == 1
	}

	// Strip constant leaving groups from the structure. The structure holds
	// the first route's instances, which are identical across the subgroup
	// at constant points by definition.
	var dropAtoms []int
	for i, p := range sg.AttachPoints {
		if constant[i] {
			dropAtoms = append(dropAtoms, p.LGAtoms...)
		}
	}
	reduced := sg.SynthonStructure.WithoutAtoms(dropAtoms)

	if rxn, err := chem.ReactionFromFragments(reduced); err == nil {
		rxn.Clean2D()
		sg.SynthonReaction = rxn
	}

	// Reindex: keep non-constant points in order, shifting indices down.
	var points []chem.AttachPoint
	for i, p := range sg.AttachPoints {
		if !constant[i] {
			points = append(points, p)
		}
	}
	for rid, lgs := range sg.RoutesData {
		var residual []*chem.Graph
		for i := 0; i < n; i++ {
			if !constant[i] {
				residual = append(residual, lgAt(lgs, i))
			}
		}
		sg.RoutesData[rid] = residual
	}

	sg.SynthonStructure = reduced
	sg.AttachPoints = points
	sg.GroupLGs = groupByResidualLGs(sg)
	sg.Processed = true
	return sg
}

// groupByResidualLGs partitions the subgroup's routes by their residual
// leaving-group assignment: routes whose leaving groups match at every
// remaining attachment point share a key.
func groupByResidualLGs(sg *Subgroup) map[RouteID][]RouteID {
	byKey := make(map[string][]RouteID)
	for _, rid := range sg.RouteIDs {
		sigs := make([]string, len(sg.AttachPoints))
		for i := range sg.AttachPoints {
			sigs[i] = lgSignature(routeLG(sg, rid, i))
		}
		key := strings.Join(sigs, "+")
		byKey[key] = append(byKey[key], rid)
	}

	out := make(map[RouteID][]RouteID, len(byKey))
	for _, members := range byKey {
		sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
		out[members[0]] = members
	}
	return out
}

// routeLG returns the leaving group of one route at an attachment index,
// tolerating short tables.
func routeLG(sg *Subgroup, rid RouteID, i int) *chem.Graph {
	return lgAt(sg.RoutesData[rid], i)
}

func lgAt(lgs []*chem.Graph, i int) *chem.Graph {
	if i < 0 || i >= len(lgs) {
		return nil
	}
	return lgs[i]
}

// lgSignature is the comparison key for a leaving group; absent groups get a
// distinct marker so "no leaving group everywhere" counts as constant.
func lgSignature(lg *chem.Graph) string {
	if lg == nil {
		return "none"
	}
	return lg.Signature()
}
