package cluster

import (
	"fmt"
	"sort"

	"github.com/synforge/routecluster/pkg/chem"
)

// Cluster groups the routes sharing one disconnection pattern.
type Cluster struct {
	// ID is "<bondCount>.<index>", where index counts 1-based within each
	// distinct bond count. IDs are deterministic for a given input set.
	ID string

	// Representative is the graph of the first member route in id order.
	Representative *chem.Graph

	// StrategicBonds is the representative's ordered strategic-bond set.
	StrategicBonds []chem.Bond

	// RouteIDs lists the member routes, always sorted.
	RouteIDs []RouteID
}

// Size returns the number of member routes.
func (c *Cluster) Size() int { return len(c.RouteIDs) }

// ClusterRoutes partitions routes into clusters keyed by disconnection
// pattern. With useStrategicBonds the grouping key is the structural
// signature of each route's strategic-bond set; otherwise it is the
// whole-graph signature. Keys compare by value, so structurally identical
// routes land together regardless of atom numbering or map order.
//
// Cluster ids are assigned by processing groups in ascending
// (bondCount, key) order, which makes the result independent of map
// iteration order. An empty input yields an empty result.
func ClusterRoutes(graphs RouteMap, useStrategicBonds bool) map[string]*Cluster {
	out := make(map[string]*Cluster, len(graphs))
	if len(graphs) == 0 {
		return out
	}

	// Explicit get-or-insert on the string key: grouping equality is
	// structural, so the signature string is the literal map key.
	groups := make(map[string]*Cluster)
	var keys []string

	for _, id := range graphs.RouteIDs() {
		g := graphs[id]
		var key string
		if useStrategicBonds {
			key = g.StrategicKey()
		} else {
			key = g.Signature()
		}

		grp, ok := groups[key]
		if !ok {
			grp = &Cluster{
				Representative: g,
				StrategicBonds: g.StrategicBonds(),
			}
			groups[key] = grp
			keys = append(keys, key)
		}
		grp.RouteIDs = append(grp.RouteIDs, id)
	}

	// Members arrive in sorted id order, but keep the invariant explicit.
	for _, grp := range groups {
		sort.Slice(grp.RouteIDs, func(i, j int) bool { return grp.RouteIDs[i] < grp.RouteIDs[j] })
	}

	// Shorter bond sets first; ties broken by the key's string form, which
	// also covers keys with no natural order.
	sort.Slice(keys, func(i, j int) bool {
		bi, bj := len(groups[keys[i]].StrategicBonds), len(groups[keys[j]].StrategicBonds)
		if bi != bj {
			return bi < bj
		}
		return keys[i] < keys[j]
	})

	indexByCount := make(map[int]int)
	for _, key := range keys {
		grp := groups[key]
		count := len(grp.StrategicBonds)
		indexByCount[count]++
		grp.ID = fmt.Sprintf("%d.%d", count, indexByCount[count])
		out[grp.ID] = grp
	}
	return out
}

// ClusterIDs returns the cluster ids sorted by (bondCount, index).
func ClusterIDs(clusters map[string]*Cluster) []string {
	ids := make([]string, 0, len(clusters))
	for id := range clusters {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		var ci, cj, ni, nj int
		fmt.Sscanf(ids[i], "%d.%d", &ci, &ni)
		fmt.Sscanf(ids[j], "%d.%d", &cj, &nj)
		if ci != cj {
			return ci < cj
		}
		return ni < nj
	})
	return ids
}
