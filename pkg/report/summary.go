package report

import (
	"bytes"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/synforge/routecluster/pkg/cluster"
)

// ClusterSummary formats a clustering result as an aligned text table, one
// line per cluster, ordered by cluster id.
func ClusterSummary(clusters map[string]*cluster.Cluster) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CLUSTER\tROUTES\tSTRATEGIC BONDS")
	for _, id := range cluster.ClusterIDs(clusters) {
		c := clusters[id]
		fmt.Fprintf(w, "%s\t%d\t%d\n", id, c.Size(), len(c.StrategicBonds))
	}
	w.Flush()
	return buf.String()
}

// SubgroupSummary formats the refined subgroups of one cluster. Subgroups
// come out largest first; ties break on the first member id.
func SubgroupSummary(clusterID string, subs map[string]*cluster.Subgroup) string {
	ordered := make([]*cluster.Subgroup, 0, len(subs))
	for _, sg := range subs {
		ordered = append(ordered, sg)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Size() != ordered[j].Size() {
			return ordered[i].Size() > ordered[j].Size()
		}
		return firstMember(ordered[i]) < firstMember(ordered[j])
	})

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "cluster %s: %d subgroups\n", clusterID, len(ordered))
	for i, sg := range ordered {
		fmt.Fprintf(&buf, "  %d. %d routes", i+1, sg.Size())
		if sg.Processed {
			fmt.Fprintf(&buf, ", %d variable attachment points, %d leaving-group sets",
				len(sg.AttachPoints), len(sg.GroupLGs))
		}
		buf.WriteString("\n")
		for _, rid := range sg.RouteIDs {
			fmt.Fprintf(&buf, "     - %s\n", rid)
		}
	}
	return buf.String()
}

func firstMember(sg *cluster.Subgroup) cluster.RouteID {
	if len(sg.RouteIDs) == 0 {
		return ""
	}
	return sg.RouteIDs[0]
}
