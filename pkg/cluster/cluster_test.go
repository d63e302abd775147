package cluster

import (
	"reflect"
	"sort"
	"testing"
)

func TestClusterRoutesEmpty(t *testing.T) {
	got := ClusterRoutes(RouteMap{}, false)
	if len(got) != 0 {
		t.Errorf("clusters = %d, want 0", len(got))
	}
}

func TestClusterRoutesByStrategicBonds(t *testing.T) {
	graphs := RouteMap{
		"A": oneBondRoute(t, "", ""),
		"B": oneBondRoute(t, "", ""),
		"C": oneBondRoute(t, "", ""),
		"D": twoBondRoute(t),
	}

	clusters := ClusterRoutes(graphs, true)
	if len(clusters) != 2 {
		t.Fatalf("clusters = %d, want 2", len(clusters))
	}

	one, ok := clusters["1.1"]
	if !ok {
		t.Fatalf("missing cluster 1.1, got ids %v", ClusterIDs(clusters))
	}
	if !reflect.DeepEqual(one.RouteIDs, []RouteID{"A", "B", "C"}) {
		t.Errorf("1.1 members = %v, want [A B C]", one.RouteIDs)
	}
	if one.Size() != 3 {
		t.Errorf("1.1 size = %d, want 3", one.Size())
	}
	if len(one.StrategicBonds) != 1 {
		t.Errorf("1.1 strategic bonds = %d, want 1", len(one.StrategicBonds))
	}

	two, ok := clusters["2.1"]
	if !ok {
		t.Fatalf("route D should form a 2-bond cluster, got ids %v", ClusterIDs(clusters))
	}
	if !reflect.DeepEqual(two.RouteIDs, []RouteID{"D"}) {
		t.Errorf("2.1 members = %v, want [D]", two.RouteIDs)
	}
}

func TestClusterRoutesPartition(t *testing.T) {
	graphs := RouteMap{
		"A": oneBondRoute(t, "O", ""),
		"B": oneBondRoute(t, "", "N"),
		"C": twoBondRoute(t),
		"D": carbonChain(t, 5),
	}

	clusters := ClusterRoutes(graphs, true)

	var members []RouteID
	for _, cl := range clusters {
		members = append(members, cl.RouteIDs...)
	}
	sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })

	if !reflect.DeepEqual(members, graphs.RouteIDs()) {
		t.Errorf("cluster members %v do not partition input ids %v", members, graphs.RouteIDs())
	}
}

func TestClusterRoutesDeterministicAcrossOrderings(t *testing.T) {
	build := func(order []string) RouteMap {
		m := make(RouteMap)
		for _, id := range order {
			switch id {
			case "A", "B", "C":
				m[RouteID(id)] = oneBondRoute(t, "", "")
			case "D":
				m[RouteID(id)] = twoBondRoute(t)
			}
		}
		return m
	}

	first := ClusterRoutes(build([]string{"A", "B", "C", "D"}), true)
	second := ClusterRoutes(build([]string{"D", "C", "B", "A"}), true)

	if len(first) != len(second) {
		t.Fatalf("cluster counts differ: %d vs %d", len(first), len(second))
	}
	for id, cl := range first {
		other, ok := second[id]
		if !ok {
			t.Fatalf("cluster %s missing from second run", id)
		}
		if !reflect.DeepEqual(cl.RouteIDs, other.RouteIDs) {
			t.Errorf("cluster %s members differ: %v vs %v", id, cl.RouteIDs, other.RouteIDs)
		}
	}
}

func TestClusterRoutesByFullSignature(t *testing.T) {
	graphs := RouteMap{
		"A": oneBondRoute(t, "O", ""),
		"B": oneBondRoute(t, "O", ""),
		"C": oneBondRoute(t, "N", ""), // different leaving group, different signature
	}

	clusters := ClusterRoutes(graphs, false)
	if len(clusters) != 2 {
		t.Fatalf("clusters = %d, want 2 (full-graph signature separates C)", len(clusters))
	}

	// Strategic grouping merges them again: same disconnection pattern.
	if got := ClusterRoutes(graphs, true); len(got) != 1 {
		t.Errorf("strategic clusters = %d, want 1", len(got))
	}
}

func TestClusterIDsOrdering(t *testing.T) {
	graphs := RouteMap{
		"A": oneBondRoute(t, "", ""),
		"D": twoBondRoute(t),
		"E": carbonChain(t, 4), // zero strategic bonds
	}

	clusters := ClusterRoutes(graphs, true)
	ids := ClusterIDs(clusters)
	want := []string{"0.1", "1.1", "2.1"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}
