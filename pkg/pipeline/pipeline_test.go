package pipeline

import (
	"context"
	"reflect"
	"testing"

	"github.com/synforge/routecluster/pkg/cache"
	"github.com/synforge/routecluster/pkg/chem"
	"github.com/synforge/routecluster/pkg/cluster"
)

// testRoute builds a two-synthon route: C1-C2-C3 · C4-C5-C6 with strategic
// bond 3-4. A non-empty lg attaches a leaving-group atom 7 at atom 3.
func testRoute(t *testing.T, lg string) *chem.Graph {
	t.Helper()
	g := chem.NewGraph()
	for i := 1; i <= 6; i++ {
		if err := g.AddAtom(chem.Atom{Num: i, Element: "C"}); err != nil {
			t.Fatal(err)
		}
	}
	bonds := []chem.Bond{
		{A1: 1, A2: 2, Order: 1},
		{A1: 2, A2: 3, Order: 1, Dynamics: chem.BondBroken},
		{A1: 3, A2: 4, Order: 1, Dynamics: chem.BondFormed},
		{A1: 4, A2: 5, Order: 1, Dynamics: chem.BondOrderChanged},
		{A1: 5, A2: 6, Order: 1},
	}
	if lg != "" {
		if err := g.AddAtom(chem.Atom{Num: 7, Element: lg}); err != nil {
			t.Fatal(err)
		}
		bonds = append(bonds, chem.Bond{A1: 3, A2: 7, Order: 1})
	}
	for _, b := range bonds {
		if err := g.AddBond(b); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func testRoutes(t *testing.T) cluster.RouteMap {
	return cluster.RouteMap{
		"a": testRoute(t, "O"),
		"b": testRoute(t, "O"),
		"c": testRoute(t, "N"),
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.MaxRoutes != DefaultMaxRoutes {
		t.Errorf("MaxRoutes = %d, want default %d", opts.MaxRoutes, DefaultMaxRoutes)
	}
	if opts.Logger == nil {
		t.Error("Logger default should be set")
	}

	// Idempotent: a second call leaves everything in place.
	opts.MaxRoutes = 7
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if opts.MaxRoutes != 7 {
		t.Error("second call should not reapply defaults")
	}
}

func TestOptionsPostProcessImpliesSubcluster(t *testing.T) {
	opts := Options{PostProcess: true}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if !opts.Subcluster {
		t.Error("PostProcess should imply the subcluster stage")
	}
}

func TestOptionsRejectNegativeMaxRoutes(t *testing.T) {
	opts := Options{MaxRoutes: -1}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("negative MaxRoutes should be rejected")
	}
}

func TestRunnerExecute(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), testRoutes(t), Options{
		UseStrategicBonds: true,
		PostProcess:       true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.RouteCount != 3 {
		t.Errorf("routes = %d, want 3", result.Stats.RouteCount)
	}
	if result.RoutesHash == "" {
		t.Error("routes hash should be computed")
	}

	c, ok := result.Clusters["1.1"]
	if !ok {
		t.Fatalf("expected cluster 1.1, got %v", cluster.ClusterIDs(result.Clusters))
	}
	if c.Size() != 3 {
		t.Errorf("cluster size = %d, want 3", c.Size())
	}

	subs := result.Subgroups["1.1"]
	if len(subs) != 1 {
		t.Fatalf("subgroups = %d, want 1 (leaving groups must not split)", len(subs))
	}
	for _, sg := range subs {
		if !sg.Processed {
			t.Error("PostProcess option should process every subgroup")
		}
	}
	if result.Stats.SubgroupCount != 1 {
		t.Errorf("subgroup count = %d, want 1", result.Stats.SubgroupCount)
	}
}

func TestRunnerExecuteWithoutSubcluster(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), testRoutes(t), Options{
		UseStrategicBonds: true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Subgroups != nil {
		t.Error("subgroups should be nil when the stage is not requested")
	}
}

func TestRunnerCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := Options{
		SourceHash:        "source-v1",
		UseStrategicBonds: true,
		PostProcess:       true,
	}

	first, err := runner.Execute(context.Background(), testRoutes(t), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.CollectHit || first.CacheInfo.ClusterHit || first.CacheInfo.SubclusterHit {
		t.Errorf("first run should miss everywhere: %+v", first.CacheInfo)
	}

	second, err := runner.Execute(context.Background(), testRoutes(t), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.CollectHit || !second.CacheInfo.ClusterHit || !second.CacheInfo.SubclusterHit {
		t.Errorf("second run should hit everywhere: %+v", second.CacheInfo)
	}

	if !reflect.DeepEqual(cluster.ClusterIDs(first.Clusters), cluster.ClusterIDs(second.Clusters)) {
		t.Error("cached run returned different clusters")
	}
	for id, c := range first.Clusters {
		if !reflect.DeepEqual(c.RouteIDs, second.Clusters[id].RouteIDs) {
			t.Errorf("cluster %s members differ across runs", id)
		}
	}

	// Refresh bypasses the collect cache.
	opts.Refresh = true
	third, err := runner.Execute(context.Background(), testRoutes(t), opts)
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.CacheInfo.CollectHit {
		t.Error("refresh should bypass the collect cache")
	}
}

func TestRunnerCollectSingleRoute(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	routes, err := runner.Collect(context.Background(), testRoutes(t), Options{RouteID: "b"})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(routes))
	}
	if _, ok := routes["b"]; !ok {
		t.Error("route b missing")
	}

	if _, err := runner.Collect(context.Background(), testRoutes(t), Options{RouteID: "ghost"}); err == nil {
		t.Error("unknown route id should fail")
	}
}

func TestCollectMaxRoutesCap(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	routes, err := runner.Collect(context.Background(), testRoutes(t), Options{MaxRoutes: 2})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("routes = %d, want 2", len(routes))
	}
	// Truncation keeps the lowest ids.
	if _, ok := routes["a"]; !ok {
		t.Error("route a should survive the cap")
	}
	if _, ok := routes["c"]; ok {
		t.Error("route c should be dropped by the cap")
	}
}

func TestClustersSerializationRoundTrip(t *testing.T) {
	clusters := cluster.ClusterRoutes(testRoutes(t), true)

	data, err := MarshalClusters(clusters)
	if err != nil {
		t.Fatalf("MarshalClusters: %v", err)
	}
	got, err := UnmarshalClusters(data)
	if err != nil {
		t.Fatalf("UnmarshalClusters: %v", err)
	}

	if len(got) != len(clusters) {
		t.Fatalf("clusters = %d, want %d", len(got), len(clusters))
	}
	for id, c := range clusters {
		o := got[id]
		if o == nil {
			t.Fatalf("cluster %s missing after round trip", id)
		}
		if !reflect.DeepEqual(c.RouteIDs, o.RouteIDs) {
			t.Errorf("cluster %s members differ", id)
		}
		if !chem.Equal(c.Representative, o.Representative) {
			t.Errorf("cluster %s representative differs", id)
		}
		// Strategic bonds are recomputed from the representative.
		if !reflect.DeepEqual(c.StrategicBonds, o.StrategicBonds) {
			t.Errorf("cluster %s strategic bonds differ", id)
		}
	}
}

func TestSubgroupsSerializationRoundTrip(t *testing.T) {
	routes := testRoutes(t)
	clusters := cluster.ClusterRoutes(routes, true)
	subgroups, err := cluster.SubclusterAll(clusters, routes, nil)
	if err != nil {
		t.Fatalf("SubclusterAll: %v", err)
	}
	for _, subs := range subgroups {
		for _, sg := range subs {
			cluster.PostProcess(sg)
		}
	}

	data, err := MarshalSubgroups(subgroups)
	if err != nil {
		t.Fatalf("MarshalSubgroups: %v", err)
	}
	got, err := UnmarshalSubgroups(data)
	if err != nil {
		t.Fatalf("UnmarshalSubgroups: %v", err)
	}

	for cid, subs := range subgroups {
		for key, sg := range subs {
			o := got[cid][key]
			if o == nil {
				t.Fatalf("subgroup %s/%s missing after round trip", cid, key)
			}
			if !reflect.DeepEqual(sg.RouteIDs, o.RouteIDs) {
				t.Errorf("subgroup %s/%s members differ", cid, key)
			}
			if o.Processed != sg.Processed {
				t.Errorf("subgroup %s/%s processed flag differs", cid, key)
			}
			if !chem.Equal(sg.SynthonStructure, o.SynthonStructure) {
				t.Errorf("subgroup %s/%s structure differs", cid, key)
			}
			if !reflect.DeepEqual(sg.AttachPoints, o.AttachPoints) {
				t.Errorf("subgroup %s/%s attach points differ", cid, key)
			}
			if !reflect.DeepEqual(sg.GroupLGs, o.GroupLGs) {
				t.Errorf("subgroup %s/%s leaving-group partition differs", cid, key)
			}
			if (sg.SynthonReaction == nil) != (o.SynthonReaction == nil) {
				t.Errorf("subgroup %s/%s reaction presence differs", cid, key)
			}
		}
	}
}
