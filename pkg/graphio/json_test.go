package graphio

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/synforge/routecluster/pkg/chem"
	"github.com/synforge/routecluster/pkg/cluster"
)

func sampleGraph(t *testing.T) *chem.Graph {
	t.Helper()
	g := chem.NewGraph()
	atoms := []chem.Atom{
		{Num: 1, Element: "C"},
		{Num: 2, Element: "C"},
		{Num: 3, Element: "O", Charge: -1},
	}
	for _, a := range atoms {
		if err := g.AddAtom(a); err != nil {
			t.Fatal(err)
		}
	}
	bonds := []chem.Bond{
		{A1: 1, A2: 2, Order: 1, Dynamics: chem.BondFormed},
		{A1: 2, A2: 3, Order: 2, Dynamics: chem.BondOrderChanged},
	}
	for _, b := range bonds {
		if err := g.AddBond(b); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestGraphRoundTrip(t *testing.T) {
	g := sampleGraph(t)

	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		t.Fatalf("WriteGraph: %v", err)
	}

	got, err := ReadGraph(&buf)
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}
	if !chem.Equal(g, got) {
		t.Error("round trip changed the graph")
	}

	a, ok := got.Atom(3)
	if !ok || a.Charge != -1 {
		t.Errorf("atom 3 charge = %+v, want charge -1", a)
	}
	b, ok := got.Bond(1, 2)
	if !ok || b.Dynamics != chem.BondFormed {
		t.Errorf("bond 1-2 = %+v, want formed", b)
	}
}

func TestReadGraphErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "malformed json",
			in:   `{"atoms": [`,
			want: "decode",
		},
		{
			name: "duplicate atom",
			in:   `{"atoms": [{"num": 1, "element": "C"}, {"num": 1, "element": "C"}], "bonds": []}`,
			want: "atom 1",
		},
		{
			name: "unknown bond endpoint",
			in:   `{"atoms": [{"num": 1, "element": "C"}], "bonds": [{"a1": 1, "a2": 9, "order": 1}]}`,
			want: "bond 1-9",
		},
		{
			name: "unknown dynamics",
			in:   `{"atoms": [{"num": 1, "element": "C"}, {"num": 2, "element": "C"}], "bonds": [{"a1": 1, "a2": 2, "order": 1, "dynamics": "exploded"}]}`,
			want: `unknown dynamics "exploded"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGraph(strings.NewReader(tt.in))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestOmittedDynamicsDefaultsToUnchanged(t *testing.T) {
	in := `{"atoms": [{"num": 1, "element": "C"}, {"num": 2, "element": "C"}], "bonds": [{"a1": 1, "a2": 2, "order": 1}]}`
	g, err := ReadGraph(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}
	b, _ := g.Bond(1, 2)
	if b.Dynamics != chem.BondUnchanged {
		t.Errorf("dynamics = %v, want unchanged", b.Dynamics)
	}
}

func TestRoutesFileRoundTrip(t *testing.T) {
	m := cluster.RouteMap{
		"r1": sampleGraph(t),
		"r2": chem.NewGraph(),
	}

	path := filepath.Join(t.TempDir(), "routes.json")
	if err := ExportRoutes(m, path); err != nil {
		t.Fatalf("ExportRoutes: %v", err)
	}

	got, err := ImportRoutes(path)
	if err != nil {
		t.Fatalf("ImportRoutes: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("routes = %d, want 2", len(got))
	}
	if !chem.Equal(m["r1"], got["r1"]) {
		t.Error("r1 changed across the round trip")
	}
	if got["r2"].AtomCount() != 0 {
		t.Error("empty graph should stay empty")
	}
}

func TestReadRoutesNamesFailingRoute(t *testing.T) {
	in := `{"routes": {"bad": {"atoms": [{"num": 0, "element": "C"}], "bonds": []}}}`
	_, err := ReadRoutes(strings.NewReader(in))
	if err == nil || !strings.Contains(err.Error(), "route bad") {
		t.Errorf("err = %v, want route name in message", err)
	}
}

func TestEncodeNil(t *testing.T) {
	if Encode(nil) != nil {
		t.Error("Encode(nil) should be nil")
	}
	var d *Graph
	g, err := d.Decode()
	if err != nil || g != nil {
		t.Errorf("nil decode = (%v, %v), want (nil, nil)", g, err)
	}
}
