package graphio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/synforge/routecluster/pkg/chem"
	"github.com/synforge/routecluster/pkg/cluster"
)

type routeFile struct {
	Routes map[string]*Graph `json:"routes"`
}

// WriteGraph encodes a transformation graph as JSON and writes it to w.
// The output can be re-imported with [ReadGraph].
func WriteGraph(g *chem.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Encode(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadGraph decodes a JSON graph from r.
// It returns the same validation errors as [Graph.Decode] for malformed
// structures. ReadGraph does not close r.
func ReadGraph(r io.Reader) (*chem.Graph, error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return data.Decode()
}

// ExportGraph writes a graph to a JSON file at path.
// This is a convenience wrapper around [WriteGraph] for file-based output.
func ExportGraph(g *chem.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// ImportGraph reads a JSON file at path and returns the decoded graph.
func ImportGraph(path string) (*chem.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// WriteRoutes encodes a route collection as JSON and writes it to w.
func WriteRoutes(m cluster.RouteMap, w io.Writer) error {
	out := routeFile{Routes: make(map[string]*Graph, len(m))}
	for _, id := range m.RouteIDs() {
		out.Routes[string(id)] = Encode(m[id])
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadRoutes decodes a JSON route collection from r.
// Each route graph is validated independently; errors name the failing route.
func ReadRoutes(r io.Reader) (cluster.RouteMap, error) {
	var data routeFile
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	out := make(cluster.RouteMap, len(data.Routes))
	for id, d := range data.Routes {
		g, err := d.Decode()
		if err != nil {
			return nil, fmt.Errorf("route %s: %w", id, err)
		}
		out[cluster.RouteID(id)] = g
	}
	return out, nil
}

// ExportRoutes writes a route collection to a JSON file at path.
func ExportRoutes(m cluster.RouteMap, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteRoutes(m, f)
}

// ImportRoutes reads a JSON file at path and returns the decoded routes.
func ImportRoutes(path string) (cluster.RouteMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadRoutes(f)
}
