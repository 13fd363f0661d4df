package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveGraph writes a materialized graph to disk as JSON.
func SaveGraph(path string, g *Graph) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for graph: %w", err)
	}

	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling graph: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing graph: %w", err)
	}

	return nil
}

// LoadGraph reads a materialized graph from disk.
func LoadGraph(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading graph: %w", err)
	}

	g, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("parsing graph %s: %w", path, err)
	}
	return g, nil
}

// Unmarshal parses a graph from JSON and checks basic edge sanity:
// every edge endpoint must exist and strength must lie in [0,1].
func Unmarshal(data []byte) (*Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("unmarshaling graph: %w", err)
	}

	for i, e := range g.Edges {
		if e.Strength < 0 || e.Strength > 1 {
			return nil, fmt.Errorf("edge %d (%s): strength %f outside [0,1]", i, e.EdgeKey(), e.Strength)
		}
		if _, ok := g.Nodes[e.From]; !ok {
			return nil, fmt.Errorf("edge %d references unknown node %q", i, e.From)
		}
		if _, ok := g.Nodes[e.To]; !ok {
			return nil, fmt.Errorf("edge %d references unknown node %q", i, e.To)
		}
	}

	return &g, nil
}
