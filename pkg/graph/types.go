// Package graph defines the materialized connection-graph data model for
// Credlens. These types are the shared vocabulary between the graph adapter,
// the hops engine, and the hosted API.
package graph

import "time"

// Graph is a point-in-time materialized view of an account connection graph.
// Graphs are immutable once materialized; the hops engine only ever reads them.
//
// Edges is a slice, not a map, on purpose: the order in which the adapter
// enumerates edges is a documented contract. The hops engine breaks ties
// between equally good paths using this stable order, so two runs over the
// same Graph value always produce identical results.
type Graph struct {
	ID             string           `json:"id"`
	Nodes          map[string]*Node `json:"nodes"` // keyed by account ID
	Edges          []Edge           `json:"edges"`
	Stats          GraphStats       `json:"stats"`
	MaterializedAt time.Time        `json:"materialized_at"`
}

// Node is a single account in the connection graph. Scores holds named score
// fields (e.g. "twitter_score", "influence") that top-node selectors can
// reference.
type Node struct {
	ID     string             `json:"id"`
	Handle string             `json:"handle,omitempty"`
	Scores map[string]float64 `json:"scores,omitempty"`
}

// Edge is a connection between two accounts with a strength in [0,1].
// Undirected edges (the default) are traversable in both directions.
type Edge struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Strength float64 `json:"strength"`
	Directed bool    `json:"directed,omitempty"`
}

// EdgeKey returns a stable string key for deduplication and set operations.
func (e Edge) EdgeKey() string {
	return e.From + "|" + e.To
}

// GraphStats holds summary statistics for a materialized graph.
type GraphStats struct {
	NodeCount int `json:"node_count"`
	EdgeCount int `json:"edge_count"`
}

// ComputeStats recounts nodes and edges. Called after materialization.
func (g *Graph) ComputeStats() {
	g.Stats = GraphStats{
		NodeCount: len(g.Nodes),
		EdgeCount: len(g.Edges),
	}
}

// HasNode reports whether the account ID exists in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.Nodes[id]
	return ok
}
