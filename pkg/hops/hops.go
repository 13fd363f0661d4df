// Package hops implements the Credlens social-distance engine: a bounded
// breadth-first search from a source account toward a resolved set of top
// accounts, producing per-target shortest paths and an aggregate
// authority-proximity score.
package hops

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/credlens/credlens/pkg/explain"
	"github.com/credlens/credlens/pkg/graph"
	"github.com/credlens/credlens/pkg/scoring"
)

// ErrSourceNotFound is returned when the source account does not exist in
// the materialized graph.
var ErrSourceNotFound = errors.New("source account not found in graph")

// Input is one hops computation request. TopNodes must be an
// already-resolved set (see graph.TopNodeSelector); the engine never derives
// selection itself. MaxHops 0 and a nil EdgeMinStrength fall back to the
// config snapshot defaults.
type Input struct {
	SourceID         string   `json:"source_id"`
	TopNodes         []string `json:"top_nodes"`
	MaxHops          int      `json:"max_hops,omitempty"`
	EdgeMinStrength  *float64 `json:"edge_min_strength,omitempty"`
	IncludeWeakEdges bool     `json:"include_weak_edges,omitempty"`
}

// PathResult is the best path found to one reached top node: minimal hop
// count first, then maximal bottleneck strength (the minimum edge strength
// along the path).
type PathResult struct {
	TargetID     string   `json:"target_id"`
	Hops         int      `json:"hops"`
	Path         []string `json:"path"` // node sequence, source first
	PathStrength float64  `json:"path_strength_0_1"`
}

// Summary aggregates the per-target results.
type Summary struct {
	MaxHops             int                `json:"max_hops"`
	ReachableTopNodes   int                `json:"reachable_top_nodes"`
	MinHopsToAnyTop     int                `json:"min_hops_to_any_top"` // 0 when nothing reached
	AvgHopsToReachedTop float64            `json:"avg_hops_to_reached_top"`
	ClosestTopTargets   []PathResult       `json:"closest_top_targets"`
	AuthorityProximity  float64            `json:"authority_proximity_score_0_1"`
	Confidence          scoring.Confidence `json:"confidence"`
}

// Result is the hops engine output for one source account.
type Result struct {
	SourceID string              `json:"source_id"`
	Paths    []PathResult        `json:"paths"`
	Summary  Summary             `json:"summary"`
	Explain  explain.Explanation `json:"explain"`
}

type arc struct {
	to       string
	strength float64
}

// Index is a reusable adjacency view over one materialized graph. Batch
// computations over many source accounts share a single Index instead of
// rebuilding adjacency per account.
//
// Arc order per node follows the graph's edge slice order, with undirected
// edges contributing their reverse arc at the same position. This is the
// stable enumeration order the deterministic tie-break is defined over.
type Index struct {
	g   *graph.Graph
	adj map[string][]arc
}

// NewIndex builds the adjacency index for a graph.
func NewIndex(g *graph.Graph) *Index {
	adj := make(map[string][]arc, len(g.Nodes))
	for _, e := range g.Edges {
		adj[e.From] = append(adj[e.From], arc{to: e.To, strength: e.Strength})
		if !e.Directed {
			adj[e.To] = append(adj[e.To], arc{to: e.From, strength: e.Strength})
		}
	}
	return &Index{g: g, adj: adj}
}

// visit is the retained best state for a discovered node.
type visit struct {
	hops       int
	bottleneck float64
	path       []string
}

// better reports whether candidate (cb, cPath) beats the incumbent at the
// same hop count: higher bottleneck strength wins; equal bottlenecks fall
// back to the lexicographically smaller node sequence. This total order makes
// the search result independent of frontier iteration order.
func better(cb float64, cPath []string, in visit) bool {
	if cb != in.bottleneck {
		return cb > in.bottleneck
	}
	return strings.Join(cPath, "\x00") < strings.Join(in.path, "\x00")
}

// Compute runs the bounded breadth-first search for one source account.
// Pure function of (index, input, config snapshot).
func (ix *Index) Compute(in Input, cfg *scoring.Config) (*Result, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config snapshot is required")
	}

	maxHops := in.MaxHops
	if maxHops == 0 {
		maxHops = cfg.MaxHops
	}
	if maxHops < 1 || maxHops > 3 {
		return nil, &scoring.ValidationError{Field: "max_hops", Reason: fmt.Sprintf("%d outside {1,2,3}", maxHops)}
	}
	minStrength := cfg.EdgeMinStrength
	if in.EdgeMinStrength != nil {
		minStrength = *in.EdgeMinStrength
	}
	if minStrength < 0 || minStrength > 1 {
		return nil, &scoring.ValidationError{Field: "edge_min_strength", Reason: fmt.Sprintf("%f outside [0,1]", minStrength)}
	}
	if !ix.g.HasNode(in.SourceID) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, in.SourceID)
	}

	visited := map[string]visit{
		in.SourceID: {hops: 0, bottleneck: 1, path: []string{in.SourceID}},
	}
	frontier := []string{in.SourceID}

	for hop := 1; hop <= maxHops && len(frontier) > 0; hop++ {
		discovered := map[string]visit{}
		for _, nodeID := range frontier {
			from := visited[nodeID]
			for _, a := range ix.adj[nodeID] {
				if !in.IncludeWeakEdges && a.strength < minStrength {
					continue
				}
				if _, seen := visited[a.to]; seen {
					continue // already reached at a lower hop count
				}
				cb := from.bottleneck
				if a.strength < cb {
					cb = a.strength
				}
				cPath := append(append([]string(nil), from.path...), a.to)
				if cur, ok := discovered[a.to]; !ok || better(cb, cPath, cur) {
					discovered[a.to] = visit{hops: hop, bottleneck: cb, path: cPath}
				}
			}
		}

		frontier = frontier[:0]
		for id, v := range discovered {
			visited[id] = v
			frontier = append(frontier, id)
		}
		sort.Strings(frontier)
	}

	return ix.assemble(in.SourceID, in.TopNodes, maxHops, visited, cfg), nil
}

func (ix *Index) assemble(sourceID string, topNodes []string, maxHops int, visited map[string]visit, cfg *scoring.Config) *Result {
	var paths []PathResult
	for _, target := range topNodes {
		v, ok := visited[target]
		if !ok || v.hops == 0 {
			continue // unreached, or the source itself
		}
		paths = append(paths, PathResult{
			TargetID:     target,
			Hops:         v.hops,
			Path:         v.path,
			PathStrength: v.bottleneck,
		})
	}

	sort.Slice(paths, func(i, j int) bool {
		if paths[i].Hops != paths[j].Hops {
			return paths[i].Hops < paths[j].Hops
		}
		if paths[i].PathStrength != paths[j].PathStrength {
			return paths[i].PathStrength > paths[j].PathStrength
		}
		return paths[i].TargetID < paths[j].TargetID
	})

	summary := Summary{
		MaxHops: maxHops,
	}

	proximity := 0.0
	minHops := 0
	hopSum := 0
	bestStrength := 0.0
	for _, p := range paths {
		mix := (1 - cfg.StrengthWeight) + cfg.StrengthWeight*p.PathStrength
		proximity += cfg.HopWeights[p.Hops] * mix
		hopSum += p.Hops
		if minHops == 0 || p.Hops < minHops {
			minHops = p.Hops
		}
		if p.PathStrength > bestStrength {
			bestStrength = p.PathStrength
		}
	}
	// Unreached top nodes contribute zero: dividing by the full set size
	// penalizes poor overall reachability.
	if len(topNodes) > 0 {
		proximity /= float64(len(topNodes))
	}

	summary.ReachableTopNodes = len(paths)
	summary.MinHopsToAnyTop = minHops
	if len(paths) > 0 {
		summary.AvgHopsToReachedTop = float64(hopSum) / float64(len(paths))
	}
	summary.AuthorityProximity = proximity
	summary.ClosestTopTargets = paths
	if len(summary.ClosestTopTargets) > cfg.ClosestTargetsLimit {
		summary.ClosestTopTargets = summary.ClosestTopTargets[:cfg.ClosestTargetsLimit]
	}

	switch {
	case len(paths) >= 3 && minHops <= 2:
		summary.Confidence = scoring.ConfidenceHigh
	case len(paths) >= 1:
		summary.Confidence = scoring.ConfidenceMed
	default:
		summary.Confidence = scoring.ConfidenceLow
	}

	reachRatio := 0.0
	if len(topNodes) > 0 {
		reachRatio = float64(len(paths)) / float64(len(topNodes))
	}

	result := &Result{
		SourceID: sourceID,
		Paths:    paths,
		Summary:  summary,
	}
	result.Explain = explain.Generate(explain.Facts{
		Subject: sourceID,
		Components: []explain.Component{
			{Name: "authority_proximity", Value: proximity},
			{Name: "reach_ratio", Value: reachRatio},
			{Name: "min_hops", Value: float64(minHops)},
			{Name: "best_path_strength", Value: bestStrength},
		},
		Confidence: string(summary.Confidence),
		Band:       explain.BandForScore(proximity),
	}, explain.HopsRules())

	return result
}

// Compute is a convenience wrapper for single computations. Batch callers
// should build one Index and reuse it across sources.
func Compute(g *graph.Graph, in Input, cfg *scoring.Config) (*Result, error) {
	return NewIndex(g).Compute(in, cfg)
}
