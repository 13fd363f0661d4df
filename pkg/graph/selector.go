package graph

import (
	"fmt"
	"sort"
)

// SelectorKind discriminates the top-node selection policies.
type SelectorKind string

const (
	// SelectorExplicit uses a caller-provided account ID list.
	SelectorExplicit SelectorKind = "explicit"
	// SelectorTopN takes the N highest nodes by a named score field.
	SelectorTopN SelectorKind = "top_n"
	// SelectorThreshold takes every node whose named score field meets a cutoff.
	SelectorThreshold SelectorKind = "threshold"
)

// TopNodeSelector is a tagged choice describing how the "top" (high-authority)
// node set is derived. The adapter resolves it exactly once; the hops engine
// only ever consumes the already-resolved set and never re-derives selection.
type TopNodeSelector struct {
	Kind       SelectorKind `json:"kind"`
	IDs        []string     `json:"ids,omitempty"`         // explicit
	ScoreField string       `json:"score_field,omitempty"` // top_n, threshold
	N          int          `json:"n,omitempty"`           // top_n
	Threshold  float64      `json:"threshold,omitempty"`   // threshold
}

// Resolve materializes the selector into a concrete top-node set against the
// graph. The result order is deterministic: score descending, then account ID
// ascending. Unknown explicit IDs are dropped silently; a selector matching
// nothing yields an empty (valid) set.
func (s TopNodeSelector) Resolve(g *Graph) ([]string, error) {
	switch s.Kind {
	case SelectorExplicit:
		var out []string
		for _, id := range s.IDs {
			if g.HasNode(id) {
				out = append(out, id)
			}
		}
		sort.Strings(out)
		return out, nil

	case SelectorTopN:
		if s.ScoreField == "" {
			return nil, fmt.Errorf("top_n selector requires score_field")
		}
		if s.N <= 0 {
			return nil, fmt.Errorf("top_n selector requires n > 0, got %d", s.N)
		}
		ranked := rankByScore(g, s.ScoreField)
		if len(ranked) > s.N {
			ranked = ranked[:s.N]
		}
		return ranked, nil

	case SelectorThreshold:
		if s.ScoreField == "" {
			return nil, fmt.Errorf("threshold selector requires score_field")
		}
		var out []string
		for id, node := range g.Nodes {
			if node.Scores[s.ScoreField] >= s.Threshold {
				out = append(out, id)
			}
		}
		sortByScore(g, s.ScoreField, out)
		return out, nil

	default:
		return nil, fmt.Errorf("unknown selector kind %q", s.Kind)
	}
}

func rankByScore(g *Graph, field string) []string {
	ids := make([]string, 0, len(g.Nodes))
	for id, node := range g.Nodes {
		if _, ok := node.Scores[field]; ok {
			ids = append(ids, id)
		}
	}
	sortByScore(g, field, ids)
	return ids
}

func sortByScore(g *Graph, field string, ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		si, sj := g.Nodes[ids[i]].Scores[field], g.Nodes[ids[j]].Scores[field]
		if si != sj {
			return si > sj
		}
		return ids[i] < ids[j]
	})
}
