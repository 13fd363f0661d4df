package graph_test

import (
	"reflect"
	"testing"

	"github.com/credlens/credlens/pkg/graph"
)

func scoredGraph() *graph.Graph {
	nodes := map[string]*graph.Node{
		"whale_a":  {ID: "whale_a", Scores: map[string]float64{"twitter_score": 920}},
		"whale_b":  {ID: "whale_b", Scores: map[string]float64{"twitter_score": 880}},
		"mid_tier": {ID: "mid_tier", Scores: map[string]float64{"twitter_score": 540}},
		"same_lo":  {ID: "same_lo", Scores: map[string]float64{"twitter_score": 540}},
		"unscored": {ID: "unscored"},
	}
	g := &graph.Graph{ID: "sel", Nodes: nodes}
	g.ComputeStats()
	return g
}

func TestResolveExplicit(t *testing.T) {
	g := scoredGraph()
	sel := graph.TopNodeSelector{
		Kind: graph.SelectorExplicit,
		IDs:  []string{"whale_b", "whale_a", "no_such_account"},
	}

	got, err := sel.Resolve(g)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	// Unknown IDs drop out; the rest come back sorted.
	want := []string{"whale_a", "whale_b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("resolved = %v, want %v", got, want)
	}
}

func TestResolveTopN(t *testing.T) {
	g := scoredGraph()
	sel := graph.TopNodeSelector{
		Kind:       graph.SelectorTopN,
		ScoreField: "twitter_score",
		N:          3,
	}

	got, err := sel.Resolve(g)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	// Score descending; the 540 tie breaks by ID ascending.
	want := []string{"whale_a", "whale_b", "mid_tier"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("resolved = %v, want %v", got, want)
	}
}

func TestResolveThreshold(t *testing.T) {
	g := scoredGraph()
	sel := graph.TopNodeSelector{
		Kind:       graph.SelectorThreshold,
		ScoreField: "twitter_score",
		Threshold:  540,
	}

	got, err := sel.Resolve(g)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	want := []string{"whale_a", "whale_b", "mid_tier", "same_lo"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("resolved = %v, want %v", got, want)
	}
}

func TestResolveDeterministic(t *testing.T) {
	g := scoredGraph()
	sel := graph.TopNodeSelector{Kind: graph.SelectorTopN, ScoreField: "twitter_score", N: 4}

	first, err := sel.Resolve(g)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := sel.Resolve(g)
		if err != nil {
			t.Fatalf("Resolve() error on run %d: %v", i, err)
		}
		if !reflect.DeepEqual(again, first) {
			t.Fatalf("run %d: order changed: %v vs %v", i, again, first)
		}
	}
}

func TestResolveRejects(t *testing.T) {
	g := scoredGraph()
	tests := []struct {
		name string
		sel  graph.TopNodeSelector
	}{
		{"unknown kind", graph.TopNodeSelector{Kind: "fanciest"}},
		{"top_n without score field", graph.TopNodeSelector{Kind: graph.SelectorTopN, N: 3}},
		{"top_n without n", graph.TopNodeSelector{Kind: graph.SelectorTopN, ScoreField: "twitter_score"}},
		{"threshold without score field", graph.TopNodeSelector{Kind: graph.SelectorThreshold, Threshold: 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.sel.Resolve(g); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
