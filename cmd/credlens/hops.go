package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/credlens/credlens/pkg/graph"
	"github.com/credlens/credlens/pkg/hops"
	"github.com/credlens/credlens/pkg/surface"
)

func newHopsCmd() *cobra.Command {
	var (
		graphPath   string
		source      string
		topNodes    []string
		scoreField  string
		topN        int
		maxHops     int
		minStrength float64
		configPath  string
		outputFmt   string
	)

	cmd := &cobra.Command{
		Use:   "hops",
		Short: "Compute social distance from an account to the top set",
		Long: `Loads a materialized graph from a JSON file and computes hop distance,
best paths, and authority proximity from the source account to the
top-account set. The top set comes from --top, or from --score-field
with --top-n to select the highest-scored nodes in the graph.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScoringConfig(configPath)
			if err != nil {
				return err
			}

			g, err := graph.LoadGraph(graphPath)
			if err != nil {
				return err
			}

			top := topNodes
			if len(top) == 0 {
				if scoreField == "" {
					return fmt.Errorf("either --top or --score-field is required")
				}
				selector := graph.TopNodeSelector{
					Kind:       graph.SelectorTopN,
					ScoreField: scoreField,
					N:          topN,
				}
				top, err = selector.Resolve(g)
				if err != nil {
					return err
				}
			}

			in := hops.Input{
				SourceID: source,
				TopNodes: top,
				MaxHops:  maxHops,
			}
			if cmd.Flags().Changed("min-strength") {
				in.EdgeMinStrength = &minStrength
			}

			result, err := hops.Compute(g, in, cfg)
			if err != nil {
				return err
			}

			if outputFmt == "json" {
				return writeJSONStdout(result)
			}
			return surface.RenderHops(os.Stdout, result)
		},
	}

	cmd.Flags().StringVar(&graphPath, "graph", "", "Path to materialized graph JSON (required)")
	cmd.Flags().StringVar(&source, "source", "", "Source account ID (required)")
	cmd.Flags().StringSliceVar(&topNodes, "top", nil, "Explicit top-account IDs")
	cmd.Flags().StringVar(&scoreField, "score-field", "", "Node score field for top-N selection")
	cmd.Flags().IntVar(&topN, "top-n", 10, "Top-N size when selecting by score field")
	cmd.Flags().IntVar(&maxHops, "max-hops", 0, "Hop cap (default: config)")
	cmd.Flags().Float64Var(&minStrength, "min-strength", 0, "Minimum edge strength (default: config)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to credlens config file")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	_ = cmd.MarkFlagRequired("graph")
	_ = cmd.MarkFlagRequired("source")

	return cmd
}

func writeJSONStdout(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
