package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/credlens/credlens/pkg/config"
	"github.com/credlens/credlens/pkg/scoring"
	"github.com/credlens/credlens/pkg/surface"
)

func newScoreCmd() *cobra.Command {
	var (
		inputPath  string
		configPath string
		outputFmt  string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute the unified credibility score for one account",
		Long:  `Reads account metrics from a JSON file and computes the 0-1000 unified score.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScoringConfig(configPath)
			if err != nil {
				return err
			}

			var in scoring.AccountMetricsInput
			if err := readJSONFile(inputPath, &in); err != nil {
				return err
			}

			result, err := scoring.Compute(in, cfg)
			if err != nil {
				return err
			}

			return renderScore(outputFmt, result)
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Path to account metrics JSON (required)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to credlens config file")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func renderScore(format string, result *scoring.TwitterScoreResult) error {
	var r surface.Renderer
	switch format {
	case "json":
		r = &surface.JSONRenderer{}
	default:
		r = &surface.TerminalRenderer{}
	}
	return r.Render(os.Stdout, result)
}

// loadScoringConfig loads the scoring snapshot from a config file, or the
// defaults when no path is given.
func loadScoringConfig(path string) (*scoring.Config, error) {
	if path == "" {
		return scoring.Defaults(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfg.Scoring, nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
