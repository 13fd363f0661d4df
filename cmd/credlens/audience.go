package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/credlens/credlens/pkg/audience"
	"github.com/credlens/credlens/pkg/surface"
)

func newAudienceCmd() *cobra.Command {
	var (
		inputPath  string
		configPath string
		outputFmt  string
	)

	cmd := &cobra.Command{
		Use:   "audience",
		Short: "Compute the audience quality score for one account",
		Long:  `Reads signal metrics and overlap statistics from a JSON file and computes the 0-1 audience quality score.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScoringConfig(configPath)
			if err != nil {
				return err
			}

			var in audience.Input
			if err := readJSONFile(inputPath, &in); err != nil {
				return err
			}

			result, err := audience.Compute(in, cfg)
			if err != nil {
				return err
			}

			if outputFmt == "json" {
				return writeJSONStdout(result)
			}
			return surface.RenderAudience(os.Stdout, result)
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Path to audience input JSON (required)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to credlens config file")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
