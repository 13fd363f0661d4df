// Package main provides the credlens CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "credlens",
		Short: "Explainable credibility scoring for social accounts",
		Long: `Credlens computes explainable credibility scores for social media
accounts: a unified 0-1000 score, an audience quality score, and
social distance to a configured top-account set.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newScoreCmd(),
		newAudienceCmd(),
		newHopsCmd(),
		newLinkCmd(),
		newAlertCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
