package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/credlens/credlens/pkg/alert"
)

func newAlertCmd() *cobra.Command {
	var (
		inputPath string
		tag       string
	)

	cmd := &cobra.Command{
		Use:   "alert",
		Short: "Render an alert record with its notification template",
		RunE: func(cmd *cobra.Command, args []string) error {
			var rec alert.Record
			if err := readJSONFile(inputPath, &rec); err != nil {
				return err
			}
			if tag != "" {
				rec.Type = alert.ParseType(tag)
				rec.RawTag = tag
			}
			fmt.Println(alert.Format(rec))
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Path to alert record JSON (required)")
	cmd.Flags().StringVar(&tag, "tag", "", "Alert tag override (e.g. EARLY_BREAKOUT)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
