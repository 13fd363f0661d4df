package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/credlens/credlens/pkg/linkstate"
)

func newLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Encode and decode shareable view-state tokens",
	}
	cmd.AddCommand(newLinkEncodeCmd(), newLinkDecodeCmd())
	return cmd
}

func newLinkEncodeCmd() *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a view state JSON file into a URL-safe token",
		RunE: func(cmd *cobra.Command, args []string) error {
			var state linkstate.ViewState
			if err := readJSONFile(inputPath, &state); err != nil {
				return err
			}
			token, err := linkstate.Encode(state)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Path to view state JSON (required)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func newLinkDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <token>",
		Short: "Decode a view-state token back to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := linkstate.Decode(args[0])
			if err != nil {
				return err
			}
			return writeJSONStdout(state)
		},
	}
}
