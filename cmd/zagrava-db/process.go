// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/zagrava-db/internal/pipeline"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Rebuild the card deck from the raw export",
	Long: `Process unpacks the image archive (when present), converts every active
entry of the raw export into a card, and writes the deck. Running it twice
with the same input and seed produces byte-identical output.`,
	Args: cobra.NoArgs,
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	res, err := pipeline.Run(cmd.Context(), processConfig(), logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if res.Extract.Missing {
		fmt.Fprintln(out, "Images: no archive found, extraction skipped")
	} else {
		fmt.Fprintf(out, "Images: %d extracted to %s\n", res.Extract.Extracted, res.Extract.Target)
	}
	b := res.Build
	fmt.Fprintf(out, "Cards: %d written (%d inactive, %d empty, %d malformed, %d duplicate skipped)\n",
		b.Built, b.Inactive, b.Empty, b.Malformed, b.Duplicate)
	fmt.Fprintf(out, "Output: %s\n", res.Output)
	return nil
}
