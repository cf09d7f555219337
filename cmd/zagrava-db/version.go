// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/zagrava-db/pkg/types"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of zagrava-db",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "zagrava-db %s (deck format v%d)\n", version, types.DeckVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
