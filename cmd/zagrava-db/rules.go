// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/zagrava-db/internal/pipeline"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the active keyword rules as YAML",
	Long: `Rules prints the category, mood, and consent keyword rules the converter
would use: the --rules file when set, the built-in rules otherwise. The output
is a valid rules file and can be edited and passed back with --rules.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := pipeline.Classifier(processConfig())
		if err != nil {
			return err
		}
		data, err := c.Rules().Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
