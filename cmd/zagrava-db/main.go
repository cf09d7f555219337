// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the zagrava-db CLI, which converts the
// raw task export into the runtime card deck.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/zagrava-db/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE and synced in PersistentPostRun.
var logger = zap.NewNop()

// rootCmd runs the full conversion when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "zagrava-db",
	Short: "Convert the raw task export into the runtime card deck",
	Long: `zagrava-db reads the raw task export (db.json), normalizes every active
entry into a card, and writes the versioned deck (public/zagrava_db_v1.json)
consumed by the app. It also unpacks img.zip into public/img/red when the
archive is present.

Run without arguments from the repository root to rebuild the deck with the
default paths. Flags, a zagrava-db.yaml config file, or ZAGRAVA_DB_*
environment variables override the defaults.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		if viper.GetBool("verbose") {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runProcess,
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := types.DefaultProcessConfig()
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./zagrava-db.yaml or ~/.config/zagrava-db/config.yaml)")
	flags.String("root", defaults.Root, "repository root; relative paths are resolved against it")
	flags.String("input", defaults.Input, "raw task export")
	flags.String("output", defaults.Output, "generated deck")
	flags.String("archive", defaults.Archive, "optional image archive")
	flags.String("images-dir", defaults.ImagesDir, "image directory with one subdirectory per level")
	flags.Uint64("seed", defaults.Seed, "seed for mood fallbacks and time limits")
	flags.Int("title-words", defaults.TitleWords, "maximum words in a card title")
	flags.String("rules", "", "keyword rules file (default: built-in rules)")
	flags.String("catalog", "", "SQLite catalog to mirror the deck into (default: disabled)")
	flags.BoolP("verbose", "v", false, "enable debug logging")

	for _, name := range []string{
		"root", "input", "output", "archive", "images-dir", "seed",
		"title-words", "rules", "catalog", "verbose",
	} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("zagrava-db")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "zagrava-db"))
		}
	}

	viper.SetEnvPrefix("ZAGRAVA_DB")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// processConfig assembles the run configuration from flags, config file and
// environment, in viper's precedence order.
func processConfig() types.ProcessConfig {
	return types.ProcessConfig{
		Root:        viper.GetString("root"),
		Input:       viper.GetString("input"),
		Output:      viper.GetString("output"),
		Archive:     viper.GetString("archive"),
		ImagesDir:   viper.GetString("images-dir"),
		Seed:        viper.GetUint64("seed"),
		TitleWords:  viper.GetInt("title-words"),
		RulesFile:   viper.GetString("rules"),
		CatalogPath: viper.GetString("catalog"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
