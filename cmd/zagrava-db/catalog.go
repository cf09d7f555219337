// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/zagrava-db/internal/catalog"
	"github.com/pdiddy/zagrava-db/internal/pipeline"
	"github.com/pdiddy/zagrava-db/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the SQLite card catalog",
	Long: `Catalog inspects the SQLite mirror of the deck. The mirror is written by
process when --catalog (or ZAGRAVA_DB_CATALOG) is set.`,
}

// --- query subcommand ---

var catalogQueryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "List cards matching text and filters",
	Long: `Query lists catalog cards in deck order. The optional text argument matches
a case-insensitive substring of the card description. Filters narrow the
result by level, category, mood, or consent requirement.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalogQuery,
}

func init() {
	catalogQueryCmd.Flags().String("level", "", "filter by level (white, yellow, pink, red)")
	catalogQueryCmd.Flags().String("category", "", "filter by category")
	catalogQueryCmd.Flags().String("mood", "", "filter by mood")
	catalogQueryCmd.Flags().Bool("consent", false, "filter by consent requirement")
	catalogQueryCmd.Flags().Int("limit", catalog.DefaultMaxResults, "maximum number of cards to return")
	catalogQueryCmd.Flags().Bool("json", false, "output cards as JSON")

	catalogCmd.AddCommand(catalogQueryCmd)
	rootCmd.AddCommand(catalogCmd)
}

// catalogPath returns the configured catalog, falling back to the default
// location under the root.
func catalogPath() string {
	cfg := processConfig()
	if cfg.CatalogPath == "" {
		cfg.CatalogPath = types.DefaultCatalog
	}
	return pipeline.Resolve(cfg).Catalog
}

func runCatalogQuery(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	level, _ := flags.GetString("level")
	category, _ := flags.GetString("category")
	mood, _ := flags.GetString("mood")
	limit, _ := flags.GetInt("limit")
	jsonOutput, _ := flags.GetBool("json")

	opts := catalog.QueryOptions{
		Level:      types.Level(level),
		Category:   category,
		Mood:       mood,
		MaxResults: limit,
	}
	if len(args) == 1 {
		opts.Text = args[0]
	}
	if opts.Level != "" && !opts.Level.Valid() {
		return fmt.Errorf("unknown level %q", level)
	}
	if flags.Changed("consent") {
		consent, _ := flags.GetBool("consent")
		opts.Consent = &consent
	}

	store, err := catalog.Open(catalogPath())
	if err != nil {
		return err
	}
	defer store.Close()

	cards, err := store.Query(cmd.Context(), opts)
	if err != nil {
		return err
	}
	if err := formatQueryOutput(cmd.OutOrStdout(), cards, jsonOutput); err != nil {
		return err
	}
	if jsonOutput {
		return nil
	}
	return writeCatalogSummary(cmd.Context(), cmd.OutOrStdout(), store)
}

// writeCatalogSummary reports the deck version and size behind the query.
func writeCatalogSummary(ctx context.Context, w io.Writer, store *catalog.Store) error {
	version, err := store.Version(ctx)
	if err != nil {
		return err
	}
	if version == 0 {
		fmt.Fprintln(w, "Catalog is empty; run process with --catalog to fill it.")
		return nil
	}
	total, err := store.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Catalog: deck v%d, %d cards total\n", version, total)
	return nil
}

func formatQueryOutput(w io.Writer, cards []types.Card, jsonOutput bool) error {
	if jsonOutput {
		if cards == nil {
			cards = []types.Card{}
		}
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(cards)
	}

	if len(cards) == 0 {
		fmt.Fprintln(w, "No cards found.")
		return nil
	}

	fmt.Fprintf(w, "%-12s  %-6s  %-8s  %-11s  %-7s  %-5s  %s\n",
		"ID", "Level", "Category", "Mood", "Consent", "Limit", "Title")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, c := range cards {
		limit := "-"
		if c.TimeLimitMinutes != nil {
			limit = strconv.Itoa(*c.TimeLimitMinutes)
		}
		consent := "no"
		if c.ConsentRequired {
			consent = "yes"
		}
		fmt.Fprintf(w, "%-12s  %-6s  %-8s  %-11s  %-7s  %-5s  %s\n",
			truncate(c.ID, 12), c.Level, c.Category, c.Mood, consent, limit, truncate(c.Title, 50))
	}

	fmt.Fprintf(w, "\n%d cards\n", len(cards))
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
