// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the conversion end to end: prepare image
// directories and extract the archive, build cards from the raw export,
// write the deck, and optionally mirror it into the catalog.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pdiddy/zagrava-db/internal/archive"
	"github.com/pdiddy/zagrava-db/internal/catalog"
	"github.com/pdiddy/zagrava-db/internal/classify"
	"github.com/pdiddy/zagrava-db/internal/deck"
	"github.com/pdiddy/zagrava-db/internal/rng"
	"github.com/pdiddy/zagrava-db/pkg/types"
)

// Result summarizes a pipeline run.
type Result struct {
	Extract archive.ExtractSummary
	Build   deck.BuildSummary

	// Output is the path the deck was written to.
	Output string
	// Cards is the number of cards written.
	Cards int
}

// Paths holds the run's file locations after joining them onto the root.
type Paths struct {
	Input     string
	Output    string
	Archive   string
	ImagesDir string
	Rules     string
	Catalog   string
}

// Resolve joins relative paths in cfg onto cfg.Root. Absolute paths and
// empty optional paths are kept as they are.
func Resolve(cfg types.ProcessConfig) Paths {
	root := cfg.Root
	if root == "" {
		root = "."
	}
	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(root, p)
	}
	return Paths{
		Input:     join(cfg.Input),
		Output:    join(cfg.Output),
		Archive:   join(cfg.Archive),
		ImagesDir: join(cfg.ImagesDir),
		Rules:     join(cfg.RulesFile),
		Catalog:   join(cfg.CatalogPath),
	}
}

// Classifier returns the classifier for cfg: the rules file when one is
// configured, the embedded rules otherwise.
func Classifier(cfg types.ProcessConfig) (*classify.Classifier, error) {
	paths := Resolve(cfg)
	if paths.Rules == "" {
		return classify.Default(), nil
	}
	rules, err := classify.LoadRules(paths.Rules)
	if err != nil {
		return nil, err
	}
	return classify.New(rules)
}

// Run executes the pipeline. A missing input document fails the run before
// anything is written. A missing archive only logs a warning.
func Run(ctx context.Context, cfg types.ProcessConfig, log *zap.Logger) (Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	paths := Resolve(cfg)
	res := Result{Output: paths.Output}

	if _, err := os.Stat(paths.Input); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return res, fmt.Errorf("cannot find raw export %s: %w", paths.Input, err)
		}
		return res, fmt.Errorf("checking raw export: %w", err)
	}

	classifier, err := Classifier(cfg)
	if err != nil {
		return res, err
	}

	res.Extract, err = archive.Extract(paths.Archive, paths.ImagesDir, log)
	if err != nil {
		return res, err
	}

	export, err := deck.Load(paths.Input)
	if err != nil {
		return res, err
	}

	d, summary := deck.Build(export, deck.Options{
		Classifier: classifier,
		Random:     rng.New(cfg.Seed),
		TitleWords: cfg.TitleWords,
		Log:        log,
	})
	res.Build = summary
	log.Debug("built cards",
		zap.Int("built", summary.Built),
		zap.Int("inactive", summary.Inactive),
		zap.Int("empty", summary.Empty),
		zap.Int("malformed", summary.Malformed),
		zap.Int("duplicate", summary.Duplicate))

	if err := deck.Write(paths.Output, d); err != nil {
		return res, err
	}
	res.Cards = len(d.Items)
	log.Info("wrote deck", zap.Int("cards", res.Cards), zap.String("output", paths.Output))

	if paths.Catalog != "" {
		if err := mirror(ctx, paths.Catalog, d); err != nil {
			return res, err
		}
		log.Info("updated catalog", zap.String("catalog", paths.Catalog))
	}

	return res, nil
}

func mirror(ctx context.Context, path string, d types.Deck) error {
	store, err := catalog.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Replace(ctx, d)
}
