//go:build mage

// Package main contains Mage build targets for zagrava-db developer tooling.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/pdiddy/zagrava-db/pkg/types"
)

const (
	binDir  = "bin"
	binName = "zagrava-db"
	cmdPkg  = "./cmd/zagrava-db"
)

// Init creates the public image directories the app serves from.
func Init() error {
	for _, level := range types.Levels() {
		dir := filepath.Join(types.DefaultImagesDir, string(level))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Image directories initialized.")
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Process rebuilds public/zagrava_db_v1.json from db.json.
func Process() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "process")
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Clean removes the binary and the catalog.
func Clean() error {
	for _, p := range []string{binDir, filepath.Dir(types.DefaultCatalog)} {
		if err := sh.Rm(p); err != nil {
			return err
		}
	}
	return nil
}

// Stats prints card counts per level and Go line counts.
func Stats() error {
	if err := deckStats(types.DefaultOutput); err != nil {
		return err
	}

	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}
	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	return nil
}

func deckStats(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		fmt.Printf("No deck at %s; run mage process first.\n", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	var deck types.Deck
	if err := json.Unmarshal(data, &deck); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	perLevel := map[types.Level]int{}
	consent := 0
	for _, c := range deck.Items {
		perLevel[c.Level]++
		if c.ConsentRequired {
			consent++
		}
	}
	fmt.Printf("Deck v%d: %d cards\n", deck.Version, len(deck.Items))
	for _, level := range types.Levels() {
		fmt.Printf("  %-7s %d\n", level, perLevel[level])
	}
	fmt.Printf("  consent %d\n", consent)
	return nil
}

// countGoLines walks the tree and counts non-blank lines in Go files,
// skipping underscore-prefixed directories. testOnly selects _test.go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), "_") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				total++
			}
		}
		return nil
	})
	return total, err
}
