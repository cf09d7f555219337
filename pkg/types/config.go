// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Default paths, relative to the repository root.
const (
	DefaultInput     = "db.json"
	DefaultOutput    = "public/zagrava_db_v1.json"
	DefaultArchive   = "img.zip"
	DefaultImagesDir = "public/img"

	// DefaultCatalog is where catalog queries look when no catalog is configured.
	DefaultCatalog = "build/catalog.db"

	// DefaultSeed matches the seed the runtime deck has always been built with.
	DefaultSeed uint64 = 42
)

// ProcessConfig holds the resolved settings for one pipeline run.
type ProcessConfig struct {
	// Root is the repository root. Relative paths below are joined onto it.
	Root string `json:"root" yaml:"root"`

	// Input is the raw export (db.json).
	Input string `json:"input" yaml:"input"`

	// Output is the generated deck (public/zagrava_db_v1.json).
	Output string `json:"output" yaml:"output"`

	// Archive is the optional image zip. A missing file is not an error.
	Archive string `json:"archive" yaml:"archive"`

	// ImagesDir holds one subdirectory per level.
	ImagesDir string `json:"images_dir" yaml:"images_dir"`

	// Seed initializes the random source used for moods and time limits.
	Seed uint64 `json:"seed" yaml:"seed"`

	// TitleWords is the word limit for generated titles (default 8).
	TitleWords int `json:"title_words" yaml:"title_words"`

	// RulesFile overrides the embedded keyword rules when set.
	RulesFile string `json:"rules_file,omitempty" yaml:"rules_file,omitempty"`

	// CatalogPath enables the SQLite catalog mirror when set.
	CatalogPath string `json:"catalog_path,omitempty" yaml:"catalog_path,omitempty"`
}

// DefaultProcessConfig returns the settings used when nothing is overridden.
func DefaultProcessConfig() ProcessConfig {
	return ProcessConfig{
		Root:       ".",
		Input:      DefaultInput,
		Output:     DefaultOutput,
		Archive:    DefaultArchive,
		ImagesDir:  DefaultImagesDir,
		Seed:       DefaultSeed,
		TitleWords: 8,
	}
}
