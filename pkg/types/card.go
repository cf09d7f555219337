// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for the zagrava-db converter:
// the raw export records read from db.json, the normalized Card records
// written to the runtime deck, and the run configuration.
package types

// Level is a card intensity tier. Levels group raw entries and namespace
// the image directories.
type Level string

const (
	LevelWhite  Level = "white"
	LevelYellow Level = "yellow"
	LevelPink   Level = "pink"
	LevelRed    Level = "red"
)

// levelOrder is the fixed processing and sort order.
var levelOrder = []Level{LevelWhite, LevelYellow, LevelPink, LevelRed}

// Levels returns the four levels in their fixed order.
func Levels() []Level {
	out := make([]Level, len(levelOrder))
	copy(out, levelOrder)
	return out
}

// HighestLevel is the most intense level. Extracted images land in its directory.
const HighestLevel = LevelRed

// Index returns the position of l in the fixed order, or len(Levels()) for
// an unknown level so that it sorts last.
func (l Level) Index() int {
	for i, v := range levelOrder {
		if v == l {
			return i
		}
	}
	return len(levelOrder)
}

// Valid reports whether l is one of the four known levels.
func (l Level) Valid() bool {
	return l.Index() < len(levelOrder)
}

// DeckVersion is the format version written into the output envelope.
const DeckVersion = 2

// Card is one normalized output record.
type Card struct {
	// ID is "{level}-{legacy_id}" or "{level}-{n}" when the legacy id is absent.
	ID string `json:"id" yaml:"id"`

	// LegacyID is the numeric id from the raw export, if present.
	LegacyID *int64 `json:"legacy_id" yaml:"legacy_id"`

	Level Level `json:"level" yaml:"level"`

	// Title is the truncated headline.
	Title string `json:"title_ua" yaml:"title_ua"`

	// Description is the whitespace-normalized full text.
	Description string `json:"description_ua" yaml:"description_ua"`

	Category string `json:"category" yaml:"category"`
	Mood     string `json:"mood" yaml:"mood"`

	ConsentRequired bool `json:"consent_required" yaml:"consent_required"`

	// Images holds public paths of the form /img/{level}/{filename}.
	Images []string `json:"images" yaml:"images"`

	// TimeLimitMinutes is nil for the base level.
	TimeLimitMinutes *int `json:"time_limit_minutes" yaml:"time_limit_minutes"`

	// Tags is reserved and always empty.
	Tags []string `json:"tags" yaml:"tags"`
}

// Deck is the versioned envelope consumed by the runtime application.
type Deck struct {
	Version int    `json:"version" yaml:"version"`
	Items   []Card `json:"items" yaml:"items"`
}
