// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deck builds normalized cards from the raw export and writes the
// versioned deck document.
package deck

import (
	"cmp"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"

	"go.uber.org/zap"

	"github.com/pdiddy/zagrava-db/internal/classify"
	"github.com/pdiddy/zagrava-db/internal/images"
	"github.com/pdiddy/zagrava-db/internal/rng"
	"github.com/pdiddy/zagrava-db/internal/textnorm"
	"github.com/pdiddy/zagrava-db/pkg/types"
)

// timeRanges holds the inclusive time-limit range in minutes per level.
// Levels without an entry get no time limit.
var timeRanges = map[types.Level][2]int{
	types.LevelYellow: {2, 4},
	types.LevelPink:   {4, 6},
	types.LevelRed:    {6, 10},
}

// TimeRange returns the inclusive time-limit range for level, and false for
// levels without a limit.
func TimeRange(level types.Level) (lo, hi int, ok bool) {
	r, ok := timeRanges[level]
	return r[0], r[1], ok
}

// BuildSummary counts what happened to each raw entry.
type BuildSummary struct {
	Built     int
	Inactive  int
	Empty     int
	Malformed int
	// Duplicate counts entries whose legacy id repeats within a level.
	Duplicate int
}

// Total returns the number of raw entries seen.
func (s BuildSummary) Total() int {
	return s.Built + s.Inactive + s.Empty + s.Malformed + s.Duplicate
}

// Options configures Build. Classifier and Random are required.
type Options struct {
	Classifier *classify.Classifier
	// Random drives mood fallbacks and time limits. Draws happen in card
	// order, mood before time limit.
	Random     rng.Source
	TitleWords int
	Log        *zap.Logger
}

// Load reads and decodes the raw export at path.
func Load(path string) (types.RawExport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.RawExport{}, fmt.Errorf("reading raw export: %w", err)
	}
	var export types.RawExport
	if err := json.Unmarshal(data, &export); err != nil {
		return types.RawExport{}, fmt.Errorf("parsing raw export %s: %w", path, err)
	}
	return export, nil
}

// pending is an entry that passed filtering and is waiting for a card.
type pending struct {
	level types.Level
	entry types.RawEntry
	text  string
}

// Build converts export into a sorted deck. Levels are visited in their
// fixed order; level keys outside that order are ignored.
func Build(export types.RawExport, opts Options) (types.Deck, BuildSummary) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	queue, summary := collect(export, log)

	// Ids derived from legacy ids are reserved so fallback ids never take them.
	reserved := make(map[string]bool)
	for _, p := range queue {
		if p.entry.ID.Valid {
			reserved[legacyCardID(p.level, p.entry.ID.Value)] = true
		}
	}

	items := make([]types.Card, 0, len(queue))
	used := make(map[string]bool)
	for _, p := range queue {
		id := cardID(p.level, p.entry.ID, len(items), used, reserved)
		if used[id] {
			log.Warn("skipping entry with duplicate id",
				zap.String("level", string(p.level)), zap.String("id", id))
			summary.Duplicate++
			continue
		}

		card := types.Card{
			ID:               id,
			LegacyID:         p.entry.ID.Ptr(),
			Level:            p.level,
			Title:            textnorm.Title(p.text, opts.TitleWords),
			Description:      p.text,
			Category:         opts.Classifier.Category(p.text),
			Mood:             opts.Classifier.Mood(p.text, opts.Random),
			ConsentRequired:  opts.Classifier.NeedsConsent(p.text),
			Images:           images.Resolve(p.entry.Img, p.level),
			TimeLimitMinutes: timeLimit(p.level, opts.Random),
			Tags:             []string{},
		}
		used[id] = true
		items = append(items, card)
		summary.Built++
	}

	Sort(items)
	return types.Deck{Version: types.DeckVersion, Items: items}, summary
}

// collect decodes every entry and drops inactive, empty and malformed ones.
func collect(export types.RawExport, log *zap.Logger) ([]pending, BuildSummary) {
	var summary BuildSummary
	var queue []pending
	for _, level := range types.Levels() {
		for i, raw := range export.AllTasks[level] {
			var entry types.RawEntry
			if err := json.Unmarshal(raw, &entry); err != nil {
				log.Warn("skipping malformed entry",
					zap.String("level", string(level)), zap.Int("index", i), zap.Error(err))
				summary.Malformed++
				continue
			}
			if entry.Active.Inactive {
				summary.Inactive++
				continue
			}
			rawText, ok := entry.Text()
			if !ok {
				log.Warn("skipping entry with non-text task",
					zap.String("level", string(level)), zap.Int("index", i))
				summary.Malformed++
				continue
			}
			text := textnorm.Sanitize(rawText)
			if text == "" {
				summary.Empty++
				continue
			}
			queue = append(queue, pending{level: level, entry: entry, text: text})
		}
	}
	return queue, summary
}

func legacyCardID(level types.Level, legacy int64) string {
	return string(level) + "-" + strconv.FormatInt(legacy, 10)
}

// cardID returns "{level}-{legacy}" or, without a legacy id, "{level}-{n}"
// where n starts at built+1 and advances past ids already used or reserved.
func cardID(level types.Level, legacy types.LegacyID, built int, used, reserved map[string]bool) string {
	if legacy.Valid {
		return legacyCardID(level, legacy.Value)
	}
	for n := built + 1; ; n++ {
		id := string(level) + "-" + strconv.Itoa(n)
		if !used[id] && !reserved[id] {
			return id
		}
	}
}

func timeLimit(level types.Level, src rng.Source) *int {
	lo, hi, ok := TimeRange(level)
	if !ok {
		return nil
	}
	v := rng.IntRange(src, lo, hi)
	return &v
}

// Sort orders cards by level, then by legacy id ascending. Cards without a
// legacy id sort as id 0. The sort is stable.
func Sort(cards []types.Card) {
	slices.SortStableFunc(cards, func(a, b types.Card) int {
		if c := cmp.Compare(a.Level.Index(), b.Level.Index()); c != 0 {
			return c
		}
		return cmp.Compare(legacyKey(a), legacyKey(b))
	})
}

func legacyKey(c types.Card) int64 {
	if c.LegacyID == nil {
		return 0
	}
	return *c.LegacyID
}
