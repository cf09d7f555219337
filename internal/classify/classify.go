// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns a category, a mood and a consent flag to card
// text by substring matching against ordered keyword rules.
package classify

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/zagrava-db/internal/rng"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// Rule maps a name to the substrings that select it.
type Rule struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Rules is the full keyword configuration. Order within Categories and
// Moods is significant: the first matching rule wins.
type Rules struct {
	DefaultCategory string   `yaml:"default_category" json:"default_category"`
	Categories      []Rule   `yaml:"categories" json:"categories"`
	Moods           []Rule   `yaml:"moods" json:"moods"`
	Consent         []string `yaml:"consent" json:"consent"`
}

// DefaultRules returns the embedded rule set.
func DefaultRules() Rules {
	r, err := ParseRules(defaultRulesYAML)
	if err != nil {
		panic(fmt.Sprintf("classify: embedded rules are invalid: %v", err))
	}
	return r
}

// ParseRules decodes and validates a YAML rule set.
func ParseRules(data []byte) (Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Rules{}, fmt.Errorf("parsing rules: %w", err)
	}
	if err := r.Validate(); err != nil {
		return Rules{}, err
	}
	return r, nil
}

// LoadRules reads a YAML rule set from path.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("reading rules %s: %w", path, err)
	}
	r, err := ParseRules(data)
	if err != nil {
		return Rules{}, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Validate checks that the rule set can classify every text.
func (r Rules) Validate() error {
	if strings.TrimSpace(r.DefaultCategory) == "" {
		return fmt.Errorf("default_category is required")
	}
	if len(r.Moods) == 0 {
		return fmt.Errorf("at least one mood rule is required")
	}
	for _, group := range [][]Rule{r.Categories, r.Moods} {
		for i, rule := range group {
			if strings.TrimSpace(rule.Name) == "" {
				return fmt.Errorf("rule %d has no name", i)
			}
		}
	}
	return nil
}

// Marshal encodes the rule set as YAML.
func (r Rules) Marshal() ([]byte, error) {
	return yaml.Marshal(&r)
}

// Classifier applies a rule set. It is not safe for concurrent use.
type Classifier struct {
	rules Rules
	moods []string
	lower cases.Caser
}

// New returns a classifier for rules. Keywords are case-folded once here so
// that matching is case-insensitive on both sides.
func New(rules Rules) (*Classifier, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	c := &Classifier{lower: cases.Lower(language.Und)}
	c.rules = Rules{
		DefaultCategory: rules.DefaultCategory,
		Categories:      c.foldRules(rules.Categories),
		Moods:           c.foldRules(rules.Moods),
		Consent:         c.foldAll(rules.Consent),
	}
	for _, m := range rules.Moods {
		c.moods = append(c.moods, m.Name)
	}
	return c, nil
}

// Default returns a classifier for the embedded rules.
func Default() *Classifier {
	c, err := New(DefaultRules())
	if err != nil {
		panic(err)
	}
	return c
}

// Rules returns the case-folded rule set in use.
func (c *Classifier) Rules() Rules {
	return c.rules
}

func (c *Classifier) foldRules(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{Name: r.Name, Keywords: c.foldAll(r.Keywords)}
	}
	return out
}

func (c *Classifier) foldAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w = c.lower.String(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// Category returns the first category whose keywords appear in text, or
// the default category.
func (c *Classifier) Category(text string) string {
	if name, ok := firstMatch(c.rules.Categories, c.lower.String(text)); ok {
		return name
	}
	return c.rules.DefaultCategory
}

// Mood returns the first mood whose keywords appear in text. When none
// match it draws one uniformly from src; src is not touched otherwise.
func (c *Classifier) Mood(text string, src rng.Source) string {
	if name, ok := firstMatch(c.rules.Moods, c.lower.String(text)); ok {
		return name
	}
	return rng.Choice(src, c.moods)
}

// NeedsConsent reports whether text mentions any consent term.
func (c *Classifier) NeedsConsent(text string) bool {
	return containsAny(c.lower.String(text), c.rules.Consent)
}

func firstMatch(rules []Rule, lower string) (string, bool) {
	for _, r := range rules {
		if containsAny(lower, r.Keywords) {
			return r.Name, true
		}
	}
	return "", false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
