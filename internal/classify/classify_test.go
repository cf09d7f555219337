// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource records how many draws were made and returns fixed values.
type countingSource struct {
	next  int
	calls int
}

func (s *countingSource) IntN(n int) int {
	s.calls++
	return s.next % n
}

func TestDefaultRulesOrder(t *testing.T) {
	r := DefaultRules()
	var cats, moods []string
	for _, c := range r.Categories {
		cats = append(cats, c.Name)
	}
	for _, m := range r.Moods {
		moods = append(moods, m.Name)
	}
	if diff := cmp.Diff([]string{"action", "question", "game"}, cats); diff != "" {
		t.Errorf("category order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"romantic", "playful", "passionate", "deep"}, moods); diff != "" {
		t.Errorf("mood order (-want +got):\n%s", diff)
	}
	assert.Equal(t, "question", r.DefaultCategory)
	assert.Len(t, r.Consent, 9)
}

func TestCategory(t *testing.T) {
	c := Default()
	tests := []struct {
		name string
		text string
		want string
	}{
		{"action keyword", "Поцілуй партнера в шию", "action"},
		{"question keyword", "Згадай свою першу любов", "question"},
		{"game keyword", "Вгадай, про що я думаю", "game"},
		{"no keyword falls back", "Просто посміхнись", "question"},
		{"action wins over game", "Гра: знімай з партнера шкарпетку", "action"},
		{"question wins over game", "Розповідай, яка гра тобі подобається", "question"},
		{"case-insensitive", "ТАНЦЮЙ!", "action"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Category(tt.text))
		})
	}
}

func TestMoodKeywordDoesNotDraw(t *testing.T) {
	c := Default()
	src := &countingSource{}
	tests := []struct {
		text string
		want string
	}{
		{"Ніжно обійми партнера", "romantic"},
		{"Флірт очима", "playful"},
		{"Пристрасть і поцілунок", "passionate"},
		{"Гаряче обійми", "passionate"},
		{"Відверто зізнайся", "deep"},
		{"Тепла гра", "romantic"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Mood(tt.text, src), tt.text)
	}
	assert.Zero(t, src.calls)
}

func TestMoodFallbackDraws(t *testing.T) {
	c := Default()
	for i, want := range []string{"romantic", "playful", "passionate", "deep"} {
		src := &countingSource{next: i}
		assert.Equal(t, want, c.Mood("Посміхнись", src))
		assert.Equal(t, 1, src.calls)
	}
}

func TestNeedsConsent(t *testing.T) {
	c := Default()
	assert.True(t, c.NeedsConsent("Зроби партнеру масаж"))
	assert.True(t, c.NeedsConsent("РОЗДЯГНИСЬ повільно"))
	assert.True(t, c.NeedsConsent("Поцілуй тіло партнера"))
	assert.False(t, c.NeedsConsent("Розкажи смішну історію"))
	assert.False(t, c.NeedsConsent(""))
}

func TestLoadRulesOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	data := []byte(`default_category: misc
categories:
  - name: sing
    keywords: [SING]
moods:
  - name: calm
    keywords: [quiet]
consent: [Secret]
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)

	c, err := New(rules)
	require.NoError(t, err)

	assert.Equal(t, "sing", c.Category("please sing along"))
	assert.Equal(t, "misc", c.Category("dance"))
	assert.Equal(t, "calm", c.Mood("anything", &countingSource{}))
	assert.True(t, c.NeedsConsent("a SECRET wish"))
}

func TestParseRulesErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{"missing default", "moods: [{name: a}]", "default_category"},
		{"no moods", "default_category: q", "mood rule"},
		{"unnamed rule", "default_category: q\nmoods: [{keywords: [x]}]", "no name"},
		{"bad yaml", "default_category: [", "parsing rules"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRules([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading rules")
}

func TestRulesMarshalRoundTrip(t *testing.T) {
	data, err := DefaultRules().Marshal()
	require.NoError(t, err)
	back, err := ParseRules(data)
	require.NoError(t, err)
	if diff := cmp.Diff(DefaultRules(), back); diff != "" {
		t.Errorf("rules changed after marshal (-want +got):\n%s", diff)
	}
}
