// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/zagrava-db/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "index", "cards.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func sampleDeck() types.Deck {
	return types.Deck{Version: types.DeckVersion, Items: []types.Card{
		{
			ID: "white-1", LegacyID: int64Ptr(1), Level: types.LevelWhite,
			Title: "Згадай перше побачення", Description: "Згадай перше побачення",
			Category: "question", Mood: "romantic",
			Images: []string{}, Tags: []string{},
		},
		{
			ID: "yellow-3", Level: types.LevelYellow,
			Title: "Станцюй", Description: "Станцюй повільний танець",
			Category: "action", Mood: "playful",
			Images: []string{"/img/yellow/a.jpg"}, TimeLimitMinutes: intPtr(3), Tags: []string{},
		},
		{
			ID: "red-7", LegacyID: int64Ptr(7), Level: types.LevelRed,
			Title: "Масаж", Description: "Зроби партнеру МАСАЖ спини",
			Category: "action", Mood: "passionate", ConsentRequired: true,
			Images: []string{"/img/red/1.jpg", "/img/red/2.jpg"}, TimeLimitMinutes: intPtr(8), Tags: []string{},
		},
	}}
}

func TestReplaceAndQueryAll(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	deck := sampleDeck()

	require.NoError(t, s.Replace(ctx, deck))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	v, err := s.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.DeckVersion, v)

	got, err := s.Query(ctx, QueryOptions{})
	require.NoError(t, err)
	if diff := cmp.Diff(deck.Items, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReplaceDropsPreviousCards(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Replace(ctx, sampleDeck()))
	smaller := sampleDeck()
	smaller.Items = smaller.Items[:1]
	require.NoError(t, s.Replace(ctx, smaller))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestQueryFilters(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.Replace(ctx, sampleDeck()))

	yes, no := true, false
	tests := []struct {
		name string
		opts QueryOptions
		want []string
	}{
		{"by level", QueryOptions{Level: types.LevelYellow}, []string{"yellow-3"}},
		{"by category", QueryOptions{Category: "action"}, []string{"yellow-3", "red-7"}},
		{"by mood", QueryOptions{Mood: "romantic"}, []string{"white-1"}},
		{"consent required", QueryOptions{Consent: &yes}, []string{"red-7"}},
		{"consent not required", QueryOptions{Consent: &no}, []string{"white-1", "yellow-3"}},
		{"text is case-insensitive", QueryOptions{Text: "масаж"}, []string{"red-7"}},
		{"text upper query", QueryOptions{Text: "ТАНЕЦЬ"}, []string{"yellow-3"}},
		{"combined", QueryOptions{Category: "action", Level: types.LevelRed}, []string{"red-7"}},
		{"limit", QueryOptions{MaxResults: 2}, []string{"white-1", "yellow-3"}},
		{"no match", QueryOptions{Mood: "deep"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := s.Query(ctx, tt.opts)
			require.NoError(t, err)
			var ids []string
			for _, c := range cards {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestVersionEmptyCatalog(t *testing.T) {
	s := testStore(t)
	v, err := s.Version(context.Background())
	require.NoError(t, err)
	assert.Zero(t, v)
}
