// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/zagrava-db/pkg/types"
)

// QueryOptions filters catalog queries. Zero values mean "any".
type QueryOptions struct {
	// Text matches a case-insensitive substring of the description.
	Text string

	Level    types.Level
	Category string
	Mood     string

	// Consent filters on consent_required when non-nil.
	Consent *bool

	// MaxResults limits result count. Zero uses DefaultMaxResults.
	MaxResults int
}

// Query returns cards matching opts in deck order.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]types.Card, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT id, legacy_id, level, title, description, category, mood,
			consent_required, images, time_limit_minutes, tags
		FROM cards
		WHERE 1=1`)

	if opts.Text != "" {
		qb.WriteString(` AND instr(search_text, ?) > 0`)
		args = append(args, s.fold.String(opts.Text))
	}
	if opts.Level != "" {
		qb.WriteString(` AND level = ?`)
		args = append(args, string(opts.Level))
	}
	if opts.Category != "" {
		qb.WriteString(` AND category = ?`)
		args = append(args, opts.Category)
	}
	if opts.Mood != "" {
		qb.WriteString(` AND mood = ?`)
		args = append(args, opts.Mood)
	}
	if opts.Consent != nil {
		qb.WriteString(` AND consent_required = ?`)
		args = append(args, *opts.Consent)
	}

	qb.WriteString(` ORDER BY position LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var cards []types.Card
	for rows.Next() {
		var (
			c          types.Card
			level      string
			legacy     sql.NullInt64
			limit      sql.NullInt64
			imagesJSON sql.NullString
			tagsJSON   sql.NullString
		)
		if err := rows.Scan(&c.ID, &legacy, &level, &c.Title, &c.Description,
			&c.Category, &c.Mood, &c.ConsentRequired, &imagesJSON, &limit, &tagsJSON,
		); err != nil {
			return nil, fmt.Errorf("scanning card: %w", err)
		}
		c.Level = types.Level(level)
		if legacy.Valid {
			v := legacy.Int64
			c.LegacyID = &v
		}
		if limit.Valid {
			v := int(limit.Int64)
			c.TimeLimitMinutes = &v
		}
		c.Images = decodeList(imagesJSON)
		c.Tags = decodeList(tagsJSON)
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cards: %w", err)
	}
	return cards, nil
}

func decodeList(ns sql.NullString) []string {
	out := []string{}
	if ns.Valid && ns.String != "" {
		_ = json.Unmarshal([]byte(ns.String), &out)
	}
	return out
}
