// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog mirrors a written deck into a SQLite database so cards can
// be browsed and filtered from the command line. The catalog is rebuilt from
// the deck on every run and is never read back by the pipeline.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/zagrava-db/pkg/types"
)

// DefaultMaxResults caps Query when no limit is given.
const DefaultMaxResults = 50

// Store manages the catalog database. It is not safe for concurrent use.
type Store struct {
	db   *sql.DB
	fold cases.Caser
}

// Open opens or creates the catalog at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	s := &Store{db: db, fold: cases.Lower(language.Und)}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS decks (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			version INTEGER NOT NULL,
			card_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cards (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			position INTEGER NOT NULL,
			legacy_id INTEGER,
			level TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			search_text TEXT NOT NULL,
			category TEXT NOT NULL,
			mood TEXT NOT NULL,
			consent_required INTEGER NOT NULL,
			images TEXT,
			time_limit_minutes INTEGER,
			tags TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cards_level ON cards(level)`,
		`CREATE INDEX IF NOT EXISTS idx_cards_category ON cards(category)`,
		`CREATE INDEX IF NOT EXISTS idx_cards_mood ON cards(mood)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Replace swaps the catalog contents for deck in a single transaction.
// Card order is kept in the position column.
func (s *Store) Replace(ctx context.Context, deck types.Deck) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cards`); err != nil {
		return fmt.Errorf("clearing cards: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cards (id, position, legacy_id, level, title, description,
			search_text, category, mood, consent_required, images,
			time_limit_minutes, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range deck.Items {
		imagesJSON, _ := json.Marshal(nonNil(c.Images))
		tagsJSON, _ := json.Marshal(nonNil(c.Tags))

		var legacy sql.NullInt64
		if c.LegacyID != nil {
			legacy = sql.NullInt64{Int64: *c.LegacyID, Valid: true}
		}
		var limit sql.NullInt64
		if c.TimeLimitMinutes != nil {
			limit = sql.NullInt64{Int64: int64(*c.TimeLimitMinutes), Valid: true}
		}

		if _, err := stmt.ExecContext(ctx,
			c.ID, i, legacy, string(c.Level), c.Title, c.Description,
			s.fold.String(c.Description), c.Category, c.Mood, c.ConsentRequired,
			string(imagesJSON), limit, string(tagsJSON),
		); err != nil {
			return fmt.Errorf("inserting card %s: %w", c.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO decks (id, version, card_count) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET version = excluded.version, card_count = excluded.card_count`,
		deck.Version, len(deck.Items),
	); err != nil {
		return fmt.Errorf("recording deck: %w", err)
	}

	return tx.Commit()
}

// Count returns the number of cards in the catalog.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM cards`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting cards: %w", err)
	}
	return n, nil
}

// Version returns the deck format version last written, or 0 for an empty catalog.
func (s *Store) Version(ctx context.Context) (int, error) {
	var v int
	err := s.db.QueryRowContext(ctx, `SELECT version FROM decks WHERE id = 1`).Scan(&v)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading deck version: %w", err)
	}
	return v, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
