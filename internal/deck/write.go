// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deck

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/zagrava-db/pkg/types"
)

// Marshal encodes deck with two-space indentation, leaving non-ASCII and
// HTML characters unescaped. The output has no trailing newline.
func Marshal(deck types.Deck) ([]byte, error) {
	if deck.Items == nil {
		deck.Items = []types.Card{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(deck); err != nil {
		return nil, fmt.Errorf("marshaling deck: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Write serializes deck to path, creating parent directories as needed.
func Write(path string, deck types.Deck) error {
	data, err := Marshal(deck)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing deck %s: %w", path, err)
	}
	return nil
}
