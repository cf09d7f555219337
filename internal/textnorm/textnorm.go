// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textnorm normalizes task text and derives card titles.
package textnorm

import "strings"

// DefaultTitleWords is the title word limit used when none is configured.
const DefaultTitleWords = 8

// Ellipsis marks a truncated title.
const Ellipsis = "…"

// Sanitize collapses every run of Unicode whitespace, newlines included, to
// a single space and trims both ends.
func Sanitize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Title returns text unchanged when it has at most limit words. Otherwise it
// returns the first limit words followed by Ellipsis. A non-positive limit
// means DefaultTitleWords.
func Title(text string, limit int) string {
	if limit <= 0 {
		limit = DefaultTitleWords
	}
	words := strings.Fields(text)
	if len(words) <= limit {
		return text
	}
	return strings.Join(words[:limit], " ") + Ellipsis
}
