// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package images resolves raw image fields into public asset paths.
package images

import (
	"path"
	"strings"

	"github.com/pdiddy/zagrava-db/pkg/types"
)

// PublicPrefix is the URL prefix under which level image directories are served.
const PublicPrefix = "/img"

// Resolve turns a raw image field into /img/{level}/{filename} paths.
// Directory prefixes are dropped, empty candidates are skipped, and
// duplicates are removed keeping first-seen order.
func Resolve(field types.ImageField, level types.Level) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, candidate := range Candidates(field) {
		name := Filename(candidate)
		if name == "" {
			continue
		}
		p := PublicPath(level, name)
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// Candidates returns the raw, unnormalized filename candidates of field.
func Candidates(field types.ImageField) []string {
	switch field.Kind {
	case types.ImageList:
		return field.List
	case types.ImageDelimited:
		cleaned := strings.NewReplacer("{", "", "}", "").Replace(field.Delimited)
		return strings.Split(cleaned, ",")
	default:
		return nil
	}
}

// Filename trims whitespace and stray braces from candidate and returns its
// last path component, or "" when nothing usable remains.
func Filename(candidate string) string {
	s := strings.Trim(strings.TrimSpace(candidate), "{}")
	if s == "" {
		return ""
	}
	name := path.Base(s)
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// PublicPath joins a level and a filename into a public asset path.
func PublicPath(level types.Level, filename string) string {
	return PublicPrefix + "/" + string(level) + "/" + filename
}
