// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// RawExport is the top-level shape of the raw db.json export.
type RawExport struct {
	// AllTasks maps a level colour to its entries. Entries stay raw so one
	// malformed record does not fail the whole document.
	AllTasks map[Level][]json.RawMessage `json:"allTasks"`
}

// RawEntry is a single task record from the raw export.
type RawEntry struct {
	ID     LegacyID        `json:"id"`
	Task   json.RawMessage `json:"task"`
	Img    ImageField      `json:"img"`
	Active ActiveFlag      `json:"active"`
}

// Text returns the task text when it is a JSON string, and ok=false for any
// other JSON type.
func (e RawEntry) Text() (string, bool) {
	if len(e.Task) == 0 || bytes.Equal(e.Task, []byte("null")) {
		return "", true
	}
	var s string
	if err := json.Unmarshal(e.Task, &s); err != nil {
		return "", false
	}
	return s, true
}

// LegacyID is the optional numeric identifier of a raw entry.
type LegacyID struct {
	Value int64
	Valid bool
}

// Ptr returns a pointer to the value, or nil when absent.
func (id LegacyID) Ptr() *int64 {
	if !id.Valid {
		return nil
	}
	v := id.Value
	return &v
}

// UnmarshalJSON accepts integers and numeric strings. Anything else leaves
// the id absent.
func (id *LegacyID) UnmarshalJSON(data []byte) error {
	*id = LegacyID{}
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return nil
		}
		s = strings.TrimSpace(str)
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	*id = LegacyID{Value: v, Valid: true}
	return nil
}

// ActiveFlag records whether a raw entry is enabled. The zero value is active.
type ActiveFlag struct {
	Inactive bool
}

// UnmarshalJSON treats 0, 0.0, "0" and false as inactive.
func (a *ActiveFlag) UnmarshalJSON(data []byte) error {
	*a = ActiveFlag{}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	switch x := v.(type) {
	case bool:
		a.Inactive = !x
	case float64:
		a.Inactive = x == 0
	case string:
		a.Inactive = x == "0"
	}
	return nil
}

// ImageFieldKind tags the variant held by an ImageField.
type ImageFieldKind int

const (
	// ImageNone is an absent or empty field.
	ImageNone ImageFieldKind = iota
	// ImageList is a JSON array of filenames.
	ImageList
	// ImageDelimited is a single "{a.jpg,b.jpg}" style string.
	ImageDelimited
)

// ImageField is the raw img value, normalized at decode time into one of
// two variants.
type ImageField struct {
	Kind ImageFieldKind
	// List holds the elements of an ImageList.
	List []string
	// Delimited holds the raw string of an ImageDelimited.
	Delimited string
}

// ImagesFromList builds a list-variant field.
func ImagesFromList(names ...string) ImageField {
	if len(names) == 0 {
		return ImageField{}
	}
	return ImageField{Kind: ImageList, List: names}
}

// ImagesFromString builds a delimited-variant field.
func ImagesFromString(s string) ImageField {
	if s == "" {
		return ImageField{}
	}
	return ImageField{Kind: ImageDelimited, Delimited: s}
}

// UnmarshalJSON decodes arrays into ImageList and strings or numbers into
// ImageDelimited. Non-string array elements are dropped. null, false, ""
// and [] decode to ImageNone.
func (f *ImageField) UnmarshalJSON(data []byte) error {
	*f = ImageField{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	switch x := v.(type) {
	case []any:
		var names []string
		for _, el := range x {
			if s, ok := el.(string); ok {
				names = append(names, s)
			}
		}
		*f = ImagesFromList(names...)
	case string:
		*f = ImagesFromString(x)
	case json.Number:
		if x.String() != "0" {
			*f = ImagesFromString(x.String())
		}
	}
	return nil
}
