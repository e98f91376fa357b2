package dataset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// ============================================================================
// GENRE FIELD — string-encoded list of {id, name} records
// ============================================================================
// Source cells look like:
//
//	[{'id': 16, 'name': 'Animation'}, {'id': 35, 'name': 'Comedy'}]
//
// That shape is valid YAML flow syntax, so it is decoded as data with
// yaml.v3. Nothing in the cell is ever evaluated.
// ============================================================================

var (
	errNotList     = errors.New("genre field is not a list")
	errMissingName = errors.New("genre record has no name")
)

// GenreRecord is one decoded element of the genre field.
type GenreRecord struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// ParseGenres decodes a genre cell into records.
// An empty list ("[]") is valid and yields no records.
func ParseGenres(raw string) ([]GenreRecord, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, ErrEmptyValue
	}
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return nil, errNotList
	}

	var items []map[string]interface{}
	if err := yaml.Unmarshal([]byte(trimmed), &items); err != nil {
		return nil, fmt.Errorf("decode genre list: %w", err)
	}

	records := make([]GenreRecord, 0, len(items))
	for i, item := range items {
		rawName, ok := item["name"]
		if !ok || rawName == nil {
			return nil, fmt.Errorf("element %d: %w", i, errMissingName)
		}
		name, err := cast.ToStringE(rawName)
		if err != nil {
			return nil, fmt.Errorf("element %d name: %w", i, err)
		}
		records = append(records, GenreRecord{
			ID:   cast.ToInt(item["id"]),
			Name: name,
		})
	}
	return records, nil
}

// GenreNames flattens records to their names, preserving order.
func GenreNames(records []GenreRecord) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	return names
}
