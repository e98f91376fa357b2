package schema

import (
	"strings"

	"github.com/spektr-org/moviestats/dataset"
)

// ============================================================================
// SCHEMA — Describes the shape of the three input tables
// ============================================================================
// The loader locates columns by header name, so column order and any extra
// columns (e.g. an unnamed index column) do not matter. Only the columns
// listed as Required are enforced at load time.
// ============================================================================

// Table describes one input file.
type Table struct {
	Name     string   `json:"name" yaml:"name"`
	File     string   `json:"file" yaml:"file"`
	Required []string `json:"required" yaml:"required"`
	Optional []string `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// Config describes the complete dataset.
type Config struct {
	Name     string `json:"name" yaml:"name"`
	Metadata Table  `json:"metadata" yaml:"metadata"`
	Ratings  Table  `json:"ratings" yaml:"ratings"`
	Links    Table  `json:"links" yaml:"links"`
}

// MovieLens returns the schema of the MovieLens "full" export.
//
// imdb_id, genres and release_date are optional at load: the cleaning
// pipeline decides what their absence means.
func MovieLens() Config {
	return Config{
		Name: "MovieLens",
		Metadata: Table{
			Name:     "metadata",
			File:     "movies_metadata.csv",
			Required: []string{dataset.ColTitle},
			Optional: []string{dataset.ColIMDbID, dataset.ColGenres, dataset.ColReleaseDate},
		},
		Ratings: Table{
			Name:     "ratings",
			File:     "ratings.csv",
			Required: []string{dataset.ColMovieID, dataset.ColRating},
			Optional: []string{dataset.ColUserID},
		},
		Links: Table{
			Name:     "links",
			File:     "links.csv",
			Required: []string{dataset.ColMovieID, dataset.ColLinkID},
		},
	}
}

// Tables returns the three table descriptions in load order.
func (c Config) Tables() []Table {
	return []Table{c.Metadata, c.Ratings, c.Links}
}

// Index maps each header name to its position. Names are trimmed; the
// first occurrence of a duplicated name wins.
func Index(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.TrimSpace(h)
		if _, exists := idx[key]; !exists {
			idx[key] = i
		}
	}
	return idx
}

// Validate returns a *dataset.MissingColumnError for the first required
// column missing from header.
func (t Table) Validate(header []string) error {
	idx := Index(header)
	for _, col := range t.Required {
		if _, ok := idx[col]; !ok {
			return &dataset.MissingColumnError{Table: t.Name, Column: col}
		}
	}
	return nil
}

// Present returns the known columns (required and optional) found in header,
// in schema order.
func (t Table) Present(header []string) []string {
	idx := Index(header)
	var cols []string
	for _, col := range append(append([]string{}, t.Required...), t.Optional...) {
		if _, ok := idx[col]; ok {
			cols = append(cols, col)
		}
	}
	return cols
}
