package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/spektr-org/moviestats/dataset"
)

// ============================================================================
// CLEANING PIPELINE — Row filters and field normalization for metadata
// ============================================================================
// Each step takes a Metadata value and returns a new one; the input rows are
// never written to. Order matters:
//
//   Deduplicate → NormalizeIDs → FilterInvalidDates → ParseGenreField
//
// Duplicates are detected on the raw identifier string, so Deduplicate runs
// before NormalizeIDs. A missing imdb_id or genres column is logged and the
// table passes through; a missing release_date column or a malformed cell
// stops the pipeline.
// ============================================================================

// StepFunc transforms a metadata table.
type StepFunc func(md dataset.Metadata, logger hclog.Logger) (dataset.Metadata, error)

// Step is a named cleaning stage.
type Step struct {
	Name string
	Run  StepFunc
}

// Pipeline is an ordered list of steps.
type Pipeline []Step

// DefaultPipeline returns the standard cleaning order.
func DefaultPipeline() Pipeline {
	return Pipeline{
		{Name: "deduplicate", Run: Deduplicate},
		{Name: "normalize_ids", Run: NormalizeIDs},
		{Name: "filter_invalid_dates", Run: FilterInvalidDates},
		{Name: "parse_genres", Run: ParseGenreField},
	}
}

// Apply runs every step in order and returns the final table. The first
// failing step aborts the run; its error is wrapped with the step name.
func (p Pipeline) Apply(md dataset.Metadata, logger hclog.Logger) (dataset.Metadata, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	for _, step := range p {
		before := md.Len()
		out, err := step.Run(md, logger.With("step", step.Name))
		if err != nil {
			return dataset.Metadata{}, fmt.Errorf("%s: %w", step.Name, err)
		}
		logger.Trace("cleaning step done", "step", step.Name, "rows_in", before, "rows_out", out.Len())
		md = out
	}
	return md, nil
}

// ============================================================================
// STEPS
// ============================================================================

// Deduplicate drops rows with a null identifier and keeps the first row for
// each distinct raw identifier.
func Deduplicate(md dataset.Metadata, logger hclog.Logger) (dataset.Metadata, error) {
	if !md.HasColumn(dataset.ColIMDbID) {
		logger.Error("column does not exist", "column", dataset.ColIMDbID)
		return md, nil
	}

	seen := make(map[string]bool, md.Len())
	rows := make([]dataset.Movie, 0, md.Len())
	for _, m := range md.Rows {
		if !m.HasID() || seen[m.RawID] {
			continue
		}
		seen[m.RawID] = true
		rows = append(rows, m)
	}
	return md.WithRows(rows), nil
}

// NormalizeIDs converts every raw identifier ("tt0114709") to its integer
// form (114709).
func NormalizeIDs(md dataset.Metadata, logger hclog.Logger) (dataset.Metadata, error) {
	if !md.HasColumn(dataset.ColIMDbID) {
		return dataset.Metadata{}, &dataset.MissingColumnError{Table: "metadata", Column: dataset.ColIMDbID}
	}

	rows := make([]dataset.Movie, md.Len())
	for i, m := range md.Rows {
		id, err := NormalizeID(m.RawID)
		if err != nil {
			return dataset.Metadata{}, &dataset.ParseError{Column: dataset.ColIMDbID, Row: i, Value: m.RawID, Err: err}
		}
		m.ID = id
		rows[i] = m
	}
	return md.WithRows(rows), nil
}

// FilterInvalidDates parses release_date and drops rows that do not match
// YYYY-MM-DD or name an impossible calendar day. Dropped rows are not logged.
func FilterInvalidDates(md dataset.Metadata, logger hclog.Logger) (dataset.Metadata, error) {
	if !md.HasColumn(dataset.ColReleaseDate) {
		return dataset.Metadata{}, &dataset.MissingColumnError{Table: "metadata", Column: dataset.ColReleaseDate}
	}

	rows := make([]dataset.Movie, 0, md.Len())
	for _, m := range md.Rows {
		released, err := time.Parse(dataset.DateLayout, m.ReleaseDate)
		if err != nil {
			continue
		}
		m.Released = released
		rows = append(rows, m)
	}
	return md.WithRows(rows), nil
}

// ParseGenreField decodes the genres cell of every row into genre names.
func ParseGenreField(md dataset.Metadata, logger hclog.Logger) (dataset.Metadata, error) {
	if !md.HasColumn(dataset.ColGenres) {
		logger.Error("column does not exist", "column", dataset.ColGenres)
		return md, nil
	}

	rows := make([]dataset.Movie, md.Len())
	for i, m := range md.Rows {
		records, err := dataset.ParseGenres(m.RawGenres)
		if err != nil {
			return dataset.Metadata{}, &dataset.ParseError{Column: dataset.ColGenres, Row: i, Value: m.RawGenres, Err: err}
		}
		m.Genres = dataset.GenreNames(records)
		rows[i] = m
	}
	return md.WithRows(rows), nil
}

// ============================================================================
// IDENTIFIERS
// ============================================================================

const idPrefix = "tt"

// NormalizeID strips the "tt" prefix and parses the rest as a base-10
// integer. Leading zeros are allowed.
func NormalizeID(raw string) (int64, error) {
	if raw == "" {
		return 0, dataset.ErrEmptyValue
	}
	digits, ok := strings.CutPrefix(raw, idPrefix)
	if !ok {
		return 0, fmt.Errorf("missing %q prefix", idPrefix)
	}
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return 0, fmt.Errorf("non-numeric identifier %q", digits)
	}
	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}
