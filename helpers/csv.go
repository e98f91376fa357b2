package helpers

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/spektr-org/moviestats/dataset"
	"github.com/spektr-org/moviestats/schema"
)

// ============================================================================
// CSV HELPER — Parses the three MovieLens tables
// ============================================================================
// Columns are located by header name (see schema.Index). Extra columns are
// skipped. A CSV structure error or an unparseable numeric cell in a
// required column fails the whole table; nothing is silently dropped here
// except rows whose join keys are null.
// ============================================================================

// nullTokens mirrors the cell values pandas reads as missing.
var nullTokens = map[string]bool{
	"": true, "NaN": true, "nan": true, "-NaN": true, "-nan": true,
	"NA": true, "N/A": true, "n/a": true, "<NA>": true, "#N/A": true,
	"NULL": true, "null": true, "None": true,
}

// IsNull reports whether a trimmed cell counts as missing.
func IsNull(val string) bool {
	return nullTokens[strings.TrimSpace(val)]
}

// rawTable is a header plus its data rows, before typing.
type rawTable struct {
	header []string
	index  map[string]int
	rows   [][]string
}

func (t *rawTable) has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// cell returns the trimmed value of col in row i, or "" if col is absent.
func (t *rawTable) cell(i int, col string) string {
	pos, ok := t.index[col]
	if !ok || pos >= len(t.rows[i]) {
		return ""
	}
	return strings.TrimSpace(t.rows[i][pos])
}

func readTable(r io.Reader, tbl schema.Table) (*rawTable, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s headers: %w", tbl.Name, err)
	}
	if err := tbl.Validate(header); err != nil {
		return nil, err
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s rows: %w", tbl.Name, err)
	}

	return &rawTable{header: header, index: schema.Index(header), rows: rows}, nil
}

// ParseMetadataCSV parses movies_metadata.csv. Cells are kept raw; the
// cleaning pipeline types them.
func ParseMetadataCSV(r io.Reader, tbl schema.Table) (dataset.Metadata, error) {
	raw, err := readTable(r, tbl)
	if err != nil {
		return dataset.Metadata{}, err
	}

	movies := make([]dataset.Movie, 0, len(raw.rows))
	for i := range raw.rows {
		id := raw.cell(i, dataset.ColIMDbID)
		if IsNull(id) {
			id = ""
		}
		movies = append(movies, dataset.Movie{
			RawID:       id,
			Title:       raw.cell(i, dataset.ColTitle),
			RawGenres:   raw.cell(i, dataset.ColGenres),
			ReleaseDate: raw.cell(i, dataset.ColReleaseDate),
		})
	}

	return dataset.NewMetadata(tbl.Present(raw.header), movies), nil
}

// ParseRatingsCSV parses ratings.csv. Rows with a null movieId or rating
// are skipped.
func ParseRatingsCSV(r io.Reader, tbl schema.Table) ([]dataset.Rating, error) {
	raw, err := readTable(r, tbl)
	if err != nil {
		return nil, err
	}

	ratings := make([]dataset.Rating, 0, len(raw.rows))
	for i := range raw.rows {
		movieCell := raw.cell(i, dataset.ColMovieID)
		ratingCell := raw.cell(i, dataset.ColRating)
		if IsNull(movieCell) || IsNull(ratingCell) {
			continue
		}

		movieID, err := ParseInt64(movieCell)
		if err != nil {
			return nil, &dataset.ParseError{Column: dataset.ColMovieID, Row: i, Value: movieCell, Err: err}
		}
		value, err := cast.ToFloat64E(ratingCell)
		if err != nil {
			return nil, &dataset.ParseError{Column: dataset.ColRating, Row: i, Value: ratingCell, Err: err}
		}

		var userID int64
		if userCell := raw.cell(i, dataset.ColUserID); raw.has(dataset.ColUserID) && !IsNull(userCell) {
			userID, err = ParseInt64(userCell)
			if err != nil {
				return nil, &dataset.ParseError{Column: dataset.ColUserID, Row: i, Value: userCell, Err: err}
			}
		}

		ratings = append(ratings, dataset.Rating{UserID: userID, MovieID: movieID, Rating: value})
	}
	return ratings, nil
}

// ParseLinksCSV parses links.csv. Rows with a null movieId or imdbId are
// skipped; they can never join.
func ParseLinksCSV(r io.Reader, tbl schema.Table) ([]dataset.Link, error) {
	raw, err := readTable(r, tbl)
	if err != nil {
		return nil, err
	}

	links := make([]dataset.Link, 0, len(raw.rows))
	for i := range raw.rows {
		movieCell := raw.cell(i, dataset.ColMovieID)
		imdbCell := raw.cell(i, dataset.ColLinkID)
		if IsNull(movieCell) || IsNull(imdbCell) {
			continue
		}

		movieID, err := ParseInt64(movieCell)
		if err != nil {
			return nil, &dataset.ParseError{Column: dataset.ColMovieID, Row: i, Value: movieCell, Err: err}
		}
		imdbID, err := ParseInt64(imdbCell)
		if err != nil {
			return nil, &dataset.ParseError{Column: dataset.ColLinkID, Row: i, Value: imdbCell, Err: err}
		}

		links = append(links, dataset.Link{MovieID: movieID, IMDbID: imdbID})
	}
	return links, nil
}

// ParseInt64 parses a base-10 integer cell. Leading zeros are kept as
// decimal ("0114709" → 114709). A float with no fractional part ("21.0")
// is accepted since pandas writes integer columns that way once they hold
// a missing value.
func ParseInt64(val string) (int64, error) {
	val = strings.TrimSpace(val)
	if n, err := strconv.ParseInt(val, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %w", err)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("not an integer: %s", val)
	}
	return int64(f), nil
}
