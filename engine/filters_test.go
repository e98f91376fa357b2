package engine

import (
	"bytes"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/moviestats/dataset"
	"github.com/spektr-org/moviestats/testutil"
)

var allColumns = []string{dataset.ColIMDbID, dataset.ColGenres, dataset.ColReleaseDate, dataset.ColTitle}

func movie(rawID, title, date, genres string) dataset.Movie {
	return dataset.Movie{RawID: rawID, Title: title, ReleaseDate: date, RawGenres: genres}
}

// bufferLogger captures log output so tests can assert on logged errors.
func bufferLogger() (hclog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Trace}), &buf
}

// ============================================================================
// DEDUPLICATE
// ============================================================================

func TestDeduplicateKeepsFirstOccurrence(t *testing.T) {
	md := dataset.NewMetadata(allColumns, []dataset.Movie{
		movie("tt1", "first", "", ""),
		movie("", "no id", "", ""),
		movie("tt2", "second", "", ""),
		movie("tt1", "dup", "", ""),
	})

	out, err := Deduplicate(md, testutil.Logger())
	require.NoError(t, err)

	require.Equal(t, 2, out.Len())
	assert.Equal(t, "first", out.Rows[0].Title)
	assert.Equal(t, "second", out.Rows[1].Title)
	assert.Equal(t, 4, md.Len(), "input must not change")
}

func TestDeduplicateMissingColumnLogsAndPassesThrough(t *testing.T) {
	logger, buf := bufferLogger()
	md := dataset.NewMetadata([]string{dataset.ColTitle}, []dataset.Movie{{Title: "a"}, {Title: "a"}})

	out, err := Deduplicate(md, logger)
	require.NoError(t, err)
	assert.Equal(t, md, out)
	assert.Contains(t, buf.String(), "column does not exist")
	assert.Contains(t, buf.String(), "imdb_id")
}

// ============================================================================
// NORMALIZE IDS
// ============================================================================

func TestNormalizeID(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"tt0114709", 114709, false},
		{"tt01", 1, false},
		{"tt0", 0, false},
		{"0114709", 0, true},
		{"tt", 0, true},
		{"ttabc", 0, true},
		{"tt-5", 0, true},
		{"tt99999999999999999999", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := NormalizeID(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestNormalizeIDsFillsIntegerIDs(t *testing.T) {
	md := dataset.NewMetadata(allColumns, []dataset.Movie{movie("tt0114709", "a", "", ""), movie("tt01", "b", "", "")})

	out, err := NormalizeIDs(md, testutil.Logger())
	require.NoError(t, err)
	assert.Equal(t, []int64{114709, 1}, out.IDs())
	assert.Zero(t, md.Rows[0].ID, "input must not change")
}

func TestNormalizeIDsRejectsMalformedID(t *testing.T) {
	md := dataset.NewMetadata(allColumns, []dataset.Movie{movie("tt1", "a", "", ""), movie("nm42", "b", "", "")})

	_, err := NormalizeIDs(md, testutil.Logger())
	var perr *dataset.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, dataset.ColIMDbID, perr.Column)
	assert.Equal(t, 1, perr.Row)
	assert.Equal(t, "nm42", perr.Value)
}

func TestNormalizeIDsMissingColumn(t *testing.T) {
	md := dataset.NewMetadata([]string{dataset.ColTitle}, []dataset.Movie{{Title: "a"}})

	_, err := NormalizeIDs(md, testutil.Logger())
	var missing *dataset.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, dataset.ColIMDbID, missing.Column)
}

// ============================================================================
// FILTER INVALID DATES
// ============================================================================

func TestFilterInvalidDates(t *testing.T) {
	logger, buf := bufferLogger()
	md := dataset.NewMetadata(allColumns, []dataset.Movie{
		movie("tt1", "valid", "1995-10-30", ""),
		movie("tt2", "bad month", "1995-99-99", ""),
		movie("tt3", "not a date", "soon", ""),
		movie("tt4", "empty", "", ""),
		movie("tt5", "feb 30", "1995-02-30", ""),
		movie("tt6", "leap day", "1996-02-29", ""),
	})

	out, err := FilterInvalidDates(md, logger)
	require.NoError(t, err)

	require.Equal(t, 2, out.Len())
	assert.Equal(t, "valid", out.Rows[0].Title)
	assert.Equal(t, 1995, out.Rows[0].Year())
	assert.Equal(t, "leap day", out.Rows[1].Title)
	assert.Empty(t, buf.String(), "dropped dates are not logged")
}

func TestFilterInvalidDatesMissingColumn(t *testing.T) {
	md := dataset.NewMetadata([]string{dataset.ColIMDbID, dataset.ColTitle}, []dataset.Movie{movie("tt1", "a", "", "")})

	_, err := FilterInvalidDates(md, testutil.Logger())
	var missing *dataset.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, dataset.ColReleaseDate, missing.Column)
}

// ============================================================================
// PARSE GENRE FIELD
// ============================================================================

func TestParseGenreField(t *testing.T) {
	md := dataset.NewMetadata(allColumns, []dataset.Movie{
		movie("tt1", "a", "", "[{'id': 16, 'name': 'Animation'}, {'id': 35, 'name': 'Comedy'}]"),
		movie("tt2", "b", "", "[]"),
	})

	out, err := ParseGenreField(md, testutil.Logger())
	require.NoError(t, err)
	assert.Equal(t, []string{"Animation", "Comedy"}, out.Rows[0].Genres)
	assert.Empty(t, out.Rows[1].Genres)
	assert.Nil(t, md.Rows[0].Genres, "input must not change")
}

func TestParseGenreFieldRejectsMalformedCell(t *testing.T) {
	md := dataset.NewMetadata(allColumns, []dataset.Movie{
		movie("tt1", "a", "", "[{'id': 16, 'name': 'Animation'}]"),
		movie("tt2", "b", "", "Animation|Comedy"),
	})

	_, err := ParseGenreField(md, testutil.Logger())
	var perr *dataset.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, dataset.ColGenres, perr.Column)
	assert.Equal(t, 1, perr.Row)
}

func TestParseGenreFieldMissingColumnLogsAndPassesThrough(t *testing.T) {
	logger, buf := bufferLogger()
	md := dataset.NewMetadata([]string{dataset.ColIMDbID, dataset.ColTitle}, []dataset.Movie{movie("tt1", "a", "", "")})

	out, err := ParseGenreField(md, logger)
	require.NoError(t, err)
	assert.Equal(t, md, out)
	assert.Contains(t, buf.String(), "genres")
}

// ============================================================================
// PIPELINE
// ============================================================================

func TestPipelineWrapsStepName(t *testing.T) {
	md := dataset.NewMetadata(allColumns, []dataset.Movie{movie("bad", "a", "1995-01-01", "[]")})

	_, err := DefaultPipeline().Apply(md, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "normalize_ids")

	var perr *dataset.ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestPipelineOrder(t *testing.T) {
	names := make([]string, 0)
	for _, s := range DefaultPipeline() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"deduplicate", "normalize_ids", "filter_invalid_dates", "parse_genres"}, names)
}

func TestPipelineDropsDuplicateBeforeNormalizing(t *testing.T) {
	md := dataset.NewMetadata(allColumns, []dataset.Movie{
		movie("tt1", "a", "1995-01-01", "[]"),
		movie("tt1", "a", "1995-01-01", "[]"),
		movie("tt01", "b", "1995-01-01", "[]"),
	})

	out, err := DefaultPipeline().Apply(md, testutil.Logger())
	require.NoError(t, err)

	// "tt1" and "tt01" are different raw strings, so both survive even
	// though they normalize to the same integer.
	assert.Equal(t, []int64{1, 1}, out.IDs())
}
