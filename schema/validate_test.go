package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/moviestats/dataset"
)

// ============================================================================
// HEADER VALIDATION
// ============================================================================

func TestValidateAcceptsPandasIndexColumn(t *testing.T) {
	// pandas.to_csv writes a leading unnamed index column.
	header := []string{"", "imdb_id", "genres", "vote_average", "release_date", "title"}
	assert.NoError(t, MovieLens().Metadata.Validate(header))
}

func TestValidateReportsFirstMissingColumn(t *testing.T) {
	err := MovieLens().Ratings.Validate([]string{"userId", "movieId"})
	require.Error(t, err)

	var missing *dataset.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "ratings", missing.Table)
	assert.Equal(t, "rating", missing.Column)
}

func TestValidateTrimsHeaderNames(t *testing.T) {
	assert.NoError(t, MovieLens().Links.Validate([]string{" movieId ", "imdbId ", "tmdbId"}))
}

func TestMetadataOptionalColumnsNotEnforced(t *testing.T) {
	assert.NoError(t, MovieLens().Metadata.Validate([]string{"title"}))
}

func TestPresent(t *testing.T) {
	cols := MovieLens().Metadata.Present([]string{"", "release_date", "title", "budget"})
	assert.Equal(t, []string{"title", "release_date"}, cols)
}

func TestIndexFirstOccurrenceWins(t *testing.T) {
	idx := Index([]string{"a", "b", "a"})
	assert.Equal(t, 0, idx["a"])
	assert.Equal(t, 1, idx["b"])
}

func TestTablesOrder(t *testing.T) {
	var files []string
	for _, tbl := range MovieLens().Tables() {
		files = append(files, tbl.File)
	}
	assert.Equal(t, []string{"movies_metadata.csv", "ratings.csv", "links.csv"}, files)
}
