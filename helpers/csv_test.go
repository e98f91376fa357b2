package helpers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/moviestats/dataset"
	"github.com/spektr-org/moviestats/schema"
	"github.com/spektr-org/moviestats/testutil"
)

// ============================================================================
// CSV PARSING
// ============================================================================

func TestParseMetadataCSVKeepsCellsRaw(t *testing.T) {
	md, err := ParseMetadataCSV(strings.NewReader(testutil.MetadataCSV), schema.MovieLens().Metadata)
	require.NoError(t, err)

	require.Equal(t, 7, md.Len())
	assert.Equal(t, "tt01", md.Rows[0].RawID)
	assert.Equal(t, "Movie 1", md.Rows[0].Title)
	assert.Equal(t, "1995-10-30", md.Rows[0].ReleaseDate)
	assert.True(t, strings.HasPrefix(md.Rows[0].RawGenres, "[{'id': 16"))
	assert.Zero(t, md.Rows[0].ID)
	assert.Nil(t, md.Rows[0].Genres)

	for _, col := range []string{"imdb_id", "genres", "release_date", "title"} {
		assert.True(t, md.HasColumn(col), col)
	}
	assert.False(t, md.HasColumn("vote_average"))
}

func TestParseMetadataCSVNullIdentifiers(t *testing.T) {
	in := "imdb_id,title\n,A\nNaN,B\ntt3,C\n"
	md, err := ParseMetadataCSV(strings.NewReader(in), schema.MovieLens().Metadata)
	require.NoError(t, err)

	assert.False(t, md.Rows[0].HasID())
	assert.False(t, md.Rows[1].HasID())
	assert.True(t, md.Rows[2].HasID())
}

func TestParseMetadataCSVMissingTitle(t *testing.T) {
	_, err := ParseMetadataCSV(strings.NewReader("imdb_id\ntt1\n"), schema.MovieLens().Metadata)
	var missing *dataset.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "title", missing.Column)
}

func TestParseRatingsCSV(t *testing.T) {
	ratings, err := ParseRatingsCSV(strings.NewReader(testutil.RatingsCSV), schema.MovieLens().Ratings)
	require.NoError(t, err)

	require.Len(t, ratings, 6)
	assert.Equal(t, dataset.Rating{UserID: 270896, MovieID: 21, Rating: 10}, ratings[0])
	assert.Equal(t, dataset.Rating{UserID: 1, MovieID: 23, Rating: 9.1}, ratings[2])
}

func TestParseRatingsCSVSkipsNullRating(t *testing.T) {
	in := "movieId,rating\n1,4.5\n2,\n3,NaN\n"
	ratings, err := ParseRatingsCSV(strings.NewReader(in), schema.MovieLens().Ratings)
	require.NoError(t, err)
	assert.Equal(t, []dataset.Rating{{MovieID: 1, Rating: 4.5}}, ratings)
}

func TestParseRatingsCSVRejectsBadNumber(t *testing.T) {
	in := "movieId,rating\n1,great\n"
	_, err := ParseRatingsCSV(strings.NewReader(in), schema.MovieLens().Ratings)

	var perr *dataset.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "rating", perr.Column)
	assert.Equal(t, 0, perr.Row)
	assert.Equal(t, "great", perr.Value)
}

func TestParseRatingsCSVRejectsRaggedRows(t *testing.T) {
	in := "movieId,rating\n1,4.5\n2\n"
	_, err := ParseRatingsCSV(strings.NewReader(in), schema.MovieLens().Ratings)
	assert.Error(t, err)
}

func TestParseLinksCSVLeadingZeros(t *testing.T) {
	// links.csv in the MovieLens export zero-pads imdbId.
	in := "movieId,imdbId,tmdbId\n1,0114709,862\n2,0113497,\n"
	links, err := ParseLinksCSV(strings.NewReader(in), schema.MovieLens().Links)
	require.NoError(t, err)
	assert.Equal(t, []dataset.Link{{MovieID: 1, IMDbID: 114709}, {MovieID: 2, IMDbID: 113497}}, links)
}

func TestParseInt64(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"21", 21, false},
		{" 0114709 ", 114709, false},
		{"21.0", 21, false},
		{"21.5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseInt64(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

// ============================================================================
// DIRECTORY LOADING
// ============================================================================

func TestLoadDir(t *testing.T) {
	dir := testutil.WriteDataset(t, nil)

	tables, err := LoadDir(dir, schema.MovieLens(), testutil.Logger())
	require.NoError(t, err)
	assert.Equal(t, 7, tables.Metadata.Len())
	assert.Len(t, tables.Ratings, 6)
	assert.Len(t, tables.Links, 6)
}

func TestLoadDirMissingFile(t *testing.T) {
	dir := testutil.WriteDataset(t, testutil.Files{"links.csv": ""})

	_, err := LoadDir(dir, schema.MovieLens(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "links")
}

func TestLoadDirStripsBOM(t *testing.T) {
	dir := testutil.WriteDataset(t, testutil.Files{
		"ratings.csv": "\ufeffmovieId,rating\n21,3.5\n",
	})

	tables, err := LoadDir(dir, schema.MovieLens(), nil)
	require.NoError(t, err)
	assert.Equal(t, []dataset.Rating{{MovieID: 21, Rating: 3.5}}, tables.Ratings)
}

func TestResolveDir(t *testing.T) {
	got, err := ResolveDir("data", false)
	require.NoError(t, err)
	assert.Equal(t, "data", got)

	got, err = ResolveDir("data", true)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "data", filepath.Base(got))
}
