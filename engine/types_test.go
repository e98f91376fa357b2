package engine

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountsMarshalKeepsOrder(t *testing.T) {
	c := Counts{{Key: "1999", Value: 1}, {Key: "1995", Value: 5}, {Key: "1890", Value: 2}}

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `{"1999":1,"1995":5,"1890":2}`, string(data))

	var nilCounts Counts
	data, err = json.Marshal(nilCounts)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestCountsUnmarshalKeepsOrder(t *testing.T) {
	var c Counts
	require.NoError(t, json.Unmarshal([]byte(`{"Drama": 3, "Comedy": 5, "Action": 1}`), &c))
	assert.Equal(t, []string{"Drama", "Comedy", "Action"}, c.Keys())
	assert.Equal(t, 9, c.Total())

	_, ok := c.Get("Western")
	assert.False(t, ok)
}

func TestCountsUnmarshalRejectsNonObject(t *testing.T) {
	var c Counts
	assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &c))
	assert.Error(t, json.Unmarshal([]byte(`{"a": "b"}`), &c))
}

func TestSummaryMarshalKeyOrder(t *testing.T) {
	s := Summary{
		UniqueMovies:   6,
		AverageRating:  7.23,
		TopN:           5,
		TopRated:       []string{"Movie 1"},
		MoviesPerYear:  Counts{{Key: "1999", Value: 1}},
		MoviesPerGenre: Counts{{Key: "Comedy", Value: 5}},
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t,
		`{"Number of unique movies":6,`+
			`"Average rating for all movies":7.23,`+
			`"Top 5 rated movies":["Movie 1"],`+
			`"Number of movies released each year (year: num. movies)":{"1999":1},`+
			`"Number of movies in each genre":{"Comedy":5}}`,
		string(data))
}

func TestSummaryMarshalNulls(t *testing.T) {
	s := Summary{AverageRating: math.NaN(), TopN: 3}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Nil(t, decoded[KeyAverageRating])
	assert.Contains(t, decoded, "Top 3 rated movies")
	assert.Nil(t, decoded["Top 3 rated movies"])
	assert.Equal(t, map[string]interface{}{}, decoded[KeyMoviesPerYear])
}
