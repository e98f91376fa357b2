package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ============================================================================
// MOVIESTATS ENGINE TYPES — Summary, ordered counts, render tables
// ============================================================================
// Summary is the one-shot answer to the five fixed queries. Its JSON form
// has a fixed key order; Go maps do not, so the two count mappings are
// ordered slices with their own (Un)MarshalJSON.
// ============================================================================

// DefaultTopN is the size of the top-rated list in the summary.
const DefaultTopN = 5

// Summary keys, in output order.
const (
	KeyUniqueMovies   = "Number of unique movies"
	KeyAverageRating  = "Average rating for all movies"
	KeyMoviesPerYear  = "Number of movies released each year (year: num. movies)"
	KeyMoviesPerGenre = "Number of movies in each genre"
)

// KeyTopRated returns the summary key of the top-n list.
func KeyTopRated(n int) string {
	return fmt.Sprintf("Top %d rated movies", n)
}

// ============================================================================
// COUNTS — Ordered key → count mapping
// ============================================================================

// Count is one entry of an ordered count mapping.
type Count struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// Counts is an insertion-ordered mapping from key to count.
type Counts []Count

// Get returns the count stored under key.
func (c Counts) Get(key string) (int, bool) {
	for _, e := range c {
		if e.Key == key {
			return e.Value, true
		}
	}
	return 0, false
}

// Keys returns the keys in order.
func (c Counts) Keys() []string {
	keys := make([]string, len(c))
	for i, e := range c {
		keys[i] = e.Key
	}
	return keys
}

// Total sums all counts.
func (c Counts) Total() int {
	total := 0
	for _, e := range c {
		total += e.Value
	}
	return total
}

// MarshalJSON writes the counts as a JSON object, preserving order.
// A nil Counts encodes as {}.
func (c Counts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalValue(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(e.Value))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping its key order.
func (c *Counts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("counts: expected object, got %v", tok)
	}

	out := Counts{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("counts: expected key, got %v", tok)
		}
		var value int
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("counts: value of %q: %w", key, err)
		}
		out = append(out, Count{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*c = out
	return nil
}

// ============================================================================
// SUMMARY — Answers to the five queries
// ============================================================================

// Summary holds the answers to the five queries for one view.
//
// AverageRating is rounded to 2 decimals and may be NaN (no ratings).
// TopRated is nil when the top-n query was rejected.
type Summary struct {
	UniqueMovies   int
	AverageRating  float64
	TopN           int
	TopRated       []string
	MoviesPerYear  Counts
	MoviesPerGenre Counts
}

// summaryField is one key/value pair of the encoded summary.
type summaryField struct {
	key   string
	value interface{}
}

func (s Summary) fields() []summaryField {
	var avg interface{}
	if !math.IsNaN(s.AverageRating) && !math.IsInf(s.AverageRating, 0) {
		avg = s.AverageRating
	}
	topN := s.TopN
	if topN == 0 {
		topN = DefaultTopN
	}
	return []summaryField{
		{KeyUniqueMovies, s.UniqueMovies},
		{KeyAverageRating, avg},
		{KeyTopRated(topN), s.TopRated},
		{KeyMoviesPerYear, s.MoviesPerYear},
		{KeyMoviesPerGenre, s.MoviesPerGenre},
	}
}

// MarshalJSON writes the summary with its keys in fixed order. An
// undefined average and a rejected top list encode as null.
func (s Summary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range s.fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalValue(f.key)
		if err != nil {
			return nil, err
		}
		val, err := marshalValue(f.value)
		if err != nil {
			return nil, fmt.Errorf("summary %q: %w", f.key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalValue encodes v without HTML escaping, so titles such as
// "Tom & Jerry" stay readable in the output file.
func marshalValue(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "right"
}
