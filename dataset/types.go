package dataset

import "time"

// ============================================================================
// DATASET TYPES — Movies, Ratings, Links
// ============================================================================
// Three tables, loaded once. Metadata is the only table the cleaning
// pipeline rewrites; ratings and links are read as-is.
//
// Joins:
//   Link.MovieID ↔ Rating.MovieID   (local numeric id)
//   Link.IMDbID  ↔ Movie.ID         (external id, normalized)
// No foreign keys: an unmatched join yields nothing.
// ============================================================================

// Column names as they appear in the source headers.
const (
	ColIMDbID      = "imdb_id"
	ColTitle       = "title"
	ColGenres      = "genres"
	ColReleaseDate = "release_date"

	ColUserID  = "userId"
	ColMovieID = "movieId"
	ColRating  = "rating"
	ColLinkID  = "imdbId"
)

// DateLayout is the only accepted release_date format.
const DateLayout = "2006-01-02"

// ============================================================================
// METADATA
// ============================================================================

// Movie is one metadata row.
//
// Fields prefixed Raw hold the cell exactly as read; the cleaning pipeline
// fills the typed counterparts (ID, Genres, Released).
type Movie struct {
	RawID       string    `json:"rawId"` // "tt0114709"; empty means null
	ID          int64     `json:"imdbId"`
	Title       string    `json:"title"`
	RawGenres   string    `json:"rawGenres"`
	Genres      []string  `json:"genres"`
	ReleaseDate string    `json:"releaseDate"`
	Released    time.Time `json:"released"`
}

// HasID reports whether the raw identifier cell was non-null.
func (m Movie) HasID() bool { return m.RawID != "" }

// Year returns the release year, or 0 if the date was never parsed.
func (m Movie) Year() int {
	if m.Released.IsZero() {
		return 0
	}
	return m.Released.Year()
}

// Metadata is the movie table plus the set of columns its source carried.
// Treat it as a value: pipeline steps return a new Metadata via WithRows.
type Metadata struct {
	Columns []string `json:"columns"`
	Rows    []Movie  `json:"rows"`
}

// NewMetadata builds a table from a header and rows.
func NewMetadata(columns []string, rows []Movie) Metadata {
	return Metadata{Columns: columns, Rows: rows}
}

// Len returns the number of rows.
func (m Metadata) Len() int { return len(m.Rows) }

// HasColumn reports whether the source header contained name.
func (m Metadata) HasColumn(name string) bool {
	for _, c := range m.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// WithRows returns a table with the same columns and the given rows.
// The receiver is left untouched.
func (m Metadata) WithRows(rows []Movie) Metadata {
	cols := make([]string, len(m.Columns))
	copy(cols, m.Columns)
	return Metadata{Columns: cols, Rows: rows}
}

// IDs returns the normalized identifier of every row, in row order.
func (m Metadata) IDs() []int64 {
	ids := make([]int64, len(m.Rows))
	for i, r := range m.Rows {
		ids[i] = r.ID
	}
	return ids
}

// ============================================================================
// RATINGS & LINKS
// ============================================================================

// Rating is a single (user, movie, rating) observation.
// The rating range is not validated.
type Rating struct {
	UserID  int64   `json:"userId"`
	MovieID int64   `json:"movieId"`
	Rating  float64 `json:"rating"`
}

// Link maps a local movie id to its external identifier.
type Link struct {
	MovieID int64 `json:"movieId"`
	IMDbID  int64 `json:"imdbId"`
}

// Tables groups the three loaded tables.
type Tables struct {
	Metadata Metadata `json:"metadata"`
	Ratings  []Rating `json:"ratings"`
	Links    []Link   `json:"links"`
}
