package store

import (
	"time"
)

// ============================================================================
// MODELS — One row per source row, tagged with the run that wrote it
// ============================================================================
// Position keeps the source row order; every read orders by it.
// ============================================================================

// Snapshot is one saved run: the summary plus the metadata column set.
type Snapshot struct {
	ID            uint      `gorm:"primaryKey"`
	RunID         string    `gorm:"size:36;uniqueIndex"`
	CreatedAt     time.Time
	Columns       string    // metadata header columns, comma separated
	UniqueMovies  int
	AverageRating *float64  // nil when there were no ratings
	TopN          int
	TopRated      string    `gorm:"type:text"` // JSON array or "null"
	MoviesPerYear string    `gorm:"type:text"` // JSON object, ordered
	Genres        string    `gorm:"type:text"` // JSON object, ordered
}

// TableName overrides the default "snapshots".
func (Snapshot) TableName() string { return "summaries" }

// MovieRecord is a cleaned metadata row.
type MovieRecord struct {
	ID          uint   `gorm:"primaryKey"`
	RunID       string `gorm:"size:36;index"`
	Position    int
	RawID       string
	IMDbID      int64  `gorm:"column:imdb_id;index"`
	Title       string
	RawGenres   string `gorm:"type:text"`
	Genres      string `gorm:"type:text"` // JSON array of names
	ReleaseDate string
}

// TableName overrides the default "movie_records".
func (MovieRecord) TableName() string { return "movies" }

// RatingRecord is a ratings row.
type RatingRecord struct {
	ID       uint   `gorm:"primaryKey"`
	RunID    string `gorm:"size:36;index"`
	Position int
	UserID   int64
	MovieID  int64 `gorm:"index"`
	Rating   float64
}

// TableName overrides the default "rating_records".
func (RatingRecord) TableName() string { return "ratings" }

// LinkRecord is a links row.
type LinkRecord struct {
	ID       uint   `gorm:"primaryKey"`
	RunID    string `gorm:"size:36;index"`
	Position int
	MovieID  int64 `gorm:"index"`
	IMDbID   int64 `gorm:"column:imdb_id"`
}

// TableName overrides the default "link_records".
func (LinkRecord) TableName() string { return "links" }
