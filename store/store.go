// Package store persists cleaned tables and their summary in SQLite so a
// later run can rebuild the view without reading the CSV files again.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/spektr-org/moviestats/dataset"
	"github.com/spektr-org/moviestats/engine"
)

// ErrNoSnapshot is returned by Load and LatestSummary on an empty store.
var ErrNoSnapshot = errors.New("no snapshot stored")

const batchSize = 500

// Store is a snapshot database.
type Store struct {
	db     *gorm.DB
	logger hclog.Logger
}

// Open opens (creating if needed) the SQLite database at path and migrates
// its tables. ":memory:" gives a private in-memory database.
func Open(path string, logger hclog.Logger) (*Store, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps ":memory:"
	// pointing at the same database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Snapshot{}, &MovieRecord{}, &RatingRecord{}, &LinkRecord{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate snapshot database: %w", err)
	}

	logger.Debug("snapshot database ready", "path", path)
	return &Store{db: db, logger: logger}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ============================================================================
// SAVE
// ============================================================================

// Save writes tables and summary under a new run id, replacing any table
// rows from earlier runs. Earlier summaries are kept. Returns the run id.
func (s *Store) Save(ctx context.Context, tables dataset.Tables, summary engine.Summary) (string, error) {
	runID := uuid.New().String()

	snap, err := newSnapshot(runID, tables.Metadata.Columns, summary)
	if err != nil {
		return "", err
	}
	movies, err := movieRecords(runID, tables.Metadata)
	if err != nil {
		return "", err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&MovieRecord{}, &RatingRecord{}, &LinkRecord{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear previous run: %w", err)
			}
		}
		if err := tx.Create(snap).Error; err != nil {
			return fmt.Errorf("failed to insert summary: %w", err)
		}
		if err := createInBatches(tx, movies); err != nil {
			return fmt.Errorf("failed to insert movies: %w", err)
		}
		if err := createInBatches(tx, ratingRecords(runID, tables.Ratings)); err != nil {
			return fmt.Errorf("failed to insert ratings: %w", err)
		}
		if err := createInBatches(tx, linkRecords(runID, tables.Links)); err != nil {
			return fmt.Errorf("failed to insert links: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to save snapshot", "run_id", runID, "error", err)
		return "", err
	}

	s.logger.Info("snapshot saved", "run_id", runID,
		"movies", len(movies),
		"ratings", len(tables.Ratings),
		"links", len(tables.Links))
	return runID, nil
}

func createInBatches[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(rows, batchSize).Error
}

func newSnapshot(runID string, columns []string, summary engine.Summary) (*Snapshot, error) {
	topRated, err := json.Marshal(summary.TopRated)
	if err != nil {
		return nil, err
	}
	years, err := json.Marshal(summary.MoviesPerYear)
	if err != nil {
		return nil, err
	}
	genres, err := json.Marshal(summary.MoviesPerGenre)
	if err != nil {
		return nil, err
	}

	var avg *float64
	if !math.IsNaN(summary.AverageRating) {
		v := summary.AverageRating
		avg = &v
	}

	return &Snapshot{
		RunID:         runID,
		CreatedAt:     time.Now().UTC(),
		Columns:       strings.Join(columns, ","),
		UniqueMovies:  summary.UniqueMovies,
		AverageRating: avg,
		TopN:          summary.TopN,
		TopRated:      string(topRated),
		MoviesPerYear: string(years),
		Genres:        string(genres),
	}, nil
}

func movieRecords(runID string, md dataset.Metadata) ([]MovieRecord, error) {
	records := make([]MovieRecord, 0, md.Len())
	for i, m := range md.Rows {
		genres, err := json.Marshal(m.Genres)
		if err != nil {
			return nil, err
		}
		records = append(records, MovieRecord{
			RunID:       runID,
			Position:    i,
			RawID:       m.RawID,
			IMDbID:      m.ID,
			Title:       m.Title,
			RawGenres:   m.RawGenres,
			Genres:      string(genres),
			ReleaseDate: m.ReleaseDate,
		})
	}
	return records, nil
}

func ratingRecords(runID string, ratings []dataset.Rating) []RatingRecord {
	records := make([]RatingRecord, len(ratings))
	for i, r := range ratings {
		records[i] = RatingRecord{RunID: runID, Position: i, UserID: r.UserID, MovieID: r.MovieID, Rating: r.Rating}
	}
	return records
}

func linkRecords(runID string, links []dataset.Link) []LinkRecord {
	records := make([]LinkRecord, len(links))
	for i, l := range links {
		records[i] = LinkRecord{RunID: runID, Position: i, MovieID: l.MovieID, IMDbID: l.IMDbID}
	}
	return records
}

// ============================================================================
// LOAD
// ============================================================================

// Load returns the tables of the latest run.
func (s *Store) Load(ctx context.Context) (dataset.Tables, error) {
	db := s.db.WithContext(ctx)

	snap, err := latest(db)
	if err != nil {
		return dataset.Tables{}, err
	}

	var movies []MovieRecord
	if err := db.Where("run_id = ?", snap.RunID).Order("position").Find(&movies).Error; err != nil {
		return dataset.Tables{}, fmt.Errorf("failed to read movies: %w", err)
	}
	var ratings []RatingRecord
	if err := db.Where("run_id = ?", snap.RunID).Order("position").Find(&ratings).Error; err != nil {
		return dataset.Tables{}, fmt.Errorf("failed to read ratings: %w", err)
	}
	var links []LinkRecord
	if err := db.Where("run_id = ?", snap.RunID).Order("position").Find(&links).Error; err != nil {
		return dataset.Tables{}, fmt.Errorf("failed to read links: %w", err)
	}

	rows := make([]dataset.Movie, len(movies))
	for i, m := range movies {
		var genres []string
		if err := json.Unmarshal([]byte(m.Genres), &genres); err != nil {
			return dataset.Tables{}, fmt.Errorf("movie %d genres: %w", m.Position, err)
		}
		released, _ := time.Parse(dataset.DateLayout, m.ReleaseDate)
		rows[i] = dataset.Movie{
			RawID:       m.RawID,
			ID:          m.IMDbID,
			Title:       m.Title,
			RawGenres:   m.RawGenres,
			Genres:      genres,
			ReleaseDate: m.ReleaseDate,
			Released:    released,
		}
	}

	tables := dataset.Tables{
		Metadata: dataset.NewMetadata(splitColumns(snap.Columns), rows),
		Ratings:  make([]dataset.Rating, len(ratings)),
		Links:    make([]dataset.Link, len(links)),
	}
	for i, r := range ratings {
		tables.Ratings[i] = dataset.Rating{UserID: r.UserID, MovieID: r.MovieID, Rating: r.Rating}
	}
	for i, l := range links {
		tables.Links[i] = dataset.Link{MovieID: l.MovieID, IMDbID: l.IMDbID}
	}

	s.logger.Debug("snapshot loaded", "run_id", snap.RunID,
		"movies", len(rows), "ratings", len(ratings), "links", len(links))
	return tables, nil
}

// LatestSummary returns the run id and summary of the latest run.
func (s *Store) LatestSummary(ctx context.Context) (string, engine.Summary, error) {
	snap, err := latest(s.db.WithContext(ctx))
	if err != nil {
		return "", engine.Summary{}, err
	}

	summary := engine.Summary{
		UniqueMovies:  snap.UniqueMovies,
		AverageRating: math.NaN(),
		TopN:          snap.TopN,
	}
	if snap.AverageRating != nil {
		summary.AverageRating = *snap.AverageRating
	}
	if err := json.Unmarshal([]byte(snap.TopRated), &summary.TopRated); err != nil {
		return "", engine.Summary{}, fmt.Errorf("summary top rated: %w", err)
	}
	if err := json.Unmarshal([]byte(snap.MoviesPerYear), &summary.MoviesPerYear); err != nil {
		return "", engine.Summary{}, fmt.Errorf("summary years: %w", err)
	}
	if err := json.Unmarshal([]byte(snap.Genres), &summary.MoviesPerGenre); err != nil {
		return "", engine.Summary{}, fmt.Errorf("summary genres: %w", err)
	}
	return snap.RunID, summary, nil
}

// Runs returns the ids of every stored run, oldest first.
func (s *Store) Runs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := s.db.WithContext(ctx).Model(&Snapshot{}).Order("id").Pluck("run_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return ids, nil
}

func latest(db *gorm.DB) (*Snapshot, error) {
	var snap Snapshot
	if err := db.Last(&snap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to read summary: %w", err)
	}
	return &snap, nil
}

func splitColumns(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}
