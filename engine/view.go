package engine

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/spektr-org/moviestats/dataset"
	"github.com/spektr-org/moviestats/helpers"
)

// ============================================================================
// DATASET VIEW — Loaded, cleaned tables plus the queries over them
// ============================================================================
// Construction does all the work: load three tables, run the cleaning
// pipeline over metadata. After that the view is read-only; every query is
// a pure function of its tables and may be called any number of times.
//
// Entry points:
//   NewView(path, opts...)             read CSV files from a directory
//   NewViewFromTables(tables, opts...) tables already in memory (snapshot)
// ============================================================================

// View is a cleaned movie dataset.
type View struct {
	metadata dataset.Metadata
	ratings  []dataset.Rating
	links    []dataset.Link
	logger   hclog.Logger
}

// NewView loads the dataset found at path and cleans it.
//
// Options:
//   - WithPathRelative(bool): resolve path against the executable's dir (default true)
//   - WithLogger(logger): diagnostics sink (default: discard)
//   - WithSchema(cfg): file names and required columns
func NewView(path string, opts ...Option) (*View, error) {
	cfg := applyOptions(opts)

	dir, err := helpers.ResolveDir(path, cfg.PathRelative)
	if err != nil {
		return nil, err
	}

	tables, err := helpers.LoadDir(dir, cfg.Schema, cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	return newView(tables, cfg)
}

// NewViewFromTables cleans tables that are already in memory. The caller's
// slices are not modified.
func NewViewFromTables(tables dataset.Tables, opts ...Option) (*View, error) {
	return newView(tables, applyOptions(opts))
}

func newView(tables dataset.Tables, cfg *config) (*View, error) {
	cleaned, err := cfg.Pipeline.Apply(tables.Metadata, cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to clean metadata: %w", err)
	}

	cfg.Logger.Info("dataset ready",
		"movies", cleaned.Len(),
		"dropped", tables.Metadata.Len()-cleaned.Len(),
		"ratings", len(tables.Ratings),
		"links", len(tables.Links))

	return &View{
		metadata: cleaned,
		ratings:  tables.Ratings,
		links:    tables.Links,
		logger:   cfg.Logger,
	}, nil
}

// Metadata returns the cleaned metadata table. Callers must not modify it.
func (v *View) Metadata() dataset.Metadata { return v.metadata }

// Ratings returns the ratings table. Callers must not modify it.
func (v *View) Ratings() []dataset.Rating { return v.ratings }

// Links returns the links table. Callers must not modify it.
func (v *View) Links() []dataset.Link { return v.links }

// Tables returns the three tables as held by the view.
func (v *View) Tables() dataset.Tables {
	return dataset.Tables{Metadata: v.metadata, Ratings: v.ratings, Links: v.links}
}
