// Package moviestats computes descriptive statistics over a MovieLens-style
// dataset: movie metadata, user ratings and the links between them.
//
// Usage:
//
//	import "github.com/spektr-org/moviestats/engine"
//
//	view, err := engine.NewView("../MovieLens/",
//	    engine.WithLogger(logger),
//	)
//	summary := engine.BuildSummary(view, engine.DefaultTopN)
//
// NewView loads movies_metadata.csv, ratings.csv and links.csv, runs the
// cleaning pipeline over the metadata table, and returns a read-only view.
// The report package writes a Summary as text, JSON, CSV or XLSX; the store
// package keeps cleaned tables in SQLite for later runs.
package moviestats
