package engine

// ============================================================================
// EXECUTOR — Runs all five queries into a Summary
// ============================================================================
// Entry point: BuildSummary(view, topN)
//
// The summary is what the CLI prints and what every report writer
// serializes. The average is rounded here, once, so all outputs agree.
// ============================================================================

// BuildSummary answers the five queries against view. topN <= 0 selects
// DefaultTopN.
func BuildSummary(view *View, topN int) Summary {
	if topN <= 0 {
		topN = DefaultTopN
	}

	s := Summary{
		UniqueMovies:   view.CountUniqueMovies(),
		AverageRating:  RoundTo2(view.AverageRating()),
		TopN:           topN,
		TopRated:       view.TopRatedMovies(topN),
		MoviesPerYear:  view.MoviesPerYear(),
		MoviesPerGenre: view.MoviesPerGenre(),
	}

	view.logger.Debug("summary built",
		"unique_movies", s.UniqueMovies,
		"average_rating", FormatRating(s.AverageRating),
		"top_rated", len(s.TopRated),
		"years", len(s.MoviesPerYear),
		"genres", len(s.MoviesPerGenre))

	return s
}
