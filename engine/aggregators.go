package engine

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/spektr-org/moviestats/dataset"
)

// ============================================================================
// AGGREGATORS — The five fixed queries over a View
// ============================================================================
// Queries never modify the view. Results that are counts come back as
// Counts so their order survives serialization.
// ============================================================================

// CountUniqueMovies returns the number of distinct movie identifiers.
// After cleaning this equals the metadata row count.
func (v *View) CountUniqueMovies() int {
	seen := make(map[string]bool, v.metadata.Len())
	for _, m := range v.metadata.Rows {
		if m.HasID() {
			seen[m.RawID] = true
		}
	}
	return len(seen)
}

// AverageRating returns the mean of all ratings, or NaN if there are none.
func (v *View) AverageRating() float64 {
	if len(v.ratings) == 0 {
		return math.NaN()
	}
	var total float64
	for _, r := range v.ratings {
		total += r.Rating
	}
	return total / float64(len(v.ratings))
}

// TopRatedMovies returns the titles of the movies behind the n highest
// ratings.
//
// Ratings are ordered by value, highest first; equal ratings keep their
// table order. The first n ratings select movie ids, links map those to
// external ids, and the titles of matching metadata rows are returned in
// metadata order. Unmatched ids are skipped, so the result may be shorter
// than n.
//
// n must be in [0, number of ratings). Otherwise an error is logged and
// nil is returned.
func (v *View) TopRatedMovies(n int) []string {
	if n < 0 || n >= len(v.ratings) {
		v.logger.Error("top n must be smaller than the number of ratings",
			"top_n", n, "ratings", len(v.ratings))
		return nil
	}

	sorted := make([]dataset.Rating, len(v.ratings))
	copy(sorted, v.ratings)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rating > sorted[j].Rating })

	movieIDs := make(map[int64]bool, n)
	for _, r := range sorted[:n] {
		movieIDs[r.MovieID] = true
	}

	imdbIDs := make(map[int64]bool, n)
	for _, l := range v.links {
		if movieIDs[l.MovieID] {
			imdbIDs[l.IMDbID] = true
		}
	}

	titles := make([]string, 0, n)
	for _, m := range v.metadata.Rows {
		if imdbIDs[m.ID] {
			titles = append(titles, m.Title)
		}
	}
	return titles
}

// MoviesPerYear counts movies by release year, latest year first.
// Keys are decimal year strings.
func (v *View) MoviesPerYear() Counts {
	perYear := make(map[int]int)
	years := make([]int, 0)
	for _, m := range v.metadata.Rows {
		// rows that never went through date parsing have no year
		if m.Released.IsZero() {
			continue
		}
		y := m.Year()
		if _, exists := perYear[y]; !exists {
			years = append(years, y)
		}
		perYear[y]++
	}

	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	counts := make(Counts, 0, len(years))
	for _, y := range years {
		counts = append(counts, Count{Key: strconv.Itoa(y), Value: perYear[y]})
	}
	return counts
}

// MoviesPerGenre counts genre occurrences across all movies, ordered by
// first appearance.
func (v *View) MoviesPerGenre() Counts {
	names := make([]string, 0, v.metadata.Len())
	for _, m := range v.metadata.Rows {
		names = append(names, m.Genres...)
	}
	return countBy(names)
}

// countBy tallies keys, preserving first-occurrence order.
func countBy(keys []string) Counts {
	index := make(map[string]int)
	counts := make(Counts, 0)
	for _, key := range keys {
		pos, exists := index[key]
		if !exists {
			pos = len(counts)
			index[key] = pos
			counts = append(counts, Count{Key: key})
		}
		counts[pos].Value++
	}
	return counts
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// RoundTo2 rounds to 2 decimal places. NaN passes through.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatRating renders a rounded rating, or "nan" when undefined.
func FormatRating(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
