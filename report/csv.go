package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/spektr-org/moviestats/engine"
)

// ============================================================================
// CSV OUTPUT — Sheets-ready long format
// ============================================================================
// One row per value:
//
//	section,key,value
//	unique_movies,,6
//	average_rating,,7.23
//	top_rated,1,Movie 1
//	movies_per_year,1999,1
//	movies_per_genre,Comedy,5
//
// top_rated keys are 1-based ranks in output order.
// ============================================================================

// CSV section names.
const (
	SectionUniqueMovies   = "unique_movies"
	SectionAverageRating  = "average_rating"
	SectionTopRated       = "top_rated"
	SectionMoviesPerYear  = "movies_per_year"
	SectionMoviesPerGenre = "movies_per_genre"
)

var csvHeader = []string{"section", "key", "value"}

// WriteCSV writes s in long format.
func WriteCSV(w io.Writer, s engine.Summary) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for _, record := range csvRecords(s) {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile creates (or truncates) path and writes s to it.
func WriteCSVFile(path string, s engine.Summary) error {
	return writeFile(path, func(w io.Writer) error { return WriteCSV(w, s) })
}

func csvRecords(s engine.Summary) [][]string {
	records := [][]string{
		{SectionUniqueMovies, "", strconv.Itoa(s.UniqueMovies)},
		{SectionAverageRating, "", engine.FormatRating(s.AverageRating)},
	}
	for i, title := range s.TopRated {
		records = append(records, []string{SectionTopRated, strconv.Itoa(i + 1), title})
	}
	for _, c := range s.MoviesPerYear {
		records = append(records, []string{SectionMoviesPerYear, c.Key, strconv.Itoa(c.Value)})
	}
	for _, c := range s.MoviesPerGenre {
		records = append(records, []string{SectionMoviesPerGenre, c.Key, strconv.Itoa(c.Value)})
	}
	return records
}
