package engine

// ============================================================================
// TABLE BUILDER — Produces TableData from Summary counts
// ============================================================================
// One row per key, with a leading zero-based index column so the console
// output lines up with a row-numbered data frame printout.
// ============================================================================

// BuildYearTable renders MoviesPerYear as a table.
func BuildYearTable(s Summary) *TableData {
	return buildCountsTable("Number of movies released each year:", "year", "Year", s.MoviesPerYear)
}

// BuildGenreTable renders MoviesPerGenre as a table.
func BuildGenreTable(s Summary) *TableData {
	return buildCountsTable("Number of movies in each genre:", "genre", "Genre", s.MoviesPerGenre)
}

func buildCountsTable(title, key, label string, counts Counts) *TableData {
	columns := []Column{
		{Key: "index", Label: "", Type: "number", Align: "right"},
		{Key: key, Label: label, Type: "text", Align: "left"},
		{Key: "movies", Label: "Number of movies", Type: "number", Align: "right"},
	}

	rows := make([][]string, 0, len(counts))
	for i, c := range counts {
		rows = append(rows, []string{
			FormatInt(i),
			c.Key,
			FormatInt(c.Value),
		})
	}

	return &TableData{
		Title:   title,
		Columns: columns,
		Rows:    rows,
	}
}
