package report

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/moviestats/engine"
)

// ============================================================================
// XLSX OUTPUT — Workbook with one sheet per section
// ============================================================================
// Sheets:
//   Summary: metric | value (unique count, average, top titles)
//   Years:   year | number of movies
//   Genres:  genre | number of movies
// ============================================================================

// Sheet names.
const (
	SheetSummary = "Summary"
	SheetYears   = "Years"
	SheetGenres  = "Genres"
)

// WriteXLSX saves s as an Excel workbook at path.
func WriteXLSX(path string, s engine.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1"; rename it rather than leave it empty.
	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	var avg interface{} = ""
	if !math.IsNaN(s.AverageRating) {
		avg = s.AverageRating
	}
	topN := s.TopN
	if topN == 0 {
		topN = engine.DefaultTopN
	}
	summaryRows := [][]interface{}{
		{engine.KeyUniqueMovies, s.UniqueMovies},
		{engine.KeyAverageRating, avg},
	}
	for i, title := range s.TopRated {
		summaryRows = append(summaryRows, []interface{}{fmt.Sprintf("%s #%d", engine.KeyTopRated(topN), i+1), title})
	}

	sheets := []struct {
		name    string
		headers []string
		rows    [][]interface{}
		widths  []float64
	}{
		{SheetSummary, []string{"Metric", "Value"}, summaryRows, []float64{40, 40}},
		{SheetYears, []string{"Year", "Number of movies"}, countRows(s.MoviesPerYear), []float64{12, 18}},
		{SheetGenres, []string{"Genre", "Number of movies"}, countRows(s.MoviesPerGenre), []float64{24, 18}},
	}

	for _, sh := range sheets {
		if sh.name != SheetSummary {
			if _, err := f.NewSheet(sh.name); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", sh.name, err)
			}
		}
		if err := writeSheet(f, sh.name, sh.headers, sh.rows, headerStyle); err != nil {
			return err
		}
		for i, width := range sh.widths {
			col, _ := excelize.ColumnNumberToName(i + 1)
			if err := f.SetColWidth(sh.name, col, col, width); err != nil {
				return fmt.Errorf("failed to size %s!%s: %w", sh.name, col, err)
			}
		}
	}

	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}

func countRows(counts engine.Counts) [][]interface{} {
	rows := make([][]interface{}, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []interface{}{c.Key, c.Value})
	}
	return rows
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}, headerStyle int) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to style %s!%s: %w", sheet, cell, err)
		}
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
