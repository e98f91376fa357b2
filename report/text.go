package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spektr-org/moviestats/engine"
)

// ============================================================================
// TEXT OUTPUT — Console report
// ============================================================================

// WriteText prints the summary: a blank line, the scalar lines, then the
// per-year and per-genre tables.
func WriteText(w io.Writer, s engine.Summary) error {
	var b strings.Builder
	b.WriteString("\n")
	for _, line := range engine.BuildText(s) {
		b.WriteString(line.String())
		b.WriteString("\n")
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	for _, table := range []*engine.TableData{engine.BuildYearTable(s), engine.BuildGenreTable(s)} {
		if err := WriteTable(w, table); err != nil {
			return err
		}
	}
	return nil
}

// WriteTable prints a title line followed by the aligned table.
func WriteTable(w io.Writer, table *engine.TableData) error {
	if _, err := fmt.Fprintln(w, table.Title); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	header := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col.Label
	}
	writeCells(tw, header)

	for _, row := range table.Rows {
		writeCells(tw, row)
	}
	if len(table.Rows) == 0 {
		fmt.Fprintln(tw, "(empty)\t")
	}
	return tw.Flush()
}

// writeCells writes one tab-terminated row; tabwriter errors surface on Flush.
func writeCells(tw *tabwriter.Writer, cells []string) {
	fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
}
