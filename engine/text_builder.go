package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// TEXT BUILDER — Produces the scalar lines of the console report
// ============================================================================

// TextLine is one "label: value" line of the report.
type TextLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// String renders the line as printed.
func (l TextLine) String() string {
	return l.Label + ": " + l.Value
}

// BuildText produces the unique count, average and top-list lines.
func BuildText(s Summary) []TextLine {
	topN := s.TopN
	if topN == 0 {
		topN = DefaultTopN
	}
	return []TextLine{
		{Label: KeyUniqueMovies, Value: FormatInt(s.UniqueMovies)},
		{Label: KeyAverageRating, Value: FormatRating(s.AverageRating)},
		{Label: KeyTopRated(topN), Value: FormatTitles(s.TopRated)},
	}
}

// FormatTitles renders a title list as ['a', 'b'], or None for nil.
func FormatTitles(titles []string) string {
	if titles == nil {
		return "None"
	}
	quoted := make([]string, len(titles))
	for i, t := range titles {
		quoted[i] = quoteTitle(t)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// quoteTitle single-quotes t, switching to double quotes when t contains
// an apostrophe.
func quoteTitle(t string) string {
	if strings.Contains(t, "'") && !strings.Contains(t, `"`) {
		return `"` + t + `"`
	}
	return fmt.Sprintf("'%s'", strings.ReplaceAll(t, "'", `\'`))
}
