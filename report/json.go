// Package report writes an engine.Summary to the console and to files.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spektr-org/moviestats/engine"
)

// ============================================================================
// JSON OUTPUT
// ============================================================================

// jsonIndent matches the indentation of the results file.
const jsonIndent = "    "

// WriteJSON writes s as indented JSON with keys in summary order.
func WriteJSON(w io.Writer, s engine.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", jsonIndent)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// WriteJSONFile creates (or truncates) path and writes s to it.
func WriteJSONFile(path string, s engine.Summary) error {
	return writeFile(path, func(w io.Writer) error { return WriteJSON(w, s) })
}

// writeFile creates path and hands it to fn, surfacing close errors.
func writeFile(path string, fn func(io.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return fn(file)
}
