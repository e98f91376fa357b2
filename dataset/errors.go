package dataset

import (
	"errors"
	"fmt"
)

// ErrEmptyValue is wrapped by a ParseError when a required cell is blank.
var ErrEmptyValue = errors.New("empty value")

// ParseError reports a cell that could not be interpreted.
// Row is the zero-based data row index (header excluded), -1 when unknown.
type ParseError struct {
	Column string
	Row    int
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("parse %s at row %d (%q): %v", e.Column, e.Row, e.Value, e.Err)
	}
	return fmt.Sprintf("parse %s (%q): %v", e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingColumnError reports a column absent from a table's header.
type MissingColumnError struct {
	Table  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("table %s: missing column %q", e.Table, e.Column)
}
