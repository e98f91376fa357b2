package helpers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/spektr-org/moviestats/dataset"
	"github.com/spektr-org/moviestats/schema"
)

// ResolveDir turns the dataset path into an absolute directory.
//
// relative=true resolves path against the directory of the running
// executable; relative=false uses path as given (absolute or relative to
// the working directory).
func ResolveDir(path string, relative bool) (string, error) {
	if !relative {
		return path, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), path), nil
}

// LoadDir reads the three tables from dir. Every file handle is closed
// before LoadDir returns.
func LoadDir(dir string, sch schema.Config, logger hclog.Logger) (dataset.Tables, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	var tables dataset.Tables

	if err := withTable(dir, sch.Metadata, func(r io.Reader) (err error) {
		tables.Metadata, err = ParseMetadataCSV(r, sch.Metadata)
		return err
	}); err != nil {
		return dataset.Tables{}, err
	}

	if err := withTable(dir, sch.Ratings, func(r io.Reader) (err error) {
		tables.Ratings, err = ParseRatingsCSV(r, sch.Ratings)
		return err
	}); err != nil {
		return dataset.Tables{}, err
	}

	if err := withTable(dir, sch.Links, func(r io.Reader) (err error) {
		tables.Links, err = ParseLinksCSV(r, sch.Links)
		return err
	}); err != nil {
		return dataset.Tables{}, err
	}

	logger.Debug("dataset loaded", "dir", dir,
		"movies", tables.Metadata.Len(),
		"ratings", len(tables.Ratings),
		"links", len(tables.Links))

	return tables, nil
}

// withTable opens dir/tbl.File, strips a UTF-8/UTF-16 BOM if present, and
// hands the decoded stream to fn.
func withTable(dir string, tbl schema.Table, fn func(io.Reader) error) error {
	path := filepath.Join(dir, tbl.File)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", tbl.Name, err)
	}
	defer f.Close()

	decoded := transform.NewReader(f, xunicode.BOMOverride(xunicode.UTF8.NewDecoder()))
	if err := fn(decoded); err != nil {
		return fmt.Errorf("%s (%s): %w", tbl.Name, path, err)
	}
	return nil
}
