// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

// MetadataCSV is a seven-row metadata table in pandas to_csv layout
// (leading unnamed index column). tt05 appears twice.
const MetadataCSV = `,imdb_id,genres,vote_average,release_date,title
0,tt01,"[{'id': 16, 'name': 'Animation'}, {'id': 35, 'name': 'Comedy'}, {'id': 10751, 'name': 'Family'}]",7.7,1995-10-30,Movie 1
1,tt02,"[{'id': 12, 'name': 'Adventure'}, {'id': 14, 'name': 'Fantasy'}, {'id': 10751, 'name': 'Family'}]",6.9,1995-12-15,Movie 2
2,tt03,"[{'id': 10749, 'name': 'Romance'}, {'id': 35, 'name': 'Comedy'}]",6.5,1995-12-22,Movie 3
3,tt04,"[{'id': 35, 'name': 'Comedy'}, {'id': 18, 'name': 'Drama'}, {'id': 10749, 'name': 'Romance'}]",6.1,1995-12-22,Movie 4
4,tt05,"[{'id': 35, 'name': 'Comedy'}]",5.7,1995-02-10,Movie 5
5,tt06,"[{'id': 10749, 'name': 'Romance'}, {'id': 35, 'name': 'Comedy'}]",5.2,1999-03-13,Movie 6
6,tt05,"[{'id': 35, 'name': 'Comedy'}]",5.7,1995-02-10,Movie 5
`

// RatingsCSV holds six ratings, one per movie 21..26.
const RatingsCSV = `,userId,movieId,rating
0,270896,21,10.0
1,270896,22,8.9
2,1,23,9.1
3,270896,24,2.3
4,270896,25,5.5
5,270896,26,7.6
`

// LinksCSV maps movies 21..26 to external ids 1..6.
const LinksCSV = `,imdbId,movieId,rating
0,1,21,10.0
1,2,22,8.9
2,3,23,9.1
3,4,24,2.3
4,5,25,5.5
5,6,26,7.6
`

// Files overrides individual fixture files by name.
type Files map[string]string

// WriteDataset writes the fixture dataset into a fresh temp dir and returns
// its path. Entries in overrides replace the default file contents; an
// empty string removes the file.
func WriteDataset(t testing.TB, overrides Files) string {
	t.Helper()
	dir := t.TempDir()

	files := Files{
		"movies_metadata.csv": MetadataCSV,
		"ratings.csv":         RatingsCSV,
		"links.csv":           LinksCSV,
	}
	for name, content := range overrides {
		files[name] = content
	}

	for name, content := range files {
		if content == "" {
			continue
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

// Logger returns a logger that discards everything.
func Logger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  "test-moviestats",
		Level: hclog.Off,
	})
}
