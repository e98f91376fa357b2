package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/spektr-org/moviestats/config"
	"github.com/spektr-org/moviestats/engine"
	"github.com/spektr-org/moviestats/report"
	"github.com/spektr-org/moviestats/store"
)

// ============================================================================
// MOVIESTATS CLI — One-shot statistics over a MovieLens-style dataset
// ============================================================================

const version = "0.1.0"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fatalf("%v", err)
	}
}

// options holds the parsed command line.
type options struct {
	configPath   string
	fromSnapshot string
	writeConfig  string
	showVersion  bool
}

func run(args []string, stdout, stderr io.Writer) error {
	// ── Flags ─────────────────────────────────────────────────────────────
	fs := flag.NewFlagSet("moviestats", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.configPath, "config", config.DefaultPath, "Path to YAML config (optional)")
	dataPath := fs.String("data", "", "Dataset directory (default ../MovieLens/)")
	relative := fs.Bool("relative", true, "Resolve -data against the executable's directory")
	outJSON := fs.String("out", "", "JSON results file (default results.json)")
	outCSV := fs.String("csv", "", "Also write results as long-format CSV")
	outXLSX := fs.String("xlsx", "", "Also write results as an Excel workbook")
	snapshot := fs.String("snapshot", "", "Save cleaned tables and results to this SQLite file")
	fs.StringVar(&opts.fromSnapshot, "from-snapshot", "", "Build the view from a SQLite snapshot instead of CSV")
	topN := fs.Int("top", 0, "Size of the top-rated list (default 5)")
	logLevel := fs.String("log-level", "", "trace, debug, info, warn, error, off (default info)")
	fs.StringVar(&opts.writeConfig, "write-config", "", "Write the default config to this path and exit")
	fs.BoolVar(&opts.showVersion, "version", false, "Print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `moviestats: descriptive statistics for a movie dataset

Usage:
  moviestats
  moviestats --data ./MovieLens --relative=false --out results.json
  moviestats --data ./MovieLens --relative=false --xlsx results.xlsx --snapshot stats.db
  moviestats --from-snapshot stats.db

Input directory must hold movies_metadata.csv, ratings.csv and links.csv.

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "moviestats %s\n", version)
		return nil
	}

	if opts.writeConfig != "" {
		if err := config.WriteExample(opts.writeConfig); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "config written to %s\n", opts.writeConfig)
		return nil
	}

	// ── Config ────────────────────────────────────────────────────────────
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	// flags given explicitly win over the file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			cfg.Dataset.Path = *dataPath
		case "relative":
			cfg.Dataset.PathRelative = *relative
		case "out":
			cfg.Output.JSON = *outJSON
		case "csv":
			cfg.Output.CSV = *outCSV
		case "xlsx":
			cfg.Output.XLSX = *outXLSX
		case "snapshot":
			cfg.Output.Snapshot = *snapshot
		case "top":
			cfg.TopN = *topN
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "moviestats",
		Level:  cfg.Level(),
		Output: stderr,
	})

	ctx := context.Background()

	// ── View ──────────────────────────────────────────────────────────────
	view, err := buildView(ctx, cfg, opts.fromSnapshot, logger)
	if err != nil {
		return err
	}

	summary := engine.BuildSummary(view, cfg.TopN)

	// ── Render output ─────────────────────────────────────────────────────
	if err := report.WriteText(stdout, summary); err != nil {
		return fmt.Errorf("failed to print results: %w", err)
	}

	if err := report.WriteJSONFile(cfg.Output.JSON, summary); err != nil {
		return err
	}
	logger.Info("results written", "format", "json", "path", cfg.Output.JSON)

	if cfg.Output.CSV != "" {
		if err := report.WriteCSVFile(cfg.Output.CSV, summary); err != nil {
			return err
		}
		logger.Info("results written", "format", "csv", "path", cfg.Output.CSV)
	}

	if cfg.Output.XLSX != "" {
		if err := report.WriteXLSX(cfg.Output.XLSX, summary); err != nil {
			return err
		}
		logger.Info("results written", "format", "xlsx", "path", cfg.Output.XLSX)
	}

	if cfg.Output.Snapshot != "" {
		if err := saveSnapshot(ctx, cfg.Output.Snapshot, view, summary, logger); err != nil {
			return err
		}
	}

	return nil
}

// buildView reads the CSV dataset, or the tables of a saved snapshot when
// fromSnapshot is set.
func buildView(ctx context.Context, cfg *config.Config, fromSnapshot string, logger hclog.Logger) (*engine.View, error) {
	if fromSnapshot == "" {
		return engine.NewView(cfg.Dataset.Path,
			engine.WithPathRelative(cfg.Dataset.PathRelative),
			engine.WithLogger(logger),
		)
	}

	if _, err := os.Stat(fromSnapshot); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", fromSnapshot, err)
	}

	st, err := store.Open(fromSnapshot, logger.Named("store"))
	if err != nil {
		return nil, err
	}
	defer st.Close()

	tables, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return engine.NewViewFromTables(tables, engine.WithLogger(logger))
}

func saveSnapshot(ctx context.Context, path string, view *engine.View, summary engine.Summary, logger hclog.Logger) error {
	st, err := store.Open(path, logger.Named("store"))
	if err != nil {
		return err
	}
	defer st.Close()

	if _, err := st.Save(ctx, view.Tables(), summary); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// ============================================================================
// HELPERS
// ============================================================================

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
