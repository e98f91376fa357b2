package engine

import (
	"github.com/hashicorp/go-hclog"

	"github.com/spektr-org/moviestats/schema"
)

// ============================================================================
// ENGINE OPTIONS — Functional options for NewView()
// ============================================================================

// Option configures view construction via functional options pattern.
type Option func(*config)

type config struct {
	Logger       hclog.Logger
	Schema       schema.Config
	PathRelative bool     // resolve the dataset path against the executable's dir
	Pipeline     Pipeline // cleaning steps applied to the metadata table
}

// WithLogger sets the logger used for load, cleaning and query diagnostics.
func WithLogger(logger hclog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithPathRelative selects how NewView interprets its path argument.
// true (the default) resolves it against the executable's directory;
// false uses it verbatim.
func WithPathRelative(relative bool) Option {
	return func(c *config) {
		c.PathRelative = relative
	}
}

// WithSchema overrides the table layout (file names, required columns).
func WithSchema(sch schema.Config) Option {
	return func(c *config) {
		c.Schema = sch
	}
}

// WithPipeline replaces the cleaning steps. Mainly useful in tests.
func WithPipeline(p Pipeline) Option {
	return func(c *config) {
		c.Pipeline = p
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Logger:       hclog.NewNullLogger(),
		Schema:       schema.MovieLens(),
		PathRelative: true,
		Pipeline:     DefaultPipeline(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
