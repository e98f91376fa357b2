// Package config loads moviestats settings from an optional YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "moviestats.yml"

// Config is the full set of run settings.
type Config struct {
	Dataset  DatasetConfig `yaml:"dataset"`
	Output   OutputConfig  `yaml:"output"`
	TopN     int           `yaml:"top_n"`
	LogLevel string        `yaml:"log_level"`
}

// DatasetConfig locates the input directory.
type DatasetConfig struct {
	Path         string `yaml:"path"`
	PathRelative bool   `yaml:"path_relative"` // resolve Path against the executable's dir
}

// OutputConfig names the output files. Empty CSV, XLSX or Snapshot
// disables that output.
type OutputConfig struct {
	JSON     string `yaml:"json"`
	CSV      string `yaml:"csv,omitempty"`
	XLSX     string `yaml:"xlsx,omitempty"`
	Snapshot string `yaml:"snapshot,omitempty"`
}

// Default returns the settings used when no file and no flags are given.
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Path:         "../MovieLens/",
			PathRelative: true,
		},
		Output: OutputConfig{
			JSON: "results.json",
		},
		TopN:     5,
		LogLevel: "info",
	}
}

// Load reads configPath over the defaults. A missing file is not an
// error; the defaults are returned.
func Load(configPath string) (*Config, error) {
	config := Default()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Validate rejects settings the run cannot use.
func (c *Config) Validate() error {
	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset.path must not be empty")
	}
	if c.Output.JSON == "" {
		return fmt.Errorf("output.json must not be empty")
	}
	if c.TopN <= 0 {
		return fmt.Errorf("top_n must be positive, got %d", c.TopN)
	}
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() hclog.Level {
	return hclog.LevelFromString(c.LogLevel)
}

// WriteExample writes the default settings to configPath, creating its
// directory if needed.
func WriteExample(configPath string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
