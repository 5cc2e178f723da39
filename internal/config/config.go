// Package config loads the typederive configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/go-json-experiment/json"
)

// DefaultPath is the config file looked up when no --config flag is given.
const DefaultPath = "typederive.config.json"

// Config represents the typederive configuration.
type Config struct {
	// Input is the path of the type-descriptor graph dump ("-" for stdin).
	Input string `json:"input,omitzero"`

	// Output is the path of the generated document ("-" for stdout).
	Output string `json:"output,omitzero"`

	// Roots lists the descriptor IDs to derive. Empty means every nominal
	// type in the graph.
	Roots []string `json:"roots,omitzero"`

	// Document holds the info block of the generated document.
	Document DocumentConfig `json:"document,omitzero"`

	// Strict promotes derivation warnings to errors.
	Strict bool `json:"strict,omitzero"`

	// Quiet suppresses derivation warnings.
	Quiet bool `json:"quiet,omitzero"`
}

// DocumentConfig holds document metadata.
type DocumentConfig struct {
	Title       string `json:"title,omitzero"`
	Version     string `json:"version,omitzero"`
	Description string `json:"description,omitzero"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Input:  "-",
		Output: "-",
	}
}

// Load reads and validates a config file. A missing file is an error; callers
// that treat the default path as optional should check existence first.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks constraints that JSON decoding cannot express.
func (c *Config) Validate() error {
	if c.Strict && c.Quiet {
		return fmt.Errorf("strict and quiet are mutually exclusive")
	}
	for _, r := range c.Roots {
		if r == "" {
			return fmt.Errorf("roots must not contain empty IDs")
		}
	}
	return nil
}
