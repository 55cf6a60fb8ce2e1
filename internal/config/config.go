// Package config provides the sweep configuration: defaults, optional YAML
// file loading, and validation. Configuration is read once at startup and is
// immutable for the run's duration; every configuration error is rejected
// before any simulation work begins.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of a sweep run.
type Config struct {
	// Side is the lattice side length N. Set from the positional CLI
	// argument, never from a file.
	Side int `yaml:"-"`

	// Samples is the number of independent trials per probability point.
	Samples int `yaml:"samples"`

	// Resolution is the number of equidistant probability intervals in
	// [0, 1]; the sweep emits Resolution+1 rows.
	Resolution int `yaml:"resolution"`

	// Workers is the number of trial goroutines. 0 means all CPUs.
	Workers int `yaml:"workers"`

	// Seed is the base random seed. 0 draws a fresh seed at startup; the
	// drawn value is logged so the run can be reproduced.
	Seed uint64 `yaml:"seed"`

	// Connectivity is the spreading adjacency: 4 (von Neumann) or 8 (Moore).
	Connectivity int `yaml:"connectivity"`

	// Format selects the output row format: "text" or "jsonl".
	Format string `yaml:"format"`

	// Stats extends text rows with stddev and sample-count columns.
	Stats bool `yaml:"stats"`

	// LogLevel sets diagnostic verbosity on stderr: "info", "debug", "trace".
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file or flag overrides it.
// Samples and Resolution defaults match the reference simulator.
func Default() Config {
	return Config{
		Samples:      10000,
		Resolution:   100,
		Workers:      0,
		Connectivity: 4,
		Format:       "text",
		LogLevel:     "info",
	}
}

// LoadFile reads a YAML configuration file over the given base config.
// Fields absent from the file keep their base values.
func LoadFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects any configuration that must not reach the simulation.
func (c Config) Validate() error {
	if c.Side <= 0 {
		return fmt.Errorf("lattice side must be positive, got %d", c.Side)
	}
	if c.Samples <= 0 {
		return fmt.Errorf("sample count must be positive, got %d", c.Samples)
	}
	if c.Resolution <= 2 {
		return fmt.Errorf("resolution must be greater than 2, got %d", c.Resolution)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.Connectivity != 4 && c.Connectivity != 8 {
		return fmt.Errorf("connectivity must be 4 or 8, got %d", c.Connectivity)
	}
	if c.Format != "text" && c.Format != "jsonl" {
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	return nil
}
