// Package config holds the gostitch preferences persisted across runs
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Output formats understood by the build command
const (
	FormatSTL      = "stl"
	FormatSTLASCII = "stl-ascii"
	FormatDXF      = "dxf"
	FormatSCAD     = "scad"
)

// Config holds tolerances, output and logging preferences
type Config struct {
	Tolerance float64       `yaml:"tolerance"`
	Crown     float64       `yaml:"allowable_crown"`
	Format    string        `yaml:"format"`
	LogLevel  string        `yaml:"log_level"`
	Parallel  bool          `yaml:"parallel"`
	Debounce  time.Duration `yaml:"debounce"`
}

// Default returns the preferences used when no config file exists
func Default() Config {
	return Config{
		Tolerance: 1e-6,
		Crown:     0.01,
		Format:    FormatSTL,
		LogLevel:  "info",
		Parallel:  true,
		Debounce:  300 * time.Millisecond,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/gostitch/config.yaml or the
// platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".gostitch", "config.yaml")
	}
	return filepath.Join(dir, "gostitch", "config.yaml")
}

// Load reads preferences from path. A missing file gives Default(); keys
// absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes preferences to path, creating its directory if needed
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks value ranges and names
func (c Config) Validate() error {
	if c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %v", c.Tolerance)
	}
	if c.Crown <= 0 {
		return fmt.Errorf("allowable_crown must be positive, got %v", c.Crown)
	}
	switch c.Format {
	case FormatSTL, FormatSTLASCII, FormatDXF, FormatSCAD:
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative, got %v", c.Debounce)
	}
	return nil
}
