// Package config loads evaluation settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jamesainslie/go-cogs/metrics"
)

var (
	// ErrInvalid indicates a configuration value out of range.
	ErrInvalid = errors.New("config: invalid configuration")

	// ErrUnknownKey indicates a key in the file that no field accepts.
	ErrUnknownKey = errors.New("config: unknown key")
)

// Color modes for terminal output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds evaluation settings.
type Config struct {
	Metrics        []string `toml:"metrics"`
	Averaging      string   `toml:"averaging"`
	Workers        int      `toml:"workers"`
	SkipMismatched bool     `toml:"skip_mismatched"`
	Output         Output   `toml:"output"`
}

// Output controls what gets printed or written after a run.
type Output struct {
	Verbose bool   `toml:"verbose"`
	Color   string `toml:"color"`
	Diff    bool   `toml:"diff"`
	Report  string `toml:"report"` // report path; extension selects the encoding
	Gate    string `toml:"gate"`   // boolean expression over aggregate scores
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Metrics:   slices.Clone(metrics.DefaultKeys),
		Averaging: metrics.Macro.String(),
		Workers:   runtime.NumCPU(),
		Output: Output{
			Color: ColorAuto,
		},
	}
}

// Load reads path on top of Default. Keys missing from the file keep their
// defaults; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w in %s: %s", ErrUnknownKey, path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if len(c.Metrics) == 0 {
		return fmt.Errorf("%w: no metrics", ErrInvalid)
	}
	known := metrics.Keys()
	for _, k := range c.Metrics {
		if !slices.Contains(known, k) {
			return fmt.Errorf("%w: %w: %q", ErrInvalid, metrics.ErrUnknownMetric, k)
		}
	}
	if _, err := c.AveragingMode(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalid, c.Workers)
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color must be auto, always or never, got %q", ErrInvalid, c.Output.Color)
	}
	return nil
}

// AveragingMode parses Averaging.
func (c Config) AveragingMode() (metrics.Averaging, error) {
	return metrics.ParseAveraging(c.Averaging)
}
