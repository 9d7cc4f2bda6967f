// Package config provides configuration loading and validation for the
// dataset generator.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid value")

// Config holds all generator parameters.
type Config struct {
	Grid        GridConfig    `yaml:"grid"`
	Costs       CostsConfig   `yaml:"costs"`
	Sampler     SamplerConfig `yaml:"sampler"`
	Search      SearchConfig  `yaml:"search"`
	Splits      []SplitConfig `yaml:"splits"`
	Seed        int64         `yaml:"seed"`
	Workers     int           `yaml:"workers"`      // 0 = runtime.NumCPU()
	MaxAttempts int           `yaml:"max_attempts"` // map/endpoint draws per accepted sample
	CrossCheck  bool          `yaml:"cross_check"`
	Output      OutputConfig  `yaml:"output"`
	Metrics     MetricsConfig `yaml:"metrics"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// GridConfig holds map dimensions and density.
type GridConfig struct {
	Width              int     `yaml:"width"`
	Height             int     `yaml:"height"`
	BlockedProbability float64 `yaml:"blocked_probability"`
}

// CostsConfig holds transition weights.
type CostsConfig struct {
	Rotate float64 `yaml:"rotate"`
	Move   float64 `yaml:"move"`
}

// SamplerConfig holds endpoint sampling parameters.
type SamplerConfig struct {
	SameComponent bool `yaml:"same_component"` // draw the goal from the start's free component
}

// SearchConfig holds search parameters.
type SearchConfig struct {
	Concurrent bool    `yaml:"concurrent"` // run forward and reverse searches in parallel
	Horizon    float64 `yaml:"horizon"`    // cost cap per search; 0 = unbounded
}

// SplitConfig names one output split and its sample count.
type SplitConfig struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// OutputConfig holds output locations and extras.
type OutputConfig struct {
	Dir          string `yaml:"dir"`
	Manifest     bool   `yaml:"manifest"`      // write manifest.csv per split
	Previews     int    `yaml:"previews"`      // PNG previews per split
	PreviewScale int    `yaml:"preview_scale"` // pixels per cell
}

// MetricsConfig holds the Prometheus endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Workers   int // resolved worker count, ≥ 1
	NumStates int // 4 · width · height
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. The result is validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only fields present in the file are overwritten; lists are replaced.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and recomputes derived values. Call it again after
// changing fields by hand.
func (c *Config) Validate() error {
	switch {
	case c.Grid.Width < 1 || c.Grid.Height < 1:
		return fmt.Errorf("%w: grid %dx%d", ErrInvalid, c.Grid.Width, c.Grid.Height)
	case !(c.Grid.BlockedProbability >= 0 && c.Grid.BlockedProbability <= 1):
		return fmt.Errorf("%w: grid.blocked_probability=%v not in [0,1]", ErrInvalid, c.Grid.BlockedProbability)
	case !validCost(c.Costs.Rotate) || !validCost(c.Costs.Move):
		return fmt.Errorf("%w: costs rotate=%v move=%v", ErrInvalid, c.Costs.Rotate, c.Costs.Move)
	case !validCost(c.Search.Horizon):
		return fmt.Errorf("%w: search.horizon=%v", ErrInvalid, c.Search.Horizon)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers=%d", ErrInvalid, c.Workers)
	case c.MaxAttempts < 1:
		return fmt.Errorf("%w: max_attempts=%d", ErrInvalid, c.MaxAttempts)
	case c.Output.Dir == "":
		return fmt.Errorf("%w: output.dir is empty", ErrInvalid)
	case c.Output.Previews < 0:
		return fmt.Errorf("%w: output.previews=%d", ErrInvalid, c.Output.Previews)
	case c.Output.PreviewScale < 1:
		return fmt.Errorf("%w: output.preview_scale=%d", ErrInvalid, c.Output.PreviewScale)
	case len(c.Splits) == 0:
		return fmt.Errorf("%w: no splits", ErrInvalid)
	}

	seen := make(map[string]bool, len(c.Splits))
	for _, s := range c.Splits {
		if s.Name == "" {
			return fmt.Errorf("%w: split with empty name", ErrInvalid)
		}
		if seen[s.Name] {
			return fmt.Errorf("%w: duplicate split %q", ErrInvalid, s.Name)
		}
		seen[s.Name] = true
		if s.Count < 1 {
			return fmt.Errorf("%w: split %q count=%d", ErrInvalid, s.Name, s.Count)
		}
	}

	c.computeDerived()
	return nil
}

func validCost(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Workers = c.Workers
	if c.Derived.Workers == 0 {
		c.Derived.Workers = runtime.NumCPU()
	}
	c.Derived.NumStates = 4 * c.Grid.Width * c.Grid.Height
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
