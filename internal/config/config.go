// Package config loads the solver's tunables from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/bent101/go-wordle-helper/internal/feedback"
	"github.com/bent101/go-wordle-helper/internal/scorer"
	"github.com/bent101/go-wordle-helper/internal/selector"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "wordle-helper.yaml"

type Config struct {
	Opening  string `yaml:"opening"`
	LateTurn int    `yaml:"late_turn"`
	SmallSet int    `yaml:"small_set"`

	Pool    PoolConfig     `yaml:"pool"`
	Weights scorer.Weights `yaml:"weights"`

	// Workers bounds the scoring goroutines. 0 uses every CPU.
	Workers    int      `yaml:"workers"`
	ProbeWords []string `yaml:"probe_words"`

	Paths   PathsConfig   `yaml:"paths"`
	Logging LoggingConfig `yaml:"logging"`
}

type PoolConfig struct {
	ScalingConstant float64 `yaml:"scaling_constant"`
	MinSize         int     `yaml:"min_size"`
	TargetCutoff    int     `yaml:"target_cutoff"`
	TargetDivisor   int     `yaml:"target_divisor"`
}

type PathsConfig struct {
	Words       string `yaml:"words"`
	Frequencies string `yaml:"frequencies"`
	Memory      string `yaml:"memory"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	sel := selector.DefaultConfig()
	return &Config{
		Opening:  sel.Opening,
		LateTurn: sel.LateTurn,
		SmallSet: sel.SmallSet,
		Pool: PoolConfig{
			ScalingConstant: sel.ScalingConstant,
			MinSize:         sel.MinPool,
			TargetCutoff:    sel.TargetCutoff,
			TargetDivisor:   sel.TargetDivisor,
		},
		Weights:    sel.Weights,
		ProbeWords: sel.ProbeWords,
		Paths: PathsConfig{
			Words:  "io/words.txt",
			Memory: ".wordle_mem.txt",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads configuration from a YAML file on top of the defaults. A
// missing file yields the defaults. Environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if path := os.Getenv("WORDLE_HELPER_MEMORY"); path != "" {
		c.Paths.Memory = path
	}
	if path := os.Getenv("WORDLE_HELPER_WORDS"); path != "" {
		c.Paths.Words = path
	}
	if path := os.Getenv("WORDLE_HELPER_FREQUENCIES"); path != "" {
		c.Paths.Frequencies = path
	}
	if v := os.Getenv("WORDLE_HELPER_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WORDLE_HELPER_WORKERS: %w", err)
		}
		c.Workers = n
	}
	return nil
}

var ValidLogFormats = []string{"json", "console"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Opening != "" && !feedback.IsWord(c.Opening) {
		return fmt.Errorf("opening %q is not a five letter word", c.Opening)
	}
	for _, w := range c.ProbeWords {
		if !feedback.IsWord(w) {
			return fmt.Errorf("probe word %q is not a five letter word", w)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.Pool.MinSize < 1 {
		return fmt.Errorf("pool.min_size must be positive, got %d", c.Pool.MinSize)
	}
	if c.Pool.TargetDivisor < 0 {
		return fmt.Errorf("pool.target_divisor must not be negative, got %d", c.Pool.TargetDivisor)
	}
	if c.Weights.FrequencyScale <= 0 {
		return fmt.Errorf("weights.frequency_scale must be positive, got %v", c.Weights.FrequencyScale)
	}
	if c.Paths.Words == "" {
		return errors.New("paths.words is required")
	}

	valid := false
	for _, f := range ValidLogFormats {
		if c.Logging.Format == f {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid logging format: %s (valid: %v)", c.Logging.Format, ValidLogFormats)
	}
	return nil
}

// Selector converts the tunables into a selector configuration.
func (c *Config) Selector() selector.Config {
	return selector.Config{
		Opening:         c.Opening,
		LateTurn:        c.LateTurn,
		SmallSet:        c.SmallSet,
		ScalingConstant: c.Pool.ScalingConstant,
		MinPool:         c.Pool.MinSize,
		TargetCutoff:    c.Pool.TargetCutoff,
		TargetDivisor:   c.Pool.TargetDivisor,
		Workers:         c.Workers,
		ProbeWords:      c.ProbeWords,
		Weights:         c.Weights,
	}
}
