// Package config loads the runtime configuration for kernels and logging.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/binops/internal/parallel"
)

// Config holds all binops configuration.
type Config struct {
	Parallel ParallelConfig `yaml:"parallel"`
	Kernels  KernelsConfig  `yaml:"kernels"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ParallelConfig controls how kernels split work across goroutines.
type ParallelConfig struct {
	Enabled      bool `yaml:"enabled"`
	NumWorkers   int  `yaml:"num_workers"`    // 0 means runtime.NumCPU()
	MinChunkSize int  `yaml:"min_chunk_size"` // Elements per goroutine, at least 1
}

// KernelsConfig selects kernel implementations.
type KernelsConfig struct {
	// Vectorize enables the SIMD float64 paths for dense operands.
	Vectorize bool `yaml:"vectorize"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level"`       // debug, info, warn, error
	Development bool   `yaml:"development"` // Console encoder with stack traces on warn
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Default returns the built-in configuration.
func Default() *Config {
	p := parallel.DefaultConfig()
	return &Config{
		Parallel: ParallelConfig{
			Enabled:      p.Enabled,
			NumWorkers:   0,
			MinChunkSize: p.MinChunkSize,
		},
		Kernels: KernelsConfig{Vectorize: true},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Parse decodes YAML on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads path and parses it. A missing file yields the defaults.
// Environment overrides (BINOPS_LOG_LEVEL, BINOPS_NUM_WORKERS,
// BINOPS_PARALLEL) are applied last.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("BINOPS_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("BINOPS_NUM_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BINOPS_NUM_WORKERS: %w", err)
		}
		c.Parallel.NumWorkers = n
	}
	if v := os.Getenv("BINOPS_PARALLEL"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("BINOPS_PARALLEL: %w", err)
		}
		c.Parallel.Enabled = enabled
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Parallel.NumWorkers < 0 {
		return fmt.Errorf("parallel.num_workers must be >= 0, got %d", c.Parallel.NumWorkers)
	}
	if c.Parallel.MinChunkSize < 1 {
		return fmt.Errorf("parallel.min_chunk_size must be >= 1, got %d", c.Parallel.MinChunkSize)
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}

// ParallelSettings converts the parallel section for the kernel runtime.
func (c *Config) ParallelSettings() parallel.Config {
	workers := c.Parallel.NumWorkers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	return parallel.Config{
		Enabled:      c.Parallel.Enabled,
		NumWorkers:   workers,
		MinChunkSize: c.Parallel.MinChunkSize,
	}
}
