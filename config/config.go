// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the settings of an import run.
//
// Values are resolved in order: defaults, an optional YAML file, environment
// variables, then functional options applied by the caller.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	AppsDirEnv  = "TERMITE_APPS_DIR"
	LogLevelEnv = "TERMITE_LOG_LEVEL"
	PoolSizeEnv = "TERMITE_POOL_SIZE"
)

// ErrInvalidConfig indicates a configuration that failed validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds configuration for imports.
type Config struct {
	// AppsDir is the directory bundles are created in.
	// Default: "apps"
	AppsDir string `yaml:"appsDir"`

	// LogLevel is one of debug, info, warn, error.
	// Default: "debug"
	LogLevel string `yaml:"logLevel"`

	// PoolSize is the number of workers used for tokenization.
	// Default: runtime.NumCPU() / 2, minimum 1
	PoolSize int `yaml:"poolSize"`

	// BatchSize is how many model records are written per store batch.
	// Default: 1000
	BatchSize int `yaml:"batchSize"`

	// ReportInterval is how many model records pass between progress logs.
	// Default: 10000
	ReportInterval int `yaml:"reportInterval"`

	// ModelFormat names the reader used for the raw model directory.
	// Default: "mallet"
	ModelFormat string `yaml:"modelFormat"`

	// StrictGuard re-imports an existing bundle that has no import manifest.
	// Default: false
	StrictGuard bool `yaml:"strictGuard"`

	Stats StatsConfig `yaml:"stats"`
}

// StatsConfig tunes derived statistics.
type StatsConfig struct {
	// Vocabulary is how many frequent terms take part in co-occurrence.
	Vocabulary int `yaml:"vocabulary"`
	// MinCooccurrence is the least number of sentences a term pair must share.
	MinCooccurrence int `yaml:"minCooccurrence"`
	// TopTerms is how many terms are listed per topic.
	TopTerms int `yaml:"topTerms"`
}

// Option is a functional option for configuring a Config.
type Option func(*Config)

func WithAppsDir(dir string) Option {
	return func(c *Config) {
		c.AppsDir = dir
	}
}

func WithLogLevel(level string) Option {
	return func(c *Config) {
		c.LogLevel = level
	}
}

func WithPoolSize(size int) Option {
	return func(c *Config) {
		c.PoolSize = size
	}
}

func WithBatchSize(size int) Option {
	return func(c *Config) {
		c.BatchSize = size
	}
}

func WithReportInterval(interval int) Option {
	return func(c *Config) {
		c.ReportInterval = interval
	}
}

func WithModelFormat(format string) Option {
	return func(c *Config) {
		c.ModelFormat = format
	}
}

// WithStrictGuard toggles re-importing bundles that lack a manifest.
func WithStrictGuard(strict bool) Option {
	return func(c *Config) {
		c.StrictGuard = strict
	}
}

func WithStats(stats StatsConfig) Option {
	return func(c *Config) {
		c.Stats = stats
	}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	return &Config{
		AppsDir:        "apps",
		LogLevel:       "debug",
		PoolSize:       poolSize,
		BatchSize:      1000,
		ReportInterval: 10000,
		ModelFormat:    "mallet",
		Stats: StatsConfig{
			Vocabulary:      500,
			MinCooccurrence: 2,
			TopTerms:        10,
		},
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
func NewConfig(opts ...Option) *Config {
	cfg := DefaultConfig()
	cfg.Apply(opts...)
	return cfg
}

// Apply applies options in order.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and environment overrides, then applies opts.
// Keys missing from the file keep their defaults.
func Load(path string, opts ...Option) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.Apply(opts...)
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(AppsDirEnv); v != "" {
		c.AppsDir = v
	}
	if v := os.Getenv(LogLevelEnv); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(PoolSizeEnv); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalidConfig, PoolSizeEnv, v, err)
		}
		c.PoolSize = size
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}

// Validate checks that the configuration is valid and complete.
func (c *Config) Validate() error {
	if c.AppsDir == "" {
		return fmt.Errorf("%w: AppsDir is required", ErrInvalidConfig)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.PoolSize < 1 {
		return fmt.Errorf("%w: PoolSize must be at least 1", ErrInvalidConfig)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("%w: BatchSize must be at least 1", ErrInvalidConfig)
	}
	if c.ReportInterval < 1 {
		return fmt.Errorf("%w: ReportInterval must be at least 1", ErrInvalidConfig)
	}
	if c.ModelFormat == "" {
		return fmt.Errorf("%w: ModelFormat is required", ErrInvalidConfig)
	}
	if c.Stats.Vocabulary < 2 {
		return fmt.Errorf("%w: Stats.Vocabulary must be at least 2", ErrInvalidConfig)
	}
	if c.Stats.MinCooccurrence < 1 {
		return fmt.Errorf("%w: Stats.MinCooccurrence must be at least 1", ErrInvalidConfig)
	}
	if c.Stats.TopTerms < 1 {
		return fmt.Errorf("%w: Stats.TopTerms must be at least 1", ErrInvalidConfig)
	}
	return nil
}
