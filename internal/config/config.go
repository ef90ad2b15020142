// Package config loads pool settings from a YAML or JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/utkarsh5026/threadpool/pool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk pool configuration.
//
//	threads: 4
//	min_partition_size: 1024
//	rate_limit:
//	  per_second: 100
//	  burst: 10
//	pin_workers: false
//	log_level: info
type Config struct {
	Threads          int             `yaml:"threads" json:"threads"`
	MinPartitionSize int             `yaml:"min_partition_size" json:"min_partition_size"`
	RateLimit        RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`
	PinWorkers       bool            `yaml:"pin_workers" json:"pin_workers"`
	LogLevel         string          `yaml:"log_level" json:"log_level"`
}

// RateLimitConfig throttles item dispatch. A zero PerSecond disables it.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second" json:"per_second"`
	Burst     int     `yaml:"burst" json:"burst"`
}

// Load reads a configuration file. The format is chosen by extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}

	return &cfg, nil
}

// Validate checks the configuration for values the pool would reject or
// silently ignore.
func (c *Config) Validate() error {
	if c.Threads < 0 {
		return fmt.Errorf("threads must be non-negative")
	}

	if c.MinPartitionSize < 0 {
		return fmt.Errorf("min_partition_size must be non-negative")
	}

	if c.RateLimit.PerSecond < 0 {
		return fmt.Errorf("rate_limit.per_second must be non-negative")
	}

	if c.RateLimit.PerSecond > 0 && c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate_limit.burst must be positive when rate limiting is enabled")
	}

	if c.LogLevel != "" {
		if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("invalid log_level: %w", err)
		}
	}

	return nil
}

// Options converts the configuration into pool options. logger may be nil.
func (c *Config) Options(logger *zap.Logger) []pool.Option {
	opts := []pool.Option{
		pool.WithThreadCount(c.Threads),
		pool.WithMinPartitionSize(c.MinPartitionSize),
	}

	if c.RateLimit.PerSecond > 0 {
		opts = append(opts, pool.WithRateLimit(c.RateLimit.PerSecond, c.RateLimit.Burst))
	}
	if c.PinWorkers {
		opts = append(opts, pool.WithCPUAffinity())
	}
	if logger != nil {
		opts = append(opts, pool.WithLogger(logger))
	}

	return opts
}

// NewLogger builds a development logger at LogLevel. An empty level
// returns a no-op logger.
func (c *Config) NewLogger() (*zap.Logger, error) {
	if c.LogLevel == "" {
		return zap.NewNop(), nil
	}

	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level: %w", err)
	}

	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
