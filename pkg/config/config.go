// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads linkrank settings from YAML.
//
// A config file overlays DefaultConfig(); any key it omits keeps its default.
// Command-line flags are applied on top by the CLI.
//
//	rank:
//	  damping: 0.85
//	  samples: 10000
//	  threshold: 0.001
//	  max_iterations: 1000
//	  dangling: drop
//	  seed: 0
//	shopping:
//	  test_size: 0.4
//	  neighbors: 1
//	logging:
//	  level: info
//	  format: auto
//	telemetry:
//	  trace_exporter: none
//	  metric_exporter: none
//	server:
//	  addr: ":8080"
//	  max_pages: 10000
//	  max_samples: 1000000
//	  max_iterations: 10000
//	  rate_limit: 0
//	  burst: 1
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a config fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the root of the linkrank configuration.
type Config struct {
	Rank      RankConfig      `yaml:"rank"`
	Shopping  ShoppingConfig  `yaml:"shopping"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Server    ServerConfig    `yaml:"server"`
}

// RankConfig parameterizes both estimators.
type RankConfig struct {
	// Damping is the probability of following a link.
	Damping float64 `yaml:"damping" validate:"gte=0,lte=1"`

	// Samples is the walk length of the sampling estimator.
	Samples int `yaml:"samples" validate:"gte=1"`

	// Threshold is the per-page convergence threshold of the iterative estimator.
	Threshold float64 `yaml:"threshold" validate:"gt=0"`

	// MaxIterations caps the iterative estimator.
	MaxIterations int `yaml:"max_iterations" validate:"gte=1"`

	// Dangling is "drop" or "redistribute".
	Dangling string `yaml:"dangling" validate:"oneof=drop redistribute"`

	// Seed seeds the sampling estimator. 0 picks a random seed per run.
	Seed uint64 `yaml:"seed"`
}

// ShoppingConfig parameterizes the purchase classifier.
type ShoppingConfig struct {
	// TestSize is the fraction of rows held out for evaluation.
	TestSize float64 `yaml:"test_size" validate:"gt=0,lt=1"`

	// Neighbors is k for the nearest-neighbour classifier.
	Neighbors int `yaml:"neighbors" validate:"gte=1"`
}

// LoggingConfig mirrors logging.Config in YAML form.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"omitempty,oneof=auto text json"`
	Dir    string `yaml:"dir"`
}

// TelemetryConfig selects OpenTelemetry exporters.
type TelemetryConfig struct {
	TraceExporter  string `yaml:"trace_exporter" validate:"omitempty,oneof=otlp stdout none"`
	MetricExporter string `yaml:"metric_exporter" validate:"omitempty,oneof=prometheus stdout none"`
	OTLPEndpoint   string `yaml:"otlp_endpoint"`
	OTLPInsecure   bool   `yaml:"otlp_insecure"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required"`

	// MaxPages rejects API corpora larger than this.
	MaxPages int `yaml:"max_pages" validate:"gte=1"`

	// MaxSamples rejects API requests asking for longer walks.
	MaxSamples int `yaml:"max_samples" validate:"gte=1"`

	// MaxIterations rejects API requests allowing more iterative passes.
	MaxIterations int `yaml:"max_iterations" validate:"gte=1"`

	// RateLimit is the sustained POST /v1/rank rate per second. 0 disables it.
	RateLimit float64 `yaml:"rate_limit" validate:"gte=0"`

	// Burst is how many requests may exceed RateLimit momentarily.
	Burst int `yaml:"burst" validate:"gte=0"`
}

// DefaultConfig returns the canonical settings.
func DefaultConfig() Config {
	return Config{
		Rank: RankConfig{
			Damping:       0.85,
			Samples:       10000,
			Threshold:     0.001,
			MaxIterations: 1000,
			Dangling:      "drop",
		},
		Shopping: ShoppingConfig{
			TestSize:  0.4,
			Neighbors: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
		Telemetry: TelemetryConfig{
			TraceExporter:  "none",
			MetricExporter: "none",
			OTLPEndpoint:   "localhost:4317",
			OTLPInsecure:   true,
		},
		Server: ServerConfig{
			Addr:          ":8080",
			MaxPages:      10000,
			MaxSamples:    1000000,
			MaxIterations: 10000,
			Burst:         1,
		},
	}
}

var validate = validator.New()

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Parse overlays YAML data on DefaultConfig() and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads a YAML config file. An empty path returns DefaultConfig().
func Load(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Write saves cfg as YAML, creating or truncating path. It backs
// `linkrank config init`.
func Write(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
