// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0.85, cfg.Rank.Damping)
	assert.Equal(t, 10000, cfg.Rank.Samples)
	assert.Equal(t, 0.001, cfg.Rank.Threshold)
	assert.Equal(t, "drop", cfg.Rank.Dangling)
	assert.Equal(t, 0.4, cfg.Shopping.TestSize)
	assert.Equal(t, 1, cfg.Shopping.Neighbors)
}

func TestParse_OverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
rank:
  samples: 500
  dangling: redistribute
logging:
  level: debug
`))
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Rank.Samples)
	assert.Equal(t, "redistribute", cfg.Rank.Dangling)
	assert.Equal(t, 0.85, cfg.Rank.Damping)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"damping above one", "rank:\n  damping: 1.2\n"},
		{"negative damping", "rank:\n  damping: -0.1\n"},
		{"zero samples", "rank:\n  samples: 0\n"},
		{"zero threshold", "rank:\n  threshold: 0\n"},
		{"unknown dangling policy", "rank:\n  dangling: spread\n"},
		{"test size of one", "shopping:\n  test_size: 1\n"},
		{"unknown log level", "logging:\n  level: loud\n"},
		{"unknown exporter", "telemetry:\n  trace_exporter: zipkin\n"},
		{"jaeger exporter", "telemetry:\n  trace_exporter: jaeger\n"},
		{"empty server addr", "server:\n  addr: \"\"\n"},
		{"negative rate limit", "server:\n  rate_limit: -1\n"},
		{"zero iteration limit", "server:\n  max_iterations: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("rank: [unclosed"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linkrank.yaml")

	cfg := DefaultConfig()
	cfg.Rank.Seed = 7
	cfg.Server.Addr = ":9999"
	require.NoError(t, Write(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
