// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AleutianAI/linkrank/pkg/config"
	"github.com/AleutianAI/linkrank/pkg/logging"
	"github.com/AleutianAI/linkrank/services/rank/telemetry"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// shutdownTimeout bounds telemetry flushing at exit.
const shutdownTimeout = 5 * time.Second

// session holds what one CLI invocation sets up before its subcommand runs:
// the resolved config, the logger and the telemetry providers.
type session struct {
	cfg    config.Config
	logger *logging.Logger
	runID  string

	prevLogger *slog.Logger
	shutdown   func(context.Context) error
}

func (s *session) open(cmd *cobra.Command, gf *globalFlags) error {
	cfg, err := config.Load(gf.configPath)
	if err != nil {
		return err
	}
	if gf.logLevel != "" {
		cfg.Logging.Level = gf.logLevel
	}
	if gf.logJSON {
		cfg.Logging.Format = string(logging.FormatJSON)
	}
	if gf.logDir != "" {
		cfg.Logging.Dir = gf.logDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}

	s.runID = uuid.NewString()
	s.logger = logging.New(logging.Config{
		Level:   level,
		LogDir:  cfg.Logging.Dir,
		Service: "linkrank",
		Format:  logging.Format(cfg.Logging.Format),
		Output:  cmd.ErrOrStderr(),
	}).With("run_id", s.runID, "command", cmd.Name())

	s.prevLogger = slog.Default()
	s.logger.SetDefault()

	shutdown, err := telemetry.Init(cmd.Context(), telemetryConfig(cfg.Telemetry))
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	s.shutdown = shutdown

	s.logger.Debug("Session started",
		"config", gf.configPath,
		"trace_exporter", cfg.Telemetry.TraceExporter,
		"metric_exporter", cfg.Telemetry.MetricExporter)
	return nil
}

// telemetryConfig overlays the YAML telemetry section on the environment
// defaults. "none" in the file leaves an environment override in place.
func telemetryConfig(tc config.TelemetryConfig) telemetry.Config {
	out := telemetry.DefaultConfig()
	if tc.TraceExporter != "" && tc.TraceExporter != "none" {
		out.TraceExporter = tc.TraceExporter
	}
	if tc.MetricExporter != "" && tc.MetricExporter != "none" {
		out.MetricExporter = tc.MetricExporter
	}
	if tc.OTLPEndpoint != "" {
		out.OTLPEndpoint = tc.OTLPEndpoint
	}
	out.OTLPInsecure = tc.OTLPInsecure
	return out
}

func (s *session) close() {
	if s.shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := s.shutdown(ctx); err != nil && s.logger != nil {
			s.logger.Warn("Telemetry shutdown failed", "error", err)
		}
		cancel()
		s.shutdown = nil
	}
	if s.logger != nil {
		_ = s.logger.Close()
		s.logger = nil
	}
	if s.prevLogger != nil {
		slog.SetDefault(s.prevLogger)
		s.prevLogger = nil
	}
}
