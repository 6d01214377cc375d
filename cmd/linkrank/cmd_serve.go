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
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/AleutianAI/linkrank/services/rank/api"
	"github.com/AleutianAI/linkrank/services/rank/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const (
	readHeaderTimeout = 10 * time.Second
	drainTimeout      = 15 * time.Second
)

// runServe handles `linkrank serve`. It blocks until the command context is
// cancelled, then drains in-flight requests.
func runServe(cmd *cobra.Command, s *session, addr string) error {
	if addr == "" {
		addr = s.cfg.Server.Addr
	}

	defaults, err := compareOptions(s.cfg.Rank)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	handlers := api.NewHandlers(api.Limits{
		MaxPages:          s.cfg.Server.MaxPages,
		MaxSamples:        s.cfg.Server.MaxSamples,
		MaxIterations:     s.cfg.Server.MaxIterations,
		RequestsPerSecond: s.cfg.Server.RateLimit,
		Burst:             s.cfg.Server.Burst,
	}, defaults)
	router := api.NewRouter("linkrank", handlers, telemetry.MetricsHandler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Rank API listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-cmd.Context().Done():
	}

	s.logger.Info("Shutting down rank API")
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
