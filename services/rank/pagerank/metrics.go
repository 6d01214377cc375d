// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package pagerank

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	estimatorSample  = "sample"
	estimatorIterate = "iterate"
)

var meter = otel.Meter("linkrank.pagerank")

var (
	estimateLatency metric.Float64Histogram
	estimateTotal   metric.Int64Counter
	iterationCount  metric.Int64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		estimateLatency, err = meter.Float64Histogram(
			"pagerank_estimate_duration_seconds",
			metric.WithDescription("Duration of rank estimation"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		estimateTotal, err = meter.Int64Counter(
			"pagerank_estimate_total",
			metric.WithDescription("Total number of rank estimations"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		iterationCount, err = meter.Int64Histogram(
			"pagerank_iterations",
			metric.WithDescription("Passes needed by the iterative estimator to converge"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordEstimate records one estimator run.
func recordEstimate(ctx context.Context, estimator string, duration time.Duration, success bool) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("estimator", estimator),
		attribute.Bool("success", success),
	)
	estimateLatency.Record(ctx, duration.Seconds(), attrs)
	estimateTotal.Add(ctx, 1, attrs)
}

// recordIterations records how many passes a converged run took.
func recordIterations(ctx context.Context, iterations int) {
	if err := initMetrics(); err != nil {
		return
	}
	iterationCount.Record(ctx, int64(iterations))
}
