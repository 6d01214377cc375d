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
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/AleutianAI/linkrank/services/rank/corpus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// IterateResult is the output of Iterate.
type IterateResult struct {
	// Ranks maps every page to its converged rank.
	Ranks Distribution

	// Iterations is the number of passes performed.
	Iterations int

	// MaxDiff is the largest per-page change in the final pass.
	MaxDiff float64

	// DanglingPages is the number of pages without outbound links.
	DanglingPages int

	// Policy is the dangling page policy that was applied.
	Policy DanglingPolicy
}

// Iterate computes PageRank by fixed-point iteration.
//
// Description:
//
//	Every rank starts at 1/N. Each pass computes, for every page,
//
//	    (1-d)/N + d × Σ rank(p) / outdegree(p)
//
//	over the pages p linking to it, using the ranks from before the pass.
//	Iteration stops once no page changed by Threshold or more.
//
//	With DanglingDrop, pages without outbound links feed nothing back and
//	the result sums to less than 1. With DanglingRedistribute their rank is
//	spread uniformly and the result sums to 1.
//
// Inputs:
//
//   - ctx: Context for cancellation, checked once per pass.
//   - c: The corpus. Must not be empty.
//   - opts: Iteration configuration; zero Threshold and MaxIterations select
//     defaults.
//
// Outputs:
//
//   - *IterateResult: Converged ranks and iteration metadata.
//   - error: ErrEmptyCorpus, ErrInvalidDamping, ErrInvalidThreshold,
//     *NotConvergedError (matches ErrNotConverged) or ctx.Err(). No ranks
//     are returned with an error.
//
// Thread Safety: Safe for concurrent use.
//
// Complexity: O(k × (N + E)) where k = passes to converge.
func Iterate(ctx context.Context, c *corpus.Corpus, opts IterateOptions) (*IterateResult, error) {
	ctx, span := tracer.Start(ctx, "pagerank.Iterate",
		trace.WithAttributes(
			attribute.Int("node_count", c.Len()),
			attribute.Int("edge_count", c.EdgeCount()),
		),
	)
	defer span.End()
	start := time.Now()

	result, err := iterate(ctx, c, &opts)
	recordEstimate(ctx, estimatorIterate, time.Since(start), err == nil)

	span.SetAttributes(
		attribute.Float64("damping_factor", opts.DampingFactor),
		attribute.Int("max_iterations", opts.MaxIterations),
		attribute.Float64("convergence_threshold", opts.Threshold),
		attribute.String("dangling_policy", opts.Dangling.String()),
	)

	if err != nil {
		var nc *NotConvergedError
		if errors.As(err, &nc) {
			slog.Warn("PageRank did not converge",
				slog.Int("iterations", nc.Iterations),
				slog.Float64("max_diff", nc.MaxDiff),
				slog.Int("node_count", c.Len()),
			)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	recordIterations(ctx, result.Iterations)
	slog.Debug("PageRank iteration completed",
		slog.Int("iterations", result.Iterations),
		slog.Float64("max_diff", result.MaxDiff),
		slog.Int("node_count", c.Len()),
		slog.Int("dangling", result.DanglingPages),
	)
	span.SetAttributes(
		attribute.Int("iterations", result.Iterations),
		attribute.Float64("max_diff", result.MaxDiff),
	)

	return result, nil
}

func iterate(ctx context.Context, c *corpus.Corpus, opts *IterateOptions) (*IterateResult, error) {
	if c.Len() == 0 {
		return nil, ErrEmptyCorpus
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	p := newPass(c, opts.DampingFactor, opts.Dangling)

	n := c.Len()
	ranks := make([]float64, n)
	next := make([]float64, n)
	initial := 1 / float64(n)
	for i := range ranks {
		ranks[i] = initial
	}

	var maxDiff float64
	for iter := 0; iter < opts.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		maxDiff = p.apply(ranks, next)
		ranks, next = next, ranks

		if maxDiff < opts.Threshold {
			return &IterateResult{
				Ranks:         newDistribution(c, ranks),
				Iterations:    iter + 1,
				MaxDiff:       maxDiff,
				DanglingPages: len(p.dangling),
				Policy:        opts.Dangling,
			}, nil
		}
	}

	return nil, &NotConvergedError{
		Iterations: opts.MaxIterations,
		MaxDiff:    maxDiff,
		Threshold:  opts.Threshold,
	}
}

// pass holds what one application of the recurrence needs.
type pass struct {
	c        *corpus.Corpus
	damping  float64
	policy   DanglingPolicy
	dangling []int
}

func newPass(c *corpus.Corpus, damping float64, policy DanglingPolicy) *pass {
	return &pass{
		c:        c,
		damping:  damping,
		policy:   policy,
		dangling: c.Dangling(),
	}
}

// apply computes the next ranks from cur into next and returns the largest
// absolute change. cur is not modified.
func (p *pass) apply(cur, next []float64) float64 {
	n := float64(len(cur))
	d := p.damping

	base := (1 - d) / n
	if p.policy == DanglingRedistribute {
		var sink float64
		for _, i := range p.dangling {
			sink += cur[i]
		}
		base += d * sink / n
	}

	var maxDiff float64
	for key := range cur {
		var sum float64
		for _, from := range p.c.Inbound(key) {
			sum += cur[from] / float64(p.c.OutDegree(from))
		}
		next[key] = base + d*sum

		if diff := math.Abs(next[key] - cur[key]); diff > maxDiff {
			maxDiff = diff
		}
	}
	return maxDiff
}
