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
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/AleutianAI/linkrank/services/rank/corpus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("linkrank.pagerank")

// cancelCheckInterval is how many walk steps run between context checks.
const cancelCheckInterval = 1024

// SampleResult is the output of Sample.
type SampleResult struct {
	// Ranks holds the visit frequency of every page. Pages never visited
	// are present with 0. Ranks sum to 1.
	Ranks Distribution

	// Samples is the number of steps taken.
	Samples int

	// Start is the page the walk started from.
	Start string
}

// Sample estimates PageRank by simulating a random surfer.
//
// Description:
//
//	The walk starts on a page drawn uniformly at random. At each of the n
//	steps the current page is recorded as visited, its transition
//	distribution is computed and the next page is drawn from it. A page's
//	rank is its visit count divided by n.
//
//	Pages without outbound links jump to any page uniformly, so the walk
//	never gets stuck.
//
// Inputs:
//
//   - ctx: Context for cancellation, checked every 1024 steps.
//   - c: The corpus. Must not be empty.
//   - opts: Sampling configuration; see SampleOptions.
//
// Outputs:
//
//   - *SampleResult: Visit frequencies for every page.
//   - error: ErrEmptyCorpus, ErrInvalidSamples, ErrInvalidDamping or ctx.Err().
//
// Example:
//
//	opts := pagerank.DefaultSampleOptions()
//	opts.Source = rand.New(rand.NewPCG(1, 2))
//	result, err := pagerank.Sample(ctx, c, opts)
//
// Thread Safety: Safe for concurrent use as long as opts.Source is not
// shared between concurrent calls.
//
// Complexity: O(n × N) time, O(N) memory.
func Sample(ctx context.Context, c *corpus.Corpus, opts SampleOptions) (*SampleResult, error) {
	ctx, span := tracer.Start(ctx, "pagerank.Sample",
		trace.WithAttributes(
			attribute.Int("page_count", c.Len()),
			attribute.Int("samples", opts.Samples),
			attribute.Float64("damping_factor", opts.DampingFactor),
		),
	)
	defer span.End()
	start := time.Now()

	result, err := sample(ctx, c, opts)
	recordEstimate(ctx, estimatorSample, time.Since(start), err == nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	slog.Debug("PageRank sampling completed",
		slog.Int("samples", result.Samples),
		slog.String("start", result.Start),
		slog.Int("node_count", c.Len()),
	)
	return result, nil
}

func sample(ctx context.Context, c *corpus.Corpus, opts SampleOptions) (*SampleResult, error) {
	if c.Len() == 0 {
		return nil, ErrEmptyCorpus
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	src := opts.Source
	if src == nil {
		src = rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	}

	n := c.Len()
	visits := make([]int, n)
	row := make([]float64, n)

	current := src.IntN(n)
	first := current

	for step := 0; step < opts.Samples; step++ {
		if step%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		visits[current]++
		transitionRow(c, current, opts.DampingFactor, row)
		current = choose(row, src.Float64())
	}

	ranks := make([]float64, n)
	for i, v := range visits {
		ranks[i] = float64(v) / float64(opts.Samples)
	}

	return &SampleResult{
		Ranks:   newDistribution(c, ranks),
		Samples: opts.Samples,
		Start:   c.Page(first),
	}, nil
}
