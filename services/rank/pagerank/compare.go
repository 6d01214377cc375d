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
	"fmt"

	"github.com/AleutianAI/linkrank/services/rank/corpus"
	"golang.org/x/sync/errgroup"
)

// CompareOptions configures both estimators for Compare.
type CompareOptions struct {
	Sample  SampleOptions
	Iterate IterateOptions
}

// DefaultCompareOptions returns the canonical configuration for both estimators.
func DefaultCompareOptions() CompareOptions {
	return CompareOptions{
		Sample:  DefaultSampleOptions(),
		Iterate: DefaultIterateOptions(),
	}
}

// Comparison holds the results of both estimators over one corpus.
type Comparison struct {
	Sampled  *SampleResult
	Iterated *IterateResult

	// MaxDeviation is the largest per-page difference between the two.
	MaxDeviation float64
}

// Compare runs Sample and Iterate concurrently over the same corpus.
//
// The corpus is only read, so the two estimators share it without locking.
// If either fails the other is cancelled and the first error is returned.
//
// Thread Safety: Safe for concurrent use as long as opts.Sample.Source is
// not shared between concurrent calls.
func Compare(ctx context.Context, c *corpus.Corpus, opts CompareOptions) (*Comparison, error) {
	ctx, span := tracer.Start(ctx, "pagerank.Compare")
	defer span.End()

	var out Comparison
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		res, err := Sample(gCtx, c, opts.Sample)
		if err != nil {
			return fmt.Errorf("sample: %w", err)
		}
		out.Sampled = res
		return nil
	})

	g.Go(func() error {
		res, err := Iterate(gCtx, c, opts.Iterate)
		if err != nil {
			return fmt.Errorf("iterate: %w", err)
		}
		out.Iterated = res
		return nil
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	out.MaxDeviation = out.Sampled.Ranks.MaxAbsDiff(out.Iterated.Ranks)
	return &out, nil
}
