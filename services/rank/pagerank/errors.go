// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package pagerank estimates page importance over a corpus link graph.
//
// Two estimators approximate the same stationary distribution of the random
// surfer process:
//
//   - Sample runs a Markov chain over the transition model and reports visit
//     frequencies.
//   - Iterate applies the PageRank recurrence until every page's rank changes
//     by less than a threshold between passes.
//
// Both read the corpus without modifying it and return their own
// Distribution, so they can run concurrently against the same corpus
// (see Compare).
package pagerank

import (
	"errors"
	"fmt"
)

// Sentinel errors for rank estimation.
var (
	// ErrEmptyCorpus is returned when the corpus has no pages.
	ErrEmptyCorpus = errors.New("corpus has no pages")

	// ErrUnknownPage is returned when a page is not part of the corpus.
	ErrUnknownPage = errors.New("page not in corpus")

	// ErrInvalidDamping is returned when the damping factor is outside [0, 1].
	ErrInvalidDamping = errors.New("damping factor must be in [0, 1]")

	// ErrInvalidSamples is returned when fewer than one sample is requested.
	ErrInvalidSamples = errors.New("sample count must be at least 1")

	// ErrInvalidThreshold is returned when the convergence threshold is not
	// a positive number.
	ErrInvalidThreshold = errors.New("convergence threshold must be > 0")

	// ErrInvalidDanglingPolicy is returned for an unrecognized policy.
	ErrInvalidDanglingPolicy = errors.New("unknown dangling page policy")

	// ErrNotConverged is returned when the iteration cap is reached before
	// every rank settled. Use errors.As with *NotConvergedError for details.
	ErrNotConverged = errors.New("pagerank did not converge")
)

// NotConvergedError reports an exhausted iteration budget.
type NotConvergedError struct {
	// Iterations is the number of passes performed.
	Iterations int

	// MaxDiff is the largest per-page change in the final pass.
	MaxDiff float64

	// Threshold is the convergence threshold that was not met.
	Threshold float64
}

func (e *NotConvergedError) Error() string {
	return fmt.Sprintf("%s after %d iterations (max change %.6g, threshold %.6g)",
		ErrNotConverged, e.Iterations, e.MaxDiff, e.Threshold)
}

// Is makes errors.Is(err, ErrNotConverged) match.
func (e *NotConvergedError) Is(target error) bool {
	return target == ErrNotConverged
}
