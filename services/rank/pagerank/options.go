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
	"fmt"
	"math"
	"strings"
)

// Estimator configuration constants.
const (
	// DefaultDampingFactor is the probability of following a link (vs random jump).
	// Standard value from the original PageRank paper.
	DefaultDampingFactor = 0.85

	// DefaultSamples is the number of random-walk steps taken by Sample.
	DefaultSamples = 10000

	// DefaultConvergenceThreshold is the per-page change below which
	// Iterate considers a rank settled.
	DefaultConvergenceThreshold = 0.001

	// DefaultMaxIterations caps the passes made by Iterate.
	DefaultMaxIterations = 1000
)

// DanglingPolicy selects how Iterate treats pages without outbound links.
type DanglingPolicy int

const (
	// DanglingDrop omits dangling pages from the link term. Their rank leaves
	// circulation, so the distribution sums to less than 1 when dangling
	// pages exist.
	DanglingDrop DanglingPolicy = iota

	// DanglingRedistribute spreads a dangling page's rank evenly over every
	// page, as if it linked to all of them. This matches the transition model
	// used by Sample.
	DanglingRedistribute
)

func (p DanglingPolicy) String() string {
	switch p {
	case DanglingDrop:
		return "drop"
	case DanglingRedistribute:
		return "redistribute"
	default:
		return "unknown"
	}
}

// ParseDanglingPolicy parses "drop" or "redistribute". An empty string
// selects DanglingDrop.
func ParseDanglingPolicy(s string) (DanglingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "drop":
		return DanglingDrop, nil
	case "redistribute":
		return DanglingRedistribute, nil
	default:
		return DanglingDrop, fmt.Errorf("%w: %q", ErrInvalidDanglingPolicy, s)
	}
}

// RandomSource supplies the randomness for Sample.
//
// *math/rand/v2.Rand satisfies it.
type RandomSource interface {
	// Float64 returns a value in [0, 1).
	Float64() float64

	// IntN returns a value in [0, n).
	IntN(n int) int
}

// SampleOptions configures Sample.
type SampleOptions struct {
	// DampingFactor is the probability of following a link. Must be in [0, 1].
	DampingFactor float64

	// Samples is the number of steps of the walk. Must be >= 1.
	Samples int

	// Source drives every random choice. If nil, a PCG generator seeded
	// with Seed is used.
	Source RandomSource

	// Seed seeds the default source when Source is nil.
	Seed uint64
}

// DefaultSampleOptions returns the canonical sampling configuration.
func DefaultSampleOptions() SampleOptions {
	return SampleOptions{
		DampingFactor: DefaultDampingFactor,
		Samples:       DefaultSamples,
	}
}

// Validate checks the options.
func (o SampleOptions) Validate() error {
	if err := validateDamping(o.DampingFactor); err != nil {
		return err
	}
	if o.Samples < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSamples, o.Samples)
	}
	return nil
}

// IterateOptions configures Iterate.
type IterateOptions struct {
	// DampingFactor is the probability of following a link. Must be in [0, 1].
	DampingFactor float64

	// Threshold is the convergence threshold. Zero selects
	// DefaultConvergenceThreshold; negative values are rejected.
	Threshold float64

	// MaxIterations caps the number of passes. Values <= 0 select
	// DefaultMaxIterations.
	MaxIterations int

	// Dangling selects the dangling page treatment.
	Dangling DanglingPolicy
}

// DefaultIterateOptions returns the canonical iteration configuration.
func DefaultIterateOptions() IterateOptions {
	return IterateOptions{
		DampingFactor: DefaultDampingFactor,
		Threshold:     DefaultConvergenceThreshold,
		MaxIterations: DefaultMaxIterations,
		Dangling:      DanglingDrop,
	}
}

// Validate checks the options and fills in defaults for zero values.
func (o *IterateOptions) Validate() error {
	if err := validateDamping(o.DampingFactor); err != nil {
		return err
	}
	if o.Threshold == 0 {
		o.Threshold = DefaultConvergenceThreshold
	}
	if o.Threshold < 0 || math.IsNaN(o.Threshold) {
		return fmt.Errorf("%w: got %v", ErrInvalidThreshold, o.Threshold)
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Dangling != DanglingDrop && o.Dangling != DanglingRedistribute {
		return fmt.Errorf("%w: %d", ErrInvalidDanglingPolicy, o.Dangling)
	}
	return nil
}

func validateDamping(d float64) error {
	if math.IsNaN(d) || d < 0 || d > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidDamping, d)
	}
	return nil
}
