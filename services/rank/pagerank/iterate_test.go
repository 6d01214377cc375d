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
	"testing"

	"github.com/AleutianAI/linkrank/services/rank/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIterate_TwoPageCycle(t *testing.T) {
	c := mustCorpus(t, map[string][]string{
		"A": {"B"},
		"B": {"A"},
	})

	result, err := Iterate(context.Background(), c, DefaultIterateOptions())
	require.NoError(t, err)

	assert.InDelta(t, 0.5, result.Ranks["A"], 1e-9)
	assert.InDelta(t, 0.5, result.Ranks["B"], 1e-9)
	assert.Equal(t, 1, result.Iterations)
}

func TestIterate_Chain(t *testing.T) {
	// Fixed point of the recurrence: x = 0.05 + 0.425y, y = 0.05 + 1.7x,
	// so x = 0.07125 / 0.2775 and y = 1 - 2x.
	const outer = 0.07125 / 0.2775
	const middle = 1 - 2*outer

	result, err := Iterate(context.Background(), chainCorpus(t), DefaultIterateOptions())
	require.NoError(t, err)

	assert.InDelta(t, outer, result.Ranks["1.html"], 0.002)
	assert.InDelta(t, middle, result.Ranks["2.html"], 0.002)
	assert.InDelta(t, outer, result.Ranks["3.html"], 0.002)
	assert.Equal(t, result.Ranks["1.html"], result.Ranks["3.html"])
	assert.InDelta(t, 1.0, result.Ranks.Sum(), sumTolerance)
	assert.Less(t, result.MaxDiff, DefaultConvergenceThreshold)
	assert.Greater(t, result.Iterations, 1)
}

func TestIterate_SumsToOneWithoutDanglingPages(t *testing.T) {
	for _, d := range []float64{0, 0.3, 0.85} {
		result, err := Iterate(context.Background(), fiveCorpus(t), IterateOptions{DampingFactor: d})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, result.Ranks.Sum(), 1e-9, "d=%v", d)
	}
}

func TestIterate_DanglingDrop(t *testing.T) {
	// Dropped dangling mass makes the distribution under-sum.
	result, err := Iterate(context.Background(), danglingCorpus(t), DefaultIterateOptions())
	require.NoError(t, err)

	assert.Equal(t, DanglingDrop, result.Policy)
	assert.Equal(t, 1, result.DanglingPages)
	assert.InDelta(t, 0.07125, result.Ranks["a"], 1e-9)
	assert.InDelta(t, 0.1318125, result.Ranks["b"], 1e-9)
	assert.InDelta(t, 0.05, result.Ranks["c"], 1e-9)
	assert.InDelta(t, 0.2530625, result.Ranks.Sum(), 1e-9)
}

func TestIterate_DanglingRedistribute(t *testing.T) {
	opts := DefaultIterateOptions()
	opts.Dangling = DanglingRedistribute

	result, err := Iterate(context.Background(), danglingCorpus(t), opts)
	require.NoError(t, err)

	assert.Equal(t, DanglingRedistribute, result.Policy)
	assert.InDelta(t, 1.0, result.Ranks.Sum(), sumTolerance)
	assert.Greater(t, result.Ranks["b"], result.Ranks["a"])
	assert.Greater(t, result.Ranks["a"], result.Ranks["c"])
}

func TestIterate_SinglePage(t *testing.T) {
	c := mustCorpus(t, map[string][]string{"A": nil})

	dropped, err := Iterate(context.Background(), c, DefaultIterateOptions())
	require.NoError(t, err)
	assert.InDelta(t, 0.15, dropped.Ranks["A"], 1e-12)

	opts := DefaultIterateOptions()
	opts.Dangling = DanglingRedistribute
	kept, err := Iterate(context.Background(), c, opts)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, kept.Ranks["A"], 1e-12)
}

func TestIterate_OneMorePassIsStable(t *testing.T) {
	corpora := []*corpus.Corpus{chainCorpus(t), danglingCorpus(t), fiveCorpus(t)}

	for _, policy := range []DanglingPolicy{DanglingDrop, DanglingRedistribute} {
		opts := DefaultIterateOptions()
		opts.Dangling = policy

		for _, c := range corpora {
			result, err := Iterate(context.Background(), c, opts)
			require.NoError(t, err)

			cur := make([]float64, c.Len())
			for i, page := range c.Pages() {
				cur[i] = result.Ranks[page]
			}
			next := make([]float64, c.Len())

			maxDiff := newPass(c, opts.DampingFactor, policy).apply(cur, next)
			assert.Less(t, maxDiff, opts.Threshold, "policy=%s", policy)
		}
	}
}

func TestIterate_NotConverged(t *testing.T) {
	opts := DefaultIterateOptions()
	opts.MaxIterations = 3

	result, err := Iterate(context.Background(), chainCorpus(t), opts)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNotConverged)

	var nc *NotConvergedError
	require.True(t, errors.As(err, &nc))
	assert.Equal(t, 3, nc.Iterations)
	assert.Equal(t, DefaultConvergenceThreshold, nc.Threshold)
	assert.Greater(t, nc.MaxDiff, DefaultConvergenceThreshold)
	assert.Contains(t, nc.Error(), "after 3 iterations")
}

func TestIterate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		opts    IterateOptions
		empty   bool
		wantErr error
	}{
		{"empty corpus", DefaultIterateOptions(), true, ErrEmptyCorpus},
		{"bad damping", IterateOptions{DampingFactor: -1}, false, ErrInvalidDamping},
		{"negative threshold", IterateOptions{DampingFactor: 0.85, Threshold: -0.1}, false, ErrInvalidThreshold},
		{"bad policy", IterateOptions{DampingFactor: 0.85, Dangling: DanglingPolicy(9)}, false, ErrInvalidDanglingPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := chainCorpus(t)
			if tt.empty {
				c = mustCorpus(t, map[string][]string{})
			}
			result, err := Iterate(context.Background(), c, tt.opts)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)
		})
	}
}

func TestIterate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Iterate(ctx, chainCorpus(t), DefaultIterateOptions())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}
