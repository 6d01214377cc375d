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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare_BothEstimators(t *testing.T) {
	opts := DefaultCompareOptions()
	opts.Sample.Seed = 11

	cmp, err := Compare(context.Background(), chainCorpus(t), opts)
	require.NoError(t, err)

	require.NotNil(t, cmp.Sampled)
	require.NotNil(t, cmp.Iterated)
	assert.Len(t, cmp.Sampled.Ranks, 3)
	assert.Len(t, cmp.Iterated.Ranks, 3)
	assert.Equal(t, cmp.Sampled.Ranks.MaxAbsDiff(cmp.Iterated.Ranks), cmp.MaxDeviation)
	assert.Less(t, cmp.MaxDeviation, 0.02)
}

func TestCompare_PropagatesFailure(t *testing.T) {
	opts := DefaultCompareOptions()
	opts.Iterate.MaxIterations = 1

	cmp, err := Compare(context.Background(), chainCorpus(t), opts)
	assert.ErrorIs(t, err, ErrNotConverged)
	assert.Contains(t, err.Error(), "iterate:")
	assert.Nil(t, cmp)
}

func TestCompare_EmptyCorpus(t *testing.T) {
	cmp, err := Compare(context.Background(), mustCorpus(t, map[string][]string{}), DefaultCompareOptions())
	assert.ErrorIs(t, err, ErrEmptyCorpus)
	assert.Nil(t, cmp)
}
