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
	"math"
	"testing"

	"github.com/AleutianAI/linkrank/services/rank/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition_LinkedPage(t *testing.T) {
	c := chainCorpus(t)

	dist, err := Transition(c, "2.html", 0.85)
	require.NoError(t, err)

	assert.InDelta(t, 0.05+0.425, dist["1.html"], 1e-12)
	assert.InDelta(t, 0.05, dist["2.html"], 1e-12)
	assert.InDelta(t, 0.05+0.425, dist["3.html"], 1e-12)
}

func TestTransition_SumsToOneForEveryPage(t *testing.T) {
	corpora := map[string]*corpus.Corpus{
		"chain":    chainCorpus(t),
		"dangling": danglingCorpus(t),
		"five":     fiveCorpus(t),
	}
	dampings := []float64{0, 0.15, 0.5, 0.85, 1}

	for name, c := range corpora {
		for _, d := range dampings {
			for _, page := range c.Pages() {
				dist, err := Transition(c, page, d)
				require.NoError(t, err)

				assert.Len(t, dist, c.Len(), "%s/%s d=%v", name, page, d)
				for _, p := range c.Pages() {
					_, ok := dist[p]
					assert.True(t, ok, "missing %s", p)
					assert.GreaterOrEqual(t, dist[p], 0.0)
				}
				assert.InDelta(t, 1.0, dist.Sum(), sumTolerance, "%s/%s d=%v", name, page, d)
			}
		}
	}
}

func TestTransition_DanglingPageIsUniform(t *testing.T) {
	c := danglingCorpus(t)

	for _, d := range []float64{0, 0.5, 0.85, 1} {
		dist, err := Transition(c, "b", d)
		require.NoError(t, err)

		for _, page := range c.Pages() {
			assert.Equal(t, 1.0/3.0, dist[page], "d=%v page=%s", d, page)
		}
	}
}

func TestTransition_TeleportIncludesCurrentPage(t *testing.T) {
	c := mustCorpus(t, map[string][]string{
		"A": {"B"},
		"B": {"A"},
	})

	dist, err := Transition(c, "A", 0.85)
	require.NoError(t, err)

	assert.InDelta(t, 0.075, dist["A"], 1e-12)
	assert.InDelta(t, 0.925, dist["B"], 1e-12)
}

func TestTransition_Errors(t *testing.T) {
	c := chainCorpus(t)
	empty := mustCorpus(t, map[string][]string{})

	tests := []struct {
		name    string
		c       *corpus.Corpus
		page    string
		damping float64
		wantErr error
	}{
		{"empty corpus", empty, "1.html", 0.85, ErrEmptyCorpus},
		{"nil corpus", nil, "1.html", 0.85, ErrEmptyCorpus},
		{"unknown page", c, "9.html", 0.85, ErrUnknownPage},
		{"negative damping", c, "1.html", -0.1, ErrInvalidDamping},
		{"damping above one", c, "1.html", 1.1, ErrInvalidDamping},
		{"NaN damping", c, "1.html", math.NaN(), ErrInvalidDamping},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, err := Transition(tt.c, tt.page, tt.damping)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, dist)
		})
	}
}

func TestChoose(t *testing.T) {
	tests := []struct {
		name string
		row  []float64
		r    float64
		want int
	}{
		{"first bucket", []float64{0.2, 0.3, 0.5}, 0, 0},
		{"bucket boundary", []float64{0.2, 0.3, 0.5}, 0.2, 1},
		{"middle", []float64{0.2, 0.3, 0.5}, 0.49, 1},
		{"last bucket", []float64{0.2, 0.3, 0.5}, 0.5, 2},
		{"zero weight skipped", []float64{0, 1}, 0, 1},
		{"rounding shortfall", []float64{0.1, 0.1, 0.1}, 0.99, 2},
		{"trailing zero weight", []float64{0.5, 0.5, 0}, 0.9999999, 1},
		{"all zero", []float64{0, 0}, 0.3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, choose(tt.row, tt.r))
		})
	}
}
