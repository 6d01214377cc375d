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
	"testing"

	"github.com/AleutianAI/linkrank/services/rank/corpus"
	"github.com/stretchr/testify/require"
)

// sumTolerance bounds floating point error when summing a few ranks.
const sumTolerance = 1e-9

func mustCorpus(t *testing.T, links map[string][]string) *corpus.Corpus {
	t.Helper()
	c, err := corpus.FromMap(links)
	require.NoError(t, err)
	return c
}

// chainCorpus is 1 <-> 2 <-> 3.
func chainCorpus(t *testing.T) *corpus.Corpus {
	return mustCorpus(t, map[string][]string{
		"1.html": {"2.html"},
		"2.html": {"1.html", "3.html"},
		"3.html": {"2.html"},
	})
}

// danglingCorpus has b without outbound links.
func danglingCorpus(t *testing.T) *corpus.Corpus {
	return mustCorpus(t, map[string][]string{
		"a": {"b"},
		"b": {},
		"c": {"a", "b"},
	})
}

// fiveCorpus is a small strongly connected corpus with uneven in-degrees.
func fiveCorpus(t *testing.T) *corpus.Corpus {
	return mustCorpus(t, map[string][]string{
		"a": {"b", "c"},
		"b": {"c"},
		"c": {"a"},
		"d": {"c"},
		"e": {"a", "d"},
	})
}

// scriptedSource replays fixed values. Float64 and IntN draw from separate
// scripts and repeat the last value once exhausted.
type scriptedSource struct {
	floats []float64
	ints   []int
}

func (s *scriptedSource) Float64() float64 {
	v := s.floats[0]
	if len(s.floats) > 1 {
		s.floats = s.floats[1:]
	}
	return v
}

func (s *scriptedSource) IntN(n int) int {
	v := s.ints[0]
	if len(s.ints) > 1 {
		s.ints = s.ints[1:]
	}
	return v % n
}
