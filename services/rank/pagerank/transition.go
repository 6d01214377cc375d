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

	"github.com/AleutianAI/linkrank/services/rank/corpus"
)

// Transition returns the distribution over the next page visited from page.
//
// Description:
//
//	Every page receives (1-d)/N for a uniform random jump, including page
//	itself. Each of the L pages that page links to receives an extra d/L.
//	A page without outbound links is treated as linking to every page, so
//	the result is uniform 1/N.
//
// Inputs:
//
//   - c: The corpus. Must not be empty.
//   - page: The current page. Must be part of c.
//   - damping: Probability of following a link. Must be in [0, 1].
//
// Outputs:
//
//   - Distribution: One entry per page of c, summing to 1.
//   - error: ErrEmptyCorpus, ErrUnknownPage or ErrInvalidDamping.
//
// Thread Safety: Safe for concurrent use.
func Transition(c *corpus.Corpus, page string, damping float64) (Distribution, error) {
	if c.Len() == 0 {
		return nil, ErrEmptyCorpus
	}
	if err := validateDamping(damping); err != nil {
		return nil, err
	}
	i, ok := c.Index(page)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, page)
	}

	row := make([]float64, c.Len())
	transitionRow(c, i, damping, row)
	return newDistribution(c, row), nil
}

// transitionRow writes the transition distribution of page i into row,
// which must have one slot per page.
func transitionRow(c *corpus.Corpus, i int, damping float64, row []float64) {
	n := float64(len(row))
	links := c.Outbound(i)

	if len(links) == 0 {
		uniform := 1 / n
		for j := range row {
			row[j] = uniform
		}
		return
	}

	base := (1 - damping) / n
	for j := range row {
		row[j] = base
	}
	share := damping / float64(len(links))
	for _, j := range links {
		row[j] += share
	}
}

// choose picks a position from row proportionally to its weight, given a
// uniform draw r in [0, 1).
func choose(row []float64, r float64) int {
	var acc float64
	last := -1
	for j, w := range row {
		if w <= 0 {
			continue
		}
		acc += w
		last = j
		if r < acc {
			return j
		}
	}
	// Rounding can leave acc slightly below 1.
	if last < 0 {
		return len(row) - 1
	}
	return last
}
