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
	"sort"

	"github.com/AleutianAI/linkrank/services/rank/corpus"
)

// Distribution maps page name to a non-negative probability mass.
type Distribution map[string]float64

// newDistribution converts position-indexed values into a Distribution.
func newDistribution(c *corpus.Corpus, values []float64) Distribution {
	d := make(Distribution, len(values))
	for i, v := range values {
		d[c.Page(i)] = v
	}
	return d
}

// Sum returns the total mass.
func (d Distribution) Sum() float64 {
	// Sum in sorted order so the result does not depend on map iteration.
	var total float64
	for _, page := range d.Pages() {
		total += d[page]
	}
	return total
}

// Pages returns the pages in ascending order.
func (d Distribution) Pages() []string {
	pages := make([]string, 0, len(d))
	for page := range d {
		pages = append(pages, page)
	}
	sort.Strings(pages)
	return pages
}

// MaxAbsDiff returns the largest absolute difference between two
// distributions. A page missing from one side counts as zero there.
func (d Distribution) MaxAbsDiff(other Distribution) float64 {
	var maxDiff float64
	for page, v := range d {
		if diff := math.Abs(v - other[page]); diff > maxDiff {
			maxDiff = diff
		}
	}
	for page, v := range other {
		if _, ok := d[page]; ok {
			continue
		}
		if v > maxDiff {
			maxDiff = v
		}
	}
	return maxDiff
}

// RankedPage is a page with its rank, used for ordered listings.
type RankedPage struct {
	Page  string  `json:"page"`
	Score float64 `json:"score"`
}

// Top returns the k highest ranked pages, ties broken by page name.
// k <= 0 or k larger than the distribution returns every page.
func (d Distribution) Top(k int) []RankedPage {
	list := make([]RankedPage, 0, len(d))
	for page, score := range d {
		list = append(list, RankedPage{Page: page, Score: score})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Score != list[j].Score {
			return list[i].Score > list[j].Score
		}
		return list[i].Page < list[j].Page
	})
	if k > 0 && k < len(list) {
		list = list[:k]
	}
	return list
}
