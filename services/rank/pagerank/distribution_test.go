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

	"github.com/stretchr/testify/assert"
)

func TestDistribution_SumAndPages(t *testing.T) {
	d := Distribution{"b": 0.25, "a": 0.5, "c": 0.25}

	assert.Equal(t, []string{"a", "b", "c"}, d.Pages())
	assert.InDelta(t, 1.0, d.Sum(), 1e-12)
	assert.Equal(t, 0.0, Distribution{}.Sum())
}

func TestDistribution_MaxAbsDiff(t *testing.T) {
	a := Distribution{"x": 0.5, "y": 0.5}
	b := Distribution{"x": 0.45, "y": 0.5}
	c := Distribution{"x": 0.5, "y": 0.3, "z": 0.2}

	assert.InDelta(t, 0.05, a.MaxAbsDiff(b), 1e-12)
	assert.InDelta(t, 0.05, b.MaxAbsDiff(a), 1e-12)
	assert.InDelta(t, 0.2, a.MaxAbsDiff(c), 1e-12)
	assert.InDelta(t, 0.2, c.MaxAbsDiff(a), 1e-12)
	assert.Equal(t, 0.0, a.MaxAbsDiff(a))
}

func TestDistribution_Top(t *testing.T) {
	d := Distribution{"a": 0.2, "b": 0.4, "c": 0.2, "d": 0.2}

	top := d.Top(2)
	assert.Equal(t, []RankedPage{{Page: "b", Score: 0.4}, {Page: "a", Score: 0.2}}, top)

	all := d.Top(0)
	assert.Len(t, all, 4)
	assert.Equal(t, "d", all[3].Page)

	assert.Len(t, d.Top(10), 4)
}
