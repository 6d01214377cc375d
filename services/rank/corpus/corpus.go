// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package corpus

// Corpus is an immutable directed graph of pages.
//
// Pages are addressed either by name or by their position in ascending name
// order. Positions are stable for the lifetime of the Corpus, which lets the
// estimators work on slices instead of maps and keeps every traversal
// deterministic.
type Corpus struct {
	// pages holds page names in ascending order.
	pages []string

	// index maps page name to its position in pages.
	index map[string]int

	// outbound[i] holds the sorted positions that page i links to.
	outbound [][]int

	// inbound[i] holds the sorted positions of pages linking to page i.
	inbound [][]int

	edgeCount int
}

// Len returns the number of pages.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.pages)
}

// EdgeCount returns the number of links between pages.
func (c *Corpus) EdgeCount() int {
	if c == nil {
		return 0
	}
	return c.edgeCount
}

// Pages returns a copy of all page names in ascending order.
func (c *Corpus) Pages() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.pages))
	copy(out, c.pages)
	return out
}

// Page returns the name of the page at position i.
//
// Panics if i is out of range, like a slice index.
func (c *Corpus) Page(i int) string {
	return c.pages[i]
}

// Index returns the position of a page and whether it exists.
func (c *Corpus) Index(page string) (int, bool) {
	if c == nil {
		return 0, false
	}
	i, ok := c.index[page]
	return i, ok
}

// Links returns the names of the pages that page links to, in ascending
// order. Returns nil for unknown pages.
func (c *Corpus) Links(page string) []string {
	i, ok := c.Index(page)
	if !ok {
		return nil
	}
	out := make([]string, len(c.outbound[i]))
	for j, target := range c.outbound[i] {
		out[j] = c.pages[target]
	}
	return out
}

// Outbound returns the positions page i links to.
//
// The returned slice is shared with the Corpus and MUST NOT be modified.
func (c *Corpus) Outbound(i int) []int {
	return c.outbound[i]
}

// Inbound returns the positions of the pages linking to page i.
//
// The returned slice is shared with the Corpus and MUST NOT be modified.
func (c *Corpus) Inbound(i int) []int {
	return c.inbound[i]
}

// OutDegree returns the number of pages page i links to.
func (c *Corpus) OutDegree(i int) int {
	return len(c.outbound[i])
}

// Dangling returns the positions of pages without outbound links.
func (c *Corpus) Dangling() []int {
	if c == nil {
		return nil
	}
	var out []int
	for i, links := range c.outbound {
		if len(links) == 0 {
			out = append(out, i)
		}
	}
	return out
}

// Map returns the corpus as page name to linked page names.
func (c *Corpus) Map() map[string][]string {
	out := make(map[string][]string, c.Len())
	for _, page := range c.Pages() {
		out[page] = c.Links(page)
	}
	return out
}
