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

import (
	"fmt"

	"github.com/google/btree"
)

// btreeDegree is the branching factor for the ordered page sets.
const btreeDegree = 8

// Builder accumulates pages and raw links and produces a Corpus.
//
// Links may name targets that are never added as pages; those are dropped
// by Build(). Self-links are dropped as well.
//
// Thread Safety: NOT safe for concurrent use.
type Builder struct {
	pages *btree.BTreeG[string]
	links map[string]*btree.BTreeG[string]
	built bool
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		pages: btree.NewG(btreeDegree, btree.Less[string]()),
		links: make(map[string]*btree.BTreeG[string]),
	}
}

// AddPage registers a page. Adding the same page twice is a no-op.
func (b *Builder) AddPage(name string) error {
	if b.built {
		return ErrBuilderUsed
	}
	if name == "" {
		return ErrEmptyPageName
	}
	b.pages.ReplaceOrInsert(name)
	return nil
}

// AddLink records a link from one page to a target.
//
// The source page is registered if it is not already. The target is kept
// as-is until Build(), where it is discarded unless it names a page other
// than the source.
func (b *Builder) AddLink(from, to string) error {
	if err := b.AddPage(from); err != nil {
		return fmt.Errorf("add link source: %w", err)
	}
	set, ok := b.links[from]
	if !ok {
		set = btree.NewG(btreeDegree, btree.Less[string]())
		b.links[from] = set
	}
	set.ReplaceOrInsert(to)
	return nil
}

// Build finalizes the Corpus. The Builder cannot be reused afterwards.
func (b *Builder) Build() *Corpus {
	b.built = true

	n := b.pages.Len()
	c := &Corpus{
		pages:    make([]string, 0, n),
		index:    make(map[string]int, n),
		outbound: make([][]int, n),
		inbound:  make([][]int, n),
	}

	b.pages.Ascend(func(page string) bool {
		c.index[page] = len(c.pages)
		c.pages = append(c.pages, page)
		return true
	})

	// Sources are visited in ascending order and targets are ascending within
	// each set, so inbound lists come out sorted too.
	for from, page := range c.pages {
		set, ok := b.links[page]
		if !ok {
			continue
		}
		set.Ascend(func(target string) bool {
			if target == page {
				return true
			}
			to, ok := c.index[target]
			if !ok {
				return true
			}
			c.outbound[from] = append(c.outbound[from], to)
			c.inbound[to] = append(c.inbound[to], from)
			c.edgeCount++
			return true
		})
	}

	return c
}

// FromMap builds a Corpus from page name to link targets.
//
// Every key becomes a page. Targets that are not keys, and self-links, are
// dropped.
func FromMap(links map[string][]string) (*Corpus, error) {
	b := NewBuilder()
	for page, targets := range links {
		if err := b.AddPage(page); err != nil {
			return nil, err
		}
		for _, target := range targets {
			if err := b.AddLink(page, target); err != nil {
				return nil, err
			}
		}
	}
	return b.Build(), nil
}
