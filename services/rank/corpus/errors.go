// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package corpus provides the page link graph consumed by the rank estimators.
//
// A Corpus maps each page to the set of pages it links to. Construction
// enforces two invariants:
//   - every link target is itself a page of the corpus (dangling links are
//     dropped)
//   - no page links to itself
//
// # Lifecycle
//
//  1. Create a Builder with NewBuilder()
//  2. Add pages and links with AddPage() and AddLink()
//  3. Call Build() to obtain an immutable Corpus
//
// Load() performs all three steps for a directory of HTML documents.
//
// # Thread Safety
//
// Builder is NOT safe for concurrent use. A built Corpus is read-only and can
// be shared by any number of goroutines.
package corpus

import "errors"

// Sentinel errors for corpus operations.
var (
	// ErrEmptyPageName is returned when a page or link source has no name.
	ErrEmptyPageName = errors.New("page name is empty")

	// ErrNotDirectory is returned by Load when the path is not a directory.
	ErrNotDirectory = errors.New("corpus path is not a directory")

	// ErrBuilderUsed is returned when a Builder is modified after Build().
	ErrBuilderUsed = errors.New("builder already built")
)
