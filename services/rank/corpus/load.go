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
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("linkrank.corpus")

// PageExtension is the file suffix of documents considered pages.
const PageExtension = ".html"

// anchorHref matches the href attribute of an anchor tag.
var anchorHref = regexp.MustCompile(`<a\s+(?:[^>]*?)href="([^"]*)"`)

// ExtractLinks returns every anchor href target in a document, in order of
// appearance. Duplicates are kept.
func ExtractLinks(contents string) []string {
	matches := anchorHref.FindAllStringSubmatch(contents, -1)
	links := make([]string, 0, len(matches))
	for _, m := range matches {
		links = append(links, m[1])
	}
	return links
}

// Load builds a Corpus from a directory of HTML documents.
//
// Description:
//
//	Every regular file ending in ".html" directly inside dir is a page named
//	by its file name. Its links are the anchor href targets found in the
//	file, excluding itself and any target that is not another page in dir.
//
// Inputs:
//
//   - ctx: Context for cancellation, checked between files.
//   - dir: Directory containing the documents.
//
// Outputs:
//
//   - *Corpus: The link graph. May be empty if dir holds no pages.
//   - error: Wrapped I/O error, ErrNotDirectory, or ctx.Err().
func Load(ctx context.Context, dir string) (*Corpus, error) {
	ctx, span := tracer.Start(ctx, "corpus.Load",
		trace.WithAttributes(attribute.String("dir", dir)),
	)
	defer span.End()

	info, err := os.Stat(dir)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "stat failed")
		return nil, fmt.Errorf("stat corpus: %w", err)
	}
	if !info.IsDir() {
		span.SetStatus(codes.Error, "not a directory")
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read dir failed")
		return nil, fmt.Errorf("read corpus dir: %w", err)
	}

	b := NewBuilder()
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, PageExtension) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "read page failed")
			return nil, fmt.Errorf("read page %s: %w", name, err)
		}

		if err := b.AddPage(name); err != nil {
			return nil, err
		}
		for _, link := range ExtractLinks(string(data)) {
			if err := b.AddLink(name, link); err != nil {
				return nil, err
			}
		}
	}

	c := b.Build()

	slog.Debug("Corpus loaded",
		slog.String("dir", dir),
		slog.Int("pages", c.Len()),
		slog.Int("links", c.EdgeCount()),
	)
	span.SetAttributes(
		attribute.Int("page_count", c.Len()),
		attribute.Int("edge_count", c.EdgeCount()),
	)

	return c, nil
}
