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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestExtractLinks(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		want     []string
	}{
		{
			name:     "simple anchor",
			contents: `<a href="2.html">two</a>`,
			want:     []string{"2.html"},
		},
		{
			name:     "attributes before href",
			contents: `<a class="nav" id="x" href="3.html">three</a>`,
			want:     []string{"3.html"},
		},
		{
			name:     "multiple anchors keep order and duplicates",
			contents: `<a href="b.html">b</a><p>text</p><a href="a.html">a</a><a href="b.html">b</a>`,
			want:     []string{"b.html", "a.html", "b.html"},
		},
		{
			name:     "single quotes are not matched",
			contents: `<a href='x.html'>x</a>`,
			want:     []string{},
		},
		{
			name:     "link tags are not anchors",
			contents: `<link href="style.css">`,
			want:     []string{},
		},
		{
			name:     "empty href",
			contents: `<a href="">nothing</a>`,
			want:     []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractLinks(tt.contents))
		})
	}
}

func TestLoad_Corpus(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "1.html", `<html><body><a href="2.html">2</a><a href="1.html">self</a></body></html>`)
	writePage(t, dir, "2.html", `<a href="1.html">1</a> <a  href="3.html">3</a> <a href="http://elsewhere/">x</a>`)
	writePage(t, dir, "3.html", `<a href="2.html">2</a><a href="4.html">gone</a>`)
	writePage(t, dir, "notes.txt", `<a href="1.html">ignored</a>`)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.html"), 0o755))

	c, err := Load(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"1.html", "2.html", "3.html"}, c.Pages())
	assert.Equal(t, []string{"2.html"}, c.Links("1.html"))
	assert.Equal(t, []string{"1.html", "3.html"}, c.Links("2.html"))
	assert.Equal(t, []string{"2.html"}, c.Links("3.html"))
}

func TestLoad_EmptyDirectory(t *testing.T) {
	c, err := Load(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "1.html", "")

	_, err := Load(context.Background(), filepath.Join(dir, "1.html"))
	assert.ErrorIs(t, err, ErrNotDirectory)
}

func TestLoad_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "1.html", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}
