// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package shopping predicts whether an online shopping session ends in a
// purchase.
//
// Sessions are loaded from a CSV export with LoadData or LoadFile, split into
// training and test sets with Split, classified by a k-nearest-neighbour
// model and scored with Evaluate:
//
//	ds, err := shopping.LoadFile(ctx, "shopping.csv")
//	train, test, err := shopping.Split(ds, 0.4, rng)
//	model, err := shopping.Train(train, 1)
//	predictions, err := model.PredictAll(ctx, test.Evidence)
//	ev, err := shopping.Evaluate(test.Labels, predictions)
package shopping

import (
	"errors"
	"fmt"
)

// Sentinel errors for the shopping utility.
var (
	// ErrBadHeader is returned when the CSV header does not have the expected columns.
	ErrBadHeader = errors.New("unexpected csv header")

	// ErrEmptyDataset is returned when there are no rows to work with.
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrInvalidTestSize is returned when the test fraction is outside (0, 1).
	ErrInvalidTestSize = errors.New("test size must be in (0, 1)")

	// ErrTooFewRows is returned when a split would leave one side empty.
	ErrTooFewRows = errors.New("too few rows to split")

	// ErrInvalidNeighbors is returned when k is less than 1.
	ErrInvalidNeighbors = errors.New("neighbors must be >= 1")

	// ErrLengthMismatch is returned when paired slices differ in length.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrFeatureCount is returned when a feature vector has the wrong width.
	ErrFeatureCount = errors.New("wrong number of features")

	// ErrNoPositives is returned by Evaluate when no label is positive.
	ErrNoPositives = errors.New("no positive labels")

	// ErrNoNegatives is returned by Evaluate when no label is negative.
	ErrNoNegatives = errors.New("no negative labels")
)

// RowError reports a malformed CSV row.
type RowError struct {
	// Line is the 1-based line number in the input, header included.
	Line int

	// Column is the column name, or empty when the whole row is malformed.
	Column string

	// Err is the underlying cause.
	Err error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d, column %s: %v", e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
