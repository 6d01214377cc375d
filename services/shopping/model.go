// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package shopping

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// DefaultTestSize is the fraction of rows held out by default.
const DefaultTestSize = 0.4

// DefaultNeighbors is the default k.
const DefaultNeighbors = 1

// predictBatch is how many rows one PredictAll worker classifies at a time.
const predictBatch = 256

// RandomSource supplies the randomness for Split.
//
// *math/rand/v2.Rand satisfies it, as it does pagerank.RandomSource.
type RandomSource interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// Split shuffles ds and divides it into training and test sets.
//
// The test set receives ceil(testSize × n) rows. rng drives the shuffle;
// a nil rng uses the unseeded package-level generator. ds itself is left
// untouched.
func Split(ds *Dataset, testSize float64, rng RandomSource) (train, test *Dataset, err error) {
	if math.IsNaN(testSize) || testSize <= 0 || testSize >= 1 {
		return nil, nil, fmt.Errorf("%w: got %v", ErrInvalidTestSize, testSize)
	}
	n := ds.Len()
	if n == 0 {
		return nil, nil, ErrEmptyDataset
	}

	nTest := int(math.Ceil(testSize * float64(n)))
	if nTest >= n {
		return nil, nil, fmt.Errorf("%w: %d rows, %d held out", ErrTooFewRows, n, nTest)
	}

	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := intN(i + 1)
		order[i], order[j] = order[j], order[i]
	}

	test = subset(ds, order[:nTest])
	train = subset(ds, order[nTest:])
	return train, test, nil
}

func subset(ds *Dataset, idx []int) *Dataset {
	out := &Dataset{
		Evidence: make([][]float64, len(idx)),
		Labels:   make([]int, len(idx)),
	}
	for i, j := range idx {
		out.Evidence[i] = ds.Evidence[j]
		out.Labels[i] = ds.Labels[j]
	}
	return out
}

// KNN is a k-nearest-neighbour classifier over Euclidean distance.
//
// Thread Safety: Read-only after Train; safe for concurrent Predict calls.
type KNN struct {
	k        int
	evidence [][]float64
	labels   []int
}

// Train fits a classifier with k neighbours on ds.
func Train(ds *Dataset, k int) (*KNN, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidNeighbors, k)
	}
	if ds.Len() == 0 {
		return nil, ErrEmptyDataset
	}
	if len(ds.Evidence) != len(ds.Labels) {
		return nil, fmt.Errorf("%w: %d evidence rows, %d labels", ErrLengthMismatch, len(ds.Evidence), len(ds.Labels))
	}
	width := len(ds.Evidence[0])
	for i, row := range ds.Evidence {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d, want %d", ErrFeatureCount, i, len(row), width)
		}
	}
	return &KNN{k: k, evidence: ds.Evidence, labels: ds.Labels}, nil
}

// K returns the number of neighbours consulted.
func (m *KNN) K() int {
	return m.k
}

type neighbor struct {
	index int
	dist  float64
}

// Predict labels one evidence vector.
//
// The k nearest training rows vote. A tied vote goes to the label of the
// nearest row among the tied labels; equal distances keep training order.
func (m *KNN) Predict(x []float64) (int, error) {
	if len(x) != len(m.evidence[0]) {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(x), len(m.evidence[0]))
	}

	nearest := make([]neighbor, len(m.evidence))
	for i, row := range m.evidence {
		nearest[i] = neighbor{index: i, dist: squaredDistance(x, row)}
	}
	slices.SortStableFunc(nearest, func(a, b neighbor) int {
		return cmp.Compare(a.dist, b.dist)
	})

	k := min(m.k, len(nearest))
	votes := make(map[int]int, 2)
	best := 0
	for _, nb := range nearest[:k] {
		votes[m.labels[nb.index]]++
		best = max(best, votes[m.labels[nb.index]])
	}
	for _, nb := range nearest[:k] {
		if votes[m.labels[nb.index]] == best {
			return m.labels[nb.index], nil
		}
	}
	return m.labels[nearest[0].index], nil
}

// PredictAll labels every row of evidence, spreading the work across
// GOMAXPROCS workers.
func (m *KNN) PredictAll(ctx context.Context, evidence [][]float64) ([]int, error) {
	_, span := tracer.Start(ctx, "shopping.PredictAll")
	defer span.End()

	out := make([]int, len(evidence))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for start := 0; start < len(evidence); start += predictBatch {
		end := min(start+predictBatch, len(evidence))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gCtx.Err(); err != nil {
					return err
				}
				label, err := m.Predict(evidence[i])
				if err != nil {
					return fmt.Errorf("row %d: %w", i, err)
				}
				out[i] = label
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return out, nil
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// Evaluation summarizes predictions against true labels.
type Evaluation struct {
	Correct   int
	Incorrect int

	// Sensitivity is the true positive rate.
	Sensitivity float64

	// Specificity is the true negative rate.
	Specificity float64
}

// Evaluate compares predictions with labels.
//
// Outputs:
//
//   - Evaluation: Counts and rates.
//   - error: ErrLengthMismatch, ErrNoPositives or ErrNoNegatives. Both rates
//     are undefined without at least one label of each class.
func Evaluate(labels, predictions []int) (Evaluation, error) {
	if len(labels) != len(predictions) {
		return Evaluation{}, fmt.Errorf("%w: %d labels, %d predictions", ErrLengthMismatch, len(labels), len(predictions))
	}

	var ev Evaluation
	var positives, negatives, truePos, trueNeg int
	for i, label := range labels {
		hit := label == predictions[i]
		if hit {
			ev.Correct++
		} else {
			ev.Incorrect++
		}
		if label == 1 {
			positives++
			if hit {
				truePos++
			}
		} else {
			negatives++
			if hit {
				trueNeg++
			}
		}
	}

	if positives == 0 {
		return ev, ErrNoPositives
	}
	if negatives == 0 {
		return ev, ErrNoNegatives
	}
	ev.Sensitivity = float64(truePos) / float64(positives)
	ev.Specificity = float64(trueNeg) / float64(negatives)
	return ev, nil
}
