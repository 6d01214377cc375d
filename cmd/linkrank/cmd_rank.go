// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/AleutianAI/linkrank/pkg/config"
	"github.com/AleutianAI/linkrank/services/rank/corpus"
	"github.com/AleutianAI/linkrank/services/rank/pagerank"
	"github.com/spf13/cobra"
)

// runRank handles `linkrank rank <corpus-dir>`.
func runRank(cmd *cobra.Command, s *session, rf *rankFlags, dir string) error {
	rc := s.cfg.Rank
	rf.apply(cmd, &rc)

	cfg := s.cfg
	cfg.Rank = rc
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts, err := compareOptions(rc)
	if err != nil {
		return err
	}
	if opts.Sample.Seed == 0 {
		opts.Sample.Seed = rand.Uint64()
	}

	logger := s.logger.With("corpus", dir)
	logger.Info("Ranking corpus",
		"damping", rc.Damping,
		"samples", rc.Samples,
		"threshold", rc.Threshold,
		"dangling", rc.Dangling,
		"seed", opts.Sample.Seed)

	c, err := corpus.Load(cmd.Context(), dir)
	if err != nil {
		return err
	}

	cmp, err := pagerank.Compare(cmd.Context(), c, opts)
	if err != nil {
		logger.Error("Ranking failed", "error", err)
		return err
	}

	logger.Info("Ranking complete",
		"pages", c.Len(),
		"links", c.EdgeCount(),
		"iterations", cmp.Iterated.Iterations,
		"max_deviation", cmp.MaxDeviation)

	out := cmd.OutOrStdout()
	if err := writeRanks(out, fmt.Sprintf("PageRank Results from Sampling (n = %d)", cmp.Sampled.Samples), cmp.Sampled.Ranks); err != nil {
		return err
	}
	return writeRanks(out, "PageRank Results from Iteration", cmp.Iterated.Ranks)
}

// apply copies every flag the user set onto rc.
func (rf *rankFlags) apply(cmd *cobra.Command, rc *config.RankConfig) {
	f := cmd.Flags()
	if f.Changed("damping") {
		rc.Damping = rf.damping
	}
	if f.Changed("samples") {
		rc.Samples = rf.samples
	}
	if f.Changed("threshold") {
		rc.Threshold = rf.threshold
	}
	if f.Changed("max-iterations") {
		rc.MaxIterations = rf.maxIterations
	}
	if f.Changed("seed") {
		rc.Seed = rf.seed
	}
	if f.Changed("dangling") {
		rc.Dangling = rf.dangling
	}
}

// compareOptions converts the rank config into estimator options.
func compareOptions(rc config.RankConfig) (pagerank.CompareOptions, error) {
	policy, err := pagerank.ParseDanglingPolicy(rc.Dangling)
	if err != nil {
		return pagerank.CompareOptions{}, err
	}
	return pagerank.CompareOptions{
		Sample: pagerank.SampleOptions{
			DampingFactor: rc.Damping,
			Samples:       rc.Samples,
			Seed:          rc.Seed,
		},
		Iterate: pagerank.IterateOptions{
			DampingFactor: rc.Damping,
			Threshold:     rc.Threshold,
			MaxIterations: rc.MaxIterations,
			Dangling:      policy,
		},
	}, nil
}
