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
	"math/rand/v2"

	"github.com/AleutianAI/linkrank/services/shopping"
	"github.com/spf13/cobra"
)

// runShopping handles `linkrank shopping <data.csv>`.
func runShopping(cmd *cobra.Command, s *session, sf *shoppingFlags, path string) error {
	cfg := s.cfg
	f := cmd.Flags()
	if f.Changed("test-size") {
		cfg.Shopping.TestSize = sf.testSize
	}
	if f.Changed("neighbors") {
		cfg.Shopping.Neighbors = sf.neighbors
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	seed := sf.seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger := s.logger.With("data", path, "seed", seed)

	ctx := cmd.Context()
	ds, err := shopping.LoadFile(ctx, path)
	if err != nil {
		return err
	}

	train, test, err := shopping.Split(ds, cfg.Shopping.TestSize, rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		return err
	}

	model, err := shopping.Train(train, cfg.Shopping.Neighbors)
	if err != nil {
		return err
	}

	predictions, err := model.PredictAll(ctx, test.Evidence)
	if err != nil {
		return err
	}

	ev, err := shopping.Evaluate(test.Labels, predictions)
	if err != nil {
		return err
	}

	logger.Info("Classifier evaluated",
		"train_rows", train.Len(),
		"test_rows", test.Len(),
		"neighbors", model.K(),
		"correct", ev.Correct)

	return writeEvaluation(cmd.OutOrStdout(), ev)
}
