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
	"context"
	"io"

	"github.com/spf13/cobra"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	logJSON    bool
	logDir     string
}

// rankFlags override the rank section of the config.
type rankFlags struct {
	damping       float64
	samples       int
	threshold     float64
	maxIterations int
	seed          uint64
	dangling      string
}

// shoppingFlags override the shopping section of the config.
type shoppingFlags struct {
	testSize  float64
	neighbors int
	seed      uint64
}

// execute builds the command tree, runs it and releases everything the
// run acquired.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	s := &session{}
	defer s.close()

	root := newRootCmd(s)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func newRootCmd(s *session) *cobra.Command {
	gf := &globalFlags{}

	root := &cobra.Command{
		Use:   "linkrank",
		Short: "Rank the pages of a hyperlink corpus",
		Long: `linkrank estimates PageRank for a directory of HTML pages two ways:
by sampling a random surfer and by iterating the PageRank recurrence
until it converges.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Arguments are valid by now; later failures are not usage errors.
			cmd.SilenceUsage = true
			return s.open(cmd, gf)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&gf.configPath, "config", "", "path to a YAML config file")
	pf.StringVar(&gf.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&gf.logJSON, "log-json", false, "force JSON log output")
	pf.StringVar(&gf.logDir, "log-dir", "", "also write JSON logs to this directory")

	root.AddCommand(newRankCmd(s), newShoppingCmd(s), newServeCmd(s), newConfigCmd(s))
	return root
}

func newRankCmd(s *session) *cobra.Command {
	rf := &rankFlags{}

	cmd := &cobra.Command{
		Use:   "rank <corpus-dir>",
		Short: "Rank a directory of HTML pages by sampling and by iteration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRank(cmd, s, rf, args[0])
		},
	}

	f := cmd.Flags()
	f.Float64Var(&rf.damping, "damping", 0.85, "probability of following a link")
	f.IntVar(&rf.samples, "samples", 10000, "number of random surfer steps")
	f.Float64Var(&rf.threshold, "threshold", 0.001, "iteration convergence threshold")
	f.IntVar(&rf.maxIterations, "max-iterations", 1000, "iteration cap")
	f.Uint64Var(&rf.seed, "seed", 0, "sampling seed (0 picks one at random)")
	f.StringVar(&rf.dangling, "dangling", "drop", "dangling page policy: drop or redistribute")
	return cmd
}

func newShoppingCmd(s *session) *cobra.Command {
	sf := &shoppingFlags{}

	cmd := &cobra.Command{
		Use:   "shopping <data.csv>",
		Short: "Predict purchases with a nearest-neighbour classifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShopping(cmd, s, sf, args[0])
		},
	}

	f := cmd.Flags()
	f.Float64Var(&sf.testSize, "test-size", 0.4, "fraction of rows held out for evaluation")
	f.IntVar(&sf.neighbors, "neighbors", 1, "k for the nearest-neighbour classifier")
	f.Uint64Var(&sf.seed, "seed", 0, "split seed (0 picks one at random)")
	return cmd
}

func newServeCmd(s *session) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rank API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, s, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func newConfigCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage linkrank config files",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Write the effective config as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd, s, args[0], force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}
