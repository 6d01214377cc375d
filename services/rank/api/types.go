// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package api

import "github.com/AleutianAI/linkrank/services/rank/pagerank"

// RankRequest is the body of POST /v1/rank.
type RankRequest struct {
	// Pages maps each page name to the pages it links to.
	Pages map[string][]string `json:"pages" binding:"required,min=1"`

	// Damping is the probability of following a link. Omitted means 0.85.
	Damping *float64 `json:"damping,omitempty" binding:"omitempty,gte=0,lte=1"`

	// Samples is the walk length. Omitted means 10000.
	Samples int `json:"samples,omitempty" binding:"omitempty,gte=1"`

	// Threshold is the iterative convergence threshold. Omitted means 0.001.
	Threshold float64 `json:"threshold,omitempty" binding:"omitempty,gt=0"`

	// MaxIterations caps the iterative estimator. Omitted means 1000.
	MaxIterations int `json:"max_iterations,omitempty" binding:"omitempty,gte=1"`

	// Seed seeds the sampler. Omitted or 0 picks a random seed, which is
	// echoed in the response.
	Seed uint64 `json:"seed,omitempty"`

	// Dangling is "drop" (default) or "redistribute".
	Dangling string `json:"dangling,omitempty" binding:"omitempty,oneof=drop redistribute"`

	// Top, when set, adds the Top highest ranked pages of each estimator
	// to the response in descending order.
	Top int `json:"top,omitempty" binding:"omitempty,gte=1"`
}

// RankResponse is the body of a successful POST /v1/rank.
type RankResponse struct {
	RequestID string `json:"request_id"`

	// PageCount is the number of pages in the corpus after link filtering.
	PageCount int `json:"page_count"`

	// EdgeCount is the number of distinct links kept.
	EdgeCount int `json:"edge_count"`

	// Links is the link map that was ranked, after self-links and links
	// to unknown pages were dropped.
	Links map[string][]string `json:"links"`

	Sampled  SampledRanks  `json:"sampled"`
	Iterated IteratedRanks `json:"iterated"`

	// MaxDeviation is the largest per-page difference between the estimators.
	MaxDeviation float64 `json:"max_deviation"`
}

// SampledRanks is the sampling estimator's part of RankResponse.
type SampledRanks struct {
	Ranks   map[string]float64 `json:"ranks"`
	Samples int                `json:"samples"`
	Seed    uint64             `json:"seed"`
	Start   string             `json:"start"`

	Top []pagerank.RankedPage `json:"top,omitempty"`
}

// IteratedRanks is the iterative estimator's part of RankResponse.
type IteratedRanks struct {
	Ranks         map[string]float64 `json:"ranks"`
	Iterations    int                `json:"iterations"`
	MaxDiff       float64            `json:"max_diff"`
	DanglingPages int                `json:"dangling_pages"`
	Dangling      string             `json:"dangling"`

	Top []pagerank.RankedPage `json:"top,omitempty"`
}

// HealthResponse is the body of GET /v1/rank/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is a stable machine-readable error code.
	Code string `json:"code,omitempty"`

	// Details provides additional error context (optional).
	Details string `json:"details,omitempty"`
}
