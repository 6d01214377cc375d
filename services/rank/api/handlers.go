// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package api exposes the rank estimators over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"

	"github.com/AleutianAI/linkrank/services/rank/corpus"
	"github.com/AleutianAI/linkrank/services/rank/pagerank"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ServiceVersion is the rank API version.
const ServiceVersion = "1.0.0"

// Sentinel errors for request limits.
var (
	// ErrTooManyPages is returned when a request corpus exceeds Limits.MaxPages.
	ErrTooManyPages = errors.New("too many pages")

	// ErrTooManySamples is returned when a request exceeds Limits.MaxSamples.
	ErrTooManySamples = errors.New("too many samples")

	// ErrTooManyIterations is returned when a request exceeds Limits.MaxIterations.
	ErrTooManyIterations = errors.New("too many iterations")
)

// Limits bounds the work the API accepts.
type Limits struct {
	MaxPages      int
	MaxSamples    int
	MaxIterations int

	// RequestsPerSecond throttles POST /v1/rank. Zero disables throttling.
	RequestsPerSecond float64
	Burst             int
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{MaxPages: 10000, MaxSamples: 1000000, MaxIterations: 10000}
}

// Handlers contains the HTTP handlers for the rank API.
type Handlers struct {
	limits   Limits
	defaults pagerank.CompareOptions
}

// NewHandlers creates handlers that apply limits and fall back to defaults
// for every option a request omits.
func NewHandlers(limits Limits, defaults pagerank.CompareOptions) *Handlers {
	return &Handlers{limits: limits, defaults: defaults}
}

// HandleHealth handles GET /v1/rank/health.
//
// Response:
//
//	200 OK: HealthResponse
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: ServiceVersion,
	})
}

// HandleRank handles POST /v1/rank.
//
// Description:
//
//	Builds a corpus from the request's link map and runs both estimators
//	over it. Link targets that are not pages, and self-links, are dropped.
//
// Request Body:
//
//	RankRequest
//
// Response:
//
//	200 OK: RankResponse
//	400 Bad Request: Malformed body or invalid option
//	413 Request Entity Too Large: Page, sample or iteration limit exceeded
//	429 Too Many Requests: Rate limit exceeded
//	422 Unprocessable Entity: Iterative estimator did not converge
//	500 Internal Server Error: Processing error
func (h *Handlers) HandleRank(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleRank")

	var req RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request body",
			Code:    "INVALID_REQUEST",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.rank(c.Request.Context(), &req)
	if err != nil {
		status, code := classifyError(err)
		switch {
		case code == "CANCELLED":
			logger.Warn("Rank cancelled", "error", err)
		case status >= http.StatusInternalServerError:
			logger.Error("Rank failed", "error", err)
		default:
			logger.Warn("Rank rejected", "error", err, "code", code)
		}
		c.JSON(status, ErrorResponse{
			Error: err.Error(),
			Code:  code,
		})
		return
	}
	resp.RequestID = requestID

	logger.Info("Ranked corpus",
		"pages", resp.PageCount,
		"iterations", resp.Iterated.Iterations,
		"max_deviation", resp.MaxDeviation)

	c.JSON(http.StatusOK, resp)
}

func (h *Handlers) rank(ctx context.Context, req *RankRequest) (*RankResponse, error) {
	if len(req.Pages) > h.limits.MaxPages {
		return nil, fmt.Errorf("%w: %d pages, limit %d", ErrTooManyPages, len(req.Pages), h.limits.MaxPages)
	}

	opts, err := h.options(req)
	if err != nil {
		return nil, err
	}
	if opts.Sample.Samples > h.limits.MaxSamples {
		return nil, fmt.Errorf("%w: %d samples, limit %d", ErrTooManySamples, opts.Sample.Samples, h.limits.MaxSamples)
	}
	if opts.Iterate.MaxIterations > h.limits.MaxIterations {
		return nil, fmt.Errorf("%w: %d iterations, limit %d", ErrTooManyIterations, opts.Iterate.MaxIterations, h.limits.MaxIterations)
	}

	c, err := corpus.FromMap(req.Pages)
	if err != nil {
		return nil, fmt.Errorf("build corpus: %w", err)
	}

	cmp, err := pagerank.Compare(ctx, c, opts)
	if err != nil {
		return nil, err
	}

	resp := &RankResponse{
		PageCount: c.Len(),
		EdgeCount: c.EdgeCount(),
		Links:     c.Map(),
		Sampled: SampledRanks{
			Ranks:   cmp.Sampled.Ranks,
			Samples: cmp.Sampled.Samples,
			Seed:    opts.Sample.Seed,
			Start:   cmp.Sampled.Start,
		},
		Iterated: IteratedRanks{
			Ranks:         cmp.Iterated.Ranks,
			Iterations:    cmp.Iterated.Iterations,
			MaxDiff:       cmp.Iterated.MaxDiff,
			DanglingPages: cmp.Iterated.DanglingPages,
			Dangling:      cmp.Iterated.Policy.String(),
		},
		MaxDeviation: cmp.MaxDeviation,
	}
	if req.Top > 0 {
		resp.Sampled.Top = cmp.Sampled.Ranks.Top(req.Top)
		resp.Iterated.Top = cmp.Iterated.Ranks.Top(req.Top)
	}
	return resp, nil
}

// options overlays the request on the handler defaults.
func (h *Handlers) options(req *RankRequest) (pagerank.CompareOptions, error) {
	opts := h.defaults

	if req.Damping != nil {
		opts.Sample.DampingFactor = *req.Damping
		opts.Iterate.DampingFactor = *req.Damping
	}
	if req.Samples > 0 {
		opts.Sample.Samples = req.Samples
	}
	if req.Threshold > 0 {
		opts.Iterate.Threshold = req.Threshold
	}
	if req.MaxIterations > 0 {
		opts.Iterate.MaxIterations = req.MaxIterations
	}
	if req.Dangling != "" {
		policy, err := pagerank.ParseDanglingPolicy(req.Dangling)
		if err != nil {
			return opts, err
		}
		opts.Iterate.Dangling = policy
	}

	opts.Sample.Source = nil
	opts.Sample.Seed = req.Seed
	if opts.Sample.Seed == 0 {
		opts.Sample.Seed = rand.Uint64()
	}
	return opts, nil
}

// classifyError maps an estimator or limit error to a status and error code.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrTooManyPages):
		return http.StatusRequestEntityTooLarge, "TOO_MANY_PAGES"
	case errors.Is(err, ErrTooManySamples):
		return http.StatusRequestEntityTooLarge, "TOO_MANY_SAMPLES"
	case errors.Is(err, ErrTooManyIterations):
		return http.StatusRequestEntityTooLarge, "TOO_MANY_ITERATIONS"
	case errors.Is(err, pagerank.ErrNotConverged):
		return http.StatusUnprocessableEntity, "NOT_CONVERGED"
	case errors.Is(err, pagerank.ErrEmptyCorpus):
		return http.StatusBadRequest, "EMPTY_CORPUS"
	case errors.Is(err, corpus.ErrEmptyPageName):
		return http.StatusBadRequest, "INVALID_PAGE"
	case errors.Is(err, pagerank.ErrInvalidDamping),
		errors.Is(err, pagerank.ErrInvalidSamples),
		errors.Is(err, pagerank.ErrInvalidThreshold),
		errors.Is(err, pagerank.ErrInvalidDanglingPolicy):
		return http.StatusBadRequest, "INVALID_OPTION"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "CANCELLED"
	default:
		return http.StatusInternalServerError, "RANK_FAILED"
	}
}

// getOrCreateRequestID echoes X-Request-ID or assigns a new one.
func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}
