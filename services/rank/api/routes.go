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

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// RegisterRoutes registers the rank endpoints with the router group.
//
// Endpoints:
//
//	GET  /v1/rank/health - Health check
//	POST /v1/rank        - Rank a link map with both estimators
//
// Example:
//
//	handlers := api.NewHandlers(api.DefaultLimits(), pagerank.DefaultCompareOptions())
//	v1 := router.Group("/v1")
//	api.RegisterRoutes(v1, handlers)
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	rank := rg.Group("/rank")
	{
		rank.POST("", RateLimit(handlers.limits.RequestsPerSecond, handlers.limits.Burst), handlers.HandleRank)
		rank.GET("/health", handlers.HandleHealth)
	}
}

// NewRouter returns an engine with recovery, tracing and the rank routes.
//
// metrics, when non-nil, is mounted at GET /metrics.
func NewRouter(serviceName string, handlers *Handlers, metrics http.Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))

	RegisterRoutes(router.Group("/v1"), handlers)

	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}
	return router
}
