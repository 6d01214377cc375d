// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command linkrank ranks the pages of a small hyperlink corpus.
//
// Usage:
//
//	linkrank rank ./corpus0
//	linkrank rank ./corpus0 --samples 100000 --dangling redistribute
//	linkrank shopping ./shopping.csv
//	linkrank serve --config linkrank.yaml
//
// Example requests against serve:
//
//	# Health check
//	curl http://localhost:8080/v1/rank/health
//
//	# Rank a link map
//	curl -X POST http://localhost:8080/v1/rank \
//	  -H "Content-Type: application/json" \
//	  -d '{"pages": {"1.html": ["2.html"], "2.html": ["1.html"]}, "seed": 42}'
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}
