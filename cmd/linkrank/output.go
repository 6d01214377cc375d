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
	"bufio"
	"fmt"
	"io"

	"github.com/AleutianAI/linkrank/services/rank/pagerank"
	"github.com/AleutianAI/linkrank/services/shopping"
)

// writeRanks prints a title followed by one "  page: rank" line per page in
// ascending page order.
func writeRanks(w io.Writer, title string, ranks pagerank.Distribution) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, title)
	for _, page := range ranks.Pages() {
		fmt.Fprintf(bw, "  %s: %.4f\n", page, ranks[page])
	}
	return bw.Flush()
}

// writeEvaluation prints classifier results as counts and percentages.
func writeEvaluation(w io.Writer, ev shopping.Evaluation) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Correct: %d\n", ev.Correct)
	fmt.Fprintf(bw, "Incorrect: %d\n", ev.Incorrect)
	fmt.Fprintf(bw, "True Positive Rate: %.2f%%\n", 100*ev.Sensitivity)
	fmt.Fprintf(bw, "True Negative Rate: %.2f%%\n", 100*ev.Specificity)
	return bw.Flush()
}
