// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package match

import (
	"strings"

	"insight-ops/internal/table"
)

// columnFuzzyThreshold is the minimum Ratio for a candidate name to claim
// an actual column when no exact match exists.
const columnFuzzyThreshold = 80

// ResolveColumn maps a semantic field to the best-matching column in an
// arbitrary schema. Candidates are tried in priority order: first an exact
// case-sensitive membership test, then a fuzzy pass where each candidate is
// scored against every actual column and the first candidate whose best
// score exceeds the threshold wins. When nothing matches, a required field
// falls back to the table's first column; an optional field resolves to "".
func ResolveColumn(t *table.Table, candidates []string, required bool) string {
	for _, cand := range candidates {
		if t.HasColumn(cand) {
			return cand
		}
	}

	for _, cand := range candidates {
		bestCol, bestScore := "", 0
		for _, col := range t.Columns {
			if score := Ratio(strings.ToLower(cand), strings.ToLower(col)); score > bestScore {
				bestScore = score
				bestCol = col
			}
		}
		if bestScore > columnFuzzyThreshold {
			return bestCol
		}
	}

	if required && len(t.Columns) > 0 {
		return t.Columns[0]
	}
	return ""
}
