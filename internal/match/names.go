// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package match

import (
	"regexp"
	"strings"
)

// Thresholds for the individual fuzzy metrics. Each metric catches a
// different corruption type (missing middle name, swapped order, typos);
// a match requires near-certainty under at least one of them.
const (
	tokenSetThreshold  = 95
	partialThreshold   = 96
	tokenSortThreshold = 98
)

var (
	titleTokens = regexp.MustCompile(`\b(mr|mrs|ms|dr|jr|sr|iii|ii|iv)\b`)
	nonAlpha    = regexp.MustCompile(`[^a-z\s]`)
	multiSpace  = regexp.MustCompile(`\s+`)
)

// NormalizeName expands a raw name string into the set of canonical surface
// forms used for comparison: the full token sequence, first/last in both
// orders with and without spaces, and middle-initial variants when three or
// more tokens are present. Titles and suffixes are stripped as whole words
// only, so "drew" survives while "dr" does not. The result is deduplicated;
// a missing or empty name yields an empty set.
func NormalizeName(name string) map[string]bool {
	forms := make(map[string]bool)
	if strings.TrimSpace(name) == "" {
		return forms
	}

	n := strings.ToLower(name)
	n = titleTokens.ReplaceAllString(n, "")
	n = nonAlpha.ReplaceAllString(n, "")
	n = strings.TrimSpace(multiSpace.ReplaceAllString(n, " "))
	parts := strings.Fields(n)
	if len(parts) == 0 {
		return forms
	}

	forms[strings.Join(parts, " ")] = true

	if len(parts) > 1 {
		first, last := parts[0], parts[len(parts)-1]
		forms[first+" "+last] = true
		forms[last+" "+first] = true
		forms[first+last] = true
		forms[last+first] = true
	}

	// Only middle initials are kept, not full middle names. This is a
	// deliberate approximation, not an exhaustive alias generator.
	if len(parts) > 2 {
		first, last := parts[0], parts[len(parts)-1]
		var initials strings.Builder
		for _, mid := range parts[1 : len(parts)-1] {
			initials.WriteByte(mid[0])
		}
		ini := initials.String()
		forms[first+" "+ini+" "+last] = true
		forms[first+" "+ini+last] = true
		forms[first+ini+" "+last] = true
		forms[first+ini+last] = true
	}

	return forms
}

// NamesMatch reports whether two raw name strings denote the same person.
// Both names are expanded to their normalized form sets; any pair of forms
// passing any single metric (exact equality, token-set >= 95,
// partial >= 96, token-sort >= 98) declares a match. Either name missing
// means no match.
func NamesMatch(name1, name2 string) bool {
	if strings.TrimSpace(name1) == "" || strings.TrimSpace(name2) == "" {
		return false
	}
	forms1 := NormalizeName(name1)
	forms2 := NormalizeName(name2)
	for f1 := range forms1 {
		for f2 := range forms2 {
			if f1 == f2 {
				return true
			}
			if TokenSetRatio(f1, f2) >= tokenSetThreshold {
				return true
			}
			if PartialRatio(f1, f2) >= partialThreshold {
				return true
			}
			if TokenSortRatio(f1, f2) >= tokenSortThreshold {
				return true
			}
		}
	}
	return false
}
