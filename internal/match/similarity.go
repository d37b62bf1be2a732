// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package match implements the string-similarity metrics, name
// normalization and column discovery used to reconcile independently
// formatted driver spreadsheets.
package match

import (
	"sort"
	"strings"
)

// Ratio returns the similarity of two strings on a 0-100 scale, computed
// from edit distance with substitutions weighted at twice the cost of
// insertions and deletions (equivalently, 2*LCS/(len1+len2)). This is the
// classic fuzz ratio; a plain Levenshtein ratio would overscore short
// near-misses like "dob" vs "doh".
func Ratio(s1, s2 string) int {
	if s1 == s2 {
		return 100
	}
	r1, r2 := []rune(s1), []rune(s2)
	lenSum := len(r1) + len(r2)
	if lenSum == 0 {
		return 100
	}
	lcs := longestCommonSubsequence(r1, r2)
	return int(float64(2*lcs)/float64(lenSum)*100 + 0.5)
}

// PartialRatio returns the best Ratio between the shorter string and any
// equal-length substring of the longer one. It catches names embedded in
// longer strings ("john smith" inside "smith, john a").
func PartialRatio(s1, s2 string) int {
	shorter, longer := []rune(s1), []rune(s2)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		if len(longer) == 0 {
			return 100
		}
		return 0
	}
	best := 0
	for i := 0; i+len(shorter) <= len(longer); i++ {
		window := string(longer[i : i+len(shorter)])
		if r := Ratio(string(shorter), window); r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

// TokenSortRatio tokenizes both strings, sorts the tokens and compares the
// rejoined forms. Word order stops mattering: "smith john" vs "john smith"
// scores 100.
func TokenSortRatio(s1, s2 string) int {
	return Ratio(sortTokens(s1), sortTokens(s2))
}

// TokenSetRatio compares the sorted token intersection against each side's
// full sorted token list and returns the best pairwise score. Duplicate
// tokens and tokens present on only one side are discounted, which makes
// the metric tolerant of missing middle names.
func TokenSetRatio(s1, s2 string) int {
	tokens1 := tokenSet(s1)
	tokens2 := tokenSet(s2)

	var inter, diff1, diff2 []string
	for tok := range tokens1 {
		if tokens2[tok] {
			inter = append(inter, tok)
		} else {
			diff1 = append(diff1, tok)
		}
	}
	for tok := range tokens2 {
		if !tokens1[tok] {
			diff2 = append(diff2, tok)
		}
	}
	sort.Strings(inter)
	sort.Strings(diff1)
	sort.Strings(diff2)

	sectJoined := strings.Join(inter, " ")
	combined1 := strings.TrimSpace(sectJoined + " " + strings.Join(diff1, " "))
	combined2 := strings.TrimSpace(sectJoined + " " + strings.Join(diff2, " "))

	best := Ratio(sectJoined, combined1)
	if r := Ratio(sectJoined, combined2); r > best {
		best = r
	}
	if r := Ratio(combined1, combined2); r > best {
		best = r
	}
	return best
}

// longestCommonSubsequence uses the two-row DP form; inputs here are short
// (names and column headers), so quadratic time is fine.
func longestCommonSubsequence(r1, r2 []rune) int {
	if len(r1) == 0 || len(r2) == 0 {
		return 0
	}
	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for i := 1; i <= len(r1); i++ {
		for j := 1; j <= len(r2); j++ {
			if r1[i-1] == r2[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(r2)]
}

func sortTokens(s string) string {
	tokens := strings.Fields(strings.ToLower(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		set[tok] = true
	}
	return set
}
