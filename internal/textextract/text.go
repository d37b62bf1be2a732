// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package textextract

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	paragraphSplit = regexp.MustCompile(`\n{2,}|[ \t]{4,}`)
	sentenceSplit  = regexp.MustCompile(`[.!?]\s+`)
)

// NormalizeText applies Unicode NFKC normalization, strips control
// characters except newlines and tabs, and trims outer whitespace.
// Interior spacing is kept as-is: OCR renders column gaps as long space
// runs and SplitParagraphs treats those as boundaries.
func NormalizeText(text string) string {
	normed := norm.NFKC.String(text)
	normed = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, normed)
	return strings.TrimSpace(normed)
}

// flatten collapses all whitespace, including newlines, to single spaces.
func flatten(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// SplitParagraphs divides page text on blank-line or large whitespace-gap
// boundaries. Fragments are flattened and trimmed; empty fragments are
// dropped.
func SplitParagraphs(text string) []string {
	var out []string
	for _, para := range paragraphSplit.Split(text, -1) {
		if p := flatten(para); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SplitSentences divides text at sentence terminators followed by
// whitespace. The terminator is consumed by the delimiter; fragments are
// trimmed and empties dropped.
func SplitSentences(text string) []string {
	var out []string
	for _, s := range sentenceSplit.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
