// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package textextract

import (
	"testing"

	"github.com/ledongthuc/pdf"
)

func TestReconstructRowText_SortsByXAndInsertsGapSpaces(t *testing.T) {
	elements := []pdf.Text{
		{S: "World", X: 40, W: 30, FontSize: 10},
		{S: "Hello", X: 0, W: 30, FontSize: 10},
	}
	// gap = 40 - (0 + 30) = 10, threshold = 10 * 0.2 = 2
	if got := reconstructRowText(elements); got != "Hello World" {
		t.Errorf("expected gap space, got %q", got)
	}
}

func TestReconstructRowText_NoSpaceWithinWord(t *testing.T) {
	elements := []pdf.Text{
		{S: "He", X: 0, W: 10, FontSize: 10},
		{S: "llo", X: 10.5, W: 15, FontSize: 10},
	}
	if got := reconstructRowText(elements); got != "Hello" {
		t.Errorf("expected glyph runs joined without space, got %q", got)
	}
}

func TestReconstructRowText_ZeroFontSizeFallback(t *testing.T) {
	// FontSize 0 falls back to 12, threshold 2.4
	elements := []pdf.Text{
		{S: "a", X: 0, W: 5},
		{S: "b", X: 10, W: 5},
	}
	if got := reconstructRowText(elements); got != "a b" {
		t.Errorf("expected fallback threshold to insert space, got %q", got)
	}
}

func TestAverageY(t *testing.T) {
	elements := []pdf.Text{{Y: 10}, {Y: 20}, {Y: 30}}
	if got := averageY(elements); got != 20 {
		t.Errorf("expected 20, got %g", got)
	}
	if got := averageY(nil); got != 0 {
		t.Errorf("expected 0 for empty input, got %g", got)
	}
}
