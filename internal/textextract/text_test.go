// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package textextract

import (
	"reflect"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	if got := NormalizeText("  hello\x00 world \n"); got != "hello world" {
		t.Errorf("expected control chars stripped and ends trimmed, got %q", got)
	}
	// NFKC folds fullwidth forms
	if got := NormalizeText("ＡＢＣ"); got != "ABC" {
		t.Errorf("expected NFKC folding, got %q", got)
	}
}

func TestSplitParagraphs(t *testing.T) {
	text := "First paragraph line one.\nline two.\n\nSecond paragraph.\n\n\n   \nThird     with gap split"
	got := SplitParagraphs(text)
	want := []string{
		"First paragraph line one. line two.",
		"Second paragraph.",
		"Third",
		"with gap split",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitParagraphs = %#v, want %#v", got, want)
	}
}

func TestSplitParagraphs_Empty(t *testing.T) {
	if got := SplitParagraphs("   \n\n  \n "); got != nil {
		t.Errorf("expected nil for whitespace-only input, got %#v", got)
	}
}

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("Yes, harnesses are required. All work is tied off! Is that clear? Final")
	want := []string{
		"Yes, harnesses are required",
		"All work is tied off",
		"Is that clear",
		"Final",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSentences = %#v, want %#v", got, want)
	}
}

func TestMergeOCR(t *testing.T) {
	doc := &Document{Pages: []Page{
		{Number: 1, Text: "has text", NeedsOCR: false},
		{Number: 2, Text: "", NeedsOCR: true},
		{Number: 3, Text: "", NeedsOCR: true},
	}}

	doc.MergeOCR([]string{"ignored", "  ocr result  ", ""})

	if doc.Pages[0].Text != "has text" {
		t.Error("text-layer page must not be overwritten by OCR")
	}
	if doc.Pages[1].Text != "ocr result" || doc.Pages[1].NeedsOCR {
		t.Errorf("expected OCR text merged into page 2, got %+v", doc.Pages[1])
	}
	if !doc.Pages[2].NeedsOCR {
		t.Error("empty OCR output must leave the page flagged")
	}
}

func TestIsScanned(t *testing.T) {
	scanned := &Document{Pages: []Page{{NeedsOCR: true}, {NeedsOCR: true}}}
	if !scanned.IsScanned() {
		t.Error("expected all-OCR document to report scanned")
	}
	mixed := &Document{Pages: []Page{{NeedsOCR: true}, {Text: "x"}}}
	if mixed.IsScanned() {
		t.Error("expected document with any text layer to report not scanned")
	}
	empty := &Document{}
	if empty.IsScanned() {
		t.Error("empty document is not scanned")
	}
}
