// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package match

import "testing"

func TestRatio(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 100},
		{"abc", "abc", 100},
		{"abc", "", 0},
		{"dob", "doh", 67},
		{"smith john", "smith jon", 95},
	}
	for _, tt := range tests {
		if got := Ratio(tt.s1, tt.s2); got != tt.want {
			t.Errorf("Ratio(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.want)
		}
	}
}

func TestPartialRatio(t *testing.T) {
	if got := PartialRatio("john smith", "mr john smith sr"); got != 100 {
		t.Errorf("expected embedded exact name to score 100, got %d", got)
	}
	if got := PartialRatio("john smith", "smith, john a smith"); got < 75 {
		t.Errorf("expected embedded name to score high, got %d", got)
	}
	if got := PartialRatio("abc", "xyzabcxyz"); got != 100 {
		t.Errorf("expected exact substring to score 100, got %d", got)
	}
	if got := PartialRatio("", ""); got != 100 {
		t.Errorf("PartialRatio(\"\", \"\") = %d, want 100", got)
	}
	if got := PartialRatio("", "abc"); got != 0 {
		t.Errorf("PartialRatio(\"\", \"abc\") = %d, want 0", got)
	}
}

func TestTokenSortRatio(t *testing.T) {
	if got := TokenSortRatio("john smith", "smith john"); got != 100 {
		t.Errorf("expected order-insensitive 100, got %d", got)
	}
	if got := TokenSortRatio("John Smith", "SMITH JOHN"); got != 100 {
		t.Errorf("expected case-insensitive 100, got %d", got)
	}
}

func TestTokenSetRatio(t *testing.T) {
	// Duplicate and missing tokens are discounted
	if got := TokenSetRatio("john smith", "john john smith"); got != 100 {
		t.Errorf("expected duplicate-insensitive 100, got %d", got)
	}
	if got := TokenSetRatio("john michael smith", "john smith"); got != 100 {
		t.Errorf("expected subset tokens to score 100, got %d", got)
	}
	if got := TokenSetRatio("alpha beta", "gamma delta"); got > 50 {
		t.Errorf("expected disjoint token sets to score low, got %d", got)
	}
}
