// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package violations

import (
	"testing"

	"insight-ops/internal/table"
)

func referenceTable(t *testing.T, rows ...[2]string) *table.Table {
	t.Helper()
	ref := table.New([]string{DescriptionColumn, CategoryColumn})
	for _, r := range rows {
		ref.AppendRow(table.Row{DescriptionColumn: r[0], CategoryColumn: r[1]})
	}
	return ref
}

func TestClassify_ExactLookup(t *testing.T) {
	c := NewClassifier()
	ref := referenceTable(t, [2]string{"Following too closely", "Minor Violation"})
	if err := c.LoadReference(ref); err != nil {
		t.Fatal(err)
	}

	got := c.Classify("  following TOO closely ")
	if got.Method != MethodExact {
		t.Errorf("expected exact method, got %s", got.Method)
	}
	if got.Category != CategoryMinor {
		t.Errorf("expected minor, got %s", got.Category)
	}
	if got.Confidence != 1 {
		t.Errorf("expected confidence 1, got %g", got.Confidence)
	}
}

func TestClassify_NonMovingOverride(t *testing.T) {
	c := NewClassifier()
	cases := []string{
		"Seat belt not worn",
		"Expired tags on trailer",
		"Improper equipment cited",
	}
	for _, desc := range cases {
		got := c.Classify(desc)
		if got.Category != CategoryNonMoving || got.Method != MethodRule {
			t.Errorf("Classify(%q) = %+v, want non-moving rule hit", desc, got)
		}
	}
}

func TestClassify_NonMovingBeatsSpeedingFraction(t *testing.T) {
	c := NewClassifier()
	got := c.Classify("expired tags, clocked 75/55")
	if got.Category != CategoryNonMoving {
		t.Errorf("non-moving keywords must override the fraction rule, got %s", got.Category)
	}
}

func TestClassify_SpeedingFraction(t *testing.T) {
	c := NewClassifier()
	cases := []struct {
		desc string
		want Category
	}{
		{"speeding 75/55", CategoryMajor},
		{"speeding 64/55", CategoryMinor},
		{"speeding 45/55 recorded", CategoryInvalidSpeeding},
	}
	for _, tc := range cases {
		got := c.Classify(tc.desc)
		if got.Category != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.desc, got.Category, tc.want)
		}
		if got.Method != MethodRule {
			t.Errorf("Classify(%q) method = %s, want rule", tc.desc, got.Method)
		}
	}
}

func TestClassify_CategoryKeywords(t *testing.T) {
	c := NewClassifier()
	cases := []struct {
		desc string
		want Category
	}{
		{"rear-end collision on highway", CategoryAccident},
		{"dui arrest", CategoryMajor},
		{"driving in restricted lane", CategoryProhibited},
		{"speeding in a school zone", CategoryMinor},
	}
	for _, tc := range cases {
		got := c.Classify(tc.desc)
		if got.Category != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.desc, got.Category, tc.want)
		}
	}
}

func TestClassify_FuzzyFallback(t *testing.T) {
	c := NewClassifier()
	ref := referenceTable(t, [2]string{"Failure to yield right of way", "Minor Violation"})
	if err := c.LoadReference(ref); err != nil {
		t.Fatal(err)
	}

	got := c.Classify("failure to yield right way")
	if got.Method != MethodFuzzy {
		t.Fatalf("expected fuzzy method, got %+v", got)
	}
	if got.Category != CategoryMinor {
		t.Errorf("expected minor, got %s", got.Category)
	}
	if got.Confidence < 0.6 || got.Confidence > 1 {
		t.Errorf("expected ratio-derived confidence in (0.6,1], got %g", got.Confidence)
	}
}

func TestClassify_FuzzyBelowCutoffIsUnknown(t *testing.T) {
	c := NewClassifier()
	ref := referenceTable(t, [2]string{"Texting while driving", "Major Violation"})
	if err := c.LoadReference(ref); err != nil {
		t.Fatal(err)
	}

	got := c.Classify("qqq zzz www")
	if got.Category != CategoryUnknown || got.Method != MethodUnknown {
		t.Errorf("expected unknown below cutoff, got %+v", got)
	}
	if got.Confidence != 0 {
		t.Errorf("unknown must carry zero confidence, got %g", got.Confidence)
	}
}

func TestClassify_EmptyDescription(t *testing.T) {
	c := NewClassifier()
	got := c.Classify("   ")
	if got.Category != CategoryUnknown {
		t.Errorf("expected unknown for blank input, got %s", got.Category)
	}
}

func TestLoadReference_MissingColumns(t *testing.T) {
	c := NewClassifier()
	bad := table.New([]string{"Description"})
	if err := c.LoadReference(bad); err == nil {
		t.Error("expected error for table without reference columns")
	}
}

func TestLoadReference_FirstRowWins(t *testing.T) {
	c := NewClassifier()
	ref := referenceTable(t,
		[2]string{"Careless driving", "Major Violation"},
		[2]string{"careless driving", "Minor Violation"},
	)
	if err := c.LoadReference(ref); err != nil {
		t.Fatal(err)
	}
	if got := c.Classify("careless driving"); got.Category != CategoryMajor {
		t.Errorf("duplicate reference rows must keep the first, got %s", got.Category)
	}
}
