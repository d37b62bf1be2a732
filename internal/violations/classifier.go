// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package violations categorizes motor-vehicle-record violation
// descriptions. Classification runs three stages: exact lookup against a
// loaded reference table, keyword and speeding-fraction rules, and a fuzzy
// reference match as the fallback.
package violations

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"insight-ops/internal/match"
	"insight-ops/internal/table"
)

// Category is the violation class assigned to a description.
type Category string

const (
	CategoryNonMoving       Category = "Non-Moving Violation"
	CategoryAccident        Category = "Accident Violation"
	CategoryMajor           Category = "Major Violation"
	CategoryProhibited      Category = "Prohibited Violation"
	CategoryMinor           Category = "Minor Violation"
	CategoryInvalidSpeeding Category = "Invalid Speeding Data"
	CategoryUnknown         Category = "Unknown Violation"
)

// Method names the stage that produced a classification.
type Method string

const (
	MethodExact   Method = "exact"
	MethodRule    Method = "rule"
	MethodFuzzy   Method = "fuzzy"
	MethodUnknown Method = "unknown"
)

// Classification is the result for one description. Confidence is 1 for
// exact and rule hits, the scaled similarity ratio for fuzzy hits, and 0
// for unknown.
type Classification struct {
	Category   Category `json:"category"`
	Method     Method   `json:"method"`
	Confidence float64  `json:"confidence"`
}

// Reference table column names.
const (
	DescriptionColumn = "Violation Description"
	CategoryColumn    = "Category"
)

// fuzzyCutoff is the minimum token-set ratio for a fuzzy reference match.
const fuzzyCutoff = 60

// nonMovingKeywords force Non-Moving regardless of any other signal.
var nonMovingKeywords = []string{
	"improper equipment", "defective equipment", "traffic fines", "penalties",
	"lic", "fine", "court", "suspension", "misc", "sticker", "tags", "miscellaneous",
	"background check", "notice", "seat belt", "insurance", "certificate",
	"weighing", "loading", "length", "carrying", "loads", "susp", "seatbelt",
	"failure to signal", "illegal stop", "obstructing traffic",
}

// categoryRules are checked in order; the first category with a keyword
// hit wins.
var categoryRules = []struct {
	category Category
	keywords []string
}{
	{CategoryAccident, []string{"collision", "crash", "hit and run"}},
	{CategoryMajor, []string{"reckless", "dui", "excessive speeding", "dangerous"}},
	{CategoryProhibited, []string{"prohibited", "unauthorized", "restricted"}},
	{CategoryMinor, []string{"speeding", "late payment", "parking violation"}},
}

// speedingFraction matches recorded/posted speed pairs like "75/55".
var speedingFraction = regexp.MustCompile(`(\d{2,})/(\d{2,})`)

// referenceEntry is one row of the loaded reference table.
type referenceEntry struct {
	description string
	category    Category
}

// Classifier holds the reference table. Zero-value Classifier works with
// rules only.
type Classifier struct {
	entries []referenceEntry
	exact   map[string]Category
}

// NewClassifier returns a classifier with no reference data loaded.
func NewClassifier() *Classifier {
	return &Classifier{exact: make(map[string]Category)}
}

// LoadReference ingests a Description/Category table. Rows with an empty
// description or category are skipped. Later duplicates do not displace
// earlier entries, matching first-row-wins lookup.
func (c *Classifier) LoadReference(t *table.Table) error {
	if !t.HasColumn(DescriptionColumn) || !t.HasColumn(CategoryColumn) {
		return fmt.Errorf("reference table needs %q and %q columns", DescriptionColumn, CategoryColumn)
	}
	if c.exact == nil {
		c.exact = make(map[string]Category)
	}
	for _, row := range t.Rows {
		desc := strings.TrimSpace(row.Get(DescriptionColumn))
		cat := strings.TrimSpace(row.Get(CategoryColumn))
		if desc == "" || cat == "" {
			continue
		}
		key := strings.ToLower(desc)
		if _, seen := c.exact[key]; seen {
			continue
		}
		c.exact[key] = Category(cat)
		c.entries = append(c.entries, referenceEntry{description: key, category: Category(cat)})
	}
	return nil
}

// Classify assigns a category to one violation description.
func (c *Classifier) Classify(description string) Classification {
	desc := strings.ToLower(strings.TrimSpace(description))
	if desc == "" {
		return Classification{Category: CategoryUnknown, Method: MethodUnknown}
	}

	if cat, ok := c.exact[desc]; ok {
		return Classification{Category: cat, Method: MethodExact, Confidence: 1}
	}

	if cat, ok := classifyByRule(desc); ok {
		return Classification{Category: cat, Method: MethodRule, Confidence: 1}
	}

	if cat, ratio, ok := c.fuzzyLookup(desc); ok {
		return Classification{Category: cat, Method: MethodFuzzy, Confidence: float64(ratio) / 100}
	}

	return Classification{Category: CategoryUnknown, Method: MethodUnknown}
}

// classifyByRule applies the keyword and speeding-fraction rules.
func classifyByRule(desc string) (Category, bool) {
	for _, kw := range nonMovingKeywords {
		if strings.Contains(desc, kw) {
			return CategoryNonMoving, true
		}
	}

	if m := speedingFraction.FindStringSubmatch(desc); m != nil {
		// Digits are guaranteed by the pattern.
		recorded, _ := strconv.Atoi(m[1])
		posted, _ := strconv.Atoi(m[2])
		switch {
		case recorded < posted:
			return CategoryInvalidSpeeding, true
		case recorded-posted >= 20:
			return CategoryMajor, true
		default:
			return CategoryMinor, true
		}
	}

	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(desc, kw) {
				return rule.category, true
			}
		}
	}
	return "", false
}

// fuzzyLookup finds the reference entry with the best token-set ratio.
// Entries tied on ratio are broken by smallest edit distance, then by
// load order.
func (c *Classifier) fuzzyLookup(desc string) (Category, int, bool) {
	bestRatio := -1
	bestDist := 0
	var bestCat Category
	for _, e := range c.entries {
		ratio := match.TokenSetRatio(desc, e.description)
		if ratio < bestRatio {
			continue
		}
		dist := levenshtein.ComputeDistance(desc, e.description)
		if ratio > bestRatio || dist < bestDist {
			bestRatio = ratio
			bestDist = dist
			bestCat = e.category
		}
	}
	if bestRatio < fuzzyCutoff {
		return "", 0, false
	}
	return bestCat, bestRatio, true
}
