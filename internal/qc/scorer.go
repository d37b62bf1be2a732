// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package qc validates MVR spreadsheets row by row and assigns each row a
// confidence score with a human-readable issue list.
package qc

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"insight-ops/internal/observability"
	"insight-ops/internal/table"
)

// Tag classifies a row by its final score.
type Tag string

const (
	TagValid    Tag = "valid"
	TagPartial  Tag = "partial"
	TagHighRisk Tag = "high-risk"
)

// Finding is the QC verdict for a single row. The score starts at 100 and
// is only ever decremented; it is not floored, so heavily broken rows can
// go negative.
type Finding struct {
	Score  int      `json:"score"`
	Issues []string `json:"issues"`
	Tag    Tag      `json:"tag"`
}

// Report aggregates per-row findings for one file.
type Report struct {
	Findings []Finding `json:"findings"`

	// Confidence is the average retained score across all rows as a
	// percentage, clamped to [0,100].
	Confidence float64 `json:"confidence"`

	ValidCount    int `json:"valid_count"`
	PartialCount  int `json:"partial_count"`
	HighRiskCount int `json:"high_risk_count"`
}

// RequiredFields are the columns every validated MVR sheet must carry.
var RequiredFields = []string{
	"First Name", "Last Name", "Date of Birth", "Age",
	"Years of Experience", "Hire Date", "Years of Tenure",
	"License State", "CDL Number", "CDL Type", "Expiration Date",
}

var allowedCDLTypes = map[string]bool{"A": true, "B": true, "C": true}

var cdlNumberPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

// Scorer runs the rule battery. now is injectable for tests.
type Scorer struct {
	now      func() time.Time
	observer *observability.StandardObserver
}

// NewScorer creates a scorer that evaluates against the current date.
func NewScorer() *Scorer {
	return &Scorer{now: time.Now}
}

// WithClock overrides the reference date, for deterministic evaluation.
func (s *Scorer) WithClock(now func() time.Time) *Scorer {
	s.now = now
	return s
}

// SetObserver sets the observability component
func (s *Scorer) SetObserver(observer *observability.StandardObserver) {
	s.observer = observer
}

// Score evaluates every row and returns the per-row findings plus the
// file-level confidence. Unparseable fields skip their dependent checks
// rather than failing the row; malformed source data is routine and one
// bad field must not invalidate a whole report.
func (s *Scorer) Score(t *table.Table) *Report {
	var finishTiming func(bool, map[string]interface{})
	if s.observer != nil {
		finishTiming = s.observer.StartTiming("qc_scorer", "score", "")
	}

	today := truncateToDay(s.now())
	report := &Report{}
	totalDeductions := 0

	for _, row := range t.Rows {
		finding := s.scoreRow(row, today)
		totalDeductions += 100 - finding.Score
		switch finding.Tag {
		case TagValid:
			report.ValidCount++
		case TagPartial:
			report.PartialCount++
		default:
			report.HighRiskCount++
		}
		report.Findings = append(report.Findings, finding)
	}

	if n := len(t.Rows); n > 0 {
		confidence := (1 - float64(totalDeductions)/float64(100*n)) * 100
		if confidence < 0 {
			confidence = 0
		}
		if confidence > 100 {
			confidence = 100
		}
		report.Confidence = confidence
	}

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{
			"rows":       len(t.Rows),
			"high_risk":  report.HighRiskCount,
			"confidence": report.Confidence,
		})
	}
	return report
}

func (s *Scorer) scoreRow(row table.Row, today time.Time) Finding {
	score := 100
	var issues []string
	deduct := func(points int, reason string) {
		score -= points
		issues = append(issues, reason)
	}

	for _, field := range RequiredFields {
		if strings.TrimSpace(row.Get(field)) == "" {
			deduct(10, field+" missing")
		}
	}

	dob, hasDOB := parseDate(row.Get("Date of Birth"))
	if hasDOB && !dob.Before(today) {
		deduct(15, "DOB is in the future")
	}

	age, hasAge := parseInt(row.Get("Age"))
	if hasAge && hasDOB {
		expectedAge := int(today.Sub(dob).Hours() / 24 / 365)
		if abs(expectedAge-age) > 1 {
			deduct(15, fmt.Sprintf("Age mismatch (expected ~%d, got %d)", expectedAge, age))
		}
	}

	if exp, ok := parseFloat(row.Get("Years of Experience")); ok && hasAge {
		if exp > float64(age-18) {
			deduct(10, fmt.Sprintf("Experience too high for age %d", age))
		}
	}

	hire, hasHire := parseDate(row.Get("Hire Date"))
	if hasHire && hasDOB {
		if hire.Before(dob.AddDate(18, 0, 0)) {
			deduct(20, "Hire before legal age (18)")
		}
	}

	if tenure, ok := parseFloat(row.Get("Years of Tenure")); ok && hasHire {
		expectedTenure := today.Sub(hire).Hours() / 24 / 365.25
		if absFloat(expectedTenure-tenure) > 1 {
			deduct(5, fmt.Sprintf("Tenure mismatch (expected ~%.2f, got %g)", expectedTenure, tenure))
		}
	}

	if expDate, ok := parseDate(row.Get("Expiration Date")); ok {
		if expDate.Before(today) {
			deduct(20, fmt.Sprintf("License expired on %s", expDate.Format("2006-01-02")))
		}
	}

	cdlType := strings.ToUpper(strings.TrimSpace(row.Get("CDL Type")))
	if cdlType != "" && !allowedCDLTypes[cdlType] {
		deduct(5, fmt.Sprintf("Unexpected CDL Type '%s'", cdlType))
	}

	cdlNum := strings.TrimSpace(row.Get("CDL Number"))
	if cdlNum != "" && !cdlNumberPattern.MatchString(cdlNum) {
		deduct(5, "CDL Number not alphanumeric")
	}

	var tag Tag
	switch {
	case score >= 90:
		tag = TagValid
	case score >= 75:
		tag = TagPartial
	default:
		tag = TagHighRisk
	}

	return Finding{Score: score, Issues: issues, Tag: tag}
}

// VerifyReceivedCounts cross-checks the sheet's "MVR Received" flags
// against counts declared by the client. The structural checks are fatal:
// the file must not be scored until TRUE+FALSE covers exactly the declared
// driver population and the TRUE count matches expectation.
func VerifyReceivedCounts(t *table.Table, declaredTotal, expectedTrue int) error {
	const column = "MVR Received"
	if !t.HasColumn(column) {
		return fmt.Errorf("'%s' column is missing", column)
	}

	var trueCount, falseCount int
	for _, row := range t.Rows {
		switch strings.ToUpper(strings.TrimSpace(row.Get(column))) {
		case "TRUE":
			trueCount++
		case "FALSE":
			falseCount++
		}
	}

	if trueCount+falseCount != declaredTotal {
		return fmt.Errorf("TRUE (%d) + FALSE (%d) must equal declared driver count (%d)",
			trueCount, falseCount, declaredTotal)
	}
	if trueCount != expectedTrue {
		return fmt.Errorf("TRUE count is %d, expected %d", trueCount, expectedTrue)
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
