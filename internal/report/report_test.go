// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"insight-ops/internal/answers"
	"insight-ops/internal/qc"
	"insight-ops/internal/violations"
)

func reconcileSummary() *Summary {
	return &Summary{
		Mode:        "reconcile",
		File:        "drivers.csv",
		GeneratedAt: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
		Reconcile: &ReconcileSummary{
			DriverRows:       10,
			TargetRows:       8,
			Matched:          7,
			Added:            3,
			DriverNameColumn: "Driver Name",
			TargetNameColumn: "Name of Driver",
		},
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	if _, err := Export("xml", reconcileSummary(), Options{}); err == nil {
		t.Error("expected error for unregistered format")
	}
}

func TestRegistry_DefaultFormatters(t *testing.T) {
	for _, name := range []string{"text", "csv", "json"} {
		if _, ok := Get(name); !ok {
			t.Errorf("expected %q formatter to be registered", name)
		}
	}
}

func TestTextFormatter_Reconcile(t *testing.T) {
	out, err := Export("text", reconcileSummary(), Options{NoColor: true})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"reconcile report", "drivers.csv", "Matched", "7"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestTextFormatter_QCHidesValidRowsUnlessVerbose(t *testing.T) {
	summary := &Summary{
		Mode: "qc",
		QC: &qc.Report{
			Findings: []qc.Finding{
				{Score: 100, Tag: qc.TagValid},
				{Score: 70, Tag: qc.TagHighRisk, Issues: []string{"License expired"}},
			},
			Confidence:    85,
			ValidCount:    1,
			HighRiskCount: 1,
		},
	}

	out, err := Export("text", summary, Options{NoColor: true})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "Row 1 ") {
		t.Error("valid rows must be hidden without verbose")
	}
	if !strings.Contains(out, "Row 2") || !strings.Contains(out, "License expired") {
		t.Errorf("expected flagged row detail, got:\n%s", out)
	}

	verbose, err := Export("text", summary, Options{NoColor: true, Verbose: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(verbose, "Row 1") {
		t.Error("verbose output must include valid rows")
	}
}

func TestCSVFormatter_AnswersEscaping(t *testing.T) {
	summary := &Summary{
		Mode: "answers",
		Answers: []answers.AnswerRecord{
			{Question: "Safety program/manual", Answer: "Yes, documented", Page: 2, Method: answers.MethodSynonym, Confidence: 0.52},
		},
	}

	out, err := Export("csv", summary, Options{})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], `"Yes, documented"`) {
		t.Errorf("comma-bearing field must be quoted, got %q", lines[1])
	}
}

func TestJSONFormatter_RoundTrips(t *testing.T) {
	summary := &Summary{
		Mode: "classify",
		Classifications: []ClassificationRecord{
			{
				Description: "speeding 75/55",
				Classification: violations.Classification{
					Category:   violations.CategoryMajor,
					Method:     violations.MethodRule,
					Confidence: 1,
				},
			},
		},
	}

	out, err := Export("json", summary, Options{})
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["mode"] != "classify" {
		t.Errorf("expected mode=classify, got %v", decoded["mode"])
	}
}
