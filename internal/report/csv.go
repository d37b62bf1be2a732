// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"strings"
)

// CSVFormatter implements CSV output formatting
type CSVFormatter struct{}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Name() string {
	return "csv"
}

func (f *CSVFormatter) Description() string {
	return "Comma-separated values for spreadsheet import"
}

func (f *CSVFormatter) FileExtension() string {
	return ".csv"
}

func (f *CSVFormatter) Format(summary *Summary, options Options) (string, error) {
	switch {
	case summary.Reconcile != nil:
		return f.formatReconcile(summary), nil
	case summary.QC != nil:
		return f.formatQC(summary), nil
	case summary.Answers != nil:
		return f.formatAnswers(summary), nil
	case summary.Classifications != nil:
		return f.formatClassifications(summary), nil
	}
	return "", nil
}

func (f *CSVFormatter) formatReconcile(summary *Summary) string {
	r := summary.Reconcile
	rows := []string{
		"Driver Rows,Target Rows,Matched,Added,Driver Name Column,Target Name Column",
		fmt.Sprintf("%d,%d,%d,%d,%s,%s",
			r.DriverRows, r.TargetRows, r.Matched, r.Added,
			f.escapeCSVField(r.DriverNameColumn), f.escapeCSVField(r.TargetNameColumn)),
	}
	return strings.Join(rows, "\n")
}

func (f *CSVFormatter) formatQC(summary *Summary) string {
	rows := []string{"Row,Score,Tag,Issues"}
	for i, finding := range summary.QC.Findings {
		rows = append(rows, fmt.Sprintf("%d,%d,%s,%s",
			i+1, finding.Score, finding.Tag,
			f.escapeCSVField(strings.Join(finding.Issues, "; "))))
	}
	return strings.Join(rows, "\n")
}

func (f *CSVFormatter) formatAnswers(summary *Summary) string {
	rows := []string{"Question,Answer,Page,Method,Confidence"}
	for _, rec := range summary.Answers {
		rows = append(rows, fmt.Sprintf("%s,%s,%d,%s,%.2f",
			f.escapeCSVField(rec.Question), f.escapeCSVField(rec.Answer),
			rec.Page, rec.Method, rec.Confidence))
	}
	return strings.Join(rows, "\n")
}

func (f *CSVFormatter) formatClassifications(summary *Summary) string {
	rows := []string{"Description,Category,Method,Confidence"}
	for _, rec := range summary.Classifications {
		rows = append(rows, fmt.Sprintf("%s,%s,%s,%.2f",
			f.escapeCSVField(rec.Description), f.escapeCSVField(string(rec.Category)),
			rec.Method, rec.Confidence))
	}
	return strings.Join(rows, "\n")
}

// escapeCSVField escapes a field for CSV output
func (f *CSVFormatter) escapeCSVField(field string) string {
	if strings.ContainsAny(field, ",\"\n") {
		return "\"" + strings.ReplaceAll(field, "\"", "\"\"") + "\""
	}
	return field
}

// Register the formatter during package initialization
func init() {
	Register(NewCSVFormatter())
}
