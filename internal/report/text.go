// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"insight-ops/internal/answers"
	"insight-ops/internal/qc"
)

// TextFormatter implements text-based output formatting
type TextFormatter struct {
	colors map[string]*color.Color
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *TextFormatter) Name() string {
	return "text"
}

func (f *TextFormatter) Description() string {
	return "Human-readable text output with colors"
}

func (f *TextFormatter) FileExtension() string {
	return ".txt"
}

func (f *TextFormatter) Format(summary *Summary, options Options) (string, error) {
	// Disable colors if requested
	if options.NoColor {
		color.NoColor = true
	}

	var builder strings.Builder
	f.appendHeader(&builder, summary)

	switch {
	case summary.Reconcile != nil:
		f.appendReconcile(&builder, summary.Reconcile)
	case summary.QC != nil:
		f.appendQC(&builder, summary.QC, options)
	case summary.Answers != nil:
		f.appendAnswers(&builder, summary.Answers, options)
	case summary.Classifications != nil:
		f.appendClassifications(&builder, summary.Classifications)
	default:
		builder.WriteString("No results.\n")
	}

	return builder.String(), nil
}

func (f *TextFormatter) appendHeader(builder *strings.Builder, summary *Summary) {
	title := f.colors["white"].Sprintf("== %s report ==", summary.Mode)
	builder.WriteString(title + "\n")
	if summary.File != "" {
		builder.WriteString(fmt.Sprintf("File: %s\n", summary.File))
	}
	builder.WriteString("\n")
}

func (f *TextFormatter) appendReconcile(builder *strings.Builder, r *ReconcileSummary) {
	builder.WriteString(fmt.Sprintf("Driver rows:    %d\n", r.DriverRows))
	builder.WriteString(fmt.Sprintf("Target rows:    %d\n", r.TargetRows))
	builder.WriteString(fmt.Sprintf("Matched:        %s\n", f.colors["green"].Sprintf("%d", r.Matched)))
	builder.WriteString(fmt.Sprintf("Added missing:  %s\n", f.colors["yellow"].Sprintf("%d", r.Added)))
	builder.WriteString(fmt.Sprintf("Name columns:   %q -> %q\n", r.DriverNameColumn, r.TargetNameColumn))
}

func (f *TextFormatter) appendQC(builder *strings.Builder, report *qc.Report, options Options) {
	builder.WriteString(fmt.Sprintf("Rows scored:    %d\n", len(report.Findings)))
	builder.WriteString(fmt.Sprintf("Valid:          %s\n", f.colors["green"].Sprintf("%d", report.ValidCount)))
	builder.WriteString(fmt.Sprintf("Partial:        %s\n", f.colors["yellow"].Sprintf("%d", report.PartialCount)))
	builder.WriteString(fmt.Sprintf("High risk:      %s\n", f.colors["red"].Sprintf("%d", report.HighRiskCount)))
	builder.WriteString(fmt.Sprintf("File confidence: %.1f%%\n", report.Confidence))

	for i, finding := range report.Findings {
		if finding.Tag == qc.TagValid && !options.Verbose {
			continue
		}
		builder.WriteString(fmt.Sprintf("\nRow %d [%s] score %d\n",
			i+1, f.tagColor(finding.Tag).Sprint(finding.Tag), finding.Score))
		for _, issue := range finding.Issues {
			builder.WriteString(fmt.Sprintf("  - %s\n", issue))
		}
	}
}

func (f *TextFormatter) tagColor(tag qc.Tag) *color.Color {
	switch tag {
	case qc.TagValid:
		return f.colors["green"]
	case qc.TagPartial:
		return f.colors["yellow"]
	default:
		return f.colors["red"]
	}
}

func (f *TextFormatter) appendAnswers(builder *strings.Builder, records []answers.AnswerRecord, options Options) {
	found := 0
	for _, rec := range records {
		if rec.Answer != answers.NotFound {
			found++
		}
	}
	builder.WriteString(fmt.Sprintf("Questions answered: %d/%d\n\n", found, len(records)))

	for _, rec := range records {
		builder.WriteString(f.colors["cyan"].Sprintf("Q: %s", rec.Question) + "\n")
		if rec.Answer == answers.NotFound {
			builder.WriteString(fmt.Sprintf("A: %s\n", f.colors["red"].Sprint(rec.Answer)))
		} else {
			builder.WriteString(fmt.Sprintf("A: %s\n", rec.Answer))
			builder.WriteString(fmt.Sprintf("   page %d, %s, confidence %.2f\n", rec.Page, rec.Method, rec.Confidence))
		}
		if options.Verbose {
			builder.WriteString("\n")
		}
	}
}

func (f *TextFormatter) appendClassifications(builder *strings.Builder, records []ClassificationRecord) {
	for _, rec := range records {
		builder.WriteString(fmt.Sprintf("%s\n", rec.Description))
		builder.WriteString(fmt.Sprintf("  -> %s (%s, confidence %.2f)\n",
			f.colors["white"].Sprint(rec.Category), rec.Method, rec.Confidence))
	}
}

// Register the formatter during package initialization
func init() {
	Register(NewTextFormatter())
}
