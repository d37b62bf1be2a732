// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package report renders run results in the supported output formats.
package report

import (
	"fmt"
	"strings"
	"time"

	"insight-ops/internal/answers"
	"insight-ops/internal/qc"
	"insight-ops/internal/violations"
)

// Options defines configuration options for formatters
type Options struct {
	Verbose bool // Whether to display detailed information
	NoColor bool // Whether to disable colored output
}

// ReconcileSummary is the reportable slice of a reconciliation run. The
// merged table itself is written separately as CSV.
type ReconcileSummary struct {
	DriverRows       int    `json:"driver_rows"`
	TargetRows       int    `json:"target_rows"`
	Matched          int    `json:"matched"`
	Added            int    `json:"added"`
	DriverNameColumn string `json:"driver_name_column"`
	TargetNameColumn string `json:"target_name_column"`
}

// ClassificationRecord pairs an input description with its result.
type ClassificationRecord struct {
	Description string `json:"description"`
	violations.Classification
}

// Summary is the envelope holding exactly one result kind per run.
type Summary struct {
	Mode            string                 `json:"mode"`
	File            string                 `json:"file,omitempty"`
	GeneratedAt     time.Time              `json:"generated_at"`
	Reconcile       *ReconcileSummary      `json:"reconcile,omitempty"`
	QC              *qc.Report             `json:"qc,omitempty"`
	Answers         []answers.AnswerRecord `json:"answers,omitempty"`
	Classifications []ClassificationRecord `json:"classifications,omitempty"`
}

// Formatter interface defines methods that all output formatters must implement
type Formatter interface {
	// Format renders the summary according to the formatter's specific output format
	Format(summary *Summary, options Options) (string, error)

	// Name returns the name of the formatter (e.g., "json", "text", "csv")
	Name() string

	// Description returns a brief description of what this formatter outputs
	Description() string

	// FileExtension returns the recommended file extension for this format
	FileExtension() string
}

// Registry holds all registered formatters
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names
func (r *Registry) List() []string {
	var names []string
	for name := range r.formatters {
		names = append(names, name)
	}
	return names
}

// DefaultRegistry is the global formatter registry
var DefaultRegistry = NewRegistry()

// Register is a convenience function to register a formatter with the default registry
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get is a convenience function to get a formatter from the default registry
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List is a convenience function to list all formatters in the default registry
func List() []string {
	return DefaultRegistry.List()
}

// Export renders a summary in the named format using the default registry
func Export(format string, summary *Summary, options Options) (string, error) {
	formatter, exists := Get(format)
	if !exists {
		availableFormats := List()
		return "", fmt.Errorf("unsupported format '%s'. Available formats: %s", format, strings.Join(availableFormats, ", "))
	}
	return formatter.Format(summary, options)
}
