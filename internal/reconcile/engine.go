// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package reconcile joins a source-of-truth driver list against a target
// output sheet by fuzzy name matching and carries optional fields across.
package reconcile

import (
	"fmt"

	"insight-ops/internal/match"
	"insight-ops/internal/observability"
	"insight-ops/internal/table"
)

// Notes values written into the target sheet's notes column.
const (
	NoteMatchFound = "MATCH FOUND"
	NoteMissingMVR = "MISSING MVR"
)

// FieldAliases lists candidate column names per semantic field, in priority
// order, for both input tables. The zero value is unusable; use
// DefaultAliases or load from config.
type FieldAliases struct {
	DriverName   []string `yaml:"driver_name"`
	HireDate     []string `yaml:"hire_date"`
	DateOfBirth  []string `yaml:"date_of_birth"`
	LicenseState []string `yaml:"license_state"`

	TargetName    []string `yaml:"target_name"`
	TargetHire    []string `yaml:"target_hire"`
	TargetDOB     []string `yaml:"target_dob"`
	TargetLicense []string `yaml:"target_license"`
	TargetNotes   []string `yaml:"target_notes"`
}

// DefaultAliases returns the column candidates the matching tool ships with.
func DefaultAliases() FieldAliases {
	return FieldAliases{
		DriverName:   []string{"name", "driver name", "full name"},
		HireDate:     []string{"hire date", "date of hire", "doh"},
		DateOfBirth:  []string{"dob", "date of birth", "birth date"},
		LicenseState: []string{"license state", "lic state", "state"},

		TargetName:    []string{"Name of Driver", "Driver Name", "Name"},
		TargetHire:    []string{"DOH", "Hire Date", "Date of Hire"},
		TargetDOB:     []string{"DOB", "Date of Birth"},
		TargetLicense: []string{"Lic State", "License State", "State"},
		TargetNotes:   []string{"Notes", "Remarks", "Comments"},
	}
}

// Defaults used when an optional target column cannot be resolved; the
// column is created under this name.
const (
	defaultDOBColumn     = "DOB"
	defaultLicenseColumn = "Lic State"
	defaultNotesColumn   = "Notes"
	defaultHireColumn    = "DOH"
)

// Result summarizes one reconciliation run.
type Result struct {
	Output  *table.Table
	Matched int
	Added   int

	// Resolved column names, for reporting.
	DriverNameColumn string
	TargetNameColumn string
}

// Engine performs the greedy fuzzy join between two tables.
type Engine struct {
	aliases  FieldAliases
	observer *observability.StandardObserver
}

// NewEngine creates an engine with the given alias table.
func NewEngine(aliases FieldAliases) *Engine {
	return &Engine{aliases: aliases}
}

// SetObserver sets the observability component
func (e *Engine) SetObserver(observer *observability.StandardObserver) {
	e.observer = observer
}

// Run reconciles the driver list against the target sheet and returns an
// augmented copy of the target. For each target row, the first not-yet
// consumed driver row whose name fuzzy-matches is bound to it (greedy
// first-fit in both traversal orders); matched driver data is copied into
// the target row and the notes column is tagged. Driver rows never
// consumed are appended with blank cells in all other columns. The input
// tables are not modified.
func (e *Engine) Run(drivers, target *table.Table) (*Result, error) {
	var finishTiming func(bool, map[string]interface{})
	if e.observer != nil {
		finishTiming = e.observer.StartTiming("reconcile_engine", "run", "")
	}

	res, err := e.run(drivers, target)
	if finishTiming != nil {
		meta := map[string]interface{}{}
		if res != nil {
			meta["matched"] = res.Matched
			meta["added"] = res.Added
		}
		finishTiming(err == nil, meta)
	}
	return res, err
}

func (e *Engine) run(drivers, target *table.Table) (*Result, error) {
	if len(drivers.Columns) == 0 {
		return nil, fmt.Errorf("driver list has no columns")
	}
	if len(target.Columns) == 0 {
		return nil, fmt.Errorf("target sheet has no columns")
	}

	driverNameCol := match.ResolveColumn(drivers, e.aliases.DriverName, true)
	hireCol := match.ResolveColumn(drivers, e.aliases.HireDate, false)
	dobCol := match.ResolveColumn(drivers, e.aliases.DateOfBirth, false)
	licenseCol := match.ResolveColumn(drivers, e.aliases.LicenseState, false)

	out := target.Clone()

	targetNameCol := match.ResolveColumn(out, e.aliases.TargetName, true)
	targetDOBCol := resolveOrDefault(out, e.aliases.TargetDOB, defaultDOBColumn)
	targetLicenseCol := resolveOrDefault(out, e.aliases.TargetLicense, defaultLicenseColumn)
	targetNotesCol := resolveOrDefault(out, e.aliases.TargetNotes, defaultNotesColumn)
	targetHireCol := resolveOrDefault(out, e.aliases.TargetHire, defaultHireColumn)

	for _, col := range []string{targetDOBCol, targetLicenseCol, targetNotesCol, targetHireCol} {
		out.EnsureColumn(col)
	}

	consumed := make([]bool, len(drivers.Rows))
	matched := 0

	for _, row := range out.Rows {
		targetName := row.Get(targetNameCol)
		for i, driverRow := range drivers.Rows {
			if consumed[i] {
				continue
			}
			if !match.NamesMatch(targetName, driverRow.Get(driverNameCol)) {
				continue
			}
			consumed[i] = true
			row[targetNotesCol] = NoteMatchFound
			if hireCol != "" {
				row[targetHireCol] = driverRow.Get(hireCol)
			}
			if dobCol != "" {
				row[targetDOBCol] = driverRow.Get(dobCol)
			}
			if licenseCol != "" {
				row[targetLicenseCol] = driverRow.Get(licenseCol)
			}
			matched++
			break
		}
	}

	added := 0
	for i, driverRow := range drivers.Rows {
		if consumed[i] {
			continue
		}
		newRow := make(table.Row, len(out.Columns))
		for _, col := range out.Columns {
			newRow[col] = ""
		}
		newRow[targetNameCol] = driverRow.Get(driverNameCol)
		if hireCol != "" {
			newRow[targetHireCol] = driverRow.Get(hireCol)
		}
		if dobCol != "" {
			newRow[targetDOBCol] = driverRow.Get(dobCol)
		}
		if licenseCol != "" {
			newRow[targetLicenseCol] = driverRow.Get(licenseCol)
		}
		newRow[targetNotesCol] = NoteMissingMVR
		out.AppendRow(newRow)
		added++
	}

	return &Result{
		Output:           out,
		Matched:          matched,
		Added:            added,
		DriverNameColumn: driverNameCol,
		TargetNameColumn: targetNameCol,
	}, nil
}

// resolveOrDefault resolves an optional target column, creating a fixed
// default column name when nothing in the schema fits.
func resolveOrDefault(t *table.Table, candidates []string, fallback string) string {
	if col := match.ResolveColumn(t, candidates, false); col != "" {
		return col
	}
	return fallback
}
