// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package table

import (
	"fmt"
	"strings"
)

// Row maps a column name to its cell value.
type Row map[string]string

// Table is an ordered set of rows plus the ordered column schema they share.
// Column names are free-form strings taken from the source file; no naming
// convention is assumed.
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given schema.
func New(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// HasColumn reports whether the schema contains the exact column name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// EnsureColumn adds a column to the schema if it is not already present.
// Existing rows get an empty value for the new column.
func (t *Table) EnsureColumn(name string) {
	if t.HasColumn(name) {
		return
	}
	t.Columns = append(t.Columns, name)
	for _, row := range t.Rows {
		if _, ok := row[name]; !ok {
			row[name] = ""
		}
	}
}

// AppendRow adds a row, filling any schema column the row does not carry
// with an empty value. Cells for unknown columns are dropped.
func (t *Table) AppendRow(row Row) {
	clean := make(Row, len(t.Columns))
	for _, col := range t.Columns {
		clean[col] = row[col]
	}
	t.Rows = append(t.Rows, clean)
}

// Get returns the cell value for a column, or "" when absent.
func (r Row) Get(column string) string {
	if column == "" {
		return ""
	}
	return r[column]
}

// Clone returns a deep copy of the table. Reconciliation mutates the target
// table, so callers that need the original keep a clone.
func (t *Table) Clone() *Table {
	out := New(t.Columns)
	out.Rows = make([]Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		dup := make(Row, len(row))
		for k, v := range row {
			dup[k] = v
		}
		out.Rows = append(out.Rows, dup)
	}
	return out
}

// CleanCells trims surrounding whitespace from every cell and blanks cells
// whose whole content is a not-available marker. Source spreadsheets
// routinely carry "N/A" where a value is simply missing.
func (t *Table) CleanCells() {
	for _, row := range t.Rows {
		for col, val := range row {
			v := strings.TrimSpace(val)
			if strings.EqualFold(v, "n/a") || strings.EqualFold(v, "na") {
				v = ""
			}
			row[col] = v
		}
	}
}

// dedupeColumns renames duplicate header names with a numeric suffix so the
// row map keeps every cell addressable.
func dedupeColumns(columns []string) []string {
	seen := make(map[string]int, len(columns))
	out := make([]string, len(columns))
	for i, col := range columns {
		name := strings.TrimSpace(col)
		if name == "" {
			name = fmt.Sprintf("Column %d", i+1)
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n)
		} else {
			seen[name] = 1
		}
		out[i] = name
	}
	return out
}
