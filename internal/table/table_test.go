// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_SkipRowsAndPadding(t *testing.T) {
	input := strings.Join([]string{
		"Fleet Export 2025",
		"Generated,2025-06-01",
		"Name,DOB,Lic State",
		"John Smith,1980-01-02,TX",
		"Jane Doe,1985-05-06", // short record
	}, "\n")

	tbl, err := ReadCSV(strings.NewReader(input), 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "DOB", "Lic State"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "TX", tbl.Rows[0].Get("Lic State"))
	assert.Equal(t, "", tbl.Rows[1].Get("Lic State"), "short records must be padded")
}

func TestReadCSV_DuplicateAndBlankHeaders(t *testing.T) {
	input := "Name,,Name\na,b,c\n"

	tbl, err := ReadCSV(strings.NewReader(input), 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Column 2", "Name.1"}, tbl.Columns)
	assert.Equal(t, "a", tbl.Rows[0].Get("Name"))
	assert.Equal(t, "c", tbl.Rows[0].Get("Name.1"))
}

func TestReadCSV_TooFewRowsToSkip(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("only,one,row\n"), 5)
	assert.Error(t, err)
}

func TestCleanCells(t *testing.T) {
	tbl := New([]string{"A", "B", "C"})
	tbl.AppendRow(Row{"A": "  padded  ", "B": "N/A", "C": "na"})

	tbl.CleanCells()

	assert.Equal(t, "padded", tbl.Rows[0].Get("A"))
	assert.Equal(t, "", tbl.Rows[0].Get("B"))
	assert.Equal(t, "", tbl.Rows[0].Get("C"))
}

func TestEnsureColumn_BackfillsRows(t *testing.T) {
	tbl := New([]string{"A"})
	tbl.AppendRow(Row{"A": "x"})

	tbl.EnsureColumn("B")
	tbl.EnsureColumn("A") // no duplicate

	assert.Equal(t, []string{"A", "B"}, tbl.Columns)
	_, ok := tbl.Rows[0]["B"]
	assert.True(t, ok, "existing rows must carry the new column")
}

func TestAppendRow_DropsUnknownColumns(t *testing.T) {
	tbl := New([]string{"A"})
	tbl.AppendRow(Row{"A": "x", "Z": "dropped"})

	_, ok := tbl.Rows[0]["Z"]
	assert.False(t, ok)
}

func TestClone_IsDeep(t *testing.T) {
	tbl := New([]string{"A"})
	tbl.AppendRow(Row{"A": "original"})

	dup := tbl.Clone()
	dup.Rows[0]["A"] = "changed"
	dup.EnsureColumn("B")

	assert.Equal(t, "original", tbl.Rows[0].Get("A"))
	assert.Equal(t, []string{"A"}, tbl.Columns)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	tbl := New([]string{"Name", "Notes"})
	tbl.AppendRow(Row{"Name": "John Smith", "Notes": "MATCH FOUND, verified"})

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteCSV(&buf))

	back, err := ReadCSV(&buf, 0)
	require.NoError(t, err)
	assert.Equal(t, tbl.Columns, back.Columns)
	assert.Equal(t, "MATCH FOUND, verified", back.Rows[0].Get("Notes"))
}
