// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ReadCSV reads a delimited table from r. The first skipRows records are
// discarded before the header row; export tools commonly prepend title or
// summary rows above the real header. Short records are padded with empty
// cells so every row carries the full schema.
func ReadCSV(r io.Reader, skipRows int) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	for i := 0; i < skipRows; i++ {
		if _, err := reader.Read(); err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("file has fewer than %d rows to skip", skipRows)
			}
			return nil, fmt.Errorf("error skipping header offset: %w", err)
		}
	}

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("no header row found")
		}
		return nil, fmt.Errorf("error reading header row: %w", err)
	}

	t := New(dedupeColumns(header))
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record: %w", err)
		}
		row := make(Row, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// ReadCSVFile opens and reads a delimited file.
func ReadCSVFile(path string, skipRows int) (*Table, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()
	t, err := ReadCSV(f, skipRows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// WriteCSV writes the table with its schema order preserved.
func (t *Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			record[i] = row[col]
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("error writing record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
