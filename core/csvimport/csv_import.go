/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/datagrid/core/columns"
	"github.com/google/datagrid/core/tables"
)

var (
	// ErrEmpty is returned for input without any record.
	ErrEmpty = errors.New("CSV file is empty")
	// ErrNoRows is returned for a header without data rows.
	ErrNoRows = errors.New("CSV file has no data rows")
)

// ColumnSource defines source metadata for how a column is imported
type ColumnSource struct {
	// Name is the column name (defaults to header name if not specified)
	Name string `yaml:"name,omitempty"`
	// Label is the header text (defaults to the header name)
	Label string `yaml:"label,omitempty"`
	// Type specifies the data type for this column (default: auto-detect)
	Type columns.Type `yaml:"type,omitempty"`
	// Format is the display format of datetime (a Go time layout) and
	// duration ("verbose") columns
	Format string `yaml:"format,omitempty"`
}

// ImportOptions configures CSV import behavior
type ImportOptions struct {
	// HasHeader indicates whether the first row contains column headers
	HasHeader bool
	// Delimiter is the field delimiter (defaults to comma)
	Delimiter rune
	// ColumnSources provides configuration for specific columns by header name
	ColumnSources map[string]ColumnSource
	// SampleSize is the number of rows to sample for type detection (default: 100)
	SampleSize int
	// AllowEmpty accepts a header without data rows
	AllowEmpty bool
}

// DefaultOptions returns default import options
func DefaultOptions() ImportOptions {
	return ImportOptions{
		HasHeader:     true,
		Delimiter:     ',',
		ColumnSources: make(map[string]ColumnSource),
		SampleSize:    100,
	}
}

// Table is the imported data: the grid columns and the typed rows.
type Table struct {
	Columns []columns.Column
	Types   []columns.Type
	Rows    tables.Rows
}

// ImportFromFile imports a CSV file
func ImportFromFile(filepath string, options ImportOptions) (*Table, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ImportFromReader(file, options)
}

// ImportFromReader imports CSV data from an io.Reader
func ImportFromReader(reader io.Reader, options ImportOptions) (*Table, error) {
	csvReader := csv.NewReader(reader)
	if options.Delimiter != 0 {
		csvReader.Comma = options.Delimiter
	}
	// Short rows are padded with empty cells below
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	var headers []string
	var dataRows [][]string
	if options.HasHeader {
		headers = records[0]
		dataRows = records[1:]
	} else {
		// Generate column names if no header
		headers = make([]string, len(records[0]))
		for i := range headers {
			headers[i] = fmt.Sprintf("column_%d", i+1)
		}
		dataRows = records
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	if len(dataRows) == 0 && !options.AllowEmpty {
		return nil, ErrNoRows
	}

	sampleSize := options.SampleSize
	if sampleSize <= 0 {
		sampleSize = 100
	}
	types := detectColumnTypes(headers, dataRows, sampleSize, options.ColumnSources)

	table := &Table{
		Columns: make([]columns.Column, len(headers)),
		Types:   types,
		Rows:    make(tables.Rows, 0, len(dataRows)),
	}
	for i, header := range headers {
		source := options.ColumnSources[header]
		col := columns.Column{Name: header, Label: header}
		if source.Name != "" {
			col.Name = source.Name
		}
		if source.Label != "" {
			col.Label = source.Label
		}
		if types[i].Numeric() {
			col.RowAlign = "right"
		}
		table.Columns[i] = col
	}
	if err := columns.Validate(table.Columns); err != nil {
		return nil, fmt.Errorf("invalid CSV header: %w", err)
	}

	for r, record := range dataRows {
		row := make(tables.Row, len(headers))
		for i, col := range table.Columns {
			raw := ""
			if i < len(record) {
				raw = record[i]
			}
			v, err := columns.ParseValue(types[i], raw)
			if err != nil && !explicit(options.ColumnSources, headers[i]) {
				// Rows past the sample keep their text when they do not fit
				// the detected type
				v, err = strings.TrimSpace(raw), nil
			}
			if err != nil {
				// Line numbers are 1-based and count the header
				line := r + 1
				if options.HasHeader {
					line++
				}
				return nil, fmt.Errorf("line %d, column %q: %w", line, col.Name, err)
			}
			if format := options.ColumnSources[headers[i]].Format; format != "" {
				v = columns.WithFormat(v, format)
			}
			row[col.Name] = v
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func explicit(sources map[string]ColumnSource, header string) bool {
	return sources[header].Type != columns.TypeAuto
}

// detectColumnTypes samples data to determine the type of every column
func detectColumnTypes(headers []string, dataRows [][]string, sampleSize int, sources map[string]ColumnSource) []columns.Type {
	types := make([]columns.Type, len(headers))
	rowsToSample := min(sampleSize, len(dataRows))

	for i, header := range headers {
		// Explicit types win
		if explicit(sources, header) {
			types[i] = sources[header].Type
			continue
		}

		samples := make([]string, 0, rowsToSample)
		for _, row := range dataRows[:rowsToSample] {
			if i < len(row) {
				samples = append(samples, row[i])
			}
		}
		types[i] = columns.DetectType(samples)
	}
	return types
}
