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

package datasources

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/datagrid/core/csvimport"
)

// CsvLoader implements Loader for CSV files.
// Column types are detected from the data unless set in Source.Columns.
//
// Required fields:
//   - path: Path to the CSV file
//
// Optional options:
//   - has_header: "true" or "false" (default: "true")
//   - delimiter: Field delimiter (default: ",")
type CsvLoader struct{}

// NewCsvLoader creates a new CSV loader.
func NewCsvLoader() *CsvLoader {
	return &CsvLoader{}
}

// SourceType returns "csv".
func (l *CsvLoader) SourceType() string {
	return "csv"
}

// Load imports the CSV file.
func (l *CsvLoader) Load(src Source) (*Data, error) {
	if src.Path == "" {
		return nil, errors.New("path is required")
	}

	table, err := csvimport.ImportFromFile(src.Path, CSVOptions(src))
	if err != nil {
		return nil, fmt.Errorf("failed to load CSV %s: %w", src.Path, err)
	}
	return &Data{Columns: table.Columns, Rows: table.Rows}, nil
}

// CSVOptions returns the import options described by the options and
// column settings of src. Empty files are accepted.
func CSVOptions(src Source) csvimport.ImportOptions {
	options := csvimport.DefaultOptions()
	options.AllowEmpty = true
	if h := src.Options["has_header"]; h == "false" {
		options.HasHeader = false
	}
	if d := src.Options["delimiter"]; d != "" {
		r, _ := utf8.DecodeRuneInString(d)
		options.Delimiter = r
	}
	for header, col := range src.Columns {
		options.ColumnSources[header] = col
	}
	return options
}
