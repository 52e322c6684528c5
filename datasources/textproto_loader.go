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

	"github.com/google/datagrid/core/csvimport"
)

// TextprotoLoader implements Loader for rows stored as a
// google.protobuf.ListValue in protobuf text format.
// Columns are inferred from the field names.
type TextprotoLoader struct{}

// NewTextprotoLoader creates a new textproto loader.
func NewTextprotoLoader() *TextprotoLoader {
	return &TextprotoLoader{}
}

// SourceType returns "textproto".
func (l *TextprotoLoader) SourceType() string {
	return "textproto"
}

// Load reads the textproto file.
func (l *TextprotoLoader) Load(src Source) (*Data, error) {
	if src.Path == "" {
		return nil, errors.New("path is required")
	}
	rows, err := csvimport.ImportTextprotoFile(src.Path)
	if err != nil {
		return nil, err
	}
	return &Data{Columns: InferColumns(rows), Rows: rows}, nil
}
