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

// Package datasources loads grid definitions and the rows they display
// from various sources (inline YAML, CSV, textproto, protobuf messages).
package datasources

import (
	"maps"
	"slices"

	"github.com/google/datagrid/core/columns"
	"github.com/google/datagrid/core/csvimport"
	"github.com/google/datagrid/core/tables"
)

// Source says where the rows of a grid come from.
type Source struct {
	// Type selects the loader (e.g., "csv", "textproto", "inline")
	Type string `yaml:"type"`
	// Path is the data file, relative to the definition file
	Path string `yaml:"path,omitempty"`
	// Options are loader specific settings (e.g., has_header, delimiter)
	Options map[string]string `yaml:"options,omitempty"`
	// Columns configures how individual CSV columns are imported
	Columns map[string]csvimport.ColumnSource `yaml:"columns,omitempty"`
}

// Data is what a loader produces.
type Data struct {
	// Columns discovered from the source; may be empty when the source has
	// no schema of its own
	Columns []columns.Column
	Rows    tables.Rows
}

// Loader is the interface that all data source loaders must implement.
// The manager provides built-in loaders for "csv", "textproto" and "inline".
// Users can register additional loaders for databases, APIs, or custom formats.
type Loader interface {
	// SourceType returns the type identifier used in definitions.
	SourceType() string

	// Load retrieves the data. Relative paths in src are already resolved.
	Load(src Source) (*Data, error)
}

// InferColumns derives columns from the keys used by rows, sorted by name,
// for sources without a header.
func InferColumns(rows tables.Rows) []columns.Column {
	keys := make(map[string]struct{})
	for _, row := range rows {
		for k := range row {
			keys[k] = struct{}{}
		}
	}
	names := slices.Sorted(maps.Keys(keys))
	cols := make([]columns.Column, len(names))
	for i, name := range names {
		cols[i] = columns.Column{Name: name, Label: name}
	}
	return cols
}
