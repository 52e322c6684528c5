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

// Package demo provides sample grids backed by embedded data files.
package demo

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/google/datagrid/core/csvimport"
	"github.com/google/datagrid/datasources"
)

//go:embed data/* grids/*.yaml
var files embed.FS

// SourceEmbedded is the source type of the demo data files. The file is
// named by the "file" option since Path is resolved on disk.
const SourceEmbedded = "embedded"

// Register adds the demo loaders and grids to m.
func Register(m *datasources.Manager) error {
	m.RegisterLoader(NewEmbeddedLoader())
	m.RegisterLoader(NewGeneratedLoader())

	defs, err := fs.Glob(files, "grids/*.yaml")
	if err != nil {
		return err
	}
	for _, name := range defs {
		data, err := files.ReadFile(name)
		if err != nil {
			return err
		}
		def, err := datasources.ParseDefinitionBytes(data)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := m.AddDefinition(def); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// EmbeddedLoader reads CSV and textproto files compiled into the binary.
type EmbeddedLoader struct {
	fsys fs.FS
}

// NewEmbeddedLoader returns a loader over the demo data files.
func NewEmbeddedLoader() *EmbeddedLoader {
	sub, err := fs.Sub(files, "data")
	if err != nil {
		panic(err)
	}
	return &EmbeddedLoader{fsys: sub}
}

// SourceType returns "embedded".
func (l *EmbeddedLoader) SourceType() string {
	return SourceEmbedded
}

// Load parses the file by its extension.
func (l *EmbeddedLoader) Load(src datasources.Source) (*datasources.Data, error) {
	name := src.Options["file"]
	if name == "" {
		return nil, errors.New("file option is required")
	}
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, err
	}

	switch path.Ext(name) {
	case ".csv":
		table, err := csvimport.ImportFromReader(bytes.NewReader(data), datasources.CSVOptions(src))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return &datasources.Data{Columns: table.Columns, Rows: table.Rows}, nil
	case ".textproto", ".txtpb":
		rows, err := csvimport.ParseRows(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return &datasources.Data{Columns: datasources.InferColumns(rows), Rows: rows}, nil
	default:
		return nil, fmt.Errorf("%s: unsupported file type", name)
	}
}
