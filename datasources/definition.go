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
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/google/datagrid/core/columns"
	"github.com/google/datagrid/core/config"
	"github.com/google/datagrid/core/tables"
)

// SourceInline is the source type of rows written in the definition itself.
const SourceInline = "inline"

var validName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Definition describes one grid: its presentation and where its rows come
// from. Definitions are read from YAML files.
type Definition struct {
	Name        string `yaml:"name"`
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`

	Columns []columns.Column `yaml:"columns,omitempty"`
	Rows    tables.Rows      `yaml:"rows,omitempty"`
	Source  *Source          `yaml:"source,omitempty"`

	Width        string            `yaml:"width,omitempty"`
	Height       string            `yaml:"height,omitempty"`
	Styles       config.Styles     `yaml:"styles,omitempty"`
	ClassNames   config.ClassNames `yaml:"classNames,omitempty"`
	Attributes   config.Attributes `yaml:"attributes,omitempty"`
	Texts        config.Texts      `yaml:"texts,omitempty"`
	Search       config.Search     `yaml:"search,omitempty"`
	Pagination   config.Pagination `yaml:"pagination,omitempty"`
	DoubleScroll bool              `yaml:"doubleScroll,omitempty"`

	// dir is the directory relative source paths are resolved against
	dir string
}

// ParseDefinition reads one YAML grid definition. Unknown fields are errors.
func ParseDefinition(r io.Reader) (*Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	def := &Definition{}
	if err := dec.Decode(def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty definition")
		}
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

// ParseDefinitionBytes is ParseDefinition for in-memory YAML.
func ParseDefinitionBytes(data []byte) (*Definition, error) {
	return ParseDefinition(bytes.NewReader(data))
}

// Validate checks the name, the columns and the source.
func (d *Definition) Validate() error {
	if !validName.MatchString(d.Name) {
		return fmt.Errorf("invalid grid name %q", d.Name)
	}
	if err := columns.Validate(d.Columns); err != nil {
		return fmt.Errorf("grid %q: %w", d.Name, err)
	}
	if d.Source != nil && d.Source.Type != SourceInline && len(d.Rows) > 0 {
		return fmt.Errorf("grid %q: rows and a %s source are exclusive", d.Name, d.Source.Type)
	}
	return nil
}

// DisplayTitle returns the title, or the name when the title is empty.
func (d *Definition) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

// SourceType returns the loader type of the definition.
func (d *Definition) SourceType() string {
	if d.Source == nil || d.Source.Type == "" {
		return SourceInline
	}
	return d.Source.Type
}

// Options turns the definition and its loaded data into configuration
// options. Columns of the definition win over the columns of the data.
func (d *Definition) Options(data *Data) []config.Option {
	cols := d.Columns
	if len(cols) == 0 {
		cols = data.Columns
	}
	return []config.Option{
		config.WithColumns(cols...),
		config.WithRows(data.Rows),
		config.WithWidth(d.Width),
		config.WithHeight(d.Height),
		config.WithStyles(d.Styles),
		config.WithClassNames(d.ClassNames),
		config.WithAttributes(d.Attributes),
		config.WithTexts(d.Texts),
		config.WithSearch(d.Search),
		config.WithPagination(d.Pagination),
		config.WithDoubleScroll(d.DoubleScroll),
	}
}
