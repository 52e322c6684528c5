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

package columns

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingName is returned for a column definition without an identifier.
	ErrMissingName = errors.New("column has no name")
	// ErrDuplicateName is returned when two columns share an identifier.
	ErrDuplicateName = errors.New("duplicate column name")
)

// DefaultAlign is used for header and body cells without an explicit alignment.
const DefaultAlign = "left"

// Column describes one column of a grid.
type Column struct {
	Name     string `yaml:"name"` // identifier, unique within the grid
	Label    string `yaml:"label"`
	Width    string `yaml:"width,omitempty"`
	Align    string `yaml:"align,omitempty"`    // header alignment
	RowAlign string `yaml:"rowAlign,omitempty"` // body cell alignment
	Hidden   bool   `yaml:"hidden,omitempty"`
	// Search set to false excludes the column from text search.
	Search *bool `yaml:"search,omitempty"`
}

// UnmarshalYAML accepts "text" as an alias of "label".
func (c *Column) UnmarshalYAML(value *yaml.Node) error {
	type plain Column
	var aux struct {
		Column plain  `yaml:",inline"`
		Text   string `yaml:"text"`
	}
	if err := value.Decode(&aux); err != nil {
		return err
	}
	*c = Column(aux.Column)
	if c.Label == "" {
		c.Label = aux.Text
	}
	return nil
}

// Searchable reports whether the column takes part in text search.
func (c Column) Searchable() bool {
	return c.Search == nil || *c.Search
}

// HeaderAlign returns the text alignment of the header cell.
func (c Column) HeaderAlign() string {
	if c.Align == "" {
		return DefaultAlign
	}
	return c.Align
}

// CellAlign returns the text alignment of body cells.
func (c Column) CellAlign() string {
	if c.RowAlign == "" {
		return DefaultAlign
	}
	return c.RowAlign
}

// Names returns the column identifiers in order.
func Names(cols []Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// ByName maps each column identifier to its column.
func ByName(cols []Column) map[string]Column {
	byName := make(map[string]Column, len(cols))
	for _, c := range cols {
		byName[c.Name] = c
	}
	return byName
}

// Validate checks that every column has a unique, non-empty name.
func Validate(cols []Column) error {
	seen := make(map[string]bool, len(cols))
	for i, c := range cols {
		if c.Name == "" {
			return fmt.Errorf("column %d: %w", i, ErrMissingName)
		}
		if seen[c.Name] {
			return fmt.Errorf("column %d %q: %w", i, c.Name, ErrDuplicateName)
		}
		seen[c.Name] = true
	}
	return nil
}

// Bool returns a pointer to b, for the Search field.
func Bool(b bool) *bool {
	return &b
}
