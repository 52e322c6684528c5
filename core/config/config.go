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

// Package config holds the canonical grid configuration and the shallow
// merge that produces a new configuration from a previous one and a partial
// update.
//
// A Config is a value. It is never modified after Merge returns it; an update
// produces a new Config. Slices and maps inside a Config are shared between
// the old and the new value and must be treated as read-only.
package config

import (
	"slices"

	"github.com/google/datagrid/core/columns"
	"github.com/google/datagrid/core/tables"
)

// Defaults for the table element size.
const (
	DefaultWidth  = "100%"
	DefaultHeight = "auto"
)

// Search configures the search box.
type Search struct {
	Show        bool   `yaml:"show"`
	Value       string `yaml:"value,omitempty"`
	Placeholder string `yaml:"placeholder,omitempty"` // overrides the searchPlaceholder text
	Focus       bool   `yaml:"focus,omitempty"`
	// Columns restricts the searched columns when not nil.
	Columns      []string `yaml:"columns,omitempty"`
	Spellcheck   bool     `yaml:"spellcheck,omitempty"`
	Autocomplete bool     `yaml:"autocomplete,omitempty"`
	// OnInput is called with the raw value on every input event,
	// before the grid updates.
	OnInput func(value string) `yaml:"-"`
}

// Pagination configures the page-size selector.
type Pagination struct {
	Limits []int `yaml:"limits,omitempty"`
	Limit  int   `yaml:"limit,omitempty"` // 0 means unset
}

// normalize resets Limit to the first allowed value when it is unset or not
// one of Limits.
func (p Pagination) normalize() Pagination {
	if len(p.Limits) > 0 && !slices.Contains(p.Limits, p.Limit) {
		p.Limit = p.Limits[0]
	}
	return p
}

// Config is the canonical grid configuration.
type Config struct {
	Columns      []columns.Column
	Rows         tables.Rows
	Width        string
	Height       string
	Styles       Styles
	ClassNames   ClassNames
	Attributes   Attributes
	Texts        Texts
	Search       Search
	Pagination   Pagination
	DoubleScroll bool

	columnNames   []string
	columnsByName map[string]columns.Column
}

// ColumnNames returns the column identifiers in display order.
func (c Config) ColumnNames() []string {
	return c.columnNames
}

// ColumnsByName maps each column identifier to its column.
func (c Config) ColumnsByName() map[string]columns.Column {
	return c.columnsByName
}

// Column returns the named column.
func (c Config) Column(name string) (columns.Column, bool) {
	col, ok := c.columnsByName[name]
	return col, ok
}

// VisibleColumns returns the columns that are not hidden.
func (c Config) VisibleColumns() []columns.Column {
	visible := make([]columns.Column, 0, len(c.Columns))
	for _, col := range c.Columns {
		if !col.Hidden {
			visible = append(visible, col)
		}
	}
	return visible
}

// New creates a canonical configuration from options.
func New(opts ...Option) (Config, error) {
	return Merge(Config{}, opts...)
}

// Merge applies opts to a copy of prev and returns the canonical result.
//
// Every option replaces one whole top-level field. Text defaults, the table
// size defaults, the derived column lookups and the pagination limit are
// recomputed on every merge. The only error is a structural problem with the
// columns, in which case prev stays the current configuration.
func Merge(prev Config, opts ...Option) (Config, error) {
	next := prev
	for _, opt := range opts {
		opt(&next)
	}

	if err := columns.Validate(next.Columns); err != nil {
		return prev, err
	}

	if next.Width == "" {
		next.Width = DefaultWidth
	}
	if next.Height == "" {
		next.Height = DefaultHeight
	}
	next.Texts = next.Texts.withDefaults()
	next.Pagination = next.Pagination.normalize()
	next.columnNames = columns.Names(next.Columns)
	next.columnsByName = columns.ByName(next.Columns)
	return next, nil
}
