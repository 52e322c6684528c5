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

package config

import (
	"slices"

	"github.com/google/datagrid/core/columns"
	"github.com/google/datagrid/core/tables"
)

// Option replaces one top-level field of a Config during Merge.
// A list of options is a partial update.
type Option func(*Config)

// WithColumns replaces the column definitions.
func WithColumns(cols ...columns.Column) Option {
	cols = slices.Clone(cols)
	return func(c *Config) { c.Columns = cols }
}

// WithRows replaces the canonical rows.
func WithRows(rows tables.Rows) Option {
	return func(c *Config) { c.Rows = rows }
}

// WithWidth replaces the table width.
func WithWidth(width string) Option {
	return func(c *Config) { c.Width = width }
}

// WithHeight replaces the table height.
func WithHeight(height string) Option {
	return func(c *Config) { c.Height = height }
}

// WithStyles replaces the style map.
func WithStyles(styles Styles) Option {
	return func(c *Config) { c.Styles = styles }
}

// WithClassNames replaces the class name map.
func WithClassNames(classNames ClassNames) Option {
	return func(c *Config) { c.ClassNames = classNames }
}

// WithAttributes replaces the attribute map.
func WithAttributes(attributes Attributes) Option {
	return func(c *Config) { c.Attributes = attributes }
}

// WithTexts replaces the text labels. Labels missing from texts fall back to
// DefaultTexts.
func WithTexts(texts Texts) Option {
	return func(c *Config) { c.Texts = texts }
}

// WithSearch replaces the whole search configuration. To change a single
// field, copy the previous Search and modify the copy.
func WithSearch(search Search) Option {
	search.Columns = slices.Clone(search.Columns)
	return func(c *Config) { c.Search = search }
}

// WithPagination replaces the whole pagination configuration.
func WithPagination(pagination Pagination) Option {
	pagination.Limits = slices.Clone(pagination.Limits)
	return func(c *Config) { c.Pagination = pagination }
}

// WithDoubleScroll enables or disables the dual scrollbar.
func WithDoubleScroll(enabled bool) Option {
	return func(c *Config) { c.DoubleScroll = enabled }
}
