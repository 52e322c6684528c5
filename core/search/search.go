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

// Package search implements the accent and case insensitive text search
// applied to grid rows.
package search

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/google/datagrid/core/columns"
	"github.com/google/datagrid/core/tables"
)

// combiningMarks matches the Combining Diacritical Marks block U+0300..U+036F.
var combiningMarks = runes.Predicate(func(r rune) bool {
	return r >= 0x0300 && r <= 0x036f
})

// Normalize decomposes s (NFD), drops combining diacritical marks,
// lower-cases it and trims surrounding whitespace.
func Normalize(s string) string {
	// A transform.Chain keeps state, so build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(combiningMarks))
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.TrimSpace(strings.ToLower(stripped))
}

// Filter returns the rows where any eligible column contains query.
//
// Eligible columns are all of cols, or only those named in restrict when
// restrict is not nil. Columns with Search set to false are never eligible,
// and names in restrict that are not in cols are ignored. Hidden columns stay
// eligible. Row order is preserved. An empty query matches every row that has
// at least one eligible column; callers skip filtering for empty queries.
func Filter(rows tables.Rows, cols []columns.Column, restrict []string, query string) tables.Rows {
	eligible := EligibleColumns(cols, restrict)
	needle := Normalize(query)

	matching := make(tables.Rows, 0, len(rows))
	for _, row := range rows {
		if Matches(row, eligible, needle) {
			matching = append(matching, row)
		}
	}
	return matching
}

// EligibleColumns returns the names of the columns searched by Filter.
func EligibleColumns(cols []columns.Column, restrict []string) []string {
	byName := columns.ByName(cols)
	names := restrict
	if names == nil {
		names = columns.Names(cols)
	}

	eligible := make([]string, 0, len(names))
	for _, name := range names {
		col, ok := byName[name]
		if !ok || !col.Searchable() {
			continue
		}
		eligible = append(eligible, name)
	}
	return eligible
}

// Matches reports whether any of the named cells of row contains the already
// normalized needle. It stops at the first match.
func Matches(row tables.Row, names []string, needle string) bool {
	for _, name := range names {
		if strings.Contains(Normalize(row.String(name)), needle) {
			return true
		}
	}
	return false
}
