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

package tables

import (
	"strings"
	"unicode/utf8"
)

// ASCIIColumn is one column of an ASCII table.
type ASCIIColumn struct {
	Name       string
	Label      string
	AlignRight bool
}

// ToASCII returns a string representation of rows with ASCII borders
func ToASCII(cols []ASCIIColumn, rows Rows) string {
	widths := calculateColumnWidths(cols, rows)

	var sb strings.Builder
	border := func() {
		for _, w := range widths {
			sb.WriteString("+")
			sb.WriteString(strings.Repeat("-", w+2))
		}
		sb.WriteString("+\n")
	}
	line := func(cells []string) {
		for i, cell := range cells {
			pad := strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell))
			sb.WriteString("| ")
			if cols[i].AlignRight {
				sb.WriteString(pad + cell)
			} else {
				sb.WriteString(cell + pad)
			}
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	labels := make([]string, len(cols))
	for i, c := range cols {
		labels[i] = c.Label
	}

	border()
	line(labels)
	border()
	cells := make([]string, len(cols))
	for _, row := range rows {
		for i, c := range cols {
			cells[i] = row.String(c.Name)
		}
		line(cells)
	}
	if len(rows) > 0 {
		border()
	}
	return sb.String()
}

// calculateColumnWidths calculates the width in runes needed for each column
func calculateColumnWidths(cols []ASCIIColumn, rows Rows) []int {
	widths := make([]int, len(cols))
	for i, c := range cols {
		// Set minimum width to 1
		widths[i] = max(1, utf8.RuneCountInString(c.Label))
		for _, row := range rows {
			widths[i] = max(widths[i], utf8.RuneCountInString(row.String(c.Name)))
		}
	}
	return widths
}
