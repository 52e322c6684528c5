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

// Package tables holds the row records shown by a grid.
package tables

import (
	"fmt"
	"maps"
	"math"
	"strconv"
)

// Row maps a column name to a displayable value.
// Rows have no identity besides their position.
type Row map[string]any

// Rows is an ordered sequence of rows.
type Rows []Row

// String returns the display text of the named cell.
// A missing key or nil value yields the empty string.
func (r Row) String(name string) string {
	v, ok := r[name]
	if !ok {
		return ""
	}
	return FormatValue(v)
}

// FormatValue converts a cell value to its display text.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return formatFloat(val, 64)
	case float32:
		return formatFloat(float64(val), 32)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// Clone returns a copy of rows with every row map copied.
func (rows Rows) Clone() Rows {
	if rows == nil {
		return nil
	}
	clone := make(Rows, len(rows))
	for i, r := range rows {
		clone[i] = maps.Clone(r)
	}
	return clone
}

// Clamp truncates rows to at most limit entries. It never pads.
// A limit <= 0 leaves rows unchanged.
func Clamp(rows Rows, limit int) Rows {
	if limit <= 0 || len(rows) <= limit {
		return rows
	}
	return rows[:limit:limit]
}
