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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToASCII(t *testing.T) {
	cols := []ASCIIColumn{
		{Name: "city", Label: "City"},
		{Name: "pop", Label: "Pop", AlignRight: true},
	}
	rows := Rows{
		{"city": "Zürich", "pop": 421878},
		{"city": "Bern"},
	}

	want := "" +
		"+--------+--------+\n" +
		"| City   |    Pop |\n" +
		"+--------+--------+\n" +
		"| Zürich | 421878 |\n" +
		"| Bern   |        |\n" +
		"+--------+--------+\n"
	assert.Equal(t, want, ToASCII(cols, rows))
}

func TestToASCIIWithoutRows(t *testing.T) {
	cols := []ASCIIColumn{{Name: "a", Label: ""}}
	want := "" +
		"+---+\n" +
		"|   |\n" +
		"+---+\n"
	assert.Equal(t, want, ToASCII(cols, nil))
}
