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

package views

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/datagrid/core/columns"
	"github.com/google/datagrid/core/config"
	"github.com/google/datagrid/core/dom"
	"github.com/google/datagrid/core/query"
	"github.com/google/datagrid/core/tables"
)

func testConfig(t *testing.T, search string, limit int) config.Config {
	t.Helper()
	cfg, err := config.New(
		config.WithColumns(columns.Column{Name: "name", Label: "Name"}),
		config.WithRows(tables.Rows{{"name": "Ann"}, {"name": "Anton"}, {"name": "Bob"}, {"name": "Joan"}}),
		config.WithSearch(config.Search{Show: true, Value: search}),
		config.WithPagination(config.Pagination{Limits: []int{1, 10}, Limit: limit}),
	)
	require.NoError(t, err)
	return cfg
}

func testQuery(t *testing.T, raw string) *query.Query {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return query.NewQuery(u)
}

func TestBuildPageViewModelCounts(t *testing.T) {
	cfg := testConfig(t, "an", 1)
	container := dom.NewElement("div")
	q := testQuery(t, "/grid?name=people&search=an&limit=1")

	vm, err := BuildPageViewModel("People", "Staff", cfg, container, 3, 1, q)
	require.NoError(t, err)

	assert.Equal(t, "People", vm.Title)
	assert.Equal(t, "people", vm.GridName)
	assert.Equal(t, "an", vm.Search)
	assert.Equal(t, 4, vm.TotalRows)
	assert.Equal(t, 3, vm.MatchedRows)
	assert.Equal(t, 1, vm.DisplayedRows)
	assert.True(t, vm.HasMoreRows)
	assert.Equal(t, "/grid", vm.FormAction.String())
	assert.Equal(t, "/grid?limit=1&name=people", vm.ClearSearchURL.String())
}

func TestBuildPageViewModelLimits(t *testing.T) {
	cfg := testConfig(t, "", 10)
	q := testQuery(t, "/grid?name=people")

	vm, err := BuildPageViewModel("People", "", cfg, dom.NewElement("div"), 4, 4, q)
	require.NoError(t, err)

	require.Len(t, vm.Limits, 2)
	assert.Equal(t, 1, vm.Limits[0].Limit)
	assert.False(t, vm.Limits[0].IsActive)
	assert.Equal(t, "/grid?limit=1&name=people", vm.Limits[0].URL.String())
	assert.True(t, vm.Limits[1].IsActive)
	assert.False(t, vm.HasMoreRows)
	assert.Equal(t, 4, vm.MatchedRows)
}

func TestGridHTMLEscapesText(t *testing.T) {
	div := dom.NewElement("div")
	dom.SetText(div, `<script>alert("x")</script>`)
	dom.SetAttr(div, "title", `"quoted"`)

	h, err := GridHTML(div)
	require.NoError(t, err)
	assert.Equal(t, `<div title="&#34;quoted&#34;">&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;</div>`, h.String())
}
