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

package grid

import (
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/datagrid/core/columns"
	"github.com/google/datagrid/core/config"
	"github.com/google/datagrid/core/dom"
	"github.com/google/datagrid/core/rendering"
	"github.com/google/datagrid/core/tables"
)

func names() []config.Option {
	return []config.Option{
		config.WithColumns(columns.Column{Name: "name", Label: "Name"}),
		config.WithRows(tables.Rows{{"name": "Ann"}, {"name": "Bob"}, {"name": "Cy"}}),
		config.WithSearch(config.Search{Show: true}),
	}
}

func newGrid(t *testing.T, opts ...config.Option) (*Grid, *dom.Document) {
	t.Helper()
	g, err := New(opts...)
	require.NoError(t, err)
	logger, _ := test.NewNullLogger()
	g.SetLogger(logger)

	doc := dom.NewDocument()
	require.NoError(t, g.Render(doc, dom.Root()))
	return g, doc
}

func displayed(g *Grid) []string {
	var out []string
	for _, row := range g.Tree().Rows {
		out = append(out, row.String("name"))
	}
	return out
}

func TestTypingFiltersRows(t *testing.T) {
	g, doc := newGrid(t, names()...)

	require.NoError(t, g.Type("an"))
	assert.Equal(t, []string{"Ann"}, displayed(g))

	cfg := g.Config()
	assert.Equal(t, "an", cfg.Search.Value)
	assert.True(t, cfg.Search.Focus)
	// The canonical rows are untouched.
	assert.Len(t, cfg.Rows, 3)

	input := g.Tree().Element("search")
	assert.Equal(t, input, doc.Focused())
	assert.Equal(t, "an", dom.Value(input))

	require.NoError(t, g.Type(""))
	assert.Equal(t, []string{"Ann", "Bob", "Cy"}, displayed(g))
}

func TestSearchIsRecomputedOnUpdate(t *testing.T) {
	g, _ := newGrid(t, names()...)
	require.NoError(t, g.Type("b"))
	assert.Equal(t, []string{"Bob"}, displayed(g))

	require.NoError(t, g.Update(config.WithRows(tables.Rows{{"name": "Barb"}, {"name": "Ann"}})))
	assert.Equal(t, []string{"Barb"}, displayed(g))
}

func TestSelectLimitCarriesSearch(t *testing.T) {
	g, doc := newGrid(t, append(names(),
		config.WithRows(tables.Rows{{"name": "Ann"}, {"name": "Anna"}, {"name": "Dan"}, {"name": "Bob"}}),
		config.WithPagination(config.Pagination{Limits: []int{1, 2}}),
	)...)
	assert.Equal(t, []string{"Ann"}, displayed(g))

	require.NoError(t, g.Type("an"))
	assert.Equal(t, []string{"Ann"}, displayed(g))

	require.NoError(t, g.SelectLimit(2))
	cfg := g.Config()
	assert.Equal(t, 2, cfg.Pagination.Limit)
	assert.Equal(t, "an", cfg.Search.Value)
	assert.False(t, cfg.Search.Focus)
	assert.Nil(t, doc.Focused())
	assert.Equal(t, []string{"Ann", "Anna"}, displayed(g))

	// Typing keeps the selected page size.
	require.NoError(t, g.Type("a"))
	assert.Equal(t, 2, g.Config().Pagination.Limit)
}

func TestSelectUnknownLimit(t *testing.T) {
	g, _ := newGrid(t, append(names(), config.WithPagination(config.Pagination{Limits: []int{10}}))...)
	require.ErrorIs(t, g.SelectLimit(7), ErrUnknownLimit)
	assert.Equal(t, 10, g.Config().Pagination.Limit)
}

func TestHelpersNeedElements(t *testing.T) {
	g, err := New(config.WithColumns(columns.Column{Name: "a"}))
	require.NoError(t, err)
	require.ErrorIs(t, g.Type("x"), ErrNotRendered)

	require.NoError(t, g.Render(dom.NewDocument(), dom.Root()))
	assert.ErrorIs(t, g.Type("x"), ErrNoSearchBox)
	assert.ErrorIs(t, g.SelectLimit(10), ErrNoPagination)
	assert.ErrorIs(t, g.Resize(10, 20), ErrNoScrollShim)
	assert.ErrorIs(t, g.ScrollShim(5), ErrNoScrollShim)
}

func TestUpdateBeforeRender(t *testing.T) {
	g, err := New(names()...)
	require.NoError(t, err)
	require.NoError(t, g.Update(config.WithWidth("50%")))
	assert.Equal(t, "50%", g.Config().Width)
	assert.Nil(t, g.Tree())
}

func TestRejectedUpdateKeepsConfig(t *testing.T) {
	g, _ := newGrid(t, names()...)
	logger, hook := test.NewNullLogger()
	g.SetLogger(logger)
	before := g.Tree()

	err := g.Update(config.WithColumns(columns.Column{Name: "x"}, columns.Column{Name: "x"}))
	require.ErrorIs(t, err, columns.ErrDuplicateName)
	assert.Equal(t, []string{"name"}, g.Config().ColumnNames())
	assert.Same(t, before, g.Tree())

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestNewRejectsBadColumns(t *testing.T) {
	_, err := New(config.WithColumns(columns.Column{Label: "no name"}))
	require.ErrorIs(t, err, columns.ErrMissingName)
}

func TestDestroy(t *testing.T) {
	g, doc := newGrid(t, names()...)
	input := g.Tree().Element("search")

	g.Destroy()
	assert.Nil(t, g.Tree())
	// The old search box no longer reaches the grid.
	dom.SetValue(input, "an")
	require.NoError(t, doc.Dispatch(input, "input"))
	assert.Empty(t, g.Config().Search.Value)
	assert.Empty(t, cascadia.QueryAll(doc.Body(), cascadia.MustCompile(".data-grid-container")))
	assert.ErrorIs(t, g.Type("an"), ErrNotRendered)

	// Updating a destroyed grid only changes its configuration.
	require.NoError(t, g.Update(config.WithHeight("300px")))
	assert.Nil(t, g.Tree())
}

func TestRenderIntoSelector(t *testing.T) {
	doc, err := dom.Parse(strings.NewReader(`<body><div id="a"><i>old</i></div><p>keep</p></body>`))
	require.NoError(t, err)
	g, err := New(names()...)
	require.NoError(t, err)

	require.NoError(t, g.Render(doc, dom.Selector("#a")))
	old, err := doc.Query("i")
	require.NoError(t, err)
	assert.Nil(t, old)

	// Updates stay in the same target.
	require.NoError(t, g.Type("bob"))
	a, err := doc.Query("#a > .data-grid-container")
	require.NoError(t, err)
	assert.Same(t, g.Tree().Container, a)
}

func TestSelectorIsResolvedOnce(t *testing.T) {
	g, err := New(names()...)
	require.NoError(t, err)
	doc := dom.NewDocument()

	// Nothing matches yet, so the grid lands in the body. The grid's own
	// table must not become the target of later renders.
	require.NoError(t, g.Render(doc, dom.Selector("table")))
	assert.Same(t, doc.Body(), g.Tree().Target)

	require.NoError(t, g.Type("an"))
	assert.Same(t, doc.Body(), g.Tree().Target)
	assert.True(t, doc.Contains(g.Tree().Container))
	assert.Equal(t, []string{"Ann"}, displayed(g))

	require.NoError(t, g.Update(config.WithHeight("200px")))
	assert.True(t, doc.Contains(g.Tree().Container))
}

func TestKeepChildrenPolicy(t *testing.T) {
	doc, err := dom.Parse(strings.NewReader(`<body><div id="a"><i>old</i></div></body>`))
	require.NoError(t, err)
	g, err := New(names()...)
	require.NoError(t, err)
	g.SetClearPolicy(rendering.KeepChildren)

	require.NoError(t, g.Render(doc, dom.Selector("#a")))
	require.NoError(t, g.Type("a"))
	old, err := doc.Query("i")
	require.NoError(t, err)
	assert.NotNil(t, old)
}

func TestDualScrollbar(t *testing.T) {
	g, _ := newGrid(t, append(names(), config.WithDoubleScroll(true))...)
	shim := g.Tree().Element("doubleScroll")
	assert.Equal(t, "none", dom.Style(shim, "display"))

	require.NoError(t, g.Resize(500, 900))
	assert.Equal(t, "block", dom.Style(shim, "display"))
	assert.Equal(t, "900px", dom.Style(g.Tree().Element("doubleScrollInner"), "width"))

	require.NoError(t, g.ScrollShim(120))
	pos, _ := dom.Attr(g.Tree().Container, "data-scroll-left")
	assert.Equal(t, "120", pos)

	require.NoError(t, g.ScrollContainer(1000))
	pos, _ = dom.Attr(shim, "data-scroll-left")
	assert.Equal(t, "400", pos)

	// The scroll state survives a re-render.
	require.NoError(t, g.Type("a"))
	shim = g.Tree().Element("doubleScroll")
	assert.Equal(t, "block", dom.Style(shim, "display"))
	pos, _ = dom.Attr(shim, "data-scroll-left")
	assert.Equal(t, "400", pos)

	require.NoError(t, g.Resize(1000, 900))
	assert.Equal(t, "none", dom.Style(shim, "display"))
}
