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

package rendering

import (
	"maps"
	"slices"
	"strconv"

	"golang.org/x/net/html"

	"github.com/google/datagrid/core/config"
	"github.com/google/datagrid/core/dom"
	"github.com/google/datagrid/core/tables"
)

// ClassPrefix prefixes the kebab-cased logical name in every element's class.
const ClassPrefix = "data-grid-"

// ColumnNameAttr tags header cells with their column identifier.
const ColumnNameAttr = "data-grid-column-name"

type builder struct {
	doc      *dom.Document
	cfg      config.Config
	signals  Signals
	elements map[string]*html.Node
}

func (b *builder) build() *Tree {
	container := b.element("div", "container")

	header := b.element("div", "header")
	dom.Append(container, header)

	if len(b.cfg.Pagination.Limits) > 0 {
		dom.Append(header, b.limitsBlock())
	}
	if b.cfg.Search.Show {
		dom.Append(header, b.searchBlock())
	}
	if b.cfg.DoubleScroll {
		dom.Append(container, b.scrollShim(container))
	}

	table := b.element("table", "")
	dom.SetStyle(table, "width", b.cfg.Width)
	dom.SetStyle(table, "height", b.cfg.Height)
	dom.Append(container, table)
	dom.Append(table, b.head())

	tbody, rows, matched := b.body()
	dom.Append(table, tbody)

	dom.Append(container, b.element("div", "footer"))

	return &Tree{
		Container: container,
		Rows:      rows,
		Matched:   matched,
		elements:  b.elements,
	}
}

// element creates an element for a logical name and applies the configured
// classes, style and attributes for that name.
func (b *builder) element(tag, name string) *html.Node {
	if name == "" {
		name = tag
	}
	n := dom.NewElement(tag)
	b.elements[name] = n

	if classes := b.cfg.ClassNames[name]; len(classes) > 0 {
		dom.AddClass(n, classes...)
	}
	if style, ok := b.cfg.Styles[name]; ok {
		if style.CSSText != "" {
			dom.SetCSSText(n, style.CSSText)
		}
		for _, prop := range slices.Sorted(maps.Keys(style.Properties)) {
			dom.SetStyle(n, prop, style.Properties[prop])
		}
	}
	attrs := b.cfg.Attributes[name]
	for _, key := range slices.Sorted(maps.Keys(attrs)) {
		dom.SetAttr(n, key, attrs[key])
	}
	dom.AddClass(n, ClassPrefix+dom.Kebab(name))
	return n
}

// label appends a paragraph with the text for key unless the text is blank.
func (b *builder) label(parent *html.Node, key string) {
	text, ok := b.cfg.Texts.Visible(key)
	if !ok {
		return
	}
	p := b.element("p", key)
	dom.SetText(p, text)
	dom.Append(parent, p)
}

func setDefaultAttr(n *html.Node, key, val string) {
	if _, ok := dom.Attr(n, key); !ok {
		dom.SetAttr(n, key, val)
	}
}

func (b *builder) limitsBlock() *html.Node {
	div := b.element("div", "limitsDiv")
	b.label(div, config.TextLimitsPrefix)

	sel := b.element("select", "limits")
	setDefaultAttr(sel, "name", "limit")
	dom.Append(div, sel)

	b.label(div, config.TextLimitsSuffix)

	for _, limit := range b.cfg.Pagination.Limits {
		value := strconv.Itoa(limit)
		option := b.element("option", "")
		dom.SetAttr(option, "value", value)
		dom.SetText(option, value)
		if limit == b.cfg.Pagination.Limit {
			dom.SetAttr(option, "selected", "")
		}
		dom.Append(sel, option)
	}

	b.doc.AddEventListener(sel, "change", func(dom.Event) error {
		change := PageSizeChange{
			Limit:       dom.Value(sel),
			SearchValue: b.cfg.Search.Value,
		}
		if input := b.elements["search"]; input != nil {
			change.SearchValue = dom.Value(input)
		}
		if b.signals.PageSizeChanged == nil {
			return nil
		}
		return b.signals.PageSizeChanged(change)
	})
	return div
}

func (b *builder) searchBlock() *html.Node {
	cfg := b.cfg.Search

	div := b.element("div", "searchDiv")
	b.label(div, config.TextSearchPrefix)

	input := b.element("input", "search")
	setDefaultAttr(input, "type", "search")
	setDefaultAttr(input, "name", "search")
	dom.Append(div, input)

	if cfg.Value != "" {
		dom.SetAttr(input, "value", cfg.Value)
	}
	if cfg.Placeholder != "" {
		dom.SetAttr(input, "placeholder", cfg.Placeholder)
	} else if text, ok := b.cfg.Texts.Visible(config.TextSearchPlaceholder); ok {
		dom.SetAttr(input, "placeholder", text)
	}
	if cfg.Focus {
		b.doc.Focus(input)
	}
	if !cfg.Spellcheck {
		dom.SetAttr(input, "spellcheck", "false")
	}
	if !cfg.Autocomplete {
		dom.SetAttr(input, "autocomplete", "off")
	}

	b.doc.AddEventListener(input, "input", func(dom.Event) error {
		value := dom.Value(input)
		if cfg.OnInput != nil {
			cfg.OnInput(value)
		}
		change := SearchChange{Value: value}
		if sel := b.elements["limits"]; sel != nil {
			change.Limit = dom.Value(sel)
		}
		if b.signals.SearchChanged == nil {
			return nil
		}
		return b.signals.SearchChanged(change)
	})
	return div
}

func (b *builder) scrollShim(container *html.Node) *html.Node {
	shim := b.element("div", "doubleScroll")
	inner := b.element("div", "doubleScrollInner")
	dom.Append(shim, inner)

	dom.SetStyle(shim, "overflowX", "auto")
	dom.SetStyle(shim, "display", "none")
	dom.SetStyle(container, "overflowX", "auto")

	b.doc.AddEventListener(shim, "scroll", b.scrollListener(shim, b.signals.ShimScrolled))
	b.doc.AddEventListener(container, "scroll", b.scrollListener(container, b.signals.ContainerScrolled))
	return shim
}

func (b *builder) scrollListener(n *html.Node, signal func(ScrollChange) error) dom.Listener {
	return func(dom.Event) error {
		if signal == nil {
			return nil
		}
		pos, _ := dom.Attr(n, "data-scroll-left")
		x, err := strconv.Atoi(pos)
		if err != nil {
			x = 0
		}
		return signal(ScrollChange{Position: x})
	}
}

// cell applies the shared alignment and width rules of head and body cells.
func cell(n *html.Node, align, width string) {
	dom.SetStyle(n, "textAlign", align)
	if width != "" {
		dom.SetStyle(n, "width", width)
	}
}

func (b *builder) head() *html.Node {
	thead := b.element("thead", "")
	tr := b.element("tr", "")
	for _, col := range b.cfg.Columns {
		if col.Hidden {
			continue
		}
		th := b.element("th", "")
		cell(th, col.HeaderAlign(), col.Width)
		dom.SetAttr(th, ColumnNameAttr, col.Name)
		dom.SetText(th, col.Label)
		dom.Append(tr, th)
	}
	dom.Append(thead, tr)
	return thead
}

func (b *builder) body() (*html.Node, tables.Rows, int) {
	tbody := b.element("tbody", "")
	visible := b.cfg.VisibleColumns()

	rows, matched := DisplayRows(b.cfg)
	for _, row := range rows {
		tr := b.element("tr", "")
		for _, col := range visible {
			td := b.element("td", "")
			cell(td, col.CellAlign(), col.Width)
			dom.SetText(td, row.String(col.Name))
			dom.Append(tr, td)
		}
		dom.Append(tbody, tr)
	}

	if len(b.cfg.Rows) == 0 {
		if text, ok := b.cfg.Texts.Visible(config.TextNoData); ok {
			div := b.element("div", "noDataDiv")
			p := b.element("p", "noDataP")
			dom.SetText(p, text)
			dom.Append(div, p)
			dom.Append(tbody, div)
		}
	}

	return tbody, rows, matched
}
