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
	"strconv"

	"golang.org/x/net/html"

	"github.com/google/datagrid/core/columns"
	"github.com/google/datagrid/core/config"
	"github.com/google/datagrid/core/dom"
	"github.com/google/datagrid/core/scroll"
	"github.com/google/datagrid/core/search"
	"github.com/google/datagrid/core/tables"
)

// ClearPolicy decides what happens to the target's existing children when
// a grid is rendered into it. The grid's own previous container is always
// replaced.
type ClearPolicy int

const (
	// ClearAuto clears the target unless it is the document root.
	ClearAuto ClearPolicy = iota
	// ClearChildren removes every child of the target.
	ClearChildren
	// KeepChildren leaves the target's other children in place.
	KeepChildren
)

func (p ClearPolicy) String() string {
	switch p {
	case ClearAuto:
		return "auto"
	case ClearChildren:
		return "clear"
	case KeepChildren:
		return "keep"
	default:
		return "ClearPolicy(" + strconv.Itoa(int(p)) + ")"
	}
}

// SearchChange is signalled on every input event of the search box.
type SearchChange struct {
	Value string
	// Limit is the page-size selector's live value, empty without a selector.
	Limit string
}

// PageSizeChange is signalled when the page-size selector changes.
type PageSizeChange struct {
	Limit string
	// SearchValue is the search box's live value, or the configured
	// value when there is no search box.
	SearchValue string
}

// ScrollChange is signalled when the shim or the container scrolls.
type ScrollChange struct {
	Position int
}

// Signals are the hooks a renderer calls on user interaction. Nil hooks are
// skipped. The renderer never merges configuration itself.
type Signals struct {
	SearchChanged     func(SearchChange) error
	PageSizeChanged   func(PageSizeChange) error
	ShimScrolled      func(ScrollChange) error
	ContainerScrolled func(ScrollChange) error
}

// Renderer builds grid element trees. A Renderer tracks the tree it mounted
// last, so it belongs to one grid.
type Renderer struct {
	signals Signals
	policy  ClearPolicy
	mounted *Tree
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithClearPolicy sets the clear policy. The default is ClearAuto.
func WithClearPolicy(policy ClearPolicy) RendererOption {
	return func(r *Renderer) { r.policy = policy }
}

// NewRenderer creates a renderer that reports interaction through signals.
func NewRenderer(signals Signals, opts ...RendererOption) *Renderer {
	r := &Renderer{signals: signals}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetClearPolicy changes the clear policy for the next render.
func (r *Renderer) SetClearPolicy(policy ClearPolicy) {
	r.policy = policy
}

// Tree is one rendered grid.
type Tree struct {
	// Target is the element the grid is mounted in.
	Target *html.Node
	// Container is the grid's outermost element.
	Container *html.Node
	// Rows are the display rows the body was built from.
	Rows tables.Rows
	// Matched counts the rows passing the search before the page size
	// clamp.
	Matched int

	elements map[string]*html.Node
}

// Element returns the last element created for a logical name such as
// "search", "limits" or "tbody".
func (t *Tree) Element(name string) *html.Node {
	return t.elements[name]
}

// ApplyScroll shows the dual scrollbar state on the tree.
// It does nothing for grids without a scrollbar shim.
func (t *Tree) ApplyScroll(st scroll.State) {
	shim, inner := t.elements["doubleScroll"], t.elements["doubleScrollInner"]
	if shim == nil || inner == nil {
		return
	}
	if st.Visible {
		dom.SetStyle(shim, "display", "block")
	} else {
		dom.SetStyle(shim, "display", "none")
	}
	dom.SetStyle(inner, "width", strconv.Itoa(st.InnerWidth)+"px")
	pos := strconv.Itoa(st.Position)
	dom.SetAttr(shim, "data-scroll-left", pos)
	dom.SetAttr(t.Container, "data-scroll-left", pos)
}

// DisplayRows derives the rows shown in the body: a copy of the canonical
// rows, filtered when a search value is set, clamped to the page size.
// It also returns how many rows matched before the clamp.
func DisplayRows(cfg config.Config) (tables.Rows, int) {
	rows := cfg.Rows.Clone()
	if cfg.Search.Value != "" {
		rows = search.Filter(rows, cfg.Columns, cfg.Search.Columns, cfg.Search.Value)
	}
	matched := len(rows)
	if cfg.Pagination.Limit > 0 {
		rows = tables.Clamp(rows, cfg.Pagination.Limit)
	}
	return rows, matched
}

// Render builds the grid for cfg and mounts it into target, which falls back
// to the document root. The tree is built detached and attached in one step;
// on error the document is left untouched.
func (r *Renderer) Render(doc *dom.Document, target dom.Target, cfg config.Config) (*Tree, error) {
	if err := columns.Validate(cfg.Columns); err != nil {
		return nil, err
	}

	b := &builder{
		doc:      doc,
		cfg:      cfg,
		signals:  r.signals,
		elements: make(map[string]*html.Node),
	}
	tree := b.build()

	parent := doc.Resolve(target)
	if r.mounted != nil {
		doc.Remove(r.mounted.Container)
	}
	if r.clears(doc, parent) {
		doc.Clear(parent)
	}
	dom.Append(parent, tree.Container)
	tree.Target = parent

	r.mounted = tree
	return tree, nil
}

// Unmount removes the mounted tree and its listeners from the document.
func (r *Renderer) Unmount(doc *dom.Document) {
	if r.mounted == nil {
		return
	}
	doc.Remove(r.mounted.Container)
	r.mounted = nil
}

func (r *Renderer) clears(doc *dom.Document, parent *html.Node) bool {
	switch r.policy {
	case ClearChildren:
		return true
	case KeepChildren:
		return false
	default:
		return !doc.IsRoot(parent)
	}
}
