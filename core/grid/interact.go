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
	"fmt"
	"strconv"

	"golang.org/x/net/html"

	"github.com/google/datagrid/core/dom"
)

// The helpers below act like a user on the mounted tree: they change the
// element and dispatch the event the browser would.

func (g *Grid) element(name string, missing error) (*html.Node, error) {
	if g.tree == nil || g.doc == nil || !g.doc.Contains(g.tree.Container) {
		return nil, ErrNotRendered
	}
	n := g.tree.Element(name)
	if n == nil {
		return nil, missing
	}
	return n, nil
}

// Type replaces the search box content with value.
func (g *Grid) Type(value string) error {
	input, err := g.element("search", ErrNoSearchBox)
	if err != nil {
		return err
	}
	dom.SetValue(input, value)
	return g.doc.Dispatch(input, "input")
}

// SelectLimit picks a page size in the selector.
func (g *Grid) SelectLimit(limit int) error {
	sel, err := g.element("limits", ErrNoPagination)
	if err != nil {
		return err
	}
	if !dom.SetValue(sel, strconv.Itoa(limit)) {
		return fmt.Errorf("%w: %d", ErrUnknownLimit, limit)
	}
	return g.doc.Dispatch(sel, "change")
}

// Resize records new container measurements, as after a window resize, and
// shows or hides the dual scrollbar.
func (g *Grid) Resize(clientWidth, scrollWidth int) error {
	if _, err := g.element("doubleScroll", ErrNoScrollShim); err != nil {
		return err
	}
	g.tree.ApplyScroll(g.shim.Measure(clientWidth, scrollWidth))
	return nil
}

// ScrollShim scrolls the dual scrollbar to x.
func (g *Grid) ScrollShim(x int) error {
	shim, err := g.element("doubleScroll", ErrNoScrollShim)
	if err != nil {
		return err
	}
	dom.SetAttr(shim, "data-scroll-left", strconv.Itoa(x))
	return g.doc.Dispatch(shim, "scroll")
}

// ScrollContainer scrolls the grid container to x.
func (g *Grid) ScrollContainer(x int) error {
	if _, err := g.element("doubleScroll", ErrNoScrollShim); err != nil {
		return err
	}
	dom.SetAttr(g.tree.Container, "data-scroll-left", strconv.Itoa(x))
	return g.doc.Dispatch(g.tree.Container, "scroll")
}
