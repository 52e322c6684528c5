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

// Package grid ties a configuration, a renderer and a document together.
//
// A Grid owns its configuration and the tree it last rendered. User
// interaction arrives as events on that tree; the grid merges the change
// into a new configuration and renders again. A Grid is not safe for
// concurrent use.
package grid

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/google/datagrid/core/config"
	"github.com/google/datagrid/core/dom"
	"github.com/google/datagrid/core/rendering"
	"github.com/google/datagrid/core/scroll"
)

var (
	// ErrNotRendered is returned by interaction helpers when no tree is
	// attached to a document.
	ErrNotRendered = errors.New("grid is not rendered")
	// ErrNoSearchBox is returned by Type when the search box is not shown.
	ErrNoSearchBox = errors.New("grid has no search box")
	// ErrNoPagination is returned by SelectLimit without a page-size selector.
	ErrNoPagination = errors.New("grid has no page-size selector")
	// ErrUnknownLimit is returned by SelectLimit for a limit not offered.
	ErrUnknownLimit = errors.New("page size is not one of the allowed limits")
	// ErrNoScrollShim is returned by the scroll helpers without a shim.
	ErrNoScrollShim = errors.New("grid has no dual scrollbar")
)

// Grid is one interactive grid.
type Grid struct {
	cfg      config.Config
	renderer *rendering.Renderer
	doc      *dom.Document
	target   dom.Target
	tree     *rendering.Tree
	shim     scroll.Shim
	log      logrus.FieldLogger
}

// New creates a grid from options. Nothing is rendered until Render.
func New(opts ...config.Option) (*Grid, error) {
	cfg, err := config.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid grid configuration: %w", err)
	}
	g := &Grid{
		cfg: cfg,
		log: logrus.StandardLogger(),
	}
	g.renderer = rendering.NewRenderer(rendering.Signals{
		SearchChanged:     g.searchChanged,
		PageSizeChanged:   g.pageSizeChanged,
		ShimScrolled:      g.shimScrolled,
		ContainerScrolled: g.containerScrolled,
	})
	return g, nil
}

// SetLogger replaces the logger. The default is the logrus standard logger.
func (g *Grid) SetLogger(log logrus.FieldLogger) {
	g.log = log
}

// SetClearPolicy changes what happens to the target's children on render.
func (g *Grid) SetClearPolicy(policy rendering.ClearPolicy) {
	g.renderer.SetClearPolicy(policy)
}

// Config returns the current configuration.
func (g *Grid) Config() config.Config {
	return g.cfg
}

// Tree returns the mounted tree, or nil before Render and after Destroy.
func (g *Grid) Tree() *rendering.Tree {
	return g.tree
}

// Render mounts the grid into target of doc. The target is resolved once;
// later updates render into the same element.
func (g *Grid) Render(doc *dom.Document, target dom.Target) error {
	g.doc = doc
	g.target = dom.Node(doc.Resolve(target))
	return g.render()
}

func (g *Grid) render() error {
	tree, err := g.renderer.Render(g.doc, g.target, g.cfg)
	if err != nil {
		g.log.WithError(err).Warn("grid render failed")
		return err
	}
	g.tree = tree
	if g.cfg.DoubleScroll {
		tree.ApplyScroll(g.shim.State())
	}
	g.log.WithFields(logrus.Fields{
		"rows":      len(g.cfg.Rows),
		"displayed": len(tree.Rows),
		"search":    g.cfg.Search.Value,
		"limit":     g.cfg.Pagination.Limit,
	}).Debug("grid rendered")
	return nil
}

// Update merges opts into the configuration and renders again when the
// grid is mounted. On error the previous configuration stays current.
func (g *Grid) Update(opts ...config.Option) error {
	cfg, err := config.Merge(g.cfg, opts...)
	if err != nil {
		g.log.WithError(err).Warn("grid update rejected")
		return err
	}
	g.cfg = cfg
	if g.doc == nil {
		return nil
	}
	return g.render()
}

// Destroy removes the grid from its document. The grid can be rendered
// again afterwards.
func (g *Grid) Destroy() {
	if g.doc != nil {
		g.renderer.Unmount(g.doc)
	}
	g.doc = nil
	g.target = nil
	g.tree = nil
}

// limitOf parses a page size coming from the selector. Unparsable values
// keep the current limit.
func (g *Grid) limitOf(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return g.cfg.Pagination.Limit
	}
	return n
}

func (g *Grid) searchChanged(c rendering.SearchChange) error {
	search := g.cfg.Search
	search.Value = c.Value
	search.Focus = true

	pagination := g.cfg.Pagination
	if c.Limit != "" {
		pagination.Limit = g.limitOf(c.Limit)
	}
	return g.Update(config.WithSearch(search), config.WithPagination(pagination))
}

func (g *Grid) pageSizeChanged(c rendering.PageSizeChange) error {
	pagination := g.cfg.Pagination
	pagination.Limit = g.limitOf(c.Limit)

	search := g.cfg.Search
	search.Value = c.SearchValue
	search.Focus = false
	return g.Update(config.WithPagination(pagination), config.WithSearch(search))
}

func (g *Grid) shimScrolled(c rendering.ScrollChange) error {
	if _, move := g.shim.ScrollShim(c.Position); move {
		g.log.WithField("position", g.shim.State().Position).Trace("grid scrolled")
	}
	if g.tree != nil {
		g.tree.ApplyScroll(g.shim.State())
	}
	return nil
}

func (g *Grid) containerScrolled(c rendering.ScrollChange) error {
	if _, move := g.shim.ScrollContainer(c.Position); move {
		g.log.WithField("position", g.shim.State().Position).Trace("grid scrolled")
	}
	if g.tree != nil {
		g.tree.ApplyScroll(g.shim.State())
	}
	return nil
}
