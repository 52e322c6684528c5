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

package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/safehtml"
	"github.com/sirupsen/logrus"

	"github.com/google/datagrid/core/config"
	"github.com/google/datagrid/core/dom"
	"github.com/google/datagrid/core/grid"
	"github.com/google/datagrid/core/query"
	"github.com/google/datagrid/core/rendering"
	"github.com/google/datagrid/core/views"
	"github.com/google/datagrid/datasources"
)

// GridPath is the path grid pages are served under.
const GridPath = "/grid"

// Server represents the application server with all its dependencies
type Server struct {
	grids    *datasources.Manager
	renderer *rendering.PageRenderer
	log      logrus.FieldLogger

	title    string
	subtitle string
}

// NewServer creates a new server serving the grids of the manager
func NewServer(grids *datasources.Manager) (*Server, error) {
	renderer, err := rendering.NewPageRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	return &Server{
		grids:    grids,
		renderer: renderer,
		log:      logrus.StandardLogger(),
		title:    "Data grids",
	}, nil
}

// SetLogger replaces the logger
func (s *Server) SetLogger(log logrus.FieldLogger) {
	s.log = log
}

// SetTitle sets the landing page title and subtitle
func (s *Server) SetTitle(title, subtitle string) {
	s.title = title
	s.subtitle = subtitle
}

// GridHandlerResult represents the result of handling a grid request
type GridHandlerResult struct {
	Error      error
	StatusCode int
	Message    string
}

// TimingCollector collects timing measurements for various operations
type TimingCollector struct {
	entries []views.TimingEntry
	start   time.Time
}

// NewTimingCollector creates a new timing collector
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{start: time.Now()}
}

// Record records a timing entry
func (tc *TimingCollector) Record(operation string, duration time.Duration) {
	tc.entries = append(tc.entries, views.TimingEntry{
		Operation:  operation,
		DurationMs: fmt.Sprintf("%.2f", float64(duration.Microseconds())/1000.0),
	})
}

// GetEntries returns all timing entries
func (tc *TimingCollector) GetEntries() []views.TimingEntry {
	return tc.entries
}

// TotalMs returns total elapsed time in milliseconds as formatted string
func (tc *TimingCollector) TotalMs() string {
	return fmt.Sprintf("%.2f", float64(time.Since(tc.start).Microseconds())/1000.0)
}

// Fields returns the timing entries as log fields
func (tc *TimingCollector) Fields() logrus.Fields {
	fields := logrus.Fields{"total_ms": tc.TotalMs()}
	for _, e := range tc.entries {
		fields[e.Operation] = e.DurationMs
	}
	return fields
}

// BuildGrid creates the grid a query asks for and renders it into a fresh
// document. The search and page size of the query override the grid's
// defined ones.
func (s *Server) BuildGrid(q *query.Query, timing *TimingCollector) (*grid.Grid, error) {
	loadStart := time.Now()
	opts, err := s.grids.Options(q.Grid)
	if err != nil {
		return nil, err
	}
	timing.Record("Load Data", time.Since(loadStart))

	g, err := grid.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("grid %q: %w", q.Grid, err)
	}
	g.SetLogger(s.log)

	cfg := g.Config()
	var overrides []config.Option
	if q.HasSearch {
		search := cfg.Search
		search.Value = q.Search
		search.Focus = cfg.Search.Show
		overrides = append(overrides, config.WithSearch(search))
	}
	if q.Limit > 0 {
		pagination := cfg.Pagination
		pagination.Limit = q.Limit
		overrides = append(overrides, config.WithPagination(pagination))
	}
	if len(overrides) > 0 {
		if err := g.Update(overrides...); err != nil {
			return nil, err
		}
	}

	renderStart := time.Now()
	if err := g.Render(dom.NewDocument(), dom.Root()); err != nil {
		return nil, err
	}
	timing.Record("Render Grid", time.Since(renderStart))
	return g, nil
}

// HandleGridRequest processes a grid request and writes the response
// Returns an error result if the request is invalid, nil on success
func (s *Server) HandleGridRequest(w io.Writer, requestURL *url.URL, setHeader func(key, value string)) *GridHandlerResult {
	timing := NewTimingCollector()

	// Parse URL into Query
	parseStart := time.Now()
	q := query.NewQuery(requestURL)
	timing.Record("Parse Query", time.Since(parseStart))

	// Validate name parameter
	if q.Grid == "" {
		return &GridHandlerResult{StatusCode: http.StatusBadRequest, Message: "Grid name parameter is required"}
	}

	def, err := s.grids.Definition(q.Grid)
	if errors.Is(err, datasources.ErrNotFound) {
		return &GridHandlerResult{StatusCode: http.StatusNotFound, Message: fmt.Sprintf("Grid '%s' not found", q.Grid)}
	}
	if err != nil {
		return &GridHandlerResult{Error: err}
	}

	g, err := s.BuildGrid(q, timing)
	if err != nil {
		return &GridHandlerResult{Error: err}
	}

	// Build the view model from the rendered grid
	vmStart := time.Now()
	tree := g.Tree()
	viewModel, err := views.BuildPageViewModel(def.DisplayTitle(), def.Description, g.Config(), tree.Container, tree.Matched, len(tree.Rows), q)
	if err != nil {
		return &GridHandlerResult{Error: err}
	}
	timing.Record("Build ViewModel", time.Since(vmStart))

	// Set timing information
	viewModel.RenderTimeMs = timing.TotalMs()
	viewModel.TimingBreakdown = timing.GetEntries()

	setHeader("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, viewModel); err != nil {
		s.log.WithError(err).Error("template rendering error")
		return &GridHandlerResult{Error: err}
	}

	s.log.WithFields(timing.Fields()).WithFields(logrus.Fields{
		"grid":      q.Grid,
		"search":    q.Search,
		"displayed": viewModel.DisplayedRows,
	}).Info("grid served")
	return nil
}

// HandleLandingRequest processes the landing page request
func (s *Server) HandleLandingRequest(w io.Writer, requestURL *url.URL, setHeader func(key, value string)) error {
	setHeader("Content-Type", "text/html; charset=utf-8")

	vm := views.LandingViewModel{
		Title:    s.title,
		Subtitle: s.subtitle,
	}
	for _, name := range s.grids.Names() {
		def, err := s.grids.Definition(name)
		if err != nil {
			return err
		}
		info := views.GridInfo{
			Name:        name,
			Title:       def.DisplayTitle(),
			Description: def.Description,
			URL:         GridURL(name),
		}
		// Grids whose data does not load are listed without counts
		if data, err := s.grids.LoadData(name); err != nil {
			s.log.WithError(err).WithField("grid", name).Warn("failed to load grid data")
		} else {
			info.Rows = len(data.Rows)
			info.Columns = len(def.Columns)
			if info.Columns == 0 {
				info.Columns = len(data.Columns)
			}
		}
		vm.Grids = append(vm.Grids, info)
	}

	if err := s.renderer.RenderLanding(w, vm); err != nil {
		s.log.WithError(err).Error("landing page rendering error")
		return err
	}
	return nil
}

// Handler returns the HTTP handler serving the landing page and grid pages
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+GridPath, func(w http.ResponseWriter, r *http.Request) {
		result := s.HandleGridRequest(w, r.URL, w.Header().Set)
		if result == nil {
			return
		}
		if result.Error != nil {
			s.log.WithError(result.Error).WithField("url", r.URL.String()).Error("grid request failed")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		http.Error(w, result.Message, result.StatusCode)
	})

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		// The renderer may have already written to the response, so
		// errors are only logged
		_ = s.HandleLandingRequest(w, r.URL, w.Header().Set)
	})

	return mux
}

// GridURL returns the page URL of a grid
func GridURL(name string) safehtml.URL {
	return (&query.Query{Path: GridPath, Grid: name}).ToSafeURL()
}
