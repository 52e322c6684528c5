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
	"fmt"

	"github.com/google/safehtml"
	"github.com/google/safehtml/uncheckedconversions"
	"golang.org/x/net/html"

	"github.com/google/datagrid/core/config"
	"github.com/google/datagrid/core/dom"
	"github.com/google/datagrid/core/query"
)

// PageViewModel contains one rendered grid formatted for template consumption
type PageViewModel struct {
	Title       string
	Description string
	GridName    string
	Grid        safehtml.HTML // Serialized grid container
	CurrentURL  safehtml.URL  // Current URL, used for permalinks
	FormAction  safehtml.URL  // Path the search and page-size form submits to

	// Search and pagination info
	Search         string
	ClearSearchURL safehtml.URL
	Limits         []LimitLink
	TotalRows      int  // Number of rows in the grid
	MatchedRows    int  // Number of rows matching the search
	DisplayedRows  int  // Number of rows actually displayed
	HasMoreRows    bool // True if matching rows were cut by the page size

	RenderTimeMs    string
	TimingBreakdown []TimingEntry
}

// LimitLink is a page-size choice rendered as a link
type LimitLink struct {
	Limit    int
	URL      safehtml.URL
	IsActive bool
}

// LandingViewModel contains the data for the landing page
type LandingViewModel struct {
	Title    string
	Subtitle string
	Grids    []GridInfo
}

// GridInfo describes a grid listed on the landing page
type GridInfo struct {
	Name        string
	Title       string
	Description string
	Columns     int
	Rows        int
	URL         safehtml.URL
}

// TimingEntry is one measured step of a request
type TimingEntry struct {
	Operation  string
	DurationMs string
}

// GridHTML serializes a rendered grid container. Every text and attribute
// value is escaped by the HTML renderer, so the result satisfies the
// safehtml.HTML contract.
func GridHTML(container *html.Node) (safehtml.HTML, error) {
	s, err := dom.OuterHTML(container)
	if err != nil {
		return safehtml.HTML{}, fmt.Errorf("serializing grid: %w", err)
	}
	return uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(s), nil
}

// BuildPageViewModel builds the view model of a grid page. matched and
// displayed are the row counts of the rendered grid before and after the
// page size clamp.
func BuildPageViewModel(title, description string, cfg config.Config, container *html.Node, matched, displayed int, q *query.Query) (PageViewModel, error) {
	grid, err := GridHTML(container)
	if err != nil {
		return PageViewModel{}, err
	}

	vm := PageViewModel{
		Title:          title,
		Description:    description,
		GridName:       q.Grid,
		Grid:           grid,
		CurrentURL:     q.ToSafeURL(),
		FormAction:     safehtml.URLSanitized(q.Path),
		Search:         cfg.Search.Value,
		ClearSearchURL: q.WithoutSearch(),
		TotalRows:      len(cfg.Rows),
		MatchedRows:    matched,
		DisplayedRows:  displayed,
		HasMoreRows:    displayed < matched,
	}
	for _, limit := range cfg.Pagination.Limits {
		vm.Limits = append(vm.Limits, LimitLink{
			Limit:    limit,
			URL:      q.WithLimit(limit),
			IsActive: limit == cfg.Pagination.Limit,
		})
	}
	return vm, nil
}
