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

package query

import (
	"net/url"
	"strconv"

	"github.com/google/safehtml"
)

// Query represents the parsed state of a grid page URL
type Query struct {
	// Base path (e.g., "/grid")
	Path string

	Grid      string // The grid being viewed
	Search    string // Raw search query
	HasSearch bool   // True if the URL carried a search parameter, even an empty one
	Limit     int    // Requested page size (0 = the grid's default)
}

// NewQuery creates a Query from a URL
func NewQuery(u *url.URL) *Query {
	state := &Query{
		Path: u.Path,
	}

	q := u.Query()

	state.Grid = q.Get("name")

	if values, ok := q["search"]; ok && len(values) > 0 {
		state.Search = values[0]
		state.HasSearch = true
	}

	// Negative or malformed limits are ignored
	if limitStr := q.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			state.Limit = limit
		}
	}

	return state
}

// Clone creates a copy of the Query
func (s *Query) Clone() *Query {
	clone := *s
	return &clone
}

// ToURL converts the Query back to a URL string
func (s *Query) ToURL() string {
	u := &url.URL{
		Path: s.Path,
	}

	q := u.Query()
	if s.Grid != "" {
		q.Set("name", s.Grid)
	}
	if s.HasSearch {
		q.Set("search", s.Search)
	}
	if s.Limit > 0 {
		q.Set("limit", strconv.Itoa(s.Limit))
	}

	u.RawQuery = q.Encode()
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL
func (s *Query) ToSafeURL() safehtml.URL {
	// URLSanitized sanitizes the input string and returns a URL
	return safehtml.URLSanitized(s.ToURL())
}

// WithLimit returns a URL with a different page size
func (s *Query) WithLimit(limit int) safehtml.URL {
	newState := s.Clone()
	newState.Limit = limit
	return newState.ToSafeURL()
}

// WithoutSearch returns a URL with the search query removed
func (s *Query) WithoutSearch() safehtml.URL {
	newState := s.Clone()
	newState.Search = ""
	newState.HasSearch = false
	return newState.ToSafeURL()
}
