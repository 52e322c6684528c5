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

// Package scroll keeps a secondary horizontal scrollbar in step with the
// scrollable grid container.
package scroll

// State is what the shim elements display.
type State struct {
	Visible    bool
	InnerWidth int // width of the shim's inner element, in pixels
	Position   int // shared horizontal scroll offset
}

// Shim mirrors the horizontal scroll position between the shim and the
// container. The zero value is a hidden shim at position 0.
type Shim struct {
	clientWidth int
	scrollWidth int
	position    int
	// pending holds a position this shim wrote to the other side; the scroll
	// event that echoes it back is ignored once.
	pending *int
}

// Measure records the container's visible width and content width, as after
// a window resize. The shim is visible only while the content overflows.
func (s *Shim) Measure(clientWidth, scrollWidth int) State {
	s.clientWidth = max(clientWidth, 0)
	s.scrollWidth = max(scrollWidth, 0)
	s.position = s.clamp(s.position)
	s.pending = nil
	return s.State()
}

// State returns the current display state.
func (s *Shim) State() State {
	return State{
		Visible:    s.overflows(),
		InnerWidth: s.scrollWidth,
		Position:   s.position,
	}
}

// ScrollShim handles a scroll of the shim to x. It returns the position the
// container must scroll to, and false when nothing needs to move.
func (s *Shim) ScrollShim(x int) (int, bool) {
	return s.scroll(x)
}

// ScrollContainer handles a scroll of the container to x. It returns the
// position the shim must scroll to, and false when nothing needs to move.
func (s *Shim) ScrollContainer(x int) (int, bool) {
	return s.scroll(x)
}

func (s *Shim) scroll(x int) (int, bool) {
	x = s.clamp(x)
	if s.pending != nil && *s.pending == x {
		s.pending = nil
		return x, false
	}
	s.pending = nil
	if x == s.position {
		return x, false
	}
	s.position = x
	s.pending = &x
	return x, true
}

func (s *Shim) overflows() bool {
	return s.scrollWidth > s.clientWidth
}

func (s *Shim) clamp(x int) int {
	maxPos := s.scrollWidth - s.clientWidth
	if maxPos < 0 {
		maxPos = 0
	}
	return min(max(x, 0), maxPos)
}
