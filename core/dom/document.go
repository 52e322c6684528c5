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

// Package dom is a small DOM-like layer over golang.org/x/net/html nodes.
//
// A Document owns an element tree together with the state a browser would
// keep next to it: event listeners and the focused element. Selector queries
// are answered by cascadia.
package dom

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const emptyPage = "<!DOCTYPE html><html><head></head><body></body></html>"

// Event is passed to listeners.
type Event struct {
	Type   string
	Target *html.Node
}

// Listener handles an event dispatched on the node it was added to.
type Listener func(Event) error

// Document is an HTML document with listeners and focus.
// It is not safe for concurrent use.
type Document struct {
	root      *html.Node
	body      *html.Node
	listeners map[*html.Node]map[string][]Listener
	focused   *html.Node
}

// NewDocument creates an empty HTML document.
func NewDocument() *Document {
	doc, err := Parse(strings.NewReader(emptyPage))
	if err != nil {
		// The constant page always parses.
		panic(err)
	}
	return doc
}

// Parse reads an HTML document. The parser always produces a body element.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	body := Find(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Body
	})
	if body == nil {
		return nil, errors.New("document has no body")
	}
	return &Document{
		root:      root,
		body:      body,
		listeners: make(map[*html.Node]map[string][]Listener),
	}, nil
}

// Body returns the document root element targets fall back to.
func (d *Document) Body() *html.Node {
	return d.body
}

// IsRoot reports whether n is the document root element.
func (d *Document) IsRoot(n *html.Node) bool {
	return n == d.body
}

// Query returns the first element matching selector, or nil.
func (d *Document) Query(selector string) (*html.Node, error) {
	sel, err := cascadia.Parse(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	return cascadia.Query(d.root, sel), nil
}

// Render writes the whole document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// AddEventListener registers l for events of type typ dispatched on n.
func (d *Document) AddEventListener(n *html.Node, typ string, l Listener) {
	byType, ok := d.listeners[n]
	if !ok {
		byType = make(map[string][]Listener)
		d.listeners[n] = byType
	}
	byType[typ] = append(byType[typ], l)
}

// Dispatch calls the listeners of n for typ in registration order and
// returns their joined errors. Listeners added during dispatch run on the
// next dispatch only.
func (d *Document) Dispatch(n *html.Node, typ string) error {
	listeners := d.listeners[n][typ]
	if len(listeners) == 0 {
		return nil
	}
	listeners = append([]Listener(nil), listeners...)

	event := Event{Type: typ, Target: n}
	var errs []error
	for _, l := range listeners {
		if err := l(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Focus moves the focus to n and marks it autofocus for the rendered page.
func (d *Document) Focus(n *html.Node) {
	if d.focused != nil && d.focused != n {
		RemoveAttr(d.focused, "autofocus")
	}
	d.focused = n
	SetAttr(n, "autofocus", "")
}

// Focused returns the focused element, or nil.
func (d *Document) Focused() *html.Node {
	return d.focused
}

// Clear removes all children of n and forgets their listeners and focus.
func (d *Document) Clear(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		d.Remove(c)
		c = next
	}
}

// Remove detaches n from its parent and forgets the listeners and focus of
// its subtree.
func (d *Document) Remove(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	Walk(n, func(c *html.Node) bool {
		delete(d.listeners, c)
		if c == d.focused {
			d.focused = nil
		}
		return true
	})
}

// Contains reports whether n is attached to the document.
func (d *Document) Contains(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == d.root {
			return true
		}
	}
	return false
}
