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

package dom

import "golang.org/x/net/html"

// Target names the element a grid mounts into.
type Target interface {
	resolve(d *Document) *html.Node
}

type selectorTarget string

func (s selectorTarget) resolve(d *Document) *html.Node {
	n, err := d.Query(string(s))
	if err != nil {
		return nil
	}
	return n
}

type nodeTarget struct{ n *html.Node }

func (t nodeTarget) resolve(*Document) *html.Node {
	return t.n
}

// Selector targets the first element matching a CSS selector.
func Selector(selector string) Target {
	return selectorTarget(selector)
}

// Node targets n directly.
func Node(n *html.Node) Target {
	return nodeTarget{n: n}
}

// Root targets the document root element.
func Root() Target {
	return Node(nil)
}

// Resolve returns the element for t. It falls back to the document root
// when t is nil, the selector is invalid or nothing matches.
func (d *Document) Resolve(t Target) *html.Node {
	if t == nil {
		return d.body
	}
	if n := t.resolve(d); n != nil && n.Type == html.ElementNode {
		return n
	}
	return d.body
}
