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

import (
	"bytes"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NewElement creates a detached element.
func NewElement(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// Append adds child as the last child of parent.
func Append(parent, child *html.Node) {
	parent.AppendChild(child)
}

// Attr returns the value of the attribute key.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets the attribute key, keeping its position if it exists.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes the attribute key.
func RemoveAttr(n *html.Node, key string) {
	n.Attr = slices.DeleteFunc(n.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == key
	})
}

// Classes returns the class list of n.
func Classes(n *html.Node) []string {
	class, _ := Attr(n, "class")
	return strings.Fields(class)
}

// AddClass appends classes that n does not have yet.
func AddClass(n *html.Node, classes ...string) {
	current := Classes(n)
	for _, c := range classes {
		if c != "" && !slices.Contains(current, c) {
			current = append(current, c)
		}
	}
	SetAttr(n, "class", strings.Join(current, " "))
}

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// Kebab turns a camelCase name into its lower-case, dash separated form:
// "limitsDiv" becomes "limits-div" and "textAlign" becomes "text-align".
func Kebab(name string) string {
	return strings.ToLower(camelBoundary.ReplaceAllString(name, "$1-$2"))
}

type declaration struct {
	prop  string
	value string
}

func parseStyle(css string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(css, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		if prop == "" {
			continue
		}
		decls = append(decls, declaration{prop: prop, value: strings.TrimSpace(value)})
	}
	return decls
}

func formatStyle(decls []declaration) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.prop + ": " + d.value
	}
	return strings.Join(parts, "; ")
}

// SetCSSText replaces the whole style attribute.
func SetCSSText(n *html.Node, css string) {
	decls := parseStyle(css)
	if len(decls) == 0 {
		RemoveAttr(n, "style")
		return
	}
	SetAttr(n, "style", formatStyle(decls))
}

// SetStyle sets one style property. Property names may be camelCase.
// An empty value removes the property.
func SetStyle(n *html.Node, prop, value string) {
	prop = Kebab(prop)
	css, _ := Attr(n, "style")
	decls := parseStyle(css)

	i := slices.IndexFunc(decls, func(d declaration) bool { return d.prop == prop })
	switch {
	case value == "" && i >= 0:
		decls = slices.Delete(decls, i, i+1)
	case value == "":
		return
	case i >= 0:
		decls[i].value = value
	default:
		decls = append(decls, declaration{prop: prop, value: value})
	}

	if len(decls) == 0 {
		RemoveAttr(n, "style")
		return
	}
	SetAttr(n, "style", formatStyle(decls))
}

// Style returns the value of one style property.
func Style(n *html.Node, prop string) string {
	prop = Kebab(prop)
	css, _ := Attr(n, "style")
	for _, d := range parseStyle(css) {
		if d.prop == prop {
			return d.value
		}
	}
	return ""
}

// SetText replaces the children of n with a single text node. The text is
// never interpreted as markup.
func SetText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// Text returns the concatenated text of n and its descendants.
func Text(n *html.Node) string {
	var b strings.Builder
	Walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

// Value returns the current value of a form control. For a select it is
// the value of the selected option, or of the first option.
func Value(n *html.Node) string {
	if n.DataAtom != atom.Select {
		v, _ := Attr(n, "value")
		return v
	}
	options := Children(n, atom.Option)
	for _, o := range options {
		if _, ok := Attr(o, "selected"); ok {
			return optionValue(o)
		}
	}
	if len(options) > 0 {
		return optionValue(options[0])
	}
	return ""
}

// SetValue changes the value of a form control. For a select it selects
// the option with that value and reports false when there is none.
func SetValue(n *html.Node, value string) bool {
	if n.DataAtom != atom.Select {
		SetAttr(n, "value", value)
		return true
	}
	options := Children(n, atom.Option)
	idx := slices.IndexFunc(options, func(o *html.Node) bool { return optionValue(o) == value })
	if idx < 0 {
		return false
	}
	for i, o := range options {
		if i == idx {
			SetAttr(o, "selected", "")
		} else {
			RemoveAttr(o, "selected")
		}
	}
	return true
}

func optionValue(o *html.Node) string {
	if v, ok := Attr(o, "value"); ok {
		return v
	}
	return Text(o)
}

// Children returns the element children of n with the given tag.
func Children(n *html.Node, tag atom.Atom) []*html.Node {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == tag {
			children = append(children, c)
		}
	}
	return children
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the children of the visited node.
func Walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		Walk(c, fn)
		c = next
	}
}

// Find returns the first node in n's subtree, n included, matching pred.
func Find(n *html.Node, pred func(*html.Node) bool) *html.Node {
	var found *html.Node
	Walk(n, func(c *html.Node) bool {
		if found != nil {
			return false
		}
		if pred(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node in n's subtree matching pred in document order.
func FindAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	Walk(n, func(c *html.Node) bool {
		if pred(c) {
			found = append(found, c)
		}
		return true
	})
	return found
}

// OuterHTML renders n and its subtree. Text is escaped by the renderer.
func OuterHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
