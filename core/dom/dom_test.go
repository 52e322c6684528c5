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
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parse(t *testing.T, page string) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func TestKebab(t *testing.T) {
	tests := map[string]string{
		"container":         "container",
		"limitsDiv":         "limits-div",
		"noDataP":           "no-data-p",
		"textAlign":         "text-align",
		"doubleScrollInner": "double-scroll-inner",
		"already-kebab":     "already-kebab",
	}
	for in, want := range tests {
		assert.Equal(t, want, Kebab(in), in)
	}
}

func TestResolve(t *testing.T) {
	doc := parse(t, `<html><body><div id="a"></div><div class="grid"></div><p class="grid"></p></body></html>`)

	t.Run("selector", func(t *testing.T) {
		n := doc.Resolve(Selector(".grid"))
		assert.Equal(t, "div", n.Data)
		assert.Contains(t, Classes(n), "grid")

		n = doc.Resolve(Selector("#a"))
		v, _ := Attr(n, "id")
		assert.Equal(t, "a", v)
	})

	t.Run("node", func(t *testing.T) {
		p := doc.Resolve(Selector("p.grid"))
		assert.Same(t, p, doc.Resolve(Node(p)))
	})

	t.Run("fallbacks to root", func(t *testing.T) {
		assert.Same(t, doc.Body(), doc.Resolve(Selector("#missing")))
		assert.Same(t, doc.Body(), doc.Resolve(Selector("[[[")))
		assert.Same(t, doc.Body(), doc.Resolve(Node(nil)))
		assert.Same(t, doc.Body(), doc.Resolve(Root()))
		assert.Same(t, doc.Body(), doc.Resolve(nil))
	})
}

func TestQueryErrors(t *testing.T) {
	doc := NewDocument()
	_, err := doc.Query("[[[")
	assert.Error(t, err)

	n, err := doc.Query("table")
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestClassesAndAttributes(t *testing.T) {
	n := NewElement("DIV")
	assert.Equal(t, "div", n.Data)

	SetAttr(n, "class", "a b")
	AddClass(n, "b", "c", "")
	assert.Equal(t, []string{"a", "b", "c"}, Classes(n))

	SetAttr(n, "role", "grid")
	SetAttr(n, "role", "table")
	v, ok := Attr(n, "role")
	assert.True(t, ok)
	assert.Equal(t, "table", v)

	RemoveAttr(n, "role")
	_, ok = Attr(n, "role")
	assert.False(t, ok)
}

func TestStyles(t *testing.T) {
	n := NewElement("td")

	SetStyle(n, "textAlign", "left")
	SetStyle(n, "width", "100px")
	assert.Equal(t, "text-align: left; width: 100px", mustAttr(t, n, "style"))

	SetStyle(n, "text-align", "right")
	assert.Equal(t, "right", Style(n, "textAlign"))
	assert.Equal(t, "text-align: right; width: 100px", mustAttr(t, n, "style"))

	SetStyle(n, "width", "")
	assert.Equal(t, "text-align: right", mustAttr(t, n, "style"))

	SetCSSText(n, "color:red;;  margin : 0 ")
	assert.Equal(t, "color: red; margin: 0", mustAttr(t, n, "style"))

	SetCSSText(n, "")
	SetStyle(n, "color", "")
	_, ok := Attr(n, "style")
	assert.False(t, ok)
}

func mustAttr(t *testing.T, n *html.Node, key string) string {
	t.Helper()
	v, ok := Attr(n, key)
	require.True(t, ok, "missing attribute %s", key)
	return v
}

func TestSetTextEscapes(t *testing.T) {
	n := NewElement("td")
	SetText(n, "<b>bold</b> & co")
	assert.Equal(t, "<b>bold</b> & co", Text(n))

	out, err := OuterHTML(n)
	require.NoError(t, err)
	assert.Equal(t, "<td>&lt;b&gt;bold&lt;/b&gt; &amp; co</td>", out)

	SetText(n, "")
	assert.Nil(t, n.FirstChild)
}

func TestSelectValue(t *testing.T) {
	sel := NewElement("select")
	for _, v := range []string{"10", "25", "50"} {
		o := NewElement("option")
		SetAttr(o, "value", v)
		SetText(o, v)
		Append(sel, o)
	}

	assert.Equal(t, "10", Value(sel))
	assert.True(t, SetValue(sel, "25"))
	assert.Equal(t, "25", Value(sel))
	assert.False(t, SetValue(sel, "99"))
	assert.Equal(t, "25", Value(sel))

	input := NewElement("input")
	assert.Equal(t, "", Value(input))
	SetValue(input, "abc")
	assert.Equal(t, "abc", Value(input))
}

func TestEvents(t *testing.T) {
	doc := NewDocument()
	div := NewElement("div")
	input := NewElement("input")
	Append(div, input)
	Append(doc.Body(), div)

	var calls []string
	doc.AddEventListener(input, "input", func(e Event) error {
		calls = append(calls, "first:"+e.Type)
		return nil
	})
	doc.AddEventListener(input, "input", func(e Event) error {
		calls = append(calls, "second")
		return errors.New("boom")
	})

	err := doc.Dispatch(input, "input")
	assert.EqualError(t, err, "boom")
	assert.Equal(t, []string{"first:input", "second"}, calls)
	assert.NoError(t, doc.Dispatch(input, "change"))

	doc.Focus(input)
	assert.Same(t, input, doc.Focused())
	_, ok := Attr(input, "autofocus")
	assert.True(t, ok)

	doc.Clear(doc.Body())
	calls = nil
	assert.NoError(t, doc.Dispatch(input, "input"))
	assert.Empty(t, calls)
	assert.Nil(t, doc.Focused())
	assert.False(t, doc.Contains(div))
	assert.Nil(t, doc.Body().FirstChild)
}

func TestFocusMovesAutofocus(t *testing.T) {
	doc := NewDocument()
	a, b := NewElement("input"), NewElement("input")
	Append(doc.Body(), a)
	Append(doc.Body(), b)

	doc.Focus(a)
	doc.Focus(b)
	_, ok := Attr(a, "autofocus")
	assert.False(t, ok)
	_, ok = Attr(b, "autofocus")
	assert.True(t, ok)
}

func TestDocumentRender(t *testing.T) {
	doc := NewDocument()
	p := NewElement("p")
	SetText(p, "hi")
	Append(doc.Body(), p)

	var b strings.Builder
	require.NoError(t, doc.Render(&b))
	assert.Contains(t, b.String(), "<body><p>hi</p></body>")
}
