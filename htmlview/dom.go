// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package htmlview

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func newSection() *html.Node {
	sec := element(atom.Section)
	sec.AppendChild(element(atom.Ul))
	return sec
}

// list returns the <ul> of a section.
func list(sec *html.Node) *html.Node { return sec.FirstChild }

func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// childAt returns the child at index, nil if there is none. Children are a linked list, this is
// linear in index.
func childAt(parent *html.Node, index int) *html.Node {
	if index < 0 {
		return nil
	}
	i := 0
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if i == index {
			return c
		}
		i++
	}
	return nil
}

// insertChildAt inserts child so that it ends up at index. It reports false if index is larger
// than the number of children.
func insertChildAt(parent, child *html.Node, index int) bool {
	if ref := childAt(parent, index); ref != nil {
		parent.InsertBefore(child, ref)
		return true
	}
	if index != len(children(parent)) {
		return false
	}
	parent.AppendChild(child)
	return true
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}
