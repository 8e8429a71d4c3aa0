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

// Package htmlview implements a list view on top of an HTML node tree.
//
// The tree consists of a <div> root with one <section> per section. Each section holds a <ul>
// with one <li> per item:
//
//	<div class="diffable">
//	  <section><ul><li>a</li><li>b</li></ul></section>
//	  <section><ul><li>c</li></ul></section>
//	</div>
//
// The content of an item comes from a [CellProvider]. Updates are applied in place, moved items
// keep their nodes.
package htmlview

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"znkr.io/diffable/datasource"
)

// ErrInconsistent is returned when a batch doesn't fit the current tree.
var ErrInconsistent = errors.New("htmlview: batch does not match view")

// CellProvider returns the content of the item at path. The returned nodes must not have a
// parent.
type CellProvider func(path datasource.IndexPath) []*html.Node

// Source reports the expected shape of the view. [datasource.DataSource] implements it.
type Source interface {
	NumberOfSections() int
	NumberOfItems(section int) int
}

// View is a [datasource.View] backed by an HTML node tree. It must not be used concurrently, a
// data source serializes its updates.
type View struct {
	// Source is used to verify updates, to populate inserted sections and by [View.Reload]. It's
	// optional for updates; without it, an inserted section only holds the items that the batch
	// inserts or moves into it.
	Source Source

	root  *html.Node
	cells CellProvider
}

// New returns an empty view.
func New(cells CellProvider) *View {
	root := element(atom.Div)
	setAttr(root, "class", "diffable")
	return &View{root: root, cells: cells}
}

// Root returns the root node of the view.
func (v *View) Root() *html.Node { return v.root }

// NumberOfSections returns the number of <section> nodes.
func (v *View) NumberOfSections() int { return len(children(v.root)) }

// NumberOfItems returns the number of <li> nodes in the section at index section.
func (v *View) NumberOfItems(section int) int {
	sec := childAt(v.root, section)
	if sec == nil {
		return 0
	}
	return len(children(list(sec)))
}

// Render writes the tree as HTML.
func (v *View) Render(w io.Writer) error {
	return html.Render(w, v.root)
}

func (v *View) String() string {
	var b strings.Builder
	_ = v.Render(&b) // strings.Builder never fails
	return b.String()
}

// Reload rebuilds the whole tree from Source and the cell provider.
func (v *View) Reload() error {
	if v.Source == nil {
		return errors.New("htmlview: reload without source")
	}
	for _, sec := range children(v.root) {
		v.root.RemoveChild(sec)
	}
	for s := range v.Source.NumberOfSections() {
		sec := newSection()
		for i := range v.Source.NumberOfItems(s) {
			li := element(atom.Li)
			v.fill(li, datasource.IndexPath{Section: s, Item: i})
			list(sec).AppendChild(li)
		}
		v.root.AppendChild(sec)
	}
	return nil
}

type placement struct {
	path datasource.IndexPath // Item is unused for sections
	node *html.Node
	kind string
}

// PerformBatchUpdates applies b to the tree. If animated is set, inserted, moved and reloaded
// nodes carry a data-state attribute until the next update, e.g. to trigger CSS transitions.
//
// If an error is returned, the tree may be partially updated and should be rebuilt with
// [View.Reload].
func (v *View) PerformBatchUpdates(b *datasource.Batch, animated bool) error {
	v.clearStates()

	// Look up everything that is taken out of the tree before touching it, all positions refer to
	// the old tree.
	taken := make(map[*html.Node]bool)
	take := func(n *html.Node, what string) error {
		if n == nil {
			return fmt.Errorf("%w: %s out of range", ErrInconsistent, what)
		}
		if taken[n] {
			return fmt.Errorf("%w: %s is updated twice", ErrInconsistent, what)
		}
		taken[n] = true
		return nil
	}

	var detachItems, detachSections []*html.Node
	for _, p := range b.DeleteItems {
		n := v.item(p)
		if err := take(n, "deleted item "+p.String()); err != nil {
			return err
		}
		detachItems = append(detachItems, n)
	}
	var itemPlacements []placement
	for _, m := range b.MoveItems {
		n := v.item(m.From)
		if err := take(n, "moved item "+m.From.String()); err != nil {
			return err
		}
		detachItems = append(detachItems, n)
		itemPlacements = append(itemPlacements, placement{m.To, n, "moved"})
	}
	for _, s := range b.DeleteSections {
		n := childAt(v.root, s)
		if err := take(n, fmt.Sprintf("deleted section %d", s)); err != nil {
			return err
		}
		detachSections = append(detachSections, n)
	}
	var sectionPlacements []placement
	for _, m := range b.MoveSections {
		n := childAt(v.root, m.From)
		if err := take(n, fmt.Sprintf("moved section %d", m.From)); err != nil {
			return err
		}
		detachSections = append(detachSections, n)
		sectionPlacements = append(sectionPlacements, placement{datasource.IndexPath{Section: m.To}, n, "moved"})
	}

	// Items first, moved items may leave a section that is deleted.
	for _, n := range detachItems {
		n.Parent.RemoveChild(n)
	}
	for _, n := range detachSections {
		n.Parent.RemoveChild(n)
	}

	// Everything else refers to the new tree. Placing in ascending order makes sure that every
	// index is valid once all nodes before it are in place.
	for _, s := range b.InsertSections {
		sectionPlacements = append(sectionPlacements, placement{datasource.IndexPath{Section: s}, newSection(), "inserted"})
	}
	slices.SortFunc(sectionPlacements, func(x, y placement) int { return x.path.Section - y.path.Section })
	for _, p := range sectionPlacements {
		if !insertChildAt(v.root, p.node, p.path.Section) {
			return fmt.Errorf("%w: can't place section at %d", ErrInconsistent, p.path.Section)
		}
		if animated {
			setAttr(p.node, "data-state", p.kind)
		}
	}

	for _, p := range b.InsertItems {
		itemPlacements = append(itemPlacements, placement{p, element(atom.Li), "inserted"})
	}
	if v.Source != nil {
		for _, s := range b.InsertSections {
			v.populate(s, itemPlacements)
		}
	}
	slices.SortFunc(itemPlacements, func(x, y placement) int { return comparePaths(x.path, y.path) })
	for _, p := range itemPlacements {
		sec := childAt(v.root, p.path.Section)
		if sec == nil || !insertChildAt(list(sec), p.node, p.path.Item) {
			return fmt.Errorf("%w: can't place item at %v", ErrInconsistent, p.path)
		}
		if p.kind == "inserted" {
			v.fill(p.node, p.path)
		}
		if animated {
			setAttr(p.node, "data-state", p.kind)
		}
	}

	for _, s := range b.ReloadSections {
		sec := childAt(v.root, s)
		if sec == nil {
			return fmt.Errorf("%w: reloaded section %d out of range", ErrInconsistent, s)
		}
		for i, li := range children(list(sec)) {
			v.fill(li, datasource.IndexPath{Section: s, Item: i})
		}
		if animated {
			setAttr(sec, "data-state", "reloaded")
		}
	}
	for _, p := range b.ReloadItems {
		li := v.item(p)
		if li == nil {
			return fmt.Errorf("%w: reloaded item %v out of range", ErrInconsistent, p)
		}
		v.fill(li, p)
		if animated {
			setAttr(li, "data-state", "reloaded")
		}
	}

	return v.verify()
}

// populate adds the items of the inserted section at index s that aren't placed by the batch. They
// are in order, so the placements still work in ascending order.
func (v *View) populate(s int, placements []placement) {
	placed := make(map[int]bool)
	for _, p := range placements {
		if p.path.Section == s {
			placed[p.path.Item] = true
		}
	}
	ul := list(childAt(v.root, s))
	for i := range v.Source.NumberOfItems(s) {
		if placed[i] {
			continue
		}
		li := element(atom.Li)
		v.fill(li, datasource.IndexPath{Section: s, Item: i})
		ul.AppendChild(li)
	}
}

// verify compares the shape of the tree with Source.
func (v *View) verify() error {
	if v.Source == nil {
		return nil
	}
	if got, want := v.NumberOfSections(), v.Source.NumberOfSections(); got != want {
		return fmt.Errorf("%w: view has %d sections after update, want %d", ErrInconsistent, got, want)
	}
	for s := range v.NumberOfSections() {
		if got, want := v.NumberOfItems(s), v.Source.NumberOfItems(s); got != want {
			return fmt.Errorf("%w: section %d has %d items after update, want %d", ErrInconsistent, s, got, want)
		}
	}
	return nil
}

func (v *View) item(p datasource.IndexPath) *html.Node {
	sec := childAt(v.root, p.Section)
	if sec == nil {
		return nil
	}
	return childAt(list(sec), p.Item)
}

// fill replaces the content of li with the cell at path.
func (v *View) fill(li *html.Node, path datasource.IndexPath) {
	for c := li.FirstChild; c != nil; c = li.FirstChild {
		li.RemoveChild(c)
	}
	for _, n := range v.cells(path) {
		li.AppendChild(n)
	}
}

func (v *View) clearStates() {
	for _, sec := range children(v.root) {
		removeAttr(sec, "data-state")
		for _, li := range children(list(sec)) {
			removeAttr(li, "data-state")
		}
	}
}

func comparePaths(a, b datasource.IndexPath) int {
	if a.Section != b.Section {
		return a.Section - b.Section
	}
	return a.Item - b.Item
}
