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

package diffable

import (
	"fmt"

	"znkr.io/diffable/internal/impl"
)

// Op describes the kind of an [Operation].
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	SectionDelete Op = iota // A section of the old snapshot is removed
	SectionInsert           // A section of the new snapshot is inserted
	SectionMove             // A section changed its position relative to other sections
	SectionReload           // A section's content needs to be refreshed
	ItemDelete              // An item of the old snapshot is removed
	ItemInsert              // An item of the new snapshot is inserted
	ItemMove                // An item changed its position or its section
	ItemReload              // An item's content needs to be refreshed
)

// Operation describes a single change between two snapshots.
//
//   - For section operations, Section is the affected section.
//   - For ItemDelete, Section is the section of the item in the old snapshot.
//   - For ItemInsert, Section is the section of the item in the new snapshot.
//   - For ItemMove, Section is the section in the old and ToSection the section in the new
//     snapshot. Both are the same for moves within a section.
//   - For ItemReload, only Item is set.
//
// Fields that don't apply to an operation are unset (zero value).
type Operation[S, I comparable] struct {
	Op        Op
	Section   S
	ToSection S
	Item      I
}

func (o Operation[S, I]) String() string {
	switch o.Op {
	case SectionDelete, SectionInsert, SectionMove, SectionReload:
		return fmt.Sprintf("%v(%v)", o.Op, o.Section)
	case ItemDelete, ItemInsert:
		return fmt.Sprintf("%v(%v, %v)", o.Op, o.Section, o.Item)
	case ItemMove:
		return fmt.Sprintf("%v(%v, %v, %v)", o.Op, o.Section, o.ToSection, o.Item)
	case ItemReload:
		return fmt.Sprintf("%v(%v)", o.Op, o.Item)
	default:
		return fmt.Sprintf("%v", o.Op)
	}
}

// Diff compares old and new and returns the operations that transform old into new.
//
// Operations are ordered as follows:
//
//  1. For every section that only exists in old (in old order): an ItemMove for each of its items
//     that lives on in another section, then a SectionDelete. The other items go with the section.
//  2. For every section that only exists in new (in new order): a SectionInsert. Its items are
//     part of the inserted section, except for the ones that moved there from other sections.
//  3. For every section in both (in old order): a SectionMove if the section changed its position,
//     then ItemMove or ItemDelete for items that left the section, ItemInsert for items that don't
//     exist in old, and finally ItemMove for items that changed their position within the section.
//  4. A SectionReload for every section marked for reload in new that also exists in old, then an
//     ItemReload for every such item.
//
// Every item that exists in old or new is covered by at most one delete, insert or move. A section
// or item that keeps its position relative to its unchanged neighbors is not moved. Diff is
// deterministic, it returns the same operations for the same inputs.
//
// If old is empty, every section of new is inserted followed by an ItemInsert for each of its
// items. If new is empty, every item of old is deleted followed by its section.
//
// If old and new are identical and have no reload marks, the output has length zero.
func Diff[S, I comparable](new, old Snapshot[S, I]) []Operation[S, I] {
	d := differ[S, I]{
		old:        old,
		new:        new,
		oldSection: old.sectionIndex(),
		newSection: new.sectionIndex(),
	}
	switch {
	case old.NumberOfSections() == 0 && new.NumberOfSections() == 0:
		return nil
	case old.NumberOfSections() == 0:
		for _, sec := range new.sections.All() {
			d.emit(Operation[S, I]{Op: SectionInsert, Section: sec})
			for _, item := range new.itemsIn(sec).All() {
				d.emit(Operation[S, I]{Op: ItemInsert, Section: sec, Item: item})
			}
		}
	case new.NumberOfSections() == 0:
		for _, sec := range old.sections.All() {
			for _, item := range old.itemsIn(sec).All() {
				d.emit(Operation[S, I]{Op: ItemDelete, Section: sec, Item: item})
			}
			d.emit(Operation[S, I]{Op: SectionDelete, Section: sec})
		}
	default:
		d.diffSections()
	}
	d.reloads()
	return d.ops
}

type differ[S, I comparable] struct {
	old, new               Snapshot[S, I]
	oldSection, newSection map[I]S // section of every item
	ops                    []Operation[S, I]
}

func (s Snapshot[S, I]) sectionIndex() map[I]S {
	index := make(map[I]S, s.NumberOfItems())
	for _, sec := range s.sections.All() {
		for _, item := range s.itemsIn(sec).All() {
			index[item] = sec
		}
	}
	return index
}

func (d *differ[S, I]) emit(op Operation[S, I]) {
	d.ops = append(d.ops, op)
}

func (d *differ[S, I]) diffSections() {
	x, y := d.old.SectionIdentifiers(), d.new.SectionIdentifiers()
	rx, ry, match := impl.Diff(x, y)

	for s, sec := range x {
		if rx[s] {
			d.deleteSection(sec)
		}
	}
	for t, sec := range y {
		if ry[t] {
			d.emit(Operation[S, I]{Op: SectionInsert, Section: sec})
		}
	}

	moved := impl.Moves(rx, ry, match)
	for s, sec := range x {
		if rx[s] {
			continue
		}
		if moved[s] {
			d.emit(Operation[S, I]{Op: SectionMove, Section: sec})
		}
		d.diffItems(sec)
	}
}

func (d *differ[S, I]) diffItems(sec S) {
	x, y := d.old.ItemIdentifiersInSection(sec), d.new.ItemIdentifiersInSection(sec)
	rx, ry, match := impl.Diff(x, y)

	for s, item := range x {
		if rx[s] {
			d.removeItem(sec, item)
		}
	}
	for t, item := range y {
		if ry[t] {
			d.insertItem(sec, item)
		}
	}

	moved := impl.Moves(rx, ry, match)
	for s, item := range x {
		if moved[s] {
			d.emit(Operation[S, I]{Op: ItemMove, Section: sec, ToSection: sec, Item: item})
		}
	}
}

// deleteSection removes sec with all of its items. Items that live on in another section are
// moved out first.
func (d *differ[S, I]) deleteSection(sec S) {
	for _, item := range d.old.itemsIn(sec).All() {
		if to, ok := d.newSection[item]; ok {
			d.emit(Operation[S, I]{Op: ItemMove, Section: sec, ToSection: to, Item: item})
		}
	}
	d.emit(Operation[S, I]{Op: SectionDelete, Section: sec})
}

// removeItem handles an item that is no longer part of sec. It either moved to another section or
// it's gone.
func (d *differ[S, I]) removeItem(sec S, item I) {
	if to, ok := d.newSection[item]; ok {
		d.emit(Operation[S, I]{Op: ItemMove, Section: sec, ToSection: to, Item: item})
		return
	}
	d.emit(Operation[S, I]{Op: ItemDelete, Section: sec, Item: item})
}

// insertItem handles an item that is new in the common section sec. Items that came from another
// section are covered by removeItem or deleteSection.
func (d *differ[S, I]) insertItem(sec S, item I) {
	if _, ok := d.oldSection[item]; ok {
		return
	}
	d.emit(Operation[S, I]{Op: ItemInsert, Section: sec, Item: item})
}

func (d *differ[S, I]) reloads() {
	for _, sec := range d.new.reloadSections.All() {
		if d.old.sections.Contains(sec) {
			d.emit(Operation[S, I]{Op: SectionReload, Section: sec})
		}
	}
	for _, item := range d.new.reloadItems.All() {
		if _, ok := d.oldSection[item]; ok {
			d.emit(Operation[S, I]{Op: ItemReload, Item: item})
		}
	}
}
