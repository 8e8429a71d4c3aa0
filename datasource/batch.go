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

package datasource

import (
	"errors"
	"fmt"

	"znkr.io/diffable"
)

// ErrInconsistent is returned when an operation refers to identifiers that are not where the
// snapshots say they are.
var ErrInconsistent = errors.New("operation does not match snapshots")

// IndexPath is the position of an item: the index of its section and the index within that
// section.
type IndexPath struct {
	Section, Item int
}

func (p IndexPath) String() string {
	return fmt.Sprintf("[%d, %d]", p.Section, p.Item)
}

// SectionMove moves the section at From in the old frame to To in the new frame.
type SectionMove struct {
	From, To int
}

// ItemMove moves the item at From in the old frame to To in the new frame.
type ItemMove struct {
	From, To IndexPath
}

// Batch is a diff resolved to positions. Deletes and move sources refer to the old snapshot,
// inserts, move destinations and reloads to the new one. A view applies a batch by
//
//  1. looking up everything that is deleted or moved using old positions,
//  2. removing deleted sections and items and detaching moved ones,
//  3. inserting sections and then items in ascending order of their new positions, and
//  4. refreshing reloaded sections and items.
//
// A deleted section takes the items left in it along. An inserted section comes with all of its
// items except for the positions that InsertItems and MoveItems fill. The view asks its data source
// for them.
type Batch struct {
	DeleteSections []int
	DeleteItems    []IndexPath
	InsertSections []int
	InsertItems    []IndexPath
	MoveSections   []SectionMove
	MoveItems      []ItemMove
	ReloadSections []int
	ReloadItems    []IndexPath
}

// Empty reports whether b has no updates.
func (b *Batch) Empty() bool {
	return len(b.DeleteSections) == 0 &&
		len(b.DeleteItems) == 0 &&
		len(b.InsertSections) == 0 &&
		len(b.InsertItems) == 0 &&
		len(b.MoveSections) == 0 &&
		len(b.MoveItems) == 0 &&
		len(b.ReloadSections) == 0 &&
		len(b.ReloadItems) == 0
}

// Resolve converts the operations returned by [diffable.Diff] for new and old into a batch.
//
// It returns an error wrapping [ErrInconsistent] if an operation doesn't fit the snapshots.
func Resolve[S, I comparable](ops []diffable.Operation[S, I], new, old diffable.Snapshot[S, I]) (*Batch, error) {
	b := &Batch{}
	for _, op := range ops {
		var ok bool
		switch op.Op {
		case diffable.SectionDelete:
			var idx int
			if idx, ok = old.IndexOfSection(op.Section); ok {
				b.DeleteSections = append(b.DeleteSections, idx)
			}
		case diffable.SectionInsert:
			var idx int
			if idx, ok = new.IndexOfSection(op.Section); ok {
				b.InsertSections = append(b.InsertSections, idx)
			}
		case diffable.SectionMove:
			from, okFrom := old.IndexOfSection(op.Section)
			to, okTo := new.IndexOfSection(op.Section)
			if ok = okFrom && okTo; ok {
				b.MoveSections = append(b.MoveSections, SectionMove{From: from, To: to})
			}
		case diffable.SectionReload:
			var idx int
			if idx, ok = new.IndexOfSection(op.Section); ok {
				b.ReloadSections = append(b.ReloadSections, idx)
			}
		case diffable.ItemDelete:
			var p IndexPath
			if p, ok = pathIn(old, op.Section, op.Item); ok {
				b.DeleteItems = append(b.DeleteItems, p)
			}
		case diffable.ItemInsert:
			var p IndexPath
			if p, ok = pathIn(new, op.Section, op.Item); ok {
				b.InsertItems = append(b.InsertItems, p)
			}
		case diffable.ItemMove:
			from, okFrom := pathIn(old, op.Section, op.Item)
			to, okTo := pathIn(new, op.ToSection, op.Item)
			if ok = okFrom && okTo; ok {
				b.MoveItems = append(b.MoveItems, ItemMove{From: from, To: to})
			}
		case diffable.ItemReload:
			var p IndexPath
			if p, ok = pathOf(new, op.Item); ok {
				b.ReloadItems = append(b.ReloadItems, p)
			}
		}
		if !ok {
			return nil, fmt.Errorf("datasource: %v: %w", op, ErrInconsistent)
		}
	}
	return b, nil
}

// pathOf returns the position of item in snap.
func pathOf[S, I comparable](snap diffable.Snapshot[S, I], item I) (IndexPath, bool) {
	sec, ok := snap.SectionIdentifier(item)
	if !ok {
		return IndexPath{}, false
	}
	return pathIn(snap, sec, item)
}

// pathIn returns the position of item in snap if it's part of section.
func pathIn[S, I comparable](snap diffable.Snapshot[S, I], section S, item I) (IndexPath, bool) {
	if sec, ok := snap.SectionIdentifier(item); !ok || sec != section {
		return IndexPath{}, false
	}
	s, _ := snap.IndexOfSection(section)
	i, _ := snap.IndexOfItem(item)
	return IndexPath{Section: s, Item: i}, true
}
