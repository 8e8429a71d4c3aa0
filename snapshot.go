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
	"log/slog"
	"slices"
	"strings"

	"znkr.io/diffable/internal/config"
	"znkr.io/diffable/orderedset"
)

// Snapshot is the state of sectioned, ordered identifiers at one point in time.
//
// Section identifiers are unique and ordered. Item identifiers are unique across the whole
// snapshot: an item belongs to exactly one section. Besides its structure, a snapshot carries
// reload hints for sections and items whose content changed. These hints are consumed by the
// next [Diff] and are not part of the snapshot's identity.
//
// The zero value is an empty snapshot ready to use. Snapshots are values: after b := a, mutations
// of b never affect a and vice versa. Mutators are atomic, if a mutator returns an error the
// snapshot is unchanged. A snapshot must not be mutated concurrently with any other use.
type Snapshot[S, I comparable] struct {
	sections       orderedset.Set[S]
	items          map[S]*orderedset.Set[I] // never modified in place, see editor
	reloadSections orderedset.Set[S]
	reloadItems    orderedset.Set[I]
	logger         *slog.Logger
}

// NewSnapshot returns an empty snapshot.
//
// The following option is supported: [WithLogger]
func NewSnapshot[S, I comparable](opts ...Option) Snapshot[S, I] {
	cfg := config.FromOptions(opts, config.Logger)
	return Snapshot[S, I]{logger: cfg.Logger}
}

// NumberOfSections returns the number of sections.
func (s Snapshot[S, I]) NumberOfSections() int { return s.sections.Len() }

// NumberOfItems returns the number of items in all sections.
func (s Snapshot[S, I]) NumberOfItems() int {
	n := 0
	for _, set := range s.items {
		n += set.Len()
	}
	return n
}

// NumberOfItemsInSection returns the number of items in section, 0 if there is no such section.
func (s Snapshot[S, I]) NumberOfItemsInSection(section S) int {
	return s.itemsIn(section).Len()
}

// SectionIdentifiers returns all section identifiers in order.
func (s Snapshot[S, I]) SectionIdentifiers() []S { return s.sections.Values() }

// ItemIdentifiers returns the item identifiers of all sections in order.
func (s Snapshot[S, I]) ItemIdentifiers() []I {
	out := make([]I, 0, s.NumberOfItems())
	for _, sec := range s.sections.All() {
		for _, item := range s.itemsIn(sec).All() {
			out = append(out, item)
		}
	}
	return out
}

// ItemIdentifiersInSection returns the item identifiers of section in order, nil if there is no
// such section.
func (s Snapshot[S, I]) ItemIdentifiersInSection(section S) []I {
	return s.itemsIn(section).Values()
}

// SectionIdentifier returns the identifier of the section containing item.
func (s Snapshot[S, I]) SectionIdentifier(item I) (S, bool) {
	sec, _, ok := s.locate(item)
	return sec, ok
}

// IndexOfItem returns the index of item within its section.
func (s Snapshot[S, I]) IndexOfItem(item I) (int, bool) {
	_, i, ok := s.locate(item)
	return i, ok
}

// IndexOfSection returns the index of section.
func (s Snapshot[S, I]) IndexOfSection(section S) (int, bool) {
	return s.sections.Index(section)
}

// ContainsSection reports whether section is part of s.
func (s Snapshot[S, I]) ContainsSection(section S) bool { return s.sections.Contains(section) }

// ContainsItem reports whether item is part of any section of s.
func (s Snapshot[S, I]) ContainsItem(item I) bool {
	_, _, ok := s.locate(item)
	return ok
}

// ReloadedSectionIdentifiers returns the sections marked for reload, in the order they were
// marked.
func (s Snapshot[S, I]) ReloadedSectionIdentifiers() []S { return s.reloadSections.Values() }

// ReloadedItemIdentifiers returns the items marked for reload, in the order they were marked.
func (s Snapshot[S, I]) ReloadedItemIdentifiers() []I { return s.reloadItems.Values() }

// WithoutReloads returns a copy of s without reload hints.
func (s Snapshot[S, I]) WithoutReloads() Snapshot[S, I] {
	s.reloadSections = orderedset.Set[S]{}
	s.reloadItems = orderedset.Set[I]{}
	return s
}

// String returns a line per section with the section identifier followed by its items, and a line
// per kind of reload hint if there are any.
func (s Snapshot[S, I]) String() string {
	var b strings.Builder
	for _, sec := range s.sections.All() {
		fmt.Fprintf(&b, "%v:", sec)
		for _, item := range s.itemsIn(sec).All() {
			fmt.Fprintf(&b, " %v", item)
		}
		b.WriteByte('\n')
	}
	if s.reloadSections.Len() > 0 {
		b.WriteString("reload-sections:")
		for _, sec := range s.reloadSections.All() {
			fmt.Fprintf(&b, " %v", sec)
		}
		b.WriteByte('\n')
	}
	if s.reloadItems.Len() > 0 {
		b.WriteString("reload-items:")
		for _, item := range s.reloadItems.All() {
			fmt.Fprintf(&b, " %v", item)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// AppendSections appends sections to the end of s.
//
// It returns an error wrapping [ErrDuplicate] if a section is already part of s or repeated in
// sections.
func (s *Snapshot[S, I]) AppendSections(sections ...S) error {
	const op = "AppendSections"
	if err := s.checkNewSections(op, sections); err != nil {
		return err
	}
	e := s.edit()
	if err := e.sectionSet().Append(sections...); err != nil {
		return &Error{Op: op, Err: err}
	}
	e.commit(s)
	return nil
}

// InsertSectionsBefore inserts sections, in order, immediately before anchor.
func (s *Snapshot[S, I]) InsertSectionsBefore(anchor S, sections ...S) error {
	const op = "InsertSectionsBefore"
	if !s.sections.Contains(anchor) {
		return &Error{Op: op, ID: anchor, Err: ErrNotFound}
	}
	if err := s.checkNewSections(op, sections); err != nil {
		return err
	}
	e := s.edit()
	if err := e.sectionSet().InsertBefore(anchor, sections...); err != nil {
		return &Error{Op: op, Err: err}
	}
	e.commit(s)
	return nil
}

// InsertSectionsAfter inserts sections, in order, immediately after anchor.
func (s *Snapshot[S, I]) InsertSectionsAfter(anchor S, sections ...S) error {
	const op = "InsertSectionsAfter"
	if !s.sections.Contains(anchor) {
		return &Error{Op: op, ID: anchor, Err: ErrNotFound}
	}
	if err := s.checkNewSections(op, sections); err != nil {
		return err
	}
	e := s.edit()
	if err := e.sectionSet().InsertAfter(anchor, sections...); err != nil {
		return &Error{Op: op, Err: err}
	}
	e.commit(s)
	return nil
}

// DeleteSections removes sections together with their items. Sections that are not part of s are
// ignored.
func (s *Snapshot[S, I]) DeleteSections(sections ...S) {
	e := s.edit()
	for _, sec := range sections {
		if !e.sections.Contains(sec) {
			continue
		}
		for _, item := range e.itemsIn(sec).All() {
			e.unmarkItem(item)
		}
		e.sectionSet().Remove(sec)
		e.dropItems(sec)
		e.unmarkSection(sec)
	}
	e.commit(s)
}

// MoveSectionBefore moves section immediately before anchor.
func (s *Snapshot[S, I]) MoveSectionBefore(section, anchor S) error {
	from, to, err := s.sectionIndexes("MoveSectionBefore", section, anchor)
	if err != nil {
		return err
	}
	if from < to {
		to-- // the anchor shifts once section is taken out
	}
	e := s.edit()
	e.sectionSet().Move(from, to)
	e.commit(s)
	return nil
}

// MoveSectionAfter moves section immediately after anchor.
func (s *Snapshot[S, I]) MoveSectionAfter(section, anchor S) error {
	from, to, err := s.sectionIndexes("MoveSectionAfter", section, anchor)
	if err != nil {
		return err
	}
	if from > to {
		to++
	}
	e := s.edit()
	e.sectionSet().Move(from, to)
	e.commit(s)
	return nil
}

// ReloadSections marks sections for reload. Marking a section twice has no additional effect.
//
// It returns an error wrapping [ErrNotFound] if a section is not part of s.
func (s *Snapshot[S, I]) ReloadSections(sections ...S) error {
	for _, sec := range sections {
		if !s.sections.Contains(sec) {
			return &Error{Op: "ReloadSections", ID: sec, Err: ErrNotFound}
		}
	}
	e := s.edit()
	for _, sec := range sections {
		e.reloadSectionSet().Add(sec)
	}
	e.commit(s)
	return nil
}

// AppendItems appends items to the last section.
//
// Items that are already part of s are moved: they are removed from their current position and
// appended like new items. This is legal but slow, a warning is logged.
//
// It returns an error wrapping [ErrNoSections] if s has no sections.
func (s *Snapshot[S, I]) AppendItems(items ...I) error {
	const op = "AppendItems"
	last, ok := s.sections.Last()
	if !ok {
		return &Error{Op: op, Err: ErrNoSections}
	}
	return s.appendItems(op, last, items)
}

// AppendItemsToSection appends items to section. Items already part of s are moved like in
// [Snapshot.AppendItems].
//
// It returns an error wrapping [ErrNotFound] if section is not part of s.
func (s *Snapshot[S, I]) AppendItemsToSection(section S, items ...I) error {
	const op = "AppendItemsToSection"
	if !s.sections.Contains(section) {
		return &Error{Op: op, ID: section, Err: ErrNotFound}
	}
	return s.appendItems(op, section, items)
}

func (s *Snapshot[S, I]) appendItems(op string, section S, items []I) error {
	e := s.edit()
	batch, relocated := e.detach(items)
	if err := e.itemSet(section).Append(batch...); err != nil {
		return &Error{Op: op, Err: err}
	}
	e.commit(s)
	s.warnRelocated(op, relocated)
	return nil
}

// InsertItemsBefore inserts items, in order, immediately before anchor in anchor's section. Items
// already part of s are moved like in [Snapshot.AppendItems].
//
// It returns an error wrapping [ErrNotFound] if anchor is not part of s, and one wrapping
// [ErrDuplicate] if anchor is one of items.
func (s *Snapshot[S, I]) InsertItemsBefore(anchor I, items ...I) error {
	const op = "InsertItemsBefore"
	sec, err := s.anchorSection(op, anchor, items)
	if err != nil {
		return err
	}
	e := s.edit()
	batch, relocated := e.detach(items)
	if err := e.itemSet(sec).InsertBefore(anchor, batch...); err != nil {
		return &Error{Op: op, Err: err}
	}
	e.commit(s)
	s.warnRelocated(op, relocated)
	return nil
}

// InsertItemsAfter inserts items, in order, immediately after anchor in anchor's section. Items
// already part of s are moved like in [Snapshot.AppendItems].
//
// It returns an error wrapping [ErrNotFound] if anchor is not part of s, and one wrapping
// [ErrDuplicate] if anchor is one of items.
func (s *Snapshot[S, I]) InsertItemsAfter(anchor I, items ...I) error {
	const op = "InsertItemsAfter"
	sec, err := s.anchorSection(op, anchor, items)
	if err != nil {
		return err
	}
	e := s.edit()
	batch, relocated := e.detach(items)
	if err := e.itemSet(sec).InsertAfter(anchor, batch...); err != nil {
		return &Error{Op: op, Err: err}
	}
	e.commit(s)
	s.warnRelocated(op, relocated)
	return nil
}

// DeleteItems removes items from s. Items that are not part of s are ignored.
func (s *Snapshot[S, I]) DeleteItems(items ...I) {
	e := s.edit()
	for _, item := range items {
		sec, _, ok := e.locate(item)
		if !ok {
			continue
		}
		e.itemSet(sec).Remove(item)
		e.unmarkItem(item)
	}
	e.commit(s)
}

// DeleteAllItems removes all sections and items.
func (s *Snapshot[S, I]) DeleteAllItems() {
	*s = Snapshot[S, I]{logger: s.logger}
}

// MoveItemBefore moves item immediately before anchor. If anchor is in a different section, the
// item changes sections.
//
// It returns an error wrapping [ErrNotFound] if item or anchor is not part of s.
func (s *Snapshot[S, I]) MoveItemBefore(item, anchor I) error {
	const op = "MoveItemBefore"
	from, to, err := s.itemSections(op, item, anchor)
	if err != nil || item == anchor {
		return err
	}
	e := s.edit()
	e.itemSet(from).Remove(item)
	if err := e.itemSet(to).InsertBefore(anchor, item); err != nil {
		return &Error{Op: op, Err: err}
	}
	e.commit(s)
	return nil
}

// MoveItemAfter moves item immediately after anchor. If anchor is in a different section, the
// item changes sections.
//
// It returns an error wrapping [ErrNotFound] if item or anchor is not part of s.
func (s *Snapshot[S, I]) MoveItemAfter(item, anchor I) error {
	const op = "MoveItemAfter"
	from, to, err := s.itemSections(op, item, anchor)
	if err != nil || item == anchor {
		return err
	}
	e := s.edit()
	e.itemSet(from).Remove(item)
	if err := e.itemSet(to).InsertAfter(anchor, item); err != nil {
		return &Error{Op: op, Err: err}
	}
	e.commit(s)
	return nil
}

// ReloadItems marks items for reload. Marking an item twice has no additional effect.
//
// It returns an error wrapping [ErrNotFound] if an item is not part of s.
func (s *Snapshot[S, I]) ReloadItems(items ...I) error {
	for _, item := range items {
		if _, _, ok := s.locate(item); !ok {
			return &Error{Op: "ReloadItems", ID: item, Err: ErrNotFound}
		}
	}
	e := s.edit()
	for _, item := range items {
		e.reloadItemSet().Add(item)
	}
	e.commit(s)
	return nil
}

func (s Snapshot[S, I]) itemsIn(section S) *orderedset.Set[I] {
	if set := s.items[section]; set != nil {
		return set
	}
	return new(orderedset.Set[I])
}

// locate returns the section and the index within that section of item.
func (s Snapshot[S, I]) locate(item I) (S, int, bool) {
	for _, sec := range s.sections.All() {
		if i, ok := s.itemsIn(sec).Index(item); ok {
			return sec, i, true
		}
	}
	var zero S
	return zero, -1, false
}

func (s Snapshot[S, I]) checkNewSections(op string, sections []S) error {
	for i, sec := range sections {
		if s.sections.Contains(sec) || slices.Contains(sections[:i], sec) {
			return &Error{Op: op, ID: sec, Err: ErrDuplicate}
		}
	}
	return nil
}

func (s Snapshot[S, I]) sectionIndexes(op string, section, anchor S) (from, to int, err error) {
	from, ok := s.sections.Index(section)
	if !ok {
		return 0, 0, &Error{Op: op, ID: section, Err: ErrNotFound}
	}
	to, ok = s.sections.Index(anchor)
	if !ok {
		return 0, 0, &Error{Op: op, ID: anchor, Err: ErrNotFound}
	}
	return from, to, nil
}

func (s Snapshot[S, I]) itemSections(op string, item, anchor I) (from, to S, err error) {
	from, _, ok := s.locate(item)
	if !ok {
		return from, to, &Error{Op: op, ID: item, Err: ErrNotFound}
	}
	to, _, ok = s.locate(anchor)
	if !ok {
		return from, to, &Error{Op: op, ID: anchor, Err: ErrNotFound}
	}
	return from, to, nil
}

func (s Snapshot[S, I]) anchorSection(op string, anchor I, items []I) (S, error) {
	sec, _, ok := s.locate(anchor)
	if !ok {
		return sec, &Error{Op: op, ID: anchor, Err: ErrNotFound}
	}
	if slices.Contains(items, anchor) {
		return sec, &Error{Op: op, ID: anchor, Err: ErrDuplicate}
	}
	return sec, nil
}

func (s Snapshot[S, I]) warnRelocated(op string, n int) {
	if n == 0 {
		return
	}
	logger := s.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("inserted identifiers already present; existing items are moved into place, this is slow if items are not unique when inserted",
		slog.String("op", op),
		slog.Int("count", n))
}

// editor is a working copy of a snapshot. Snapshots share storage after assignment, so nothing
// reachable from a snapshot may be modified in place. The editor clones every part the first time
// it's modified and commit publishes the result.
type editor[S, I comparable] struct {
	Snapshot[S, I]
	sectionsOwned bool
	itemsOwned    map[S]bool // nil until the items map is cloned
	reloadsOwned  bool
}

func (s *Snapshot[S, I]) edit() *editor[S, I] {
	return &editor[S, I]{Snapshot: *s}
}

func (e *editor[S, I]) commit(s *Snapshot[S, I]) {
	*s = e.Snapshot
}

func (e *editor[S, I]) sectionSet() *orderedset.Set[S] {
	if !e.sectionsOwned {
		e.sections = e.sections.Clone()
		e.sectionsOwned = true
	}
	return &e.sections
}

func (e *editor[S, I]) ownItems() {
	if e.itemsOwned != nil {
		return
	}
	items := make(map[S]*orderedset.Set[I], len(e.items)+1)
	for sec, set := range e.items {
		items[sec] = set
	}
	e.items = items
	e.itemsOwned = make(map[S]bool)
}

func (e *editor[S, I]) itemSet(section S) *orderedset.Set[I] {
	e.ownItems()
	if !e.itemsOwned[section] {
		set := e.itemsIn(section).Clone()
		e.items[section] = &set
		e.itemsOwned[section] = true
	}
	return e.items[section]
}

func (e *editor[S, I]) dropItems(section S) {
	e.ownItems()
	delete(e.items, section)
	delete(e.itemsOwned, section)
}

func (e *editor[S, I]) ownReloads() {
	if !e.reloadsOwned {
		e.reloadSections = e.reloadSections.Clone()
		e.reloadItems = e.reloadItems.Clone()
		e.reloadsOwned = true
	}
}

func (e *editor[S, I]) reloadSectionSet() *orderedset.Set[S] {
	e.ownReloads()
	return &e.reloadSections
}

func (e *editor[S, I]) reloadItemSet() *orderedset.Set[I] {
	e.ownReloads()
	return &e.reloadItems
}

func (e *editor[S, I]) unmarkSection(section S) {
	if e.reloadSections.Contains(section) {
		e.reloadSectionSet().Remove(section)
	}
}

func (e *editor[S, I]) unmarkItem(item I) {
	if e.reloadItems.Contains(item) {
		e.reloadItemSet().Remove(item)
	}
}

// detach prepares items for insertion. Items that are already part of the snapshot are removed
// from their section. If an item is repeated, the last occurrence determines its position. The
// result is the list of items to insert and the number of relocated items.
func (e *editor[S, I]) detach(items []I) (batch []I, relocated int) {
	batch = make([]I, 0, len(items))
	for _, item := range items {
		if i := slices.Index(batch, item); i >= 0 {
			batch = slices.Delete(batch, i, i+1)
			relocated++
		} else if sec, _, ok := e.locate(item); ok {
			e.itemSet(sec).Remove(item)
			relocated++
		}
		batch = append(batch, item)
	}
	return batch, relocated
}
