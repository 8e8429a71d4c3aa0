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

// Package orderedset provides a sequence container that holds every element at most once.
//
// Iteration order is the order in which elements were appended, inserted or moved. Membership
// tests are linear in the size of the set; the container is meant for identifier lists of modest
// size where a deterministic order matters more than asymptotic lookup cost.
package orderedset

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

var (
	// ErrDuplicate is returned when an element that is already part of the set is added again.
	ErrDuplicate = errors.New("duplicate element")

	// ErrNotFound is returned when an anchor element is not part of the set.
	ErrNotFound = errors.New("element not found")
)

// Set is an ordered collection of unique elements.
//
// The zero value is an empty set ready to use. A Set must not be copied after first use, use
// [Set.Clone] to obtain an independent copy.
type Set[T comparable] struct {
	elems []T
}

// Of returns a set containing elems in order. It returns [ErrDuplicate] if elems contains the same
// element twice.
func Of[T comparable](elems ...T) (*Set[T], error) {
	var s Set[T]
	if err := s.Append(elems...); err != nil {
		return nil, err
	}
	return &s, nil
}

// Len returns the number of elements in the set.
func (s *Set[T]) Len() int { return len(s.elems) }

// At returns the element at index i. It panics if i is out of range.
func (s *Set[T]) At(i int) T { return s.elems[i] }

// Last returns the last element of the set.
func (s *Set[T]) Last() (T, bool) {
	if len(s.elems) == 0 {
		var zero T
		return zero, false
	}
	return s.elems[len(s.elems)-1], true
}

// Index returns the index of elem in the set.
func (s *Set[T]) Index(elem T) (int, bool) {
	i := slices.Index(s.elems, elem)
	return i, i >= 0
}

// Contains reports whether elem is part of the set.
func (s *Set[T]) Contains(elem T) bool {
	return slices.Contains(s.elems, elem)
}

// All returns an iterator over indexes and elements in order.
func (s *Set[T]) All() iter.Seq2[int, T] {
	return slices.All(s.elems)
}

// Values returns a copy of the elements in order, nil if the set is empty.
func (s *Set[T]) Values() []T {
	if len(s.elems) == 0 {
		return nil
	}
	return slices.Clone(s.elems)
}

// Clone returns a copy of s that shares no storage with s.
func (s *Set[T]) Clone() Set[T] {
	return Set[T]{elems: slices.Clone(s.elems)}
}

// Append adds elems to the end of the set.
//
// If any element is already present, or appears more than once in elems, Append returns
// [ErrDuplicate] and leaves the set unchanged.
func (s *Set[T]) Append(elems ...T) error {
	if err := s.checkNew(elems); err != nil {
		return err
	}
	s.elems = append(s.elems, elems...)
	return nil
}

// Add adds elem to the end of the set unless it's already present. It reports whether elem was
// added.
func (s *Set[T]) Add(elem T) bool {
	if s.Contains(elem) {
		return false
	}
	s.elems = append(s.elems, elem)
	return true
}

// InsertBefore inserts elems, in order, immediately before anchor.
func (s *Set[T]) InsertBefore(anchor T, elems ...T) error {
	i, ok := s.Index(anchor)
	if !ok {
		return fmt.Errorf("anchor %v: %w", anchor, ErrNotFound)
	}
	if err := s.checkNew(elems); err != nil {
		return err
	}
	s.elems = slices.Insert(s.elems, i, elems...)
	return nil
}

// InsertAfter inserts elems, in order, immediately after anchor.
func (s *Set[T]) InsertAfter(anchor T, elems ...T) error {
	i, ok := s.Index(anchor)
	if !ok {
		return fmt.Errorf("anchor %v: %w", anchor, ErrNotFound)
	}
	if err := s.checkNew(elems); err != nil {
		return err
	}
	s.elems = slices.Insert(s.elems, i+1, elems...)
	return nil
}

// RemoveAt removes the element at index i. It panics if i is out of range.
func (s *Set[T]) RemoveAt(i int) {
	s.elems = slices.Delete(s.elems, i, i+1)
}

// Remove removes elem from the set and reports whether it was present.
func (s *Set[T]) Remove(elem T) bool {
	i, ok := s.Index(elem)
	if !ok {
		return false
	}
	s.RemoveAt(i)
	return true
}

// Move moves the element at index from to index to. The relative order of all other elements is
// preserved. It panics if either index is out of range.
func (s *Set[T]) Move(from, to int) {
	if from == to {
		_ = s.elems[from] // bounds check
		return
	}
	e := s.elems[from]
	s.elems = slices.Delete(s.elems, from, from+1)
	s.elems = slices.Insert(s.elems, to, e)
}

// checkNew returns an error if any of elems is already in s or repeated within elems.
func (s *Set[T]) checkNew(elems []T) error {
	for i, e := range elems {
		if s.Contains(e) || slices.Contains(elems[:i], e) {
			return fmt.Errorf("%v: %w", e, ErrDuplicate)
		}
	}
	return nil
}
