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
	"errors"
	"fmt"

	"znkr.io/diffable/orderedset"
)

var (
	// ErrDuplicate is returned when an identifier is added where it already exists.
	ErrDuplicate = orderedset.ErrDuplicate

	// ErrNotFound is returned when an identifier that must exist is not part of the snapshot.
	ErrNotFound = orderedset.ErrNotFound

	// ErrNoSections is returned when items are appended to a snapshot without sections.
	ErrNoSections = errors.New("no sections")
)

// Error describes a failed snapshot mutation. The snapshot is left unchanged.
type Error struct {
	Op  string // Name of the mutator, e.g. "AppendSections"
	ID  any    // The offending identifier, nil if there is none
	Err error  // One of ErrDuplicate, ErrNotFound, ErrNoSections
}

func (e *Error) Error() string {
	if e.ID == nil {
		return fmt.Sprintf("diffable: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("diffable: %s %v: %v", e.Op, e.ID, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
