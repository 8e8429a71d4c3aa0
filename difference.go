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
	"znkr.io/diffable/internal/impl"
	"znkr.io/diffable/internal/rvecs"
)

// Pair is an element that is common to both sequences: X is the element from the old and Y the
// element from the new sequence.
type Pair[T any] struct {
	X, Y T
}

// Partition splits two sequences into common, removed and inserted elements.
type Partition[T any] struct {
	Common   []Pair[T] // Elements in both sequences, in old order
	Removed  []T       // Elements only in the old sequence, in old order
	Inserted []T       // Elements only in the new sequence, in new order
}

// Difference partitions the elements of old and new into common, removed and inserted elements.
//
// Every element of old ends up in exactly one of Common and Removed, every element of new in
// exactly one of Common and Inserted. If an element is repeated, the first occurrence in new is
// used for matching; later occurrences are common if the element is common.
//
// Difference takes linear time in the combined length of old and new. Unlike [Diff], it doesn't
// decide which common elements moved.
func Difference[T comparable](old, new []T) Partition[T] {
	rx, ry, match := impl.Diff(old, new)
	return partition(old, new, rx, ry, match)
}

// DifferenceFunc partitions the elements of old and new using the provided equality comparison.
//
// Note that this function takes quadratic time, prefer [Difference] for comparable elements.
func DifferenceFunc[T any](old, new []T, eq func(a, b T) bool) Partition[T] {
	rx, ry, match := impl.DiffFunc(old, new, eq)
	return partition(old, new, rx, ry, match)
}

func partition[T any](x, y []T, rx, ry []bool, match []int) Partition[T] {
	// Counting first allows to preallocate the return value.
	nrm, nins := rvecs.Count(rx), rvecs.Count(ry)
	var p Partition[T]
	if n := len(x) - nrm; n > 0 {
		p.Common = make([]Pair[T], 0, n)
	}
	if nrm > 0 {
		p.Removed = make([]T, 0, nrm)
	}
	if nins > 0 {
		p.Inserted = make([]T, 0, nins)
	}
	for s := range x {
		if rx[s] {
			p.Removed = append(p.Removed, x[s])
			continue
		}
		p.Common = append(p.Common, Pair[T]{X: x[s], Y: y[match[s]]})
	}
	for t := range y {
		if ry[t] {
			p.Inserted = append(p.Inserted, y[t])
		}
	}
	return p
}
