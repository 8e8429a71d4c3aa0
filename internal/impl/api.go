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

// Package impl implements the sequence partition and the move selection used by the snapshot
// diff. Both operate on result vectors (see package rvecs).
package impl

import "znkr.io/diffable/internal/rvecs"

// Diff partitions x and y into common, removed and inserted elements.
//
// For every x[s], match[s] is the index of the first equal element in y, or -1 if there is none,
// in which case rx[s] is set. ry[t] is set if y[t] is not equal to any element of x that has a
// match.
func Diff[T comparable](x, y []T) (rx, ry []bool, match []int) {
	rx, ry = rvecs.Make(x, y)
	match = make([]int, len(x))

	first := make(map[T]int, len(y))
	for t, e := range y {
		if _, ok := first[e]; !ok {
			first[e] = t
		}
	}
	common := make(map[T]struct{}, len(x))
	for s, e := range x {
		t, ok := first[e]
		if !ok {
			rx[s] = true
			match[s] = -1
			continue
		}
		match[s] = t
		common[e] = struct{}{}
	}
	for t, e := range y {
		if _, ok := common[e]; !ok {
			ry[t] = true
		}
	}
	return rx, ry, match
}

// DiffFunc is like [Diff] but uses eq to compare elements. It's O(len(x)*len(y)).
func DiffFunc[T any](x, y []T, eq func(a, b T) bool) (rx, ry []bool, match []int) {
	rx, ry = rvecs.Make(x, y)
	match = make([]int, len(x))

	for s := range x {
		match[s] = -1
		for t := range y {
			if eq(x[s], y[t]) {
				match[s] = t
				break
			}
		}
		rx[s] = match[s] < 0
	}
	for t := range y {
		ry[t] = true
		for s := range x {
			if match[s] >= 0 && eq(x[s], y[t]) {
				ry[t] = false
				break
			}
		}
	}
	return rx, ry, match
}
