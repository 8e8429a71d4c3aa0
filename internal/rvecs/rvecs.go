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

// Package rvecs contains functions to work with the result vectors, the internal representation
// of a sequence partition. For inputs x and y, rx[s] is set if x[s] was removed and ry[t] is set if
// y[t] was inserted. Both vectors carry one extra sentinel element at the end which is never set;
// it allows index arithmetic at len(x) and len(y) without bounds checks.
package rvecs

// Make allocates result vectors for x and y.
func Make[T any](x, y []T) (rx, ry []bool) {
	r := make([]bool, (len(x) + len(y) + 2))
	rx = r[: len(x)+1 : len(x)+1]
	ry = r[len(x)+1:]
	return
}

// Before returns the running count of set flags: n[i] is the number of set flags in r[:i]. The
// result has the same length as r, so n[len(r)-1] covers everything but the sentinel.
func Before(r []bool) []int {
	n := make([]int, len(r))
	c := 0
	for i, f := range r {
		n[i] = c
		if f {
			c++
		}
	}
	return n
}

// Count returns the number of set flags in r.
func Count(r []bool) int {
	c := 0
	for _, f := range r {
		if f {
			c++
		}
	}
	return c
}
