// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// The lis function is derived from Go's src/internal/diff/diff.go
// which has the following copyright and license:
//
// Copyright 2022 The Go Authors. All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are
// met:
//
//    * Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//    * Redistributions in binary form must reproduce the above
// copyright notice, this list of conditions and the following disclaimer
// in the documentation and/or other materials provided with the
// distribution.
//    * Neither the name of Google LLC nor the names of its
// contributors may be used to endorse or promote products derived from
// this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
// "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
// LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
// A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
// OWNER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
// LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
// DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
// THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
// (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package impl

import (
	"sort"

	"znkr.io/diffable/internal/rvecs"
)

// Moves selects the common elements of a partition that changed their relative order and
// have to be moved. The arguments are the results of [Diff] or [DiffFunc]; x and y must not
// contain duplicates.
//
// A common element keeps its position if its index shift is fully explained by removals before it
// in x and insertions before it in y. In other words, its rank among the common elements is the
// same in x and y. These elements are anchors, they are never moved. Between two consecutive
// anchors, the longest run of elements that is still in order is kept as well and everything
// else is reported as moved. The elements that aren't moved are therefore in the same relative
// order in x and y.
//
// The result has one entry per element of x; moved[s] is only ever set for common elements.
func Moves(rx, ry []bool, match []int) (moved []bool) {
	n := len(rx) - 1
	moved = make([]bool, n)
	del, ins := rvecs.Before(rx), rvecs.Before(ry)

	m := n - del[n] // number of common elements
	if m == 0 {
		return moved
	}

	// perm[j] is the rank in x of the common element with rank j in y. xidx maps ranks in x back to
	// indexes in x.
	perm := make([]int, m)
	xidx := make([]int, m)
	for s := range n {
		if rx[s] {
			continue
		}
		rs, rt := s-del[s], match[s]-ins[match[s]]
		perm[rt] = rs
		xidx[rs] = s
	}

	keep := make([]bool, m)
	var cand []int
	prev := -1
	for j := 0; j <= m; j++ {
		if j < m && perm[j] != j {
			continue
		}
		// Both prev and j are anchors (or sentinels). Only elements that sort between them in
		// both sequences can stay.
		cand = cand[:0]
		for k := prev + 1; k < j; k++ {
			if prev < perm[k] && perm[k] < j {
				cand = append(cand, k)
			}
		}
		for _, k := range lis(cand, perm) {
			keep[k] = true
		}
		if j < m {
			keep[j] = true
		}
		prev = j
	}

	for j, ok := range keep {
		if !ok {
			moved[xidx[perm[j]]] = true
		}
	}
	return moved
}

// lis returns the subset of idx for which the values perm[idx[i]] form a longest strictly
// increasing subsequence.
//
// The algorithm is as described in Thomas G. Szymanski, “A Special Case of the Maximal Common
// Subsequence Problem,” Princeton TR #170 (January 1975), available at
// https://research.swtch.com/tgs170.pdf.
func lis(idx []int, perm []int) []int {
	n := len(idx)
	if n == 0 {
		return nil
	}
	// T[k] is the position in idx of the smallest value that ends an increasing run of length
	// k+1. L[i] is the position in idx of the predecessor of i in the best run ending at i.
	T := make([]int, 0, n)
	L := make([]int, n)
	for i := range n {
		v := perm[idx[i]]
		k := sort.Search(len(T), func(k int) bool {
			return perm[idx[T[k]]] >= v
		})
		if k > 0 {
			L[i] = T[k-1]
		} else {
			L[i] = -1
		}
		if k == len(T) {
			T = append(T, i)
		} else {
			T[k] = i
		}
	}
	out := make([]int, len(T))
	for i, k := T[len(T)-1], len(T)-1; k >= 0; i, k = L[i], k-1 {
		out[k] = idx[i]
	}
	return out
}
