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

package impl

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name      string
		x, y      []string
		wantX     string // per element of x: M (match) or D (removed)
		wantY     string // per element of y: M (common) or I (inserted)
		wantMatch []int
	}{
		{
			name:      "identical",
			x:         []string{"foo", "bar", "baz"},
			y:         []string{"foo", "bar", "baz"},
			wantX:     "MMM",
			wantY:     "MMM",
			wantMatch: []int{0, 1, 2},
		},
		{
			name:      "empty",
			x:         nil,
			y:         nil,
			wantX:     "",
			wantY:     "",
			wantMatch: []int{},
		},
		{
			name:      "x-empty",
			x:         nil,
			y:         []string{"foo", "bar", "baz"},
			wantX:     "",
			wantY:     "III",
			wantMatch: []int{},
		},
		{
			name:      "y-empty",
			x:         []string{"foo", "bar", "baz"},
			y:         nil,
			wantX:     "DDD",
			wantY:     "",
			wantMatch: []int{-1, -1, -1},
		},
		{
			name:      "reordered",
			x:         strings.Split("ABCD", ""),
			y:         strings.Split("DCXA", ""),
			wantX:     "MDMM",
			wantY:     "MMIM",
			wantMatch: []int{3, -1, 1, 0},
		},
		{
			name:      "first-match-wins",
			x:         strings.Split("AAB", ""),
			y:         strings.Split("BAA", ""),
			wantX:     "MMM",
			wantY:     "MMM",
			wantMatch: []int{1, 1, 0},
		},
		{
			name:      "duplicates-in-y-are-not-inserted",
			x:         strings.Split("A", ""),
			y:         strings.Split("AAC", ""),
			wantX:     "M",
			wantY:     "MMI",
			wantMatch: []int{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := func(t *testing.T, rx, ry []bool, match []int) {
				t.Helper()
				if diff := cmp.Diff(tt.wantX, render(rx, 'D')); diff != "" {
					t.Errorf("rx differs [-want,+got]:\n%s", diff)
				}
				if diff := cmp.Diff(tt.wantY, render(ry, 'I')); diff != "" {
					t.Errorf("ry differs [-want,+got]:\n%s", diff)
				}
				if diff := cmp.Diff(tt.wantMatch, match); diff != "" {
					t.Errorf("match differs [-want,+got]:\n%s", diff)
				}
			}

			t.Run("diff", func(t *testing.T) {
				rx, ry, match := Diff(tt.x, tt.y)
				check(t, rx, ry, match)
			})

			t.Run("diff_func", func(t *testing.T) {
				rx, ry, match := DiffFunc(tt.x, tt.y, func(a, b string) bool { return a == b })
				check(t, rx, ry, match)
			})
		})
	}
}

func TestMoves(t *testing.T) {
	tests := []struct {
		name string
		x, y string
		want string // the moved elements of x, in order of x
	}{
		{"identical", "ABC", "ABC", ""},
		{"empty", "", "", ""},
		{"disjoint", "ABC", "XYZ", ""},
		{"swap", "AB", "BA", "B"},
		{"rotate-left", "ABC", "BCA", "A"},
		{"rotate-right", "ABCD", "DABC", "D"},
		{"reverse", "ABC", "CBA", "AC"},
		{"shift-by-insert", "ABC", "XABC", ""},
		{"shift-by-delete", "ABC", "BC", ""},
		{"shift-with-insert", "ABC", "BCAD", "A"},
		{"replace-and-reorder", "ABCDE", "XEBCY", "E"},
		{"anchor-limits-run", "DEBYWX", "WYBX", "BW"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := strings.Split(tt.x, ""), strings.Split(tt.y, "")
			if tt.x == "" {
				x = nil
			}
			if tt.y == "" {
				y = nil
			}
			rx, ry, match := Diff(x, y)
			moved := Moves(rx, ry, match)
			var sb strings.Builder
			for s, m := range moved {
				if m {
					if rx[s] {
						t.Errorf("removed element %q reported as moved", x[s])
					}
					sb.WriteString(x[s])
				}
			}
			if diff := cmp.Diff(tt.want, sb.String()); diff != "" {
				t.Errorf("Moves(...) differs [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestLIS(t *testing.T) {
	perm := []int{3, 0, 1, 4, 2}
	got := lis([]int{0, 1, 2, 3, 4}, perm)
	if diff := cmp.Diff([]int{1, 2, 4}, got); diff != "" {
		t.Errorf("lis(...) differs [-want,+got]:\n%s", diff)
	}
	if got := lis(nil, perm); got != nil {
		t.Errorf("lis(nil) = %v, want nil", got)
	}
}

func render(r []bool, set rune) string {
	var sb strings.Builder
	for _, f := range r[:len(r)-1] {
		if f {
			sb.WriteRune(set)
		} else {
			sb.WriteRune('M')
		}
	}
	return sb.String()
}
