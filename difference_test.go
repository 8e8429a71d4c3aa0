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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDifference(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		want     Partition[string]
	}{
		{
			name: "empty",
		},
		{
			name: "identical",
			old:  "abc",
			new:  "abc",
			want: Partition[string]{
				Common: []Pair[string]{{"a", "a"}, {"b", "b"}, {"c", "c"}},
			},
		},
		{
			name: "old-empty",
			new:  "ab",
			want: Partition[string]{Inserted: []string{"a", "b"}},
		},
		{
			name: "new-empty",
			old:  "ab",
			want: Partition[string]{Removed: []string{"a", "b"}},
		},
		{
			name: "reordered",
			old:  "abcd",
			new:  "dxba",
			want: Partition[string]{
				Common:   []Pair[string]{{"a", "a"}, {"b", "b"}, {"d", "d"}},
				Removed:  []string{"c"},
				Inserted: []string{"x"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := split(tt.old), split(tt.new)
			t.Run("comparable", func(t *testing.T) {
				got := Difference(x, y)
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("Difference(%q, %q) is different [-want,+got]:\n%s", tt.old, tt.new, diff)
				}
			})
			t.Run("func", func(t *testing.T) {
				got := DifferenceFunc(x, y, func(a, b string) bool { return a == b })
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("DifferenceFunc(%q, %q) is different [-want,+got]:\n%s", tt.old, tt.new, diff)
				}
			})
		})
	}
}

// The equality of DifferenceFunc doesn't need to be identity, Pair keeps both elements.
func TestDifferenceFuncCaseInsensitive(t *testing.T) {
	got := DifferenceFunc([]string{"A", "b"}, []string{"B", "c"}, strings.EqualFold)
	want := Partition[string]{
		Common:   []Pair[string]{{"b", "B"}},
		Removed:  []string{"A"},
		Inserted: []string{"c"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DifferenceFunc is different [-want,+got]:\n%s", diff)
	}
}

func split(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "")
}
