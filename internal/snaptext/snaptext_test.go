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

package snaptext

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/diffable"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name           string
		in             string
		sections       []string
		items          map[string][]string
		reloadSections []string
		reloadItems    []string
	}{
		{
			name:  "empty",
			in:    "",
			items: map[string][]string{},
		},
		{
			name:     "sections-and-items",
			in:       "S1: a b\nS2:\nS3: c\n",
			sections: []string{"S1", "S2", "S3"},
			items: map[string][]string{
				"S1": {"a", "b"},
				"S3": {"c"},
			},
		},
		{
			name:     "comments-and-blank-lines",
			in:       "# a comment\n\n  S1:   a   b  \n",
			sections: []string{"S1"},
			items:    map[string][]string{"S1": {"a", "b"}},
		},
		{
			name:           "reloads",
			in:             "reload-sections: S2\nreload-items: a\nS1: a\nS2: b\n",
			sections:       []string{"S1", "S2"},
			items:          map[string][]string{"S1": {"a"}, "S2": {"b"}},
			reloadSections: []string{"S2"},
			reloadItems:    []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := Parse([]byte(tt.in))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if diff := cmp.Diff(tt.sections, snap.SectionIdentifiers()); diff != "" {
				t.Errorf("sections are different [-want,+got]:\n%s", diff)
			}
			items := make(map[string][]string)
			for _, sec := range snap.SectionIdentifiers() {
				if got := snap.ItemIdentifiersInSection(sec); len(got) > 0 {
					items[sec] = got
				}
			}
			if diff := cmp.Diff(tt.items, items); diff != "" {
				t.Errorf("items are different [-want,+got]:\n%s", diff)
			}
			if diff := cmp.Diff(tt.reloadSections, snap.ReloadedSectionIdentifiers()); diff != "" {
				t.Errorf("reloaded sections are different [-want,+got]:\n%s", diff)
			}
			if diff := cmp.Diff(tt.reloadItems, snap.ReloadedItemIdentifiers()); diff != "" {
				t.Errorf("reloaded items are different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"duplicate-section", "S1: a\nS1: b", diffable.ErrDuplicate},
		{"duplicate-item-across-sections", "S1: a\nS2: a", diffable.ErrDuplicate},
		{"duplicate-item-in-section", "S1: a a", diffable.ErrDuplicate},
		{"unknown-reload-section", "S1: a\nreload-sections: S2", diffable.ErrNotFound},
		{"unknown-reload-item", "S1: a\nreload-items: b", diffable.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) = %v, want error wrapping %v", tt.in, err, tt.want)
			}
		})
	}

	for _, in := range []string{"S1 a b", ": a"} {
		if _, err := Parse([]byte(in)); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", in)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	in := "S1: a b\nS2:\nS3: c\nreload-sections: S3\nreload-items: b a\n"
	snap := MustParse(in)
	if diff := cmp.Diff(in, string(Format(snap))); diff != "" {
		t.Errorf("Format(Parse(in)) is different [-want,+got]:\n%s", diff)
	}
}
