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

package snapgen

import (
	"fmt"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/diffable"
)

func TestDeterministic(t *testing.T) {
	gen := func() []string {
		g := New("seed")
		s, err := g.Snapshot(4, 20)
		if err != nil {
			t.Fatal(err)
		}
		var out []string
		for range 50 {
			if err := g.Mutate(&s); err != nil {
				t.Fatal(err)
			}
			out = append(out, s.String())
		}
		return out
	}
	if diff := cmp.Diff(gen(), gen()); diff != "" {
		t.Errorf("generators with the same seed differ [-first,+second]:\n%s", diff)
	}
}

func TestMutateNeverFails(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	for i := range 20 {
		g := New(fmt.Sprintf("seed-%d", i))
		s, err := g.Snapshot(3, 10, diffable.WithLogger(logger))
		if err != nil {
			t.Fatal(err)
		}
		for step := range 200 {
			if err := g.Mutate(&s); err != nil {
				t.Fatalf("seed-%d step %d: %v\n%s", i, step, err, s)
			}
			if err := checkUnique(s); err != nil {
				t.Fatalf("seed-%d step %d: %v\n%s", i, step, err, s)
			}
		}
	}
}

// checkUnique verifies that no section or item appears twice in s and that the counts agree with
// the identifiers.
func checkUnique(s diffable.Snapshot[string, string]) error {
	sections := s.SectionIdentifiers()
	if len(sections) != s.NumberOfSections() {
		return fmt.Errorf("%d section identifiers, but NumberOfSections() = %d", len(sections), s.NumberOfSections())
	}
	if dup, ok := duplicate(sections); ok {
		return fmt.Errorf("section %s appears twice", dup)
	}

	items := s.ItemIdentifiers()
	if len(items) != s.NumberOfItems() {
		return fmt.Errorf("%d item identifiers, but NumberOfItems() = %d", len(items), s.NumberOfItems())
	}
	if dup, ok := duplicate(items); ok {
		return fmt.Errorf("item %s appears twice", dup)
	}
	n := 0
	for _, sec := range sections {
		n += s.NumberOfItemsInSection(sec)
	}
	if n != len(items) {
		return fmt.Errorf("sections hold %d items, but there are %d item identifiers", n, len(items))
	}
	return nil
}

func duplicate(ids []string) (string, bool) {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return id, true
		}
		seen[id] = true
	}
	return "", false
}

func TestCheckUnique(t *testing.T) {
	if err := checkUnique(diffable.NewSnapshot[string, string]()); err != nil {
		t.Errorf("checkUnique(empty) = %v", err)
	}
	if _, ok := duplicate([]string{"a", "b", "a"}); !ok {
		t.Errorf("duplicate([a b a]) found nothing")
	}
}
