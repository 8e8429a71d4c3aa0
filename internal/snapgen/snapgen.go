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

// Package snapgen generates random snapshots and random edits of snapshots. Generators are
// deterministic: the same seed always produces the same sequence.
package snapgen

import (
	"crypto/sha256"
	"fmt"
	"math/rand/v2"

	"znkr.io/diffable"
)

// Generator produces snapshots with string identifiers. Sections are named S<n>, items i<n>; the
// numbers are never reused.
type Generator struct {
	rng  *rand.Rand
	next int
}

// New returns a generator seeded with seed.
func New(seed string) *Generator {
	return &Generator{rng: rand.New(rand.NewChaCha8(sha256.Sum256([]byte(seed))))}
}

// Rand returns the random number generator used by g.
func (g *Generator) Rand() *rand.Rand { return g.rng }

func (g *Generator) fresh(prefix string) string {
	g.next++
	return fmt.Sprintf("%s%d", prefix, g.next)
}

// Snapshot returns a new snapshot with up to maxSections sections and up to maxItems items.
func (g *Generator) Snapshot(maxSections, maxItems int, opts ...diffable.Option) (diffable.Snapshot[string, string], error) {
	s := diffable.NewSnapshot[string, string](opts...)
	var sections []string
	for range g.rng.IntN(maxSections + 1) {
		sec := g.fresh("S")
		if err := s.AppendSections(sec); err != nil {
			return s, err
		}
		sections = append(sections, sec)
	}
	if len(sections) == 0 {
		return s, nil
	}
	for range g.rng.IntN(maxItems + 1) {
		sec := sections[g.rng.IntN(len(sections))]
		if err := s.AppendItemsToSection(sec, g.fresh("i")); err != nil {
			return s, err
		}
	}
	return s, nil
}

// Mutate applies a random edit to s. Every mutator of [diffable.Snapshot] is used, including
// relocating items that already exist and marking sections and items for reload.
func (g *Generator) Mutate(s *diffable.Snapshot[string, string]) error {
	sections, items := s.SectionIdentifiers(), s.ItemIdentifiers()
	section := func() string { return sections[g.rng.IntN(len(sections))] }
	item := func() string { return items[g.rng.IntN(len(items))] }

	switch k := g.rng.IntN(14); {
	case k == 0 || len(sections) == 0:
		return s.AppendSections(g.fresh("S"))
	case k == 1:
		return s.InsertSectionsBefore(section(), g.fresh("S"))
	case k == 2:
		return s.InsertSectionsAfter(section(), g.fresh("S"))
	case k == 3:
		s.DeleteSections(section())
		return nil
	case k == 4:
		return s.MoveSectionBefore(section(), section())
	case k == 5:
		return s.MoveSectionAfter(section(), section())
	case k == 6 || len(items) == 0:
		return s.AppendItemsToSection(section(), g.fresh("i"), g.fresh("i"))
	case k == 7:
		return s.InsertItemsBefore(item(), g.fresh("i"))
	case k == 8:
		return s.InsertItemsAfter(item(), g.fresh("i"))
	case k == 9:
		s.DeleteItems(item())
		return nil
	case k == 10:
		return s.MoveItemBefore(item(), item())
	case k == 11:
		return s.MoveItemAfter(item(), item())
	case k == 12:
		// Relocates an existing item.
		return s.AppendItemsToSection(section(), item())
	default:
		if g.rng.IntN(2) == 0 {
			return s.ReloadSections(section())
		}
		return s.ReloadItems(item())
	}
}
