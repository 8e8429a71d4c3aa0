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

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"znkr.io/diffable"
	"znkr.io/diffable/datasource"
	"znkr.io/diffable/htmlview"
	"znkr.io/diffable/internal/snapgen"
)

// sequence evaluates one random sequence of snapshots.
type sequence struct {
	cfg     *config
	run     int
	logger  *slog.Logger
	notes   chan<- note
	results chan<- result // nil if no stats are collected
	applied *atomic.Int64
}

func (s *sequence) note(step int, format string, args ...any) {
	s.notes <- note{
		prefix: fmt.Sprintf("run-%d/step-%d", s.run, step),
		msg:    fmt.Sprintf(format, args...),
	}
}

func (s *sequence) eval() {
	gen := snapgen.New(fmt.Sprintf("%s-%d", s.cfg.seed, s.run))
	snap, err := gen.Snapshot(s.cfg.maxSections, s.cfg.maxItems, diffable.WithLogger(slog.New(slog.DiscardHandler)))
	if err != nil {
		s.note(0, "generating snapshot: %v", err)
		return
	}

	var ds *datasource.DataSource[string, string]
	view := htmlview.New(func(p datasource.IndexPath) []*html.Node {
		item, _ := ds.ItemIdentifier(p)
		return []*html.Node{{Type: html.TextNode, Data: item}}
	})
	ds = datasource.New[string, string](view, diffable.WithLogger(s.logger))
	view.Source = ds

	for step := range s.cfg.steps {
		if step > 0 {
			for range 1 + gen.Rand().IntN(5) {
				if err := gen.Mutate(&snap); err != nil {
					s.note(step, "mutating snapshot: %v", err)
					return
				}
			}
		}

		var r result
		if s.results != nil {
			start := time.Now()
			ops := diffable.Diff(snap, ds.Snapshot())
			r = result{
				run:      s.run,
				step:     step,
				sections: snap.NumberOfSections(),
				items:    snap.NumberOfItems(),
				ops:      len(ops),
				diff:     time.Since(start),
			}
			for _, op := range ops {
				if op.Op == diffable.SectionMove || op.Op == diffable.ItemMove {
					r.moves++
				}
			}
		}

		start := time.Now()
		err := ds.Apply(snap, datasource.Animated(gen.Rand().IntN(2) == 0))
		r.apply = time.Since(start)
		s.applied.Add(1)
		if err != nil {
			s.note(step, "%v\nsnapshot:\n%s", err, snap)
			return
		}
		if s.cfg.validate {
			if err := check(view, snap); err != nil {
				s.note(step, "view doesn't show the snapshot: %v\nsnapshot:\n%s", err, snap)
				return
			}
		}
		if s.results != nil {
			s.results <- r
		}
	}
}

// check verifies that the cells in v show the items of snap in the same order.
func check(v *htmlview.View, snap diffable.Snapshot[string, string]) error {
	var sections [][]string
	for sec := v.Root().FirstChild; sec != nil; sec = sec.NextSibling {
		if sec.DataAtom != atom.Section || sec.FirstChild == nil {
			return fmt.Errorf("unexpected node <%s> in view", sec.Data)
		}
		var items []string
		for li := sec.FirstChild.FirstChild; li != nil; li = li.NextSibling {
			if li.FirstChild == nil {
				return errors.New("empty cell")
			}
			items = append(items, li.FirstChild.Data)
		}
		sections = append(sections, items)
	}

	if got, want := len(sections), snap.NumberOfSections(); got != want {
		return fmt.Errorf("got %d sections, want %d", got, want)
	}
	for i, sec := range snap.SectionIdentifiers() {
		if want := snap.ItemIdentifiersInSection(sec); !slices.Equal(sections[i], want) {
			return fmt.Errorf("section %s: got items %v, want %v", sec, sections[i], want)
		}
	}
	return nil
}
