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

// Package snaptext reads and writes snapshots with string identifiers in a line based text format.
// Every line holds a section identifier, a colon, and the section's items separated by whitespace.
// Two reserved keys list reload hints:
//
//	S1: a b c
//	S2:
//	reload-sections: S2
//	reload-items: b
//
// Blank lines and lines starting with '#' are ignored. The format is the one produced by
// [diffable.Snapshot.String].
package snaptext

import (
	"fmt"
	"strings"

	"znkr.io/diffable"
)

const (
	reloadSectionsKey = "reload-sections"
	reloadItemsKey    = "reload-items"
)

// Parse reads a snapshot. Unlike the snapshot mutators, Parse rejects identifiers that appear more
// than once.
func Parse(data []byte, opts ...diffable.Option) (diffable.Snapshot[string, string], error) {
	snap := diffable.NewSnapshot[string, string](opts...)
	var reloadSections, reloadItems []string
	seen := make(map[string]int) // item -> line
	for i, line := range strings.Split(string(data), "\n") {
		lineno := i + 1
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return diffable.Snapshot[string, string]{}, fmt.Errorf("line %d: missing ':' in %q", lineno, line)
		}
		key = strings.TrimSpace(key)
		fields := strings.Fields(value)
		switch key {
		case "":
			return diffable.Snapshot[string, string]{}, fmt.Errorf("line %d: missing section identifier", lineno)
		case reloadSectionsKey:
			reloadSections = append(reloadSections, fields...)
		case reloadItemsKey:
			reloadItems = append(reloadItems, fields...)
		default:
			if err := snap.AppendSections(key); err != nil {
				return diffable.Snapshot[string, string]{}, fmt.Errorf("line %d: %w", lineno, err)
			}
			for _, item := range fields {
				if prev, ok := seen[item]; ok {
					return diffable.Snapshot[string, string]{}, fmt.Errorf("line %d: item %s already defined in line %d: %w", lineno, item, prev, diffable.ErrDuplicate)
				}
				seen[item] = lineno
			}
			if len(fields) == 0 {
				continue
			}
			if err := snap.AppendItemsToSection(key, fields...); err != nil {
				return diffable.Snapshot[string, string]{}, fmt.Errorf("line %d: %w", lineno, err)
			}
		}
	}
	// Reload hints are applied last, they may refer to sections defined further down.
	if err := snap.ReloadSections(reloadSections...); err != nil {
		return diffable.Snapshot[string, string]{}, err
	}
	if err := snap.ReloadItems(reloadItems...); err != nil {
		return diffable.Snapshot[string, string]{}, err
	}
	return snap, nil
}

// MustParse is like [Parse] but panics on error. It's intended for tests.
func MustParse(text string) diffable.Snapshot[string, string] {
	snap, err := Parse([]byte(text))
	if err != nil {
		panic(err)
	}
	return snap
}

// Format writes a snapshot in the text format.
func Format(snap diffable.Snapshot[string, string]) []byte {
	return []byte(snap.String())
}

// FormatOps writes one operation per line.
func FormatOps[S, I comparable](ops []diffable.Operation[S, I]) []byte {
	var b strings.Builder
	for _, op := range ops {
		b.WriteString(op.String())
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
