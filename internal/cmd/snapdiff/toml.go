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
	"fmt"
	"log/slog"

	"github.com/pelletier/go-toml/v2"
	"znkr.io/diffable"
)

// snapshotFile is the TOML representation of a snapshot.
type snapshotFile struct {
	ReloadItems []string  `toml:"reload_items"`
	Sections    []section `toml:"section"`
}

type section struct {
	ID     string   `toml:"id"`
	Items  []string `toml:"items"`
	Reload bool     `toml:"reload"`
}

func parseTOML(data []byte, logger *slog.Logger) (diffable.Snapshot[string, string], error) {
	var file snapshotFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return diffable.Snapshot[string, string]{}, fmt.Errorf("failed to parse snapshot file: %w", err)
	}

	snap := diffable.NewSnapshot[string, string](diffable.WithLogger(logger))
	for i, sec := range file.Sections {
		if sec.ID == "" {
			return diffable.Snapshot[string, string]{}, fmt.Errorf("section %d: missing id", i)
		}
		if err := snap.AppendSections(sec.ID); err != nil {
			return diffable.Snapshot[string, string]{}, err
		}
		if len(sec.Items) > 0 {
			// Items that are listed twice end up at their last position, the snapshot warns.
			if err := snap.AppendItemsToSection(sec.ID, sec.Items...); err != nil {
				return diffable.Snapshot[string, string]{}, err
			}
		}
		if sec.Reload {
			if err := snap.ReloadSections(sec.ID); err != nil {
				return diffable.Snapshot[string, string]{}, err
			}
		}
	}
	if err := snap.ReloadItems(file.ReloadItems...); err != nil {
		return diffable.Snapshot[string, string]{}, err
	}
	return snap, nil
}
