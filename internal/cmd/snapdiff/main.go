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

// snapdiff is a small CLI to manually run the snapshot diff.
//
// It compares two snapshot files and prints the operations that turn the old into the new
// snapshot, one per line. Files ending in .toml are read as TOML:
//
//	reload_items = ["b"]
//
//	[[section]]
//	id = "S1"
//	items = ["a", "b"]
//	reload = true
//
// All other files use the text format of package snaptext. Alternatively, both snapshots can be
// read from a txtar archive with the files "old" and "new", e.g. a golden file from testdata.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/tools/txtar"
	"znkr.io/diffable"
	"znkr.io/diffable/datasource"
	"znkr.io/diffable/internal/snaptext"
)

type config struct {
	old, new string
	txtar    string
	batch    bool
	verbose  bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.txtar, "txtar", "", "read both snapshots from a txtar file instead of two input files")
	flag.BoolVar(&cfg.batch, "batch", false, "print the operations resolved to positions")
	flag.BoolVar(&cfg.verbose, "v", false, "log debug output to stderr")
	flag.Parse()

	if cfg.txtar != "" {
		if flag.CommandLine.NArg() != 0 {
			fmt.Fprintf(os.Stderr, "error: usage: snapdiff -txtar <file>\n")
			os.Exit(1)
		}
	} else {
		if flag.CommandLine.NArg() != 2 {
			fmt.Fprintf(os.Stderr, "error: usage: snapdiff <old> <new>\n")
			os.Exit(1)
		}
		cfg.old = flag.CommandLine.Arg(0)
		cfg.new = flag.CommandLine.Arg(1)
	}

	if err := run(cfg, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config, stdout, stderr io.Writer) error {
	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	old, updated, err := load(cfg, logger)
	if err != nil {
		return err
	}

	ops := diffable.Diff(updated, old)
	logger.Debug("diff computed",
		slog.Int("old_sections", old.NumberOfSections()),
		slog.Int("old_items", old.NumberOfItems()),
		slog.Int("new_sections", updated.NumberOfSections()),
		slog.Int("new_items", updated.NumberOfItems()),
		slog.Int("operations", len(ops)))

	if !cfg.batch {
		_, err := stdout.Write(snaptext.FormatOps(ops))
		return err
	}
	b, err := datasource.Resolve(ops, updated, old)
	if err != nil {
		return err
	}
	return printBatch(stdout, b)
}

func load(cfg config, logger *slog.Logger) (old, updated diffable.Snapshot[string, string], err error) {
	if cfg.txtar == "" {
		old, err = readFile(cfg.old, logger)
		if err != nil {
			return old, updated, err
		}
		updated, err = readFile(cfg.new, logger)
		return old, updated, err
	}

	ar, err := txtar.ParseFile(cfg.txtar)
	if err != nil {
		return old, updated, err
	}
	var found int
	for _, f := range ar.Files {
		var dst *diffable.Snapshot[string, string]
		switch f.Name {
		case "old":
			dst = &old
		case "new":
			dst = &updated
		default:
			continue
		}
		*dst, err = snaptext.Parse(f.Data, diffable.WithLogger(logger))
		if err != nil {
			return old, updated, fmt.Errorf("%s: %s: %w", cfg.txtar, f.Name, err)
		}
		found++
	}
	if found != 2 {
		return old, updated, fmt.Errorf("%s: expected files old and new", cfg.txtar)
	}
	return old, updated, nil
}

func readFile(name string, logger *slog.Logger) (diffable.Snapshot[string, string], error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return diffable.Snapshot[string, string]{}, err
	}
	var snap diffable.Snapshot[string, string]
	if filepath.Ext(name) == ".toml" {
		snap, err = parseTOML(data, logger)
	} else {
		snap, err = snaptext.Parse(data, diffable.WithLogger(logger))
	}
	if err != nil {
		return snap, fmt.Errorf("%s: %w", name, err)
	}
	return snap, nil
}

func printBatch(w io.Writer, b *datasource.Batch) error {
	lines := []struct {
		name string
		val  any
		n    int
	}{
		{"delete-sections", b.DeleteSections, len(b.DeleteSections)},
		{"delete-items", b.DeleteItems, len(b.DeleteItems)},
		{"insert-sections", b.InsertSections, len(b.InsertSections)},
		{"insert-items", b.InsertItems, len(b.InsertItems)},
		{"move-sections", b.MoveSections, len(b.MoveSections)},
		{"move-items", b.MoveItems, len(b.MoveItems)},
		{"reload-sections", b.ReloadSections, len(b.ReloadSections)},
		{"reload-items", b.ReloadItems, len(b.ReloadItems)},
	}
	for _, l := range lines {
		if l.n == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s: %v\n", l.name, l.val); err != nil {
			return err
		}
	}
	return nil
}
