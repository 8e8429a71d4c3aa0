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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRun(t *testing.T) {
	const (
		oldText = "S1: a b c\nS2: d\n"
		newText = "S2: d b\nS1: c a x\nreload-items: d\n"
		oldTOML = `
[[section]]
id = "S1"
items = ["a", "b", "c"]

[[section]]
id = "S2"
items = ["d"]
`
		newTOML = `
reload_items = ["d"]

[[section]]
id = "S2"
items = ["d", "b"]

[[section]]
id = "S1"
items = ["c", "a", "x"]
`
		wantOps = "ItemMove(S1, S2, b)\n" +
			"ItemInsert(S1, x)\n" +
			"ItemMove(S1, S1, c)\n" +
			"SectionMove(S2)\n" +
			"ItemReload(d)\n"
		wantBatch = "insert-items: [[1, 2]]\n" +
			"move-sections: [{1 0}]\n" +
			"move-items: [{[0, 1] [0, 1]} {[0, 2] [1, 0]}]\n" +
			"reload-items: [[0, 0]]\n"
	)
	dir := writeFiles(t, map[string]string{
		"old.txt":  oldText,
		"new.txt":  newText,
		"old.toml": oldTOML,
		"new.toml": newTOML,
	})

	tests := []struct {
		name string
		cfg  config
		want string
	}{
		{"text", config{old: "old.txt", new: "new.txt"}, wantOps},
		{"toml", config{old: "old.toml", new: "new.toml"}, wantOps},
		{"mixed-formats", config{old: "old.toml", new: "new.txt"}, wantOps},
		{"batch", config{old: "old.txt", new: "new.toml", batch: true}, wantBatch},
		{"reload-only", config{old: "new.txt", new: "new.toml"}, "ItemReload(d)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.old = filepath.Join(dir, tt.cfg.old)
			tt.cfg.new = filepath.Join(dir, tt.cfg.new)
			var stdout, stderr bytes.Buffer
			if err := run(tt.cfg, &stdout, &stderr); err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, stdout.String()); diff != "" {
				t.Errorf("output is different [-want,+got]:\n%s", diff)
			}
			if stderr.Len() != 0 {
				t.Errorf("unexpected log output: %s", stderr.String())
			}
		})
	}
}

func TestRunTxtar(t *testing.T) {
	files, err := filepath.Glob("../../../testdata/*.txtar")
	if err != nil {
		t.Fatal(err)
	}
	for _, filename := range files {
		t.Run(filepath.Base(filename), func(t *testing.T) {
			ar, err := txtar.ParseFile(filename)
			if err != nil {
				t.Fatal(err)
			}
			var want string
			for _, f := range ar.Files {
				if f.Name == "ops" {
					want = string(f.Data)
				}
			}
			var stdout, stderr bytes.Buffer
			if err := run(config{txtar: filename}, &stdout, &stderr); err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if diff := cmp.Diff(want, stdout.String()); diff != "" {
				t.Errorf("output is different [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestRunVerbose(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"old.txt": "S1: a\n",
		"new.toml": `
[[section]]
id = "S1"
items = ["b", "a", "b"]
`,
	})
	var stdout, stderr bytes.Buffer
	cfg := config{old: filepath.Join(dir, "old.txt"), new: filepath.Join(dir, "new.toml"), verbose: true}
	if err := run(cfg, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if diff := cmp.Diff("ItemInsert(S1, b)\n", stdout.String()); diff != "" {
		t.Errorf("output is different [-want,+got]:\n%s", diff)
	}
	for _, want := range []string{"level=WARN", "op=AppendItemsToSection", "level=DEBUG", "operations=1"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("log output doesn't contain %q:\n%s", want, stderr.String())
		}
	}
}

func TestRunErrors(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"ok.txt":        "S1: a\n",
		"bad.txt":       "S1 a\n",
		"bad.toml":      "[[section]]\nitems = [\"a\"]\n",
		"invalid.toml":  "[[section]\n",
		"partial.txtar": "-- old --\nS1: a\n",
	})
	tests := []struct {
		name string
		cfg  config
	}{
		{"missing-file", config{old: "ok.txt", new: "missing.txt"}},
		{"bad-text", config{old: "ok.txt", new: "bad.txt"}},
		{"missing-id", config{old: "bad.toml", new: "ok.txt"}},
		{"invalid-toml", config{old: "invalid.toml", new: "ok.txt"}},
		{"partial-txtar", config{txtar: "partial.txtar"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.cfg.txtar != "" {
				tt.cfg.txtar = filepath.Join(dir, tt.cfg.txtar)
			} else {
				tt.cfg.old = filepath.Join(dir, tt.cfg.old)
				tt.cfg.new = filepath.Join(dir, tt.cfg.new)
			}
			var stdout, stderr bytes.Buffer
			if err := run(tt.cfg, &stdout, &stderr); err == nil {
				t.Errorf("run succeeded, want error")
			}
		})
	}
}
