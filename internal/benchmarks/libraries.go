// Package benchmarks compares the moves selected by the snapshot diff with the moves implied by
// line based diff libraries.
//
// A line diff of two orderings of the same identifiers keeps a common subsequence and reports
// every other identifier as deleted and inserted. Identifiers that are deleted and inserted again
// are the moves a list view would have to animate. An optimal line diff keeps a longest common
// subsequence and therefore yields the fewest moves possible.
package benchmarks

import (
	"bytes"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	godebug "github.com/kylelemons/godebug/diff"
	mb0 "github.com/mb0/diff"
	gointernal "github.com/rogpeppe/go-internal/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/diffable"
)

type Impl struct {
	Name string
	// Moves returns the number of identifiers that are in x and y but have to be moved. x and y
	// must not contain duplicates.
	Moves func(x, y []string) int
}

var Impls = []Impl{
	{
		Name: "znkr",
		Moves: func(x, y []string) int {
			old, updated := section(x), section(y)
			moves := 0
			for _, op := range diffable.Diff(updated, old) {
				if op.Op == diffable.ItemMove {
					moves++
				}
			}
			return moves
		},
	},
	{
		Name: "go-internal",
		Moves: func(x, y []string) int {
			out := gointernal.Diff("x", lines(x), "y", lines(y))
			return deletedLines(out) - removed(x, y)
		},
	},
	{
		Name: "diffmatchpatch",
		Moves: func(x, y []string) int {
			dmp := diffmatchpatch.New()
			rx, ry, lineArray := dmp.DiffLinesToRunes(string(lines(x)), string(lines(y)))
			diffs := dmp.DiffMainRunes(rx, ry, false)
			diffs = dmp.DiffCharsToLines(diffs, lineArray)

			deleted := 0
			for _, d := range diffs {
				if d.Type == diffmatchpatch.DiffDelete {
					deleted += strings.Count(d.Text, "\n")
				}
			}
			return deleted - removed(x, y)
		},
	},
	{
		Name: "godebug",
		Moves: func(x, y []string) int {
			out := godebug.Diff(string(lines(x)), string(lines(y)))
			return deletedLines([]byte(out)) - removed(x, y)
		},
	},
	{
		Name: "mb0",
		Moves: func(x, y []string) int {
			deleted := 0
			for _, ch := range mb0.Diff(len(x), len(y), mb0strings{x, y}) {
				deleted += ch.Del
			}
			return deleted - removed(x, y)
		},
	},
	{
		Name: "udiff",
		Moves: func(x, y []string) int {
			out := udiff.Unified("x", "y", string(lines(x)), string(lines(y)))
			return deletedLines([]byte(out)) - removed(x, y)
		},
	},
}

func section(items []string) diffable.Snapshot[int, string] {
	var s diffable.Snapshot[int, string]
	if err := s.AppendSections(0); err != nil {
		panic(err)
	}
	if len(items) == 0 {
		return s
	}
	if err := s.AppendItems(items...); err != nil {
		panic(err)
	}
	return s
}

func lines(items []string) []byte {
	var buf bytes.Buffer
	for _, item := range items {
		buf.WriteString(item)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// deletedLines counts the lines of a diff that start with '-', except for file headers.
func deletedLines(out []byte) int {
	n := 0
	for _, line := range bytes.Split(out, []byte("\n")) {
		if bytes.HasPrefix(line, []byte("-")) && !bytes.HasPrefix(line, []byte("---")) {
			n++
		}
	}
	return n
}

// removed returns the number of identifiers that are only in x.
func removed(x, y []string) int {
	return len(diffable.Difference(x, y).Removed)
}

type mb0strings struct {
	x, y []string
}

func (d mb0strings) Equal(i, j int) bool { return d.x[i] == d.y[j] }
