package benchmarks

import (
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

type testdata struct {
	name string
	x, y []string
}

func loadTestdata(t testing.TB) []testdata {
	t.Helper()
	testFiles, err := filepath.Glob("testdata/*.test")
	if err != nil {
		t.Fatalf("Failed to read testdata: %v", err)
	}
	var tests []testdata
	for _, filename := range testFiles {
		ar, err := txtar.ParseFile(filename)
		if err != nil {
			t.Fatalf("failed to parse test case: %v", err)
		}
		name := strings.TrimPrefix(filename, "testdata/")
		test := testdata{
			name: name,
		}

		for _, f := range ar.Files {
			switch f.Name {
			case "x":
				test.x = strings.Fields(string(f.Data))
			case "y":
				test.y = strings.Fields(string(f.Data))
			default:
				t.Fatalf("unknown file in archive: %v", f)
			}
		}
		tests = append(tests, test)
	}
	return tests
}

// The moves selected by the snapshot diff are never fewer than the minimum implied by a longest
// common subsequence.
func TestMovesLowerBound(t *testing.T) {
	var optimal Impl
	for _, impl := range Impls {
		if impl.Name == "mb0" {
			optimal = impl
		}
	}
	for _, td := range loadTestdata(t) {
		t.Run(td.name, func(t *testing.T) {
			got, lower := Impls[0].Moves(td.x, td.y), optimal.Moves(td.x, td.y)
			if got < lower {
				t.Errorf("%s selected %d moves, but at least %d are necessary", Impls[0].Name, got, lower)
			}
		})
	}
}

func BenchmarkMoves(b *testing.B) {
	for _, impl := range Impls {
		b.Run("impl="+impl.Name, func(b *testing.B) {
			for _, td := range loadTestdata(b) {
				b.Run("name="+td.name, func(b *testing.B) {
					for b.Loop() {
						_ = impl.Moves(td.x, td.y)
					}
					b.StopTimer()

					b.ReportMetric(float64(impl.Moves(td.x, td.y)), "moves")
				})
			}
		})
	}
}
