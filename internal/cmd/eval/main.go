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

// eval validates the snapshot diff end to end. It generates random sequences of snapshots, applies
// each one to a data source backed by an HTML view and checks that the view shows the snapshot
// afterwards.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type config struct {
	runs        int
	steps       int
	maxSections int
	maxItems    int
	seed        string
	parallel    int
	stats       string
	validate    bool
	verbose     bool
}

func main() {
	var cfg config
	flag.IntVar(&cfg.runs, "runs", 1000, "number of snapshot sequences to evaluate")
	flag.IntVar(&cfg.steps, "steps", 50, "number of snapshots per sequence")
	flag.IntVar(&cfg.maxSections, "sections", 10, "maximum number of sections in the first snapshot of a sequence")
	flag.IntVar(&cfg.maxItems, "items", 200, "maximum number of items in the first snapshot of a sequence")
	flag.StringVar(&cfg.seed, "seed", "eval", "seed for the random snapshot sequences")
	flag.IntVar(&cfg.parallel, "parallel", runtime.GOMAXPROCS(0), "number of evaluations to run in parallel")
	flag.StringVar(&cfg.stats, "stats", "", "file to store stats in")
	flag.BoolVar(&cfg.validate, "validate", true, "if validation should be performed")
	flag.BoolVar(&cfg.verbose, "v", false, "log every batch update")
	flag.Parse()

	if len(flag.CommandLine.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "error: unexpected command line arguments: %v\n", flag.CommandLine.Args())
		os.Exit(1)
	}

	if err := run(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var bars = []string{
	" ",
	"▏",
	"▎",
	"▍",
	"▌",
	"▋",
	"▊",
	"▉",
	"█",
}

type note struct {
	prefix string
	msg    string
}

type result struct {
	run, step int
	sections  int
	items     int
	ops       int
	moves     int
	diff      time.Duration
	apply     time.Duration
}

func run(cfg *config) error {
	start := time.Now()
	notes := make(chan note)
	done := make(chan struct{})
	var runsDone atomic.Int64
	var applied atomic.Int64

	var stats *os.File
	if cfg.stats != "" {
		var err error
		stats, err = os.Create(cfg.stats)
		if err != nil {
			return fmt.Errorf("creating stats file: %v", err)
		}
		defer stats.Close()
	}

	level := slog.LevelError
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	runs := make(chan int)
	go func() {
		defer close(runs)
		for i := range cfg.runs {
			runs <- i
		}
	}()

	// Evaluate sequences.
	var evalWG sync.WaitGroup
	var results chan result
	if cfg.stats != "" {
		results = make(chan result)
	}
	for range cfg.parallel {
		evalWG.Add(1)
		go func() {
			defer evalWG.Done()
			for i := range runs {
				seq := sequence{
					cfg:     cfg,
					run:     i,
					logger:  logger,
					notes:   notes,
					results: results,
					applied: &applied,
				}
				seq.eval()
				runsDone.Add(1)
			}
		}()
	}

	// Render progress
	var renderWG, statsWG sync.WaitGroup
	render := func() {
		const width = 60
		done := runsDone.Load()
		applied := applied.Load()
		progress := float64(done) / float64(max(1, cfg.runs))
		whole := int(progress * width)
		remainder := math.Mod(progress*width, 1)
		last := bars[max(0, min(len(bars)-1, int(remainder*float64(len(bars)))))]
		if width-whole < 1 {
			last = ""
		}
		bar := strings.Repeat(bars[len(bars)-1], whole) + last
		var runsPerSec, appliedPerSec int
		if done > 0 {
			runsPerSec = int((time.Duration(done) * time.Second) / time.Since(start))
		}
		if applied > 0 {
			appliedPerSec = int((time.Duration(applied) * time.Second) / time.Since(start))
		}
		fmt.Printf("\r[%-*s] % 3.1f%% (%d runs/s, %d snapshots/s) ", width, bar, 100*progress, runsPerSec, appliedPerSec)
	}
	renderWG.Add(1)
	go func() {
		defer renderWG.Done()
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case note := <-notes:
				fmt.Printf("\r%s: %s\n", note.prefix, note.msg)
				render()

			case <-ticker.C:
				render()

			case <-done:
				render()
				fmt.Printf("\n")
				return
			}
		}
	}()
	if cfg.stats != "" {
		statsWG.Add(1)
		go func() {
			defer statsWG.Done()
			w := bufio.NewWriter(stats)
			w.WriteString("run,step,sections,items,ops,moves,diff_ns,apply_ns\n")
			for r := range results {
				_, err := fmt.Fprintf(w, "%d,%d,%d,%d,%d,%d,%d,%d\n", r.run, r.step, r.sections, r.items, r.ops, r.moves, r.diff.Nanoseconds(), r.apply.Nanoseconds())
				if err != nil {
					notes <- note{
						prefix: fmt.Sprintf("run-%d/step-%d", r.run, r.step),
						msg:    fmt.Sprintf("failed to write stats: %v", err),
					}
				}
			}
			if err := w.Flush(); err != nil {
				notes <- note{
					prefix: "",
					msg:    fmt.Sprintf("failed to flush stats: %v", err),
				}
			}
		}()
	}

	// Shutdown. The stats writer may still send notes, so the renderer stops last.
	evalWG.Wait()
	if results != nil {
		close(results)
	}
	statsWG.Wait()
	close(done)
	renderWG.Wait()

	return nil
}
