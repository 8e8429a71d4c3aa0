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

// Package diffable maintains ordered, sectioned collections of unique identifiers as snapshots and
// computes the changes between two snapshots.
//
// A [Snapshot] describes sections and their items at one point in time. It's built with mutators
// like [Snapshot.AppendSections] and [Snapshot.AppendItems] and can be compared to another snapshot
// with [Diff]. The result is a script of [Operation] values (deletes, inserts, moves and reloads of
// sections and items) that a list or grid presentation can replay to update itself incrementally
// instead of rendering everything from scratch. See [znkr.io/diffable/datasource] for an adapter
// that keeps the currently displayed snapshot and replays scripts against a view.
//
// The diff is not a shortest edit script. Each collection is compared in a single pass with simple
// tie-break rules: an element whose index shift is explained by deletions and insertions before it
// is never moved, and items that change sections are reported as moves, not as a delete and an
// insert.
//
// Performance: Building a snapshot and querying it is linear in the number of sections and items
// per operation. [Diff] is O(N log N) where N is the total number of sections and items.
//
// [znkr.io/diffable/datasource]: https://pkg.go.dev/znkr.io/diffable/datasource
package diffable
