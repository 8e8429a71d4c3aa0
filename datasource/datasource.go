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

// Package datasource drives a sectioned list view from snapshots.
//
// A [DataSource] holds the snapshot that is currently displayed. Applying a new snapshot computes
// the changes with [diffable.Diff], resolves them to positions and hands them to the view as a
// single [Batch]. Views that can consume snapshots directly implement [NativeView] and receive the
// snapshot instead.
package datasource

import (
	"fmt"
	"log/slog"
	"sync"

	"znkr.io/diffable"
	"znkr.io/diffable/internal/config"
)

// View is a list view that can apply batches of updates.
type View interface {
	// PerformBatchUpdates applies b. If it returns an error, the data source keeps its current
	// snapshot.
	PerformBatchUpdates(b *Batch, animated bool) error
}

// NativeView is a view that computes updates from snapshots itself.
type NativeView[S, I comparable] interface {
	View
	ApplySnapshot(snap diffable.Snapshot[S, I], animated bool) error
}

// DataSource connects snapshots to a view. It's safe for concurrent use. Calls to
// [DataSource.Apply] are serialized, the queries can be used while an apply is in progress,
// including from within the view.
type DataSource[S, I comparable] struct {
	view   View
	native NativeView[S, I] // nil if view doesn't implement NativeView
	logger *slog.Logger

	applyMu sync.Mutex   // serializes Apply
	mu      sync.RWMutex // guards current, which is only written while holding applyMu
	current diffable.Snapshot[S, I]
}

// New returns a data source for view with an empty snapshot.
//
// The following option is supported: [diffable.WithLogger]
func New[S, I comparable](view View, opts ...diffable.Option) *DataSource[S, I] {
	cfg := config.FromOptions(opts, config.Logger)
	ds := &DataSource[S, I]{
		view:    view,
		logger:  cfg.Logger,
		current: diffable.NewSnapshot[S, I](diffable.WithLogger(cfg.Logger)),
	}
	if native, ok := view.(NativeView[S, I]); ok {
		ds.native = native
	}
	return ds
}

// Animated controls whether the view is asked to animate the changes. The default is true.
func Animated(animated bool) diffable.Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Animated = animated
		return config.Animated
	}
}

// Apply updates the view to show snap and makes it the current snapshot.
//
// The changes are computed against the current snapshot. If the view fails to apply them, the
// current snapshot is kept and the error is returned. While the view is updating, the queries of
// the data source already answer for snap.
//
// The following option is supported: [Animated]
func (ds *DataSource[S, I]) Apply(snap diffable.Snapshot[S, I], opts ...diffable.Option) error {
	cfg := config.FromOptions(opts, config.Animated)

	ds.applyMu.Lock()
	defer ds.applyMu.Unlock()

	old := ds.current
	ds.setCurrent(snap.WithoutReloads())

	var err error
	if ds.native != nil {
		ds.logger.Debug("applying snapshot natively", slog.Int("sections", snap.NumberOfSections()))
		err = ds.native.ApplySnapshot(snap, cfg.Animated)
	} else {
		err = ds.performBatchUpdates(snap, old, cfg.Animated)
	}
	if err != nil {
		ds.setCurrent(old)
		ds.logger.Error("apply failed, keeping the current snapshot", slog.String("error", err.Error()))
		return fmt.Errorf("datasource: apply: %w", err)
	}
	return nil
}

func (ds *DataSource[S, I]) performBatchUpdates(snap, old diffable.Snapshot[S, I], animated bool) error {
	ops := diffable.Diff(snap, old)
	if len(ops) == 0 {
		return nil
	}
	b, err := Resolve(ops, snap, old)
	if err != nil {
		return err
	}
	ds.logger.Debug("performing batch updates",
		slog.Int("operations", len(ops)),
		slog.Bool("animated", animated))
	return ds.view.PerformBatchUpdates(b, animated)
}

func (ds *DataSource[S, I]) setCurrent(snap diffable.Snapshot[S, I]) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.current = snap
}

// Snapshot returns a copy of the current snapshot. It has no reload hints.
func (ds *DataSource[S, I]) Snapshot() diffable.Snapshot[S, I] {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.current
}

// ItemIdentifier returns the identifier of the item at path.
func (ds *DataSource[S, I]) ItemIdentifier(path IndexPath) (I, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	var zero I
	sections := ds.current.SectionIdentifiers()
	if path.Section < 0 || path.Section >= len(sections) {
		return zero, false
	}
	items := ds.current.ItemIdentifiersInSection(sections[path.Section])
	if path.Item < 0 || path.Item >= len(items) {
		return zero, false
	}
	return items[path.Item], true
}

// IndexPath returns the position of item.
func (ds *DataSource[S, I]) IndexPath(item I) (IndexPath, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return pathOf(ds.current, item)
}

// NumberOfSections returns the number of sections.
func (ds *DataSource[S, I]) NumberOfSections() int {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.current.NumberOfSections()
}

// NumberOfItems returns the number of items in the section at index section, 0 if there is no
// such section.
func (ds *DataSource[S, I]) NumberOfItems(section int) int {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	sections := ds.current.SectionIdentifiers()
	if section < 0 || section >= len(sections) {
		return 0
	}
	return ds.current.NumberOfItemsInSection(sections[section])
}
