// Package engine implements the virtualization windowing core: given an
// item count, a sizing strategy, and a viewport, it computes exactly which
// items must be materialized, tracks cumulative offsets for variably sized
// items, coordinates incremental loading, and exposes imperative
// navigation. It is single-threaded by design: every mutation happens
// synchronously in the caller's event handler and derived state is read
// back pull-style.
package engine

import (
	"fmt"

	"github.com/andyrewlee/vport/internal/perf"
)

// Options is the recognized configuration surface. Exactly one of ItemSize
// (fixed mode) or SizeFunc (variable mode, with EstimatedItemSize as
// fallback) must be set. Columns > 0 switches to grid layout. Validation
// failures are fatal at construction; nothing else is.
type Options struct {
	// ItemSize enables fixed sizing when > 0. In grid mode this is the
	// row height.
	ItemSize int
	// SizeFunc enables variable sizing; it seeds estimates per index.
	SizeFunc SizeFunc
	// EstimatedItemSize is the fallback for unmeasured/unresolvable items
	// in variable mode.
	EstimatedItemSize int
	// OverscanCount is the base overscan item count per side. Ignored when
	// Overscan is set.
	OverscanCount int
	// Overscan overrides the overscan policy entirely.
	Overscan OverscanFunc
	// Columns enables grid layout when > 0.
	Columns int
	// LoadThreshold is how close (in items) the window's trailing edge
	// must come to the end of known data before a load is requested.
	LoadThreshold int
}

func (o Options) validate() error {
	if o.ItemSize <= 0 && o.SizeFunc == nil {
		return fmt.Errorf("%w: need ItemSize > 0 or a SizeFunc", ErrConfig)
	}
	if o.ItemSize <= 0 && o.EstimatedItemSize <= 0 {
		return fmt.Errorf("%w: variable mode needs EstimatedItemSize > 0", ErrConfig)
	}
	if o.ItemSize > 0 && o.SizeFunc != nil {
		return fmt.Errorf("%w: ItemSize and SizeFunc are mutually exclusive", ErrConfig)
	}
	if o.Columns < 0 {
		return fmt.Errorf("%w: Columns must be >= 0, got %d", ErrConfig, o.Columns)
	}
	if o.OverscanCount < 0 {
		return fmt.Errorf("%w: OverscanCount must be >= 0, got %d", ErrConfig, o.OverscanCount)
	}
	if o.LoadThreshold < 0 {
		return fmt.Errorf("%w: LoadThreshold must be >= 0, got %d", ErrConfig, o.LoadThreshold)
	}
	return nil
}

// Engine owns all windowing state for one list or grid instance. Construct
// once per collection view and drive it with events; read derived state
// back through VisibleRange, Visibility, and OffsetFor.
type Engine struct {
	opts Options

	sizes *SizeModel
	// Grid mode only: the scroll axis runs over rows, whose sizes derive
	// from the tallest item per row.
	rowSizes *SizeModel
	grid     *gridMapper

	calc   windowCalculator
	scroll scrollController
	loader loadCoordinator

	viewport Viewport
	count    int
	hasMore  bool

	window    WindowRange
	rowWindow RowRange
	vis       Visibility

	observer   func(Visibility)
	publishing bool
}

// New validates opts and builds an engine with an empty collection.
func New(opts Options) (*Engine, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		opts:      opts,
		window:    EmptyRange,
		rowWindow: RowRange{Start: -1, End: -1},
		vis:       Visibility{Range: EmptyRange},
	}
	e.sizes = newSizeModel(opts.ItemSize, opts.SizeFunc, opts.EstimatedItemSize)

	overscan := opts.Overscan
	if overscan == nil {
		overscan = DefaultOverscan(opts.OverscanCount)
	}

	axis := e.sizes
	if opts.Columns > 0 {
		e.grid = &gridMapper{columns: opts.Columns}
		rowFixed := 0
		var rowFn SizeFunc
		if opts.ItemSize > 0 {
			rowFixed = opts.ItemSize
		} else {
			rowFn = e.grid.rowSizeFunc(e.sizes)
		}
		e.rowSizes = newSizeModel(rowFixed, rowFn, opts.EstimatedItemSize)
		axis = e.rowSizes
	}

	e.calc = windowCalculator{sizes: axis, overscan: overscan}
	e.scroll = scrollController{sizes: axis}
	e.loader = loadCoordinator{threshold: opts.LoadThreshold}
	return e, nil
}

// GridMode reports whether the engine lays items out in rows and columns.
func (e *Engine) GridMode() bool { return e.grid != nil }

// axis returns the size model along the scroll axis: rows in grid mode,
// items otherwise.
func (e *Engine) axis() *SizeModel {
	if e.rowSizes != nil {
		return e.rowSizes
	}
	return e.sizes
}

// SetViewport records a new viewport and recomputes the window. A
// zero-extent viewport (mid-resize measurement failure) is skipped and the
// last valid window is retained.
func (e *Engine) SetViewport(vp Viewport) {
	if vp.Extent <= 0 {
		perf.Count("engine.zero_extent_skipped", 1)
		return
	}
	e.viewport = vp
	e.scroll.setExtent(vp.Extent)
	e.recompute()
}

// Viewport returns the last valid viewport.
func (e *Engine) ViewportState() Viewport { return e.viewport }

// SetItemCount updates the known collection size and the has-more flag.
// Shrinking drops cached sizes past the new end; in grid mode the rows
// whose membership changed are re-derived: the old partial last row, and
// after a shrink the new last row, whose cached height may still reflect
// items that no longer exist.
func (e *Engine) SetItemCount(count int, hasMore bool) {
	if count < 0 {
		count = 0
	}
	prev := e.count
	e.count = count
	e.hasMore = hasMore
	e.sizes.SetCount(count)
	if e.grid != nil {
		e.rowSizes.SetCount(e.grid.RowCount(count))
		if prev != count {
			if prev > 0 {
				e.rowSizes.Invalidate(e.grid.ToCoordinate(prev - 1).Row)
			}
			if count > 0 && count < prev {
				e.rowSizes.Invalidate(e.grid.ToCoordinate(count - 1).Row)
			}
		}
	}
	e.recompute()
}

// ItemCount returns the known collection size.
func (e *Engine) ItemCount() int { return e.count }

// ScrollTo moves to an absolute offset along the scroll axis.
func (e *Engine) ScrollTo(offset int) {
	e.scroll.ScrollTo(offset)
	e.syncViewportOffset()
	e.recompute()
}

// ScrollToIndex brings an item into view under the given alignment. In
// grid mode it targets the item's row. Out-of-range indices clamp.
func (e *Engine) ScrollToIndex(index int, align Align) {
	if e.grid != nil {
		if index < 0 {
			index = 0
		}
		if index > e.count-1 {
			index = e.count - 1
		}
		e.scroll.ScrollToIndex(e.grid.ToCoordinate(index).Row, align)
	} else {
		e.scroll.ScrollToIndex(index, align)
	}
	e.syncViewportOffset()
	e.recompute()
}

// CurrentOffset returns the scroll offset. With ScrollTo it forms the pair
// callers use to persist scroll position across sessions if they want to.
func (e *Engine) CurrentOffset() int { return e.scroll.Offset() }

func (e *Engine) syncViewportOffset() {
	e.viewport.Offset = e.scroll.Offset()
}

// ReportMeasured upgrades an estimated item size to a real measurement.
// When the change lies entirely above the visible window the scroll offset
// is shifted by the delta so on-screen items do not jump.
func (e *Engine) ReportMeasured(index int, size int) {
	if e.grid != nil {
		if e.sizes.SetMeasured(index, size) == 0 {
			return
		}
		row := e.grid.ToCoordinate(index).Row
		before := e.rowSizes.Size(row)
		e.rowSizes.Invalidate(row)
		delta := e.rowSizes.Size(row) - before
		if delta != 0 && !e.rowWindowEmpty() && row < e.rowWindow.Start {
			e.scroll.compensate(delta)
		}
		e.syncViewportOffset()
		e.recompute()
		return
	}

	delta := e.sizes.SetMeasured(index, size)
	if delta == 0 {
		return
	}
	if !e.window.Empty() && index < e.window.VisibleStart {
		e.scroll.compensate(delta)
	}
	e.syncViewportOffset()
	e.recompute()
}

// InvalidateItem resets a single item to its estimated size, for when the
// item's identity changes under the same index.
func (e *Engine) InvalidateItem(index int) {
	e.sizes.Invalidate(index)
	if e.grid != nil {
		e.rowSizes.Invalidate(e.grid.ToCoordinate(index).Row)
	}
	e.recompute()
}

// Remeasure drops every measurement, typically after a container resize
// changed wrapping widths.
func (e *Engine) Remeasure() {
	e.sizes.Remeasure()
	if e.rowSizes != nil {
		e.rowSizes.Remeasure()
	}
	e.recompute()
}

// VisibleRange returns the current materialized window.
func (e *Engine) VisibleRange() WindowRange { return e.window }

// VisibleRows returns the materialized row range in grid mode.
func (e *Engine) VisibleRows() RowRange { return e.rowWindow }

// Visibility returns the published snapshot for the current window.
func (e *Engine) Visibility() Visibility { return e.vis }

// OffsetFor returns the scroll-axis offset at which the item at index is
// placed: its own start offset in list mode, its row's start in grid mode.
func (e *Engine) OffsetFor(index int) int {
	if e.grid != nil {
		return e.rowSizes.Offset(e.grid.ToCoordinate(index).Row)
	}
	return e.sizes.Offset(index)
}

// TotalSize returns the summed scroll-axis size of the collection.
func (e *Engine) TotalSize() int { return e.axis().TotalSize() }

// ToCoordinate maps a linear index to grid coordinates. List mode returns
// row = index, col = 0.
func (e *Engine) ToCoordinate(index int) Coordinate {
	if e.grid != nil {
		return e.grid.ToCoordinate(index)
	}
	return Coordinate{Row: index, Col: 0}
}

// ToIndex maps grid coordinates to a linear index, or -1 for an
// unpopulated cell.
func (e *Engine) ToIndex(row, col int) int {
	if e.grid != nil {
		return e.grid.ToIndex(row, col, e.count)
	}
	if col != 0 || row < 0 || row >= e.count {
		return -1
	}
	return row
}

// AriaRowCount returns the row count exposed for accessibility wiring.
func (e *Engine) AriaRowCount() int {
	if e.grid != nil {
		return e.grid.RowCount(e.count)
	}
	return e.count
}

// AriaColCount returns the column count exposed for accessibility wiring.
func (e *Engine) AriaColCount() int {
	if e.grid != nil {
		return e.grid.columns
	}
	return 1
}

// PendingLoad returns the in-flight load request, if any. The caller
// dispatches it to the data source however it likes; the engine never
// blocks on it.
func (e *Engine) PendingLoad() (LoadRequest, bool) { return e.loader.pendingRequest() }

// ResolveLoad completes a load request by generation. Stale generations
// are dropped. A non-nil err is recorded and the gap returns to idle with
// no automatic retry: the same window against the same item count will
// not re-request until a scroll or a count change moves it.
func (e *Engine) ResolveLoad(gen uint64, err error) {
	e.loader.resolve(gen, err, e.window.OverscanEnd, e.count)
	e.recompute()
}

// LastLoadError returns the most recent load failure, cleared by the next
// successful resolution.
func (e *Engine) LastLoadError() error { return e.loader.lastErr }

// SetObserver registers a callback invoked synchronously with every
// published Visibility snapshot (accessibility announcements,
// instrumentation). The observer must not mutate the engine; re-entrant
// calls are ignored to keep the no-feedback-loop guarantee.
func (e *Engine) SetObserver(fn func(Visibility)) { e.observer = fn }

func (e *Engine) rowWindowEmpty() bool {
	return e.rowWindow.Start < 0 || e.rowWindow.Start > e.rowWindow.End
}

// recompute runs the full derivation chain: window from viewport and
// sizes, load check against data availability, visibility publication.
// Bounded per call (O(log n) search plus O(window) materialization).
func (e *Engine) recompute() {
	defer perf.Time("engine.compute_range")()

	if e.grid != nil {
		rowCount := e.grid.RowCount(e.count)
		rows := e.calc.ComputeRange(e.viewport, rowCount)
		e.rowWindow = RowRange{Start: rows.VisibleStart, End: rows.VisibleEnd}
		if rows.Empty() {
			e.window = EmptyRange
		} else {
			os, oe := e.grid.expand(RowRange{Start: rows.OverscanStart, End: rows.OverscanEnd}, e.count)
			vs, ve := e.grid.expand(RowRange{Start: rows.VisibleStart, End: rows.VisibleEnd}, e.count)
			e.window = WindowRange{VisibleStart: vs, VisibleEnd: ve, OverscanStart: os, OverscanEnd: oe}
		}
	} else {
		e.window = e.calc.ComputeRange(e.viewport, e.count)
		e.rowWindow = RowRange{Start: e.window.VisibleStart, End: e.window.VisibleEnd}
	}

	e.loader.check(e.window, e.count, e.hasMore)
	e.publish()
}

func (e *Engine) publish() {
	if e.grid != nil {
		e.vis = buildGridVisibility(e.window, e.rowWindow, e.grid, e.rowSizes, e.count)
	} else {
		e.vis = buildVisibility(e.window, e.sizes)
	}
	if e.observer != nil && !e.publishing {
		e.publishing = true
		e.observer(e.vis)
		e.publishing = false
	}
}
