package engine

import "github.com/andyrewlee/vport/internal/perf"

// Visibility is the outward-facing snapshot published after every
// recomputation: the exact visible and overscan index sets plus the
// positional offset for each materialized index. Observation only — it is
// derived state and never feeds back into recomputation.
type Visibility struct {
	Range    WindowRange
	Visible  map[int]struct{}
	Overscan map[int]struct{}
	offsets  map[int]int
}

// OffsetFor returns the positional offset of a materialized index. The
// second return is false for indices outside the window.
func (v Visibility) OffsetFor(index int) (int, bool) {
	off, ok := v.offsets[index]
	return off, ok
}

// VisibleCount returns the number of strictly visible indices.
func (v Visibility) VisibleCount() int { return len(v.Visible) }

// buildVisibility materializes the index sets and offsets for a window.
func buildVisibility(rng WindowRange, sizes *SizeModel) Visibility {
	v := Visibility{
		Range:    rng,
		Visible:  make(map[int]struct{}),
		Overscan: make(map[int]struct{}),
		offsets:  make(map[int]int),
	}
	if rng.Empty() {
		return v
	}
	off := sizes.Offset(rng.OverscanStart)
	for i := rng.OverscanStart; i <= rng.OverscanEnd; i++ {
		v.offsets[i] = off
		off += sizes.Size(i)
		if i >= rng.VisibleStart && i <= rng.VisibleEnd {
			v.Visible[i] = struct{}{}
		} else {
			v.Overscan[i] = struct{}{}
		}
	}
	perf.Count("engine.windows_published", 1)
	return v
}

// buildGridVisibility materializes index sets for grid mode: every item of
// a materialized row shares the row's scroll-axis offset, and visibility
// is decided per row.
func buildGridVisibility(rng WindowRange, rows RowRange, grid *gridMapper, rowSizes *SizeModel, itemCount int) Visibility {
	v := Visibility{
		Range:    rng,
		Visible:  make(map[int]struct{}),
		Overscan: make(map[int]struct{}),
		offsets:  make(map[int]int),
	}
	if rng.Empty() {
		return v
	}
	for i := rng.OverscanStart; i <= rng.OverscanEnd && i < itemCount; i++ {
		row := grid.ToCoordinate(i).Row
		v.offsets[i] = rowSizes.Offset(row)
		if row >= rows.Start && row <= rows.End {
			v.Visible[i] = struct{}{}
		} else {
			v.Overscan[i] = struct{}{}
		}
	}
	perf.Count("engine.windows_published", 1)
	return v
}
