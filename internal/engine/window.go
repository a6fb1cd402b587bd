package engine

// Viewport is the visible scrollable area in integer cells. Offset/Extent
// run along the scroll axis; CrossExtent is only consulted in grid mode
// (column fitting and aria counts) and may be zero for plain lists.
type Viewport struct {
	Offset      int
	Extent      int
	CrossOffset int
	CrossExtent int
}

// WindowRange is the contiguous set of materialized item indices, all
// inclusive. An empty collection yields the sentinel range where every
// field is -1 and VisibleStart > VisibleEnd.
type WindowRange struct {
	VisibleStart  int
	VisibleEnd    int
	OverscanStart int
	OverscanEnd   int
}

// EmptyRange is the window produced for an empty collection.
var EmptyRange = WindowRange{VisibleStart: -1, VisibleEnd: -1, OverscanStart: -1, OverscanEnd: -1}

// Empty reports whether the range holds no indices.
func (r WindowRange) Empty() bool { return r.VisibleStart > r.VisibleEnd }

// Len returns the number of materialized indices.
func (r WindowRange) Len() int {
	if r.Empty() {
		return 0
	}
	return r.OverscanEnd - r.OverscanStart + 1
}

// Contains reports whether index falls inside the materialized window.
func (r WindowRange) Contains(index int) bool {
	return !r.Empty() && index >= r.OverscanStart && index <= r.OverscanEnd
}

// OverscanFunc maps the total item count to the overscan item count applied
// on each side of the visible range. Policy, not correctness: larger
// collections typically get fewer overscan items to bound per-frame cost.
type OverscanFunc func(itemCount int) int

// DefaultOverscan returns the stock policy: base items on each side, halved
// for collections above 10k items. Halving never drops a positive base
// below one; a base of zero means no overscan and is honored as configured.
func DefaultOverscan(base int) OverscanFunc {
	return func(itemCount int) int {
		if base <= 0 {
			return 0
		}
		n := base
		if itemCount > 10_000 {
			n = base / 2
		}
		if n < 1 {
			n = 1
		}
		return n
	}
}

// windowCalculator computes the visible index range for a viewport and
// expands it by the overscan policy. Reads sizes only through the model.
type windowCalculator struct {
	sizes    *SizeModel
	overscan OverscanFunc
}

// ComputeRange returns the materialized window for the viewport. Both ends
// resolve by offset search, so the common case is O(log n) (O(1) fixed).
// A single item taller than the viewport is still one window entry.
func (w *windowCalculator) ComputeRange(vp Viewport, itemCount int) WindowRange {
	if itemCount <= 0 || vp.Extent <= 0 {
		return EmptyRange
	}

	start := w.sizes.IndexAtOffset(vp.Offset)
	if start < 0 {
		return EmptyRange
	}
	// Last offset still inside the viewport. Offset+Extent is the first
	// cell past the bottom edge, hence the -1.
	end := w.sizes.IndexAtOffset(vp.Offset + vp.Extent - 1)
	if end < start {
		end = start
	}

	n := 0
	if w.overscan != nil {
		n = w.overscan(itemCount)
	}
	if n < 0 {
		n = 0
	}

	r := WindowRange{
		VisibleStart:  start,
		VisibleEnd:    end,
		OverscanStart: start - n,
		OverscanEnd:   end + n,
	}
	if r.OverscanStart < 0 {
		r.OverscanStart = 0
	}
	if r.OverscanEnd > itemCount-1 {
		r.OverscanEnd = itemCount - 1
	}
	return r
}
