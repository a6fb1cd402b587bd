package engine

// Align controls where ScrollToIndex places the target item inside the
// viewport.
type Align int

const (
	// AlignAuto scrolls the minimum distance that brings the item fully
	// into view, and not at all if it already is.
	AlignAuto Align = iota
	// AlignStart pins the item's leading edge to the viewport top.
	AlignStart
	// AlignCenter centers the item in the viewport.
	AlignCenter
	// AlignEnd pins the item's trailing edge to the viewport bottom.
	AlignEnd
)

func (a Align) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	default:
		return "auto"
	}
}

// scrollController owns the current scroll offset. It is the only writer;
// everything else reads through Offset(). Offset stays clamped to
// [0, totalSize-extent], or 0 when the content fits the viewport.
type scrollController struct {
	sizes  *SizeModel
	offset int
	extent int
}

// Offset returns the current scroll offset.
func (s *scrollController) Offset() int { return s.offset }

func (s *scrollController) setExtent(extent int) {
	s.extent = extent
	s.clamp()
}

// ScrollTo moves to the given offset, clamped to the valid range.
func (s *scrollController) ScrollTo(offset int) {
	s.offset = offset
	s.clamp()
}

// ScrollToIndex computes the target offset for index under the requested
// alignment and scrolls there. An out-of-range index clamps to the nearest
// valid index rather than failing.
func (s *scrollController) ScrollToIndex(index int, align Align) {
	count := s.sizes.Count()
	if count == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > count-1 {
		index = count - 1
	}

	start := s.sizes.Offset(index)
	size := s.sizes.Size(index)

	switch align {
	case AlignStart:
		s.ScrollTo(start)
	case AlignEnd:
		s.ScrollTo(start + size - s.extent)
	case AlignCenter:
		s.ScrollTo(start + size/2 - s.extent/2)
	default: // AlignAuto
		switch {
		case start < s.offset:
			s.ScrollTo(start)
		case start+size > s.offset+s.extent:
			s.ScrollTo(start + size - s.extent)
		}
	}
}

// compensate shifts the stored offset by delta when a measurement changed
// the size of content entirely above the viewport, so the items on screen
// do not visually jump. The central correctness property for lazily
// measured variable-height lists.
func (s *scrollController) compensate(delta int) {
	if delta == 0 {
		return
	}
	s.offset += delta
	s.clamp()
}

func (s *scrollController) clamp() {
	max := s.sizes.TotalSize() - s.extent
	if max < 0 {
		max = 0
	}
	if s.offset > max {
		s.offset = max
	}
	if s.offset < 0 {
		s.offset = 0
	}
}
