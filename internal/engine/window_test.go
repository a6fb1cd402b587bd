package engine

import "testing"

func fixedCalc(itemSize, count, overscan int) (*windowCalculator, *SizeModel) {
	s := newSizeModel(itemSize, nil, 0)
	s.SetCount(count)
	return &windowCalculator{sizes: s, overscan: func(int) int { return overscan }}, s
}

func TestComputeRangeFixedScenario(t *testing.T) {
	// 10,000 items of height 50, viewport 600 at offset 2000, overscan 5.
	calc, _ := fixedCalc(50, 10_000, 5)

	r := calc.ComputeRange(Viewport{Offset: 2000, Extent: 600}, 10_000)
	want := WindowRange{VisibleStart: 40, VisibleEnd: 51, OverscanStart: 35, OverscanEnd: 56}
	if r != want {
		t.Fatalf("expected %+v, got %+v", want, r)
	}
}

func TestComputeRangeEmptyCollection(t *testing.T) {
	calc, _ := fixedCalc(50, 0, 5)
	r := calc.ComputeRange(Viewport{Offset: 0, Extent: 600}, 0)
	if r != EmptyRange {
		t.Fatalf("expected sentinel empty range, got %+v", r)
	}
	if !r.Empty() {
		t.Fatalf("expected Empty() true")
	}
	if r.Len() != 0 {
		t.Fatalf("expected zero length, got %d", r.Len())
	}
}

func TestComputeRangeOversizedSingleItem(t *testing.T) {
	s := newSizeModel(0, func(int) int { return 1500 }, 50)
	s.SetCount(1)
	calc := &windowCalculator{sizes: s, overscan: func(int) int { return 5 }}

	r := calc.ComputeRange(Viewport{Offset: 0, Extent: 600}, 1)
	want := WindowRange{VisibleStart: 0, VisibleEnd: 0, OverscanStart: 0, OverscanEnd: 0}
	if r != want {
		t.Fatalf("expected single-entry range, got %+v", r)
	}
}

func TestComputeRangeClampsOverscanAtEdges(t *testing.T) {
	calc, _ := fixedCalc(10, 20, 5)

	t.Run("top", func(t *testing.T) {
		r := calc.ComputeRange(Viewport{Offset: 0, Extent: 50}, 20)
		if r.OverscanStart != 0 {
			t.Fatalf("expected overscan clamped to 0, got %d", r.OverscanStart)
		}
		if r.VisibleStart != 0 || r.VisibleEnd != 4 {
			t.Fatalf("unexpected visible range %+v", r)
		}
	})

	t.Run("bottom", func(t *testing.T) {
		r := calc.ComputeRange(Viewport{Offset: 150, Extent: 50}, 20)
		if r.OverscanEnd != 19 {
			t.Fatalf("expected overscan clamped to 19, got %d", r.OverscanEnd)
		}
		if r.VisibleEnd != 19 {
			t.Fatalf("expected visible end 19, got %d", r.VisibleEnd)
		}
	})
}

func TestComputeRangeIdempotent(t *testing.T) {
	calc, _ := fixedCalc(50, 1000, 3)
	vp := Viewport{Offset: 4321, Extent: 600}
	first := calc.ComputeRange(vp, 1000)
	second := calc.ComputeRange(vp, 1000)
	if first != second {
		t.Fatalf("expected identical ranges for unchanged inputs: %+v vs %+v", first, second)
	}
}

func TestComputeRangeContiguityProperty(t *testing.T) {
	sizes := []int{12, 3, 44, 7, 50, 50, 2, 19, 33, 8, 25, 25, 25, 60, 5}
	s := newSizeModel(0, func(i int) int { return sizes[i] }, 20)
	s.SetCount(len(sizes))
	calc := &windowCalculator{sizes: s, overscan: func(int) int { return 2 }}

	total := s.TotalSize()
	for offset := 0; offset < total; offset += 7 {
		r := calc.ComputeRange(Viewport{Offset: offset, Extent: 40}, len(sizes))
		if r.Empty() {
			t.Fatalf("unexpected empty range at offset %d", offset)
		}
		if !(0 <= r.OverscanStart && r.OverscanStart <= r.VisibleStart) {
			t.Fatalf("range order violated at offset %d: %+v", offset, r)
		}
		if !(r.VisibleStart <= r.VisibleEnd && r.VisibleEnd <= r.OverscanEnd) {
			t.Fatalf("range order violated at offset %d: %+v", offset, r)
		}
		if r.OverscanEnd > len(sizes)-1 {
			t.Fatalf("range exceeds item count at offset %d: %+v", offset, r)
		}
	}
}

func TestDefaultOverscanPolicy(t *testing.T) {
	policy := DefaultOverscan(6)

	if got := policy(100); got != 6 {
		t.Fatalf("expected base overscan 6, got %d", got)
	}
	if got := policy(20_000); got != 3 {
		t.Fatalf("expected halved overscan 3 for large collections, got %d", got)
	}
	if got := DefaultOverscan(1)(50_000); got != 1 {
		t.Fatalf("expected halving to keep a positive base at 1, got %d", got)
	}
	// A configured base of zero means no overscan at any collection size.
	if got := DefaultOverscan(0)(100); got != 0 {
		t.Fatalf("expected zero base honored, got %d", got)
	}
	if got := DefaultOverscan(0)(50_000); got != 0 {
		t.Fatalf("expected zero base honored for large collections, got %d", got)
	}
}

func TestWindowRangeContains(t *testing.T) {
	r := WindowRange{VisibleStart: 5, VisibleEnd: 8, OverscanStart: 3, OverscanEnd: 10}
	if !r.Contains(3) || !r.Contains(10) {
		t.Fatalf("expected overscan edges inside range")
	}
	if r.Contains(2) || r.Contains(11) {
		t.Fatalf("expected outside indices excluded")
	}
	if EmptyRange.Contains(0) {
		t.Fatalf("empty range must contain nothing")
	}
}
