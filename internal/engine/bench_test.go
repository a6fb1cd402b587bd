package engine

import "testing"

// BenchmarkComputeRange covers the per-event hot path: a scroll handler
// calls this once per frame, so it has to stay well inside a frame budget
// even for very large collections.
func BenchmarkComputeRange(b *testing.B) {
	sizes := []struct {
		name  string
		count int
	}{
		{"10k", 10_000},
		{"100k", 100_000},
		{"1m", 1_000_000},
	}

	for _, size := range sizes {
		b.Run("fixed/"+size.name, func(b *testing.B) {
			s := newSizeModel(50, nil, 0)
			s.SetCount(size.count)
			calc := &windowCalculator{sizes: s, overscan: DefaultOverscan(5)}
			total := s.TotalSize()

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				offset := (i * 997) % (total - 600)
				calc.ComputeRange(Viewport{Offset: offset, Extent: 600}, size.count)
			}
		})

		b.Run("variable/"+size.name, func(b *testing.B) {
			s := newSizeModel(0, func(i int) int { return 20 + (i%7)*10 }, 40)
			s.SetCount(size.count)
			calc := &windowCalculator{sizes: s, overscan: DefaultOverscan(5)}
			total := s.TotalSize() // warms the offset table

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				offset := (i * 997) % (total - 600)
				calc.ComputeRange(Viewport{Offset: offset, Extent: 600}, size.count)
			}
		})
	}
}

// BenchmarkMeasurementInvalidation exercises the dirty-suffix recompute
// after a mid-collection measurement.
func BenchmarkMeasurementInvalidation(b *testing.B) {
	const count = 100_000
	s := newSizeModel(0, nil, 40)
	s.SetCount(count)
	s.TotalSize()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		index := count - 1000 + (i % 500)
		s.SetMeasured(index, 40+(i%3))
		s.TotalSize()
	}
}

func BenchmarkEngineScrollEvent(b *testing.B) {
	e, err := New(Options{ItemSize: 50, OverscanCount: 5})
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}
	e.SetItemCount(100_000, false)
	e.SetViewport(Viewport{Offset: 0, Extent: 600})
	total := e.TotalSize()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		e.ScrollTo((i * 613) % (total - 600))
	}
}
