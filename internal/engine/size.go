package engine

import (
	"sort"

	"github.com/andyrewlee/vport/internal/logging"
)

// SizeFunc resolves the size of the item at index, in integer cells.
// A non-positive return is treated as a resolution failure and the
// estimated size is used instead.
type SizeFunc func(index int) int

type sizeEntry struct {
	size     int
	measured bool
	seeded   bool
}

// SizeModel resolves item sizes and maintains the cumulative offset table
// for variable sizing. In fixed mode every accessor is O(1) and no table is
// kept. In variable mode offsets are prefix sums recomputed lazily for the
// suffix dirtied by the most recent measurement.
type SizeModel struct {
	fixed    int // > 0 enables fixed mode
	sizeFn   SizeFunc
	estimate int

	count   int
	entries []sizeEntry
	offsets []int // offsets[i] = start of item i; len(offsets) == count+1 once clean
	clean   int   // offsets[0..clean] are valid
}

// newSizeModel builds a fixed model when fixed > 0, otherwise a variable
// model seeded from sizeFn (which may be nil) with estimate as fallback.
func newSizeModel(fixed int, sizeFn SizeFunc, estimate int) *SizeModel {
	return &SizeModel{
		fixed:    fixed,
		sizeFn:   sizeFn,
		estimate: estimate,
	}
}

// SetCount sets the number of items. Growing keeps existing entries and
// offsets; shrinking truncates and clamps the clean prefix.
func (s *SizeModel) SetCount(count int) {
	if count < 0 {
		count = 0
	}
	s.count = count
	if s.fixed > 0 {
		return
	}
	if count < len(s.entries) {
		s.entries = s.entries[:count]
	}
	for len(s.entries) < count {
		s.entries = append(s.entries, sizeEntry{})
	}
	if s.clean > count {
		s.clean = count
	}
}

// Count returns the current item count.
func (s *SizeModel) Count() int { return s.count }

// Size returns the size of the item at index. It never fails: unmeasured
// entries resolve through the size callback and fall back to the estimate.
func (s *SizeModel) Size(index int) int {
	if index < 0 || index >= s.count {
		return 0
	}
	if s.fixed > 0 {
		return s.fixed
	}
	e := &s.entries[index]
	if !e.seeded {
		e.size = s.resolve(index)
		e.seeded = true
	}
	return e.size
}

func (s *SizeModel) resolve(index int) int {
	if s.sizeFn == nil {
		return s.estimate
	}
	size := s.sizeFn(index)
	if size <= 0 {
		logging.Warn("size callback returned %d for index %d, using estimate %d", size, index, s.estimate)
		return s.estimate
	}
	return size
}

// Measured reports whether the entry at index holds a reported measurement.
func (s *SizeModel) Measured(index int) bool {
	if s.fixed > 0 || index < 0 || index >= s.count {
		return false
	}
	return s.entries[index].measured
}

// SetMeasured upgrades the entry at index to a reported measurement and
// returns the size delta against the previous value. A non-zero delta
// dirties the offset suffix from index onward. Idempotent for repeated
// identical reports. Non-positive sizes are resolution failures and keep
// the current value.
func (s *SizeModel) SetMeasured(index int, size int) int {
	if s.fixed > 0 || index < 0 || index >= s.count {
		return 0
	}
	if size <= 0 {
		logging.Warn("measured size %d for index %d rejected, keeping %d", size, index, s.Size(index))
		return 0
	}
	prev := s.Size(index)
	e := &s.entries[index]
	e.measured = true
	if size == prev {
		return 0
	}
	e.size = size
	if s.clean > index {
		s.clean = index
	}
	return size - prev
}

// Invalidate resets the entry at index to an estimate. Used when the item's
// identity changes under the same index.
func (s *SizeModel) Invalidate(index int) {
	if s.fixed > 0 || index < 0 || index >= s.count {
		return
	}
	s.entries[index] = sizeEntry{}
	if s.clean > index {
		s.clean = index
	}
}

// Remeasure drops every measurement, falling back to estimates. Fired on
// container resize and similar whole-collection invalidations.
func (s *SizeModel) Remeasure() {
	if s.fixed > 0 {
		return
	}
	for i := range s.entries {
		s.entries[i] = sizeEntry{}
	}
	s.clean = 0
}

// Offset returns the cumulative offset at which the item at index begins.
// Offset(Count()) is the total size.
func (s *SizeModel) Offset(index int) int {
	if index < 0 {
		return 0
	}
	if index > s.count {
		index = s.count
	}
	if s.fixed > 0 {
		return index * s.fixed
	}
	s.extendOffsets(index)
	return s.offsets[index]
}

// TotalSize returns the summed size of all items.
func (s *SizeModel) TotalSize() int {
	return s.Offset(s.count)
}

// extendOffsets recomputes the dirty suffix of the offset table through
// index (inclusive as a table position).
func (s *SizeModel) extendOffsets(index int) {
	if len(s.offsets) < s.count+1 {
		grown := make([]int, s.count+1)
		copy(grown, s.offsets)
		s.offsets = grown
	}
	if s.clean >= index {
		return
	}
	for i := s.clean; i < index; i++ {
		s.offsets[i+1] = s.offsets[i] + s.Size(i)
	}
	s.clean = index
}

// IndexAtOffset returns the index of the item occupying the given offset,
// clamped to [0, Count()-1]. Binary search over the clean prefix of the
// offset table; the table is extended first so lookups past the previously
// clean region amortize to the dirtied suffix only.
func (s *SizeModel) IndexAtOffset(offset int) int {
	if s.count == 0 {
		return -1
	}
	if offset <= 0 {
		return 0
	}
	if s.fixed > 0 {
		index := offset / s.fixed
		if index >= s.count {
			index = s.count - 1
		}
		return index
	}
	s.extendOffsets(s.count)
	// First index whose end offset is past the target.
	index := sort.Search(s.count, func(i int) bool {
		return s.offsets[i+1] > offset
	})
	if index >= s.count {
		index = s.count - 1
	}
	return index
}
