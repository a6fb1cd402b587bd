package engine

// Coordinate addresses a cell in grid mode. index = Row*columns + Col.
type Coordinate struct {
	Row int
	Col int
}

// RowRange is the contiguous set of materialized grid rows, inclusive.
type RowRange struct {
	Start int
	End   int
}

// gridMapper translates between linear item indices and (row, col)
// coordinates. The last row may be partially populated; out-of-range
// coordinates map to "no item" (-1), never an error.
type gridMapper struct {
	columns int
}

// ToCoordinate returns the grid coordinate of a linear index.
func (g *gridMapper) ToCoordinate(index int) Coordinate {
	if index < 0 || g.columns <= 0 {
		return Coordinate{Row: -1, Col: -1}
	}
	return Coordinate{Row: index / g.columns, Col: index % g.columns}
}

// ToIndex returns the linear index at (row, col), or -1 when the
// coordinate is outside the populated grid.
func (g *gridMapper) ToIndex(row, col, itemCount int) int {
	if row < 0 || col < 0 || col >= g.columns {
		return -1
	}
	index := row*g.columns + col
	if index >= itemCount {
		return -1
	}
	return index
}

// RowCount returns ceil(itemCount / columns).
func (g *gridMapper) RowCount(itemCount int) int {
	if itemCount <= 0 || g.columns <= 0 {
		return 0
	}
	return (itemCount + g.columns - 1) / g.columns
}

// rowSizeFunc adapts the item size model into a per-row size: the height
// of a row is the tallest item in it. Feeding this through a row-level
// SizeModel lets grid mode reuse the list windowing path unchanged, with
// row count standing in for item count.
func (g *gridMapper) rowSizeFunc(items *SizeModel) SizeFunc {
	return func(row int) int {
		first := row * g.columns
		max := 0
		for col := 0; col < g.columns; col++ {
			index := first + col
			if index >= items.Count() {
				break
			}
			if size := items.Size(index); size > max {
				max = size
			}
		}
		return max
	}
}

// expand widens a row range into the linear index range covering every
// populated cell of those rows.
func (g *gridMapper) expand(rows RowRange, itemCount int) (start, end int) {
	if rows.Start > rows.End {
		return -1, -1
	}
	start = rows.Start * g.columns
	end = (rows.End+1)*g.columns - 1
	if end > itemCount-1 {
		end = itemCount - 1
	}
	return start, end
}
