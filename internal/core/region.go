package core

import "fmt"

// Region describes the rectangular range of rows [RowStart, RowBound) and
// columns [ColStart, ColBound) assigned to one worker loop. Scale only affects
// pixel conversion when painting.
type Region struct {
	RowStart, RowBound int
	ColStart, ColBound int
	Scale              int
}

// NewRegion validates the bounds against g.
func NewRegion(g *Grid, rowStart, rowBound, colStart, colBound, scale int) (Region, error) {
	r := Region{RowStart: rowStart, RowBound: rowBound, ColStart: colStart, ColBound: colBound, Scale: scale}
	if scale < 1 {
		return Region{}, fmt.Errorf("region %v: scale %d: %w", r, scale, ErrConstruction)
	}
	if rowStart < 0 || rowStart >= rowBound || rowBound > g.H ||
		colStart < 0 || colStart >= colBound || colBound > g.W {
		return Region{}, fmt.Errorf("region %v in %dx%d grid: %w", r, g.H, g.W, ErrOutOfBounds)
	}
	return r, nil
}

// SplitColumns divides g into a left region [0, W/2) and a right region
// [W/2, W), both spanning every row.
func SplitColumns(g *Grid, leftScale, rightScale int) (Region, Region, error) {
	if g.W < 2 {
		return Region{}, Region{}, fmt.Errorf("split %d columns: %w", g.W, ErrConstruction)
	}
	mid := g.W / 2
	left, err := NewRegion(g, 0, g.H, 0, mid, leftScale)
	if err != nil {
		return Region{}, Region{}, err
	}
	right, err := NewRegion(g, 0, g.H, mid, g.W, rightScale)
	if err != nil {
		return Region{}, Region{}, err
	}
	return left, right, nil
}

// Contains reports whether (row, col) lies inside the region.
func (r Region) Contains(row, col int) bool {
	return row >= r.RowStart && row < r.RowBound && col >= r.ColStart && col < r.ColBound
}

// Overlaps reports whether the two regions share at least one cell.
func (r Region) Overlaps(o Region) bool {
	return r.RowStart < o.RowBound && o.RowStart < r.RowBound &&
		r.ColStart < o.ColBound && o.ColStart < r.ColBound
}

// Cells returns the number of cells covered.
func (r Region) Cells() int {
	return (r.RowBound - r.RowStart) * (r.ColBound - r.ColStart)
}

func (r Region) String() string {
	return fmt.Sprintf("rows[%d,%d) cols[%d,%d) x%d", r.RowStart, r.RowBound, r.ColStart, r.ColBound, r.Scale)
}
