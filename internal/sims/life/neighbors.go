package life

import (
	"fmt"

	"splitlife/internal/core"
)

// NeighborMode selects the rectangle a neighbor search is clamped to.
type NeighborMode uint8

const (
	// ClampRegion only counts neighbors inside the cell's own region. A cell on
	// a region edge sees fewer than eight candidates even when live cells lie
	// just across the region line.
	ClampRegion NeighborMode = iota
	// ClampGrid counts neighbors anywhere in the grid. There is no wraparound.
	ClampGrid
)

func (m NeighborMode) String() string {
	switch m {
	case ClampRegion:
		return "region"
	case ClampGrid:
		return "grid"
	}
	return fmt.Sprintf("NeighborMode(%d)", uint8(m))
}

// ParseNeighborMode maps "region" or "grid" to a NeighborMode.
func ParseNeighborMode(s string) (NeighborMode, error) {
	switch s {
	case "region":
		return ClampRegion, nil
	case "grid":
		return ClampGrid, nil
	}
	return 0, fmt.Errorf("neighbor mode %q: %w", s, core.ErrConstruction)
}

// CountNeighbors counts the live cells in the 3x3 block centred on (row, col),
// excluding the centre, clamped according to mode. (row, col) must lie inside r.
func CountNeighbors(g *core.Grid, r core.Region, mode NeighborMode, row, col int) int {
	rowLo, rowHi, colLo, colHi := r.RowStart, r.RowBound-1, r.ColStart, r.ColBound-1
	if mode == ClampGrid {
		rowLo, rowHi, colLo, colHi = 0, g.H-1, 0, g.W-1
	}
	cells := g.Cells()
	n := 0
	for y := max(rowLo, row-1); y <= min(rowHi, row+1); y++ {
		base := y * g.W
		for x := max(colLo, col-1); x <= min(colHi, col+1); x++ {
			if y == row && x == col {
				continue
			}
			n += int(cells[base+x])
		}
	}
	return n
}
