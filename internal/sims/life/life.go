// Package life implements the B3/S23 step rule over rectangular regions of a
// shared grid.
package life

import "splitlife/internal/core"

// Rule reports whether a cell is alive in the next generation: survival on two
// or three neighbors, birth on exactly three.
func Rule(alive bool, neighbors int) bool {
	if alive {
		return neighbors == 2 || neighbors == 3
	}
	return neighbors == 3
}

// Advance computes the next generation for the cells of r and publishes it.
// Only cells inside r are written. In ClampRegion mode only cells inside r
// are read, so advances over disjoint regions may run concurrently.
func Advance(g *core.Grid, r core.Region, mode NeighborMode) {
	cur, nxt := g.Cells(), g.Next()
	for row := r.RowStart; row < r.RowBound; row++ {
		base := row * g.W
		for col := r.ColStart; col < r.ColBound; col++ {
			idx := base + col
			neighbors := CountNeighbors(g, r, mode, row, col)
			alive := cur[idx] == 1
			switch {
			case alive && (neighbors < 2 || neighbors > 3):
				nxt[idx] = 0
			case !alive && neighbors == 3:
				nxt[idx] = 1
			default:
				nxt[idx] = cur[idx]
			}
		}
	}
	for row := r.RowStart; row < r.RowBound; row++ {
		lo, hi := row*g.W+r.ColStart, row*g.W+r.ColBound
		copy(cur[lo:hi], nxt[lo:hi])
	}
}

// Step advances each region in order on the calling goroutine. It is the
// sequential reference for the concurrent scheduler.
func Step(g *core.Grid, mode NeighborMode, regions ...core.Region) {
	for _, r := range regions {
		Advance(g, r, mode)
	}
}
