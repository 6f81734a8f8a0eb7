package core

import "fmt"

// Grid stores the current and next generation of a boolean cell field in
// row-major order. Cells hold 0 (dead) or 1 (alive).
type Grid struct {
	H, W int
	cur  []uint8
	nxt  []uint8
}

// NewGrid allocates both buffers. Every cell starts dead.
func NewGrid(height, width int) (*Grid, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("grid %dx%d: %w", height, width, ErrConstruction)
	}
	return &Grid{H: height, W: width, cur: make([]uint8, height*width), nxt: make([]uint8, height*width)}, nil
}

// Cells exposes the current generation so callers can read/write values directly.
func (g *Grid) Cells() []uint8 { return g.cur }

// Next exposes the scratch buffer the advancer writes into.
func (g *Grid) Next() []uint8 { return g.nxt }

// Index returns the linear slice index for (row, col).
func (g *Grid) Index(row, col int) int { return row*g.W + col }

// InBounds reports whether (row, col) addresses a cell of the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.H && col >= 0 && col < g.W
}

// Cell returns the state of (row, col).
func (g *Grid) Cell(row, col int) (bool, error) {
	if !g.InBounds(row, col) {
		return false, fmt.Errorf("cell (%d,%d) in %dx%d grid: %w", row, col, g.H, g.W, ErrOutOfBounds)
	}
	return g.cur[g.Index(row, col)] == 1, nil
}

// Set changes the state of (row, col) in the current generation.
func (g *Grid) Set(row, col int, alive bool) error {
	if !g.InBounds(row, col) {
		return fmt.Errorf("cell (%d,%d) in %dx%d grid: %w", row, col, g.H, g.W, ErrOutOfBounds)
	}
	var v uint8
	if alive {
		v = 1
	}
	g.cur[g.Index(row, col)] = v
	return nil
}

// Randomize sets every cell alive with probability one half.
func (g *Grid) Randomize(rng *RNG) {
	rng.FillBernoulli(g.cur, 0.5)
}

// Clear kills every cell in both buffers.
func (g *Grid) Clear() {
	clear(g.cur)
	clear(g.nxt)
}

// Population counts live cells in the current generation.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.cur {
		n += int(c)
	}
	return n
}

// LiveCells lists the (row, col) coordinates of every live cell.
func (g *Grid) LiveCells() [][2]int {
	var cells [][2]int
	for i, c := range g.cur {
		if c != 0 {
			cells = append(cells, [2]int{i / g.W, i % g.W})
		}
	}
	return cells
}

// Snapshot copies the current generation.
func (g *Grid) Snapshot() []uint8 {
	return append([]uint8(nil), g.cur...)
}
