package life

import (
	"fmt"
	"sort"

	"splitlife/internal/core"
)

// Pattern is a set of live (row, col) offsets.
type Pattern [][2]int

var (
	// Glider travels one cell down and right every four generations.
	Glider = Pattern{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
	// Blinker is a period-two oscillator (vertical phase).
	Blinker = Pattern{{0, 1}, {1, 1}, {2, 1}}
	// Block is a still life.
	Block = Pattern{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
)

var patterns = map[string]Pattern{
	"glider":  Glider,
	"blinker": Blinker,
	"block":   Block,
}

// PatternByName looks up a built-in pattern.
func PatternByName(name string) (Pattern, bool) {
	p, ok := patterns[name]
	return p, ok
}

// PatternNames lists the built-in pattern names.
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stamp sets the cells of p alive with its origin at (row, col).
func Stamp(g *core.Grid, p Pattern, row, col int) error {
	for _, c := range p {
		if err := g.Set(row+c[0], col+c[1], true); err != nil {
			return fmt.Errorf("stamp at (%d,%d): %w", row, col, err)
		}
	}
	return nil
}
