package core

import (
	"errors"
	"testing"
)

func TestNewRegionValidation(t *testing.T) {
	g, _ := NewGrid(20, 30)
	cases := []struct {
		name                  string
		rs, rb, cs, cb, scale int
		want                  error
	}{
		{"whole grid", 0, 20, 0, 30, 1, nil},
		{"row bound past grid", 0, 21, 0, 30, 1, ErrOutOfBounds},
		{"col bound past grid", 0, 20, 15, 31, 1, ErrOutOfBounds},
		{"empty rows", 5, 5, 0, 30, 1, ErrOutOfBounds},
		{"negative start", -1, 20, 0, 30, 1, ErrOutOfBounds},
		{"zero scale", 0, 20, 0, 30, 0, ErrConstruction},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRegion(g, tc.rs, tc.rb, tc.cs, tc.cb, tc.scale)
			if tc.want == nil && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("err=%v, expected %v", err, tc.want)
			}
		})
	}
}

func TestSplitColumnsCoversGrid(t *testing.T) {
	g, _ := NewGrid(20, 30)
	left, right, err := SplitColumns(g, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if left.ColBound != 15 || right.ColStart != 15 || right.ColBound != 30 {
		t.Fatalf("split left=%v right=%v", left, right)
	}
	if left.Overlaps(right) {
		t.Fatal("split halves must be disjoint")
	}
	for row := 0; row < g.H; row++ {
		for col := 0; col < g.W; col++ {
			if left.Contains(row, col) == right.Contains(row, col) {
				t.Fatalf("cell (%d,%d) must belong to exactly one half", row, col)
			}
		}
	}
	if left.Cells()+right.Cells() != g.H*g.W {
		t.Fatal("halves must cover every cell")
	}
}

func TestOverlaps(t *testing.T) {
	g, _ := NewGrid(10, 10)
	a, _ := NewRegion(g, 0, 5, 0, 6, 1)
	b, _ := NewRegion(g, 4, 10, 5, 10, 1)
	c, _ := NewRegion(g, 5, 10, 0, 5, 1)
	if !a.Overlaps(b) || !b.Overlaps(a) {
		t.Fatal("a and b share cell (4,5)")
	}
	if a.Overlaps(c) {
		t.Fatal("a and c are disjoint")
	}
}
