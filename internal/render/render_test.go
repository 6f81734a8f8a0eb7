package render

import (
	"image"
	"image/color"
	"testing"

	"splitlife/internal/core"
)

var (
	on  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	off = color.RGBA{A: 255}
)

func TestCellRectMapping(t *testing.T) {
	g, _ := core.NewGrid(20, 30)
	left, right, err := core.SplitColumns(g, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := CellRect(left, 3, 4), image.Rect(4*30, 3*40, 5*30, 4*40); got != want {
		t.Fatalf("left cell (3,4) at %v, expected %v", got, want)
	}
	if got, want := CellRect(right, 3, 20), image.Rect(20*30, 3*20, 21*30, 4*20); got != want {
		t.Fatalf("right cell (3,20) at %v, expected %v", got, want)
	}
	if w, h := SurfaceSize(left, right); w != 900 || h != 800 {
		t.Fatalf("surface %dx%d, expected 900x800", w, h)
	}
}

func TestFramebufferFillRectClips(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.Clear(off)
	fb.FillRect(2, 1, 10, 10, on)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			want := off
			if x >= 2 && y >= 1 {
				want = on
			}
			if got := fb.At(x, y); got != want {
				t.Fatalf("pixel (%d,%d)=%v, expected %v", x, y, got, want)
			}
		}
	}
	fb.FillRect(-5, -5, 2, 2, on)
	if fb.At(0, 0) != off {
		t.Fatal("rectangle outside the surface must be ignored")
	}
	buf := make([]byte, 4*4*3)
	if n := fb.CopyPixels(buf); n != len(buf) {
		t.Fatalf("copied %d bytes, expected %d", n, len(buf))
	}
	if buf[4*(1*4+2)+1] != 255 {
		t.Fatal("pixel (2,1) green channel must be 255")
	}
}

// recordingSurface remembers every FillRect call.
type recordingSurface struct {
	rects  []image.Rectangle
	colors []color.Color
}

func (s *recordingSurface) FillRect(x, y, w, h int, c color.Color) {
	s.rects = append(s.rects, image.Rect(x, y, x+w, y+h))
	s.colors = append(s.colors, c)
}

func TestRegionPainterPaintsOnlyItsRegion(t *testing.T) {
	g, _ := core.NewGrid(4, 4)
	left, _ := core.NewRegion(g, 0, 4, 0, 2, 1)
	right, _ := core.NewRegion(g, 0, 4, 2, 4, 1)
	_ = g.Set(1, 1, true)
	_ = g.Set(2, 3, true)

	s := &recordingSurface{}
	RegionPainter{Surface: s, On: on, Off: off}.Paint(g, right)

	if len(s.rects) != 2 {
		t.Fatalf("%d rectangles, expected background plus one live cell", len(s.rects))
	}
	if s.rects[0] != Extent(right) || s.colors[0] != off {
		t.Fatalf("background %v, expected %v", s.rects[0], Extent(right))
	}
	if s.rects[1] != CellRect(right, 2, 3) || s.colors[1] != on {
		t.Fatalf("live cell at %v, expected %v", s.rects[1], CellRect(right, 2, 3))
	}
	if Extent(left).Overlaps(Extent(right)) {
		t.Fatal("equal-scale halves must not overlap on screen")
	}
}

func TestRegionPainterOnFramebuffer(t *testing.T) {
	g, _ := core.NewGrid(2, 2)
	r, _ := core.NewRegion(g, 0, 2, 0, 2, 1)
	_ = g.Set(0, 1, true)
	w, h := SurfaceSize(r)
	fb := NewFramebuffer(w, h)
	RegionPainter{Surface: fb, On: on, Off: off}.Paint(g, r)
	cell := CellRect(r, 0, 1)
	if fb.At(cell.Min.X, cell.Min.Y) != on {
		t.Fatal("live cell not painted")
	}
	dead := CellRect(r, 1, 0)
	if fb.At(dead.Min.X, dead.Min.Y) != off {
		t.Fatal("dead cell must show the background")
	}
}
