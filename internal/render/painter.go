package render

import (
	"image"
	"image/color"

	"splitlife/internal/core"
)

// Surface is the drawing primitive a RegionPainter needs.
type Surface interface {
	FillRect(x, y, w, h int, c color.Color)
}

// CellSize returns the pixel size of one cell of r: ColBound*Scale wide and
// RowBound*Scale tall.
func CellSize(r core.Region) (w, h int) {
	return r.ColBound * r.Scale, r.RowBound * r.Scale
}

// CellRect returns the device rectangle of cell (row, col) in r.
func CellRect(r core.Region, row, col int) image.Rectangle {
	w, h := CellSize(r)
	return image.Rect(col*w, row*h, (col+1)*w, (row+1)*h)
}

// Extent returns the device rectangle covered by every cell of r.
func Extent(r core.Region) image.Rectangle {
	w, h := CellSize(r)
	return image.Rect(r.ColStart*w, r.RowStart*h, r.ColBound*w, r.RowBound*h)
}

// SurfaceSize returns the smallest surface that contains every region.
func SurfaceSize(regions ...core.Region) (w, h int) {
	for _, r := range regions {
		e := Extent(r)
		w = max(w, e.Max.X)
		h = max(h, e.Max.Y)
	}
	return w, h
}

// RegionPainter paints live cells of a region in On over an Off background.
type RegionPainter struct {
	Surface Surface
	On, Off color.Color
}

// Paint repaints the extent of r. Pixels outside it are not touched.
func (p RegionPainter) Paint(g *core.Grid, r core.Region) {
	e := Extent(r)
	p.Surface.FillRect(e.Min.X, e.Min.Y, e.Dx(), e.Dy(), p.Off)
	cells := g.Cells()
	for row := r.RowStart; row < r.RowBound; row++ {
		base := row * g.W
		for col := r.ColStart; col < r.ColBound; col++ {
			if cells[base+col] == 0 {
				continue
			}
			c := CellRect(r, row, col)
			p.Surface.FillRect(c.Min.X, c.Min.Y, c.Dx(), c.Dy(), p.On)
		}
	}
}
