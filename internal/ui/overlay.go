//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay outlines the device extent of each region. B toggles it.
type Overlay struct {
	regions []image.Rectangle
	show    bool
	pixel   *ebiten.Image
}

var regionTints = []color.RGBA{
	{R: 255, G: 200, B: 40, A: 220},
	{R: 230, G: 60, B: 200, A: 220},
}

// NewOverlay constructs an overlay for the provided region extents.
func NewOverlay(regions []image.Rectangle) *Overlay {
	o := &Overlay{regions: regions}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the toggle key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		o.show = !o.show
	}
}

// Draw renders the region outlines onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show {
		return
	}
	const thickness = 2
	for i, r := range o.regions {
		tint := regionTints[i%len(regionTints)]
		x0, y0 := float64(r.Min.X)+1, float64(r.Min.Y)+1
		x1, y1 := float64(r.Max.X)-1, float64(r.Max.Y)-1
		o.drawLine(screen, x0, y0, x1, y0, thickness, tint)
		o.drawLine(screen, x1, y0, x1, y1, thickness, tint)
		o.drawLine(screen, x1, y1, x0, y1, thickness, tint)
		o.drawLine(screen, x0, y1, x0, y0, thickness, tint)
	}
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
