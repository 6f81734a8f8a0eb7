//go:build ebiten

package ui

import (
	"image/color"
	"sync"

	"splitlife/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding   = 6
	lineHeight     = 15
	headerBaseline = 12
)

// HUD renders the status caption and, when toggled with H, the parameters the
// run was started with.
type HUD struct {
	mu      sync.Mutex
	caption string

	params     []string
	showParams bool
	pixel      *ebiten.Image
}

// NewHUD constructs a HUD listing the provided parameters.
func NewHUD(params core.ParameterSnapshot) *HUD {
	h := &HUD{params: params.Lines()}
	h.pixel = ebiten.NewImage(1, 1)
	h.pixel.Fill(color.White)
	return h
}

// SetCaption replaces the status line. It is safe to call from any goroutine.
func (h *HUD) SetCaption(s string) {
	h.mu.Lock()
	h.caption = s
	h.mu.Unlock()
}

// Update handles HUD key bindings.
func (h *HUD) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		h.showParams = !h.showParams
	}
}

// Draw paints the caption panel in the top-left corner.
func (h *HUD) Draw(screen *ebiten.Image) {
	h.mu.Lock()
	lines := []string{h.caption}
	h.mu.Unlock()
	if h.showParams {
		lines = append(lines, h.params...)
	}

	face := basicfont.Face7x13
	width := 0
	for _, l := range lines {
		width = max(width, text.BoundString(face, l).Dx())
	}
	height := len(lines)*lineHeight + panelPadding

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(width+2*panelPadding), float64(height))
	op.ColorScale.ScaleWithColor(color.RGBA{R: 16, G: 16, B: 20, A: 200})
	screen.DrawImage(h.pixel, op)

	for i, l := range lines {
		clr := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if i > 0 {
			clr = color.RGBA{R: 160, G: 160, B: 170, A: 255}
		}
		text.Draw(screen, l, face, panelPadding, headerBaseline+i*lineHeight, clr)
	}
}
