package render

import (
	"image"
	"image/color"
	"sync"
)

// Framebuffer is an RGBA drawing surface shared by the region loops and the
// display driver that presents it.
type Framebuffer struct {
	mu  sync.Mutex
	img *image.RGBA
}

// NewFramebuffer allocates a w*h surface filled with transparent black.
func NewFramebuffer(w, h int) *Framebuffer {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Framebuffer{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Size returns the surface dimensions in pixels.
func (f *Framebuffer) Size() (int, int) {
	b := f.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear fills the whole surface with c.
func (f *Framebuffer) Clear(c color.Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fillSpan(f.img.Pix, rgba8(c))
}

// FillRect paints the rectangle at (x, y) of size w*h, clipped to the surface.
func (f *Framebuffer) FillRect(x, y, w, h int, c color.Color) {
	r := image.Rect(x, y, x+w, y+h).Intersect(f.img.Bounds())
	if r.Empty() {
		return
	}
	px := rgba8(c)
	f.mu.Lock()
	defer f.mu.Unlock()
	for row := r.Min.Y; row < r.Max.Y; row++ {
		lo := f.img.PixOffset(r.Min.X, row)
		fillSpan(f.img.Pix[lo:lo+4*r.Dx()], px)
	}
}

// At returns the pixel at (x, y).
func (f *Framebuffer) At(x, y int) color.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.img.RGBAAt(x, y)
}

// CopyPixels copies the RGBA bytes into dst and returns the number copied.
func (f *Framebuffer) CopyPixels(dst []byte) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copy(dst, f.img.Pix)
}
