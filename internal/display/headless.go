// Package display provides the surfaces the simulation can be presented on.
// Drivers register themselves with core.RegisterDisplay; the ebiten and sdl
// drivers are only compiled with their build tags.
package display

import (
	"errors"
	"sync"
	"sync/atomic"

	"splitlife/internal/core"
	"splitlife/internal/render"
)

// ErrClosed is returned when presenting to a closed display.
var ErrClosed = errors.New("display closed")

// Headless presents into memory only. It requests quit after MaxFrames
// presents when MaxFrames is positive.
type Headless struct {
	*render.Framebuffer

	maxFrames int
	frames    atomic.Int64
	closed    atomic.Bool

	mu      sync.Mutex
	caption string
}

// NewHeadless allocates a w*h in-memory display.
func NewHeadless(w, h, maxFrames int) *Headless {
	return &Headless{Framebuffer: render.NewFramebuffer(w, h), maxFrames: maxFrames}
}

// Present counts a frame.
func (d *Headless) Present() error {
	if d.closed.Load() {
		return ErrClosed
	}
	d.frames.Add(1)
	return nil
}

// Frames returns the number of presented frames.
func (d *Headless) Frames() int { return int(d.frames.Load()) }

// QuitRequested reports whether the frame budget is spent or Close was called.
func (d *Headless) QuitRequested() bool {
	if d.closed.Load() {
		return true
	}
	return d.maxFrames > 0 && d.Frames() >= d.maxFrames
}

// SetCaption stores the latest status line.
func (d *Headless) SetCaption(s string) {
	d.mu.Lock()
	d.caption = s
	d.mu.Unlock()
}

// Caption returns the latest status line.
func (d *Headless) Caption() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.caption
}

// Close marks the display closed.
func (d *Headless) Close() error {
	d.closed.Store(true)
	return nil
}

func init() {
	core.RegisterDisplay("headless", func(opts core.DisplayOptions) (core.Display, error) {
		return NewHeadless(opts.Width, opts.Height, opts.MaxFrames), nil
	})
}
