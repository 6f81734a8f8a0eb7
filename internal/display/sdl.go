//go:build sdl

package display

import (
	"image/color"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"splitlife/internal/core"
	"splitlife/internal/render"
)

// SDLWindow presents the framebuffer on an SDL window surface. Every SDL call
// happens on the main goroutine inside RunMain.
type SDLWindow struct {
	fb     *render.Framebuffer
	w, h   int
	window *sdl.Window
	frame  []byte
	title  string

	present chan chan error
	quit    atomic.Bool

	mu      sync.Mutex
	caption string
	shown   string
}

// NewSDLWindow initialises SDL video and opens a w*h window.
func NewSDLWindow(opts core.DisplayOptions) (*SDLWindow, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, err
	}
	fb := render.NewFramebuffer(opts.Width, opts.Height)
	w, h := fb.Size()
	window, err := sdl.CreateWindow(opts.Title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(w), int32(h), sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, err
	}
	return &SDLWindow{
		fb:      fb,
		w:       w,
		h:       h,
		window:  window,
		frame:   make([]byte, 4*w*h),
		title:   opts.Title,
		present: make(chan chan error),
	}, nil
}

// Clear fills the whole surface with c.
func (d *SDLWindow) Clear(c color.Color) { d.fb.Clear(c) }

// FillRect paints a rectangle in device pixels.
func (d *SDLWindow) FillRect(x, y, w, h int, c color.Color) { d.fb.FillRect(x, y, w, h, c) }

// Present asks the main goroutine to blit the framebuffer and waits for it.
func (d *SDLWindow) Present() error {
	reply := make(chan error, 1)
	d.present <- reply
	return <-reply
}

// QuitRequested reports whether SDL delivered a quit event.
func (d *SDLWindow) QuitRequested() bool { return d.quit.Load() }

// SetCaption shows s in the window title.
func (d *SDLWindow) SetCaption(s string) {
	d.mu.Lock()
	d.caption = s
	d.mu.Unlock()
}

// Close destroys the window and shuts SDL down.
func (d *SDLWindow) Close() error {
	err := d.window.Destroy()
	sdl.Quit()
	return err
}

// RunMain runs body on a new goroutine while pumping SDL events and serving
// Present calls on the caller's goroutine.
func (d *SDLWindow) RunMain(body func() error) error {
	errc := make(chan error, 1)
	go func() { errc <- body() }()
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case err := <-errc:
			return err
		case reply := <-d.present:
			reply <- d.blit()
		case <-ticker.C:
		}
		for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
			if _, ok := ev.(*sdl.QuitEvent); ok {
				d.quit.Store(true)
			}
		}
	}
}

func (d *SDLWindow) blit() error {
	d.fb.CopyPixels(d.frame)
	// image.RGBA byte order is ABGR8888 on little-endian hosts.
	src, err := sdl.CreateRGBSurfaceWithFormatFrom(unsafe.Pointer(&d.frame[0]),
		int32(d.w), int32(d.h), 32, int32(4*d.w), uint32(sdl.PIXELFORMAT_ABGR8888))
	if err != nil {
		return err
	}
	defer src.Free()
	dst, err := d.window.GetSurface()
	if err != nil {
		return err
	}
	if err := src.Blit(nil, dst, nil); err != nil {
		return err
	}
	d.mu.Lock()
	caption := d.caption
	d.mu.Unlock()
	if caption != d.shown {
		d.window.SetTitle(d.title + " | " + caption)
		d.shown = caption
	}
	return d.window.UpdateSurface()
}

func init() {
	runtime.LockOSThread()
	core.RegisterDisplay("sdl", func(opts core.DisplayOptions) (core.Display, error) {
		return NewSDLWindow(opts)
	})
}
