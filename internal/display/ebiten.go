//go:build ebiten

package display

import (
	"errors"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"splitlife/internal/core"
	"splitlife/internal/render"
	"splitlife/internal/ui"
)

// Window presents the framebuffer in an ebiten window. It adapts the
// framebuffer to the ebiten.Game interface and must own the main goroutine.
type Window struct {
	fb   *render.Framebuffer
	w, h int

	mu    sync.Mutex
	front []byte
	dirty bool
	img   *ebiten.Image

	hud     *ui.HUD
	overlay *ui.Overlay

	quit atomic.Bool
	done atomic.Bool
}

// NewWindow configures the ebiten window for a w*h framebuffer.
func NewWindow(opts core.DisplayOptions) *Window {
	fb := render.NewFramebuffer(opts.Width, opts.Height)
	w, h := fb.Size()
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowClosingHandled(true)
	return &Window{
		fb:      fb,
		w:       w,
		h:       h,
		front:   make([]byte, 4*w*h),
		hud:     ui.NewHUD(opts.Parameters),
		overlay: ui.NewOverlay(opts.Regions),
	}
}

// Clear fills the whole surface with c.
func (win *Window) Clear(c color.Color) { win.fb.Clear(c) }

// FillRect paints a rectangle in device pixels.
func (win *Window) FillRect(x, y, w, h int, c color.Color) { win.fb.FillRect(x, y, w, h, c) }

// Present hands the current framebuffer to the next Draw call.
func (win *Window) Present() error {
	win.mu.Lock()
	defer win.mu.Unlock()
	win.fb.CopyPixels(win.front)
	win.dirty = true
	return nil
}

// QuitRequested reports whether the window is closing or q/Esc was pressed.
func (win *Window) QuitRequested() bool { return win.quit.Load() }

// SetCaption updates the HUD status line.
func (win *Window) SetCaption(s string) { win.hud.SetCaption(s) }

// Close is a no-op; the window goes away when RunMain returns.
func (win *Window) Close() error { return nil }

// RunMain runs body on a new goroutine and the ebiten loop on the caller's.
func (win *Window) RunMain(body func() error) error {
	errc := make(chan error, 1)
	go func() {
		errc <- body()
		win.done.Store(true)
	}()
	if err := ebiten.RunGame(win); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return <-errc
}

// Update handles input and ends the game once the control loop has returned.
func (win *Window) Update() error {
	if ebiten.IsWindowBeingClosed() ||
		inpututil.IsKeyJustPressed(ebiten.KeyQ) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		win.quit.Store(true)
	}
	win.hud.Update()
	win.overlay.Update()
	if win.done.Load() {
		return ebiten.Termination
	}
	return nil
}

// Draw uploads the last presented frame.
func (win *Window) Draw(screen *ebiten.Image) {
	if win.img == nil {
		win.img = ebiten.NewImage(win.w, win.h)
	}
	win.mu.Lock()
	if win.dirty {
		win.img.WritePixels(win.front)
		win.dirty = false
	}
	win.mu.Unlock()
	screen.DrawImage(win.img, nil)
	win.overlay.Draw(screen)
	win.hud.Draw(screen)
}

// Layout returns the logical screen size.
func (win *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return win.w, win.h
}

func init() {
	core.RegisterDisplay("ebiten", func(opts core.DisplayOptions) (core.Display, error) {
		return NewWindow(opts), nil
	})
}
