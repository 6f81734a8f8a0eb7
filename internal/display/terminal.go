package display

import (
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"splitlife/internal/core"
	"splitlife/internal/render"
)

// Terminal presents the framebuffer on a tcell screen. Each character cell
// shows two vertically stacked pixels using the upper half block glyph.
type Terminal struct {
	fb     *render.Framebuffer
	screen tcell.Screen
	frame  []byte
	quit   atomic.Bool

	mu      sync.Mutex
	caption string
}

// NewTerminal takes over the terminal with a w*h pixel framebuffer.
func NewTerminal(w, h int) (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return newTerminal(s, w, h), nil
}

func newTerminal(s tcell.Screen, w, h int) *Terminal {
	s.HideCursor()
	s.Clear()
	fb := render.NewFramebuffer(w, h)
	fw, fh := fb.Size()
	t := &Terminal{fb: fb, screen: s, frame: make([]byte, 4*fw*fh)}
	go t.pollEvents()
	return t
}

func (t *Terminal) pollEvents() {
	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				t.quit.Store(true)
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// Clear fills the whole surface with c.
func (t *Terminal) Clear(c color.Color) { t.fb.Clear(c) }

// FillRect paints a rectangle in framebuffer pixels.
func (t *Terminal) FillRect(x, y, w, h int, c color.Color) { t.fb.FillRect(x, y, w, h, c) }

// Present down-samples the framebuffer to the terminal and shows it.
func (t *Terminal) Present() error {
	t.fb.CopyPixels(t.frame)
	fw, fh := t.fb.Size()
	cols, rows := t.screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil
	}
	sample := func(x, y int) tcell.Color {
		px := (2*x + 1) * fw / (2 * cols)
		py := (2*y + 1) * fh / (4 * rows)
		off := 4 * (py*fw + px)
		return tcell.NewRGBColor(int32(t.frame[off]), int32(t.frame[off+1]), int32(t.frame[off+2]))
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			style := tcell.StyleDefault.Foreground(sample(x, 2*y)).Background(sample(x, 2*y+1))
			t.screen.SetContent(x, y, '▀', nil, style)
		}
	}
	t.mu.Lock()
	caption := t.caption
	t.mu.Unlock()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	x := 0
	for _, r := range caption {
		if x >= cols {
			break
		}
		t.screen.SetContent(x, 0, r, nil, style)
		x++
	}
	t.screen.Show()
	return nil
}

// QuitRequested reports whether q, Esc or Ctrl-C was pressed.
func (t *Terminal) QuitRequested() bool { return t.quit.Load() }

// SetCaption sets the status line drawn on the top row.
func (t *Terminal) SetCaption(s string) {
	t.mu.Lock()
	t.caption = s
	t.mu.Unlock()
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	t.screen.Fini()
	return nil
}

func init() {
	core.RegisterDisplay("terminal", func(opts core.DisplayOptions) (core.Display, error) {
		return NewTerminal(opts.Width, opts.Height)
	})
}
