package core

import (
	"fmt"
	"image"
	"image/color"
	"sort"
)

// Display is the presentation surface the simulation paints into.
// Implementations must be safe for concurrent use by the two region loops and
// the control loop.
type Display interface {
	// Clear fills the whole surface with c.
	Clear(c color.Color)
	// FillRect paints an axis-aligned rectangle in device pixels.
	FillRect(x, y, w, h int, c color.Color)
	// Present publishes the accumulated drawing.
	Present() error
	// QuitRequested reports, without blocking, whether the user asked to close.
	QuitRequested() bool
	// Close releases the surface.
	Close() error
}

// Captioner is implemented by displays that can show a line of status text.
type Captioner interface {
	SetCaption(s string)
}

// MainThreadRunner is implemented by displays whose event pump must own the
// calling goroutine. RunMain runs body on another goroutine and returns once
// body has returned.
type MainThreadRunner interface {
	RunMain(body func() error) error
}

// DisplayOptions carries what a driver needs to open its surface.
type DisplayOptions struct {
	Title         string
	Width, Height int
	// MaxFrames ends headless runs after that many presents.
	MaxFrames int
	// Regions are the device extents of the painted regions.
	Regions    []image.Rectangle
	Parameters ParameterSnapshot
}

// DisplayFactory opens a Display.
type DisplayFactory func(opts DisplayOptions) (Display, error)

var displays = map[string]DisplayFactory{}

// RegisterDisplay adds a display factory under the provided name.
func RegisterDisplay(name string, f DisplayFactory) {
	if name == "" || f == nil {
		return
	}
	displays[name] = f
}

// Displays lists the registered display names in sorted order.
func Displays() []string {
	names := make([]string, 0, len(displays))
	for name := range displays {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OpenDisplay opens the display registered under name. Factory failures are
// wrapped with ErrDisplayInit.
func OpenDisplay(name string, opts DisplayOptions) (Display, error) {
	f, ok := displays[name]
	if !ok {
		return nil, fmt.Errorf("unknown display %q (available: %v): %w", name, Displays(), ErrDisplayInit)
	}
	d, err := f(opts)
	if err != nil {
		return nil, fmt.Errorf("display %q: %w: %w", name, ErrDisplayInit, err)
	}
	return d, nil
}
