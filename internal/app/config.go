package app

import (
	"flag"
	"fmt"
	"image/color"
	"strconv"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"splitlife/internal/core"
	"splitlife/internal/sims/life"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Height, Width         int
	LeftScale, RightScale int

	Tick            time.Duration
	Frame           time.Duration
	ShutdownTimeout time.Duration

	Display   string
	Seed      int64
	Pattern   string
	Neighbors string

	Lockstep     bool
	Sequential   bool
	HandoffDepth int
	Generations  int
	MaxFrames    int

	Background string
	LeftColor  string
	RightColor string

	Verbose bool
}

// NewConfig returns a Config populated with the defaults.
func NewConfig() *Config {
	return &Config{
		Height:          20,
		Width:           30,
		LeftScale:       2,
		RightScale:      1,
		Tick:            25 * time.Millisecond,
		Frame:           16 * time.Millisecond,
		ShutdownTimeout: 2 * time.Second,
		Display:         "terminal",
		Neighbors:       life.ClampRegion.String(),
		HandoffDepth:    1,
		Background:      "#000000",
		LeftColor:       "#0000ee",
		RightColor:      "#00ff00",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Height, "height", c.Height, "grid rows")
	fs.IntVar(&c.Width, "width", c.Width, "grid columns")
	fs.IntVar(&c.LeftScale, "left-scale", c.LeftScale, "pixel scale of the left region")
	fs.IntVar(&c.RightScale, "right-scale", c.RightScale, "pixel scale of the right region")
	fs.DurationVar(&c.Tick, "tick", c.Tick, "pacing delay inside each region iteration (0 runs flat out)")
	fs.DurationVar(&c.Frame, "frame", c.Frame, "present period of the control loop")
	fs.DurationVar(&c.ShutdownTimeout, "shutdown-timeout", c.ShutdownTimeout, "how long to wait for the region loops on quit")
	fs.StringVar(&c.Display, "display", c.Display, "display driver")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the initial field (0 uses the clock)")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "seed a named pattern near the top-left corner instead of random cells")
	fs.StringVar(&c.Neighbors, "neighbors", c.Neighbors, "neighbor clamp: region or grid")
	fs.BoolVar(&c.Lockstep, "lockstep", c.Lockstep, "alternate left and right under one lock")
	fs.BoolVar(&c.Sequential, "sequential", c.Sequential, "advance both regions on a single goroutine")
	fs.IntVar(&c.HandoffDepth, "handoff-depth", c.HandoffDepth, "generations the left loop may run ahead")
	fs.IntVar(&c.Generations, "generations", c.Generations, "stop after this many generations (0 runs until quit)")
	fs.IntVar(&c.MaxFrames, "max-frames", c.MaxFrames, "headless display: quit after this many frames")
	fs.StringVar(&c.Background, "background", c.Background, "background colour")
	fs.StringVar(&c.LeftColor, "left-color", c.LeftColor, "live cell colour of the left region")
	fs.StringVar(&c.RightColor, "right-color", c.RightColor, "live cell colour of the right region")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "log region loop lifecycle")
}

// FromMap applies key=value overrides using the flag names.
func (c *Config) FromMap(kv map[string]string) error {
	fs := flag.NewFlagSet("overrides", flag.ContinueOnError)
	c.Bind(fs)
	for k, v := range kv {
		if fs.Lookup(k) == nil {
			return fmt.Errorf("override %q: unknown key: %w", k, core.ErrConstruction)
		}
		if err := fs.Set(k, v); err != nil {
			return fmt.Errorf("override %s=%q: %w: %w", k, v, core.ErrConstruction, err)
		}
	}
	return nil
}

// Validate reports settings that cannot start a run.
func (c *Config) Validate() error {
	switch {
	case c.Height <= 0 || c.Width <= 0:
		return fmt.Errorf("grid %dx%d: %w", c.Height, c.Width, core.ErrConstruction)
	case c.Width < 2:
		return fmt.Errorf("width %d cannot be split in two: %w", c.Width, core.ErrConstruction)
	case c.LeftScale < 1 || c.RightScale < 1:
		return fmt.Errorf("scales %d/%d: %w", c.LeftScale, c.RightScale, core.ErrConstruction)
	case c.Tick < 0 || c.Frame <= 0 || c.ShutdownTimeout <= 0:
		return fmt.Errorf("durations tick=%v frame=%v shutdown=%v: %w", c.Tick, c.Frame, c.ShutdownTimeout, core.ErrConstruction)
	case c.HandoffDepth < 1:
		return fmt.Errorf("handoff depth %d: %w", c.HandoffDepth, core.ErrConstruction)
	case c.Generations < 0 || c.MaxFrames < 0:
		return fmt.Errorf("generations %d, max frames %d: %w", c.Generations, c.MaxFrames, core.ErrConstruction)
	}
	if c.Pattern != "" {
		if _, ok := life.PatternByName(c.Pattern); !ok {
			return fmt.Errorf("pattern %q (known: %v): %w", c.Pattern, life.PatternNames(), core.ErrConstruction)
		}
	}
	if _, err := c.NeighborMode(); err != nil {
		return err
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	return nil
}

// NeighborMode parses the neighbor clamp setting.
func (c *Config) NeighborMode() (life.NeighborMode, error) {
	return life.ParseNeighborMode(c.Neighbors)
}

// Palette holds the three paint colours.
type Palette struct {
	Background, Left, Right color.Color
}

// Palette parses the configured hex colours.
func (c *Config) Palette() (Palette, error) {
	var p Palette
	for _, entry := range []struct {
		name string
		hex  string
		dst  *color.Color
	}{
		{"background", c.Background, &p.Background},
		{"left-color", c.LeftColor, &p.Left},
		{"right-color", c.RightColor, &p.Right},
	} {
		parsed, err := colorful.Hex(entry.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("%s %q: %w: %w", entry.name, entry.hex, core.ErrConstruction, err)
		}
		*entry.dst = parsed
	}
	return p, nil
}

// Regions splits g into the left and right region descriptors.
func (c *Config) Regions(g *core.Grid) (core.Region, core.Region, error) {
	return core.SplitColumns(g, c.LeftScale, c.RightScale)
}

// Parameters describes the run for the HUD and the start-up log.
func (c *Config) Parameters() core.ParameterSnapshot {
	itoa := strconv.Itoa
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "grid", Params: []core.Parameter{
			{Key: "height", Label: "Height", Value: itoa(c.Height)},
			{Key: "width", Label: "Width", Value: itoa(c.Width)},
			{Key: "seed", Label: "Seed", Value: strconv.FormatInt(c.Seed, 10)},
			{Key: "pattern", Label: "Pattern", Value: c.Pattern},
		}},
		{Name: "loops", Params: []core.Parameter{
			{Key: "neighbors", Label: "Neighbors", Value: c.Neighbors},
			{Key: "tick", Label: "Tick", Value: c.Tick.String()},
			{Key: "lockstep", Label: "Lockstep", Value: strconv.FormatBool(c.Lockstep)},
			{Key: "sequential", Label: "Sequential", Value: strconv.FormatBool(c.Sequential)},
			{Key: "handoff-depth", Label: "Hand-off depth", Value: itoa(c.HandoffDepth)},
		}},
		{Name: "display", Params: []core.Parameter{
			{Key: "display", Label: "Driver", Value: c.Display},
			{Key: "left-scale", Label: "Left scale", Value: itoa(c.LeftScale)},
			{Key: "right-scale", Label: "Right scale", Value: itoa(c.RightScale)},
		}},
	}}
}
