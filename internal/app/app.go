// Package app wires the grid, the region loops and a display together and
// runs the control loop that presents frames and watches for quit.
package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"time"

	"splitlife/internal/core"
	"splitlife/internal/render"
	"splitlife/internal/scheduler"
	"splitlife/internal/sims/life"
)

// ErrShutdownTimeout is returned when the region loops outlive the shutdown
// timeout after a quit request.
var ErrShutdownTimeout = errors.New("region loops did not stop in time")

// runner is satisfied by scheduler.Scheduler and scheduler.Sequential.
type runner interface {
	Run(ctx context.Context) error
	Generations() (left, right uint64)
}

// Run opens the configured display and simulates until the user quits, ctx
// is cancelled or the generation limit is reached.
func Run(ctx context.Context, cfg *Config, logger *log.Logger) (err error) {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	s, err := newSession(cfg, logger)
	if err != nil {
		return err
	}
	w, h := render.SurfaceSize(s.left, s.right)
	d, err := core.OpenDisplay(cfg.Display, core.DisplayOptions{
		Title:      "splitlife",
		Width:      w,
		Height:     h,
		MaxFrames:  cfg.MaxFrames,
		Regions:    []image.Rectangle{render.Extent(s.left), render.Extent(s.right)},
		Parameters: cfg.Parameters(),
	})
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, d.Close())
	}()
	logger.Printf("display %s %dx%d px", cfg.Display, w, h)

	body := func() error { return s.run(ctx, d) }
	if m, ok := d.(core.MainThreadRunner); ok {
		return m.RunMain(body)
	}
	return body()
}

// session holds the state shared by one run.
type session struct {
	cfg         *Config
	log         *log.Logger
	grid        *core.Grid
	left, right core.Region
	mode        life.NeighborMode
	palette     Palette
}

func newSession(cfg *Config, logger *log.Logger) (*session, error) {
	mode, err := cfg.NeighborMode()
	if err != nil {
		return nil, err
	}
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}
	g, err := core.NewGrid(cfg.Height, cfg.Width)
	if err != nil {
		return nil, err
	}
	left, right, err := cfg.Regions(g)
	if err != nil {
		return nil, err
	}
	if cfg.Pattern != "" {
		p, _ := life.PatternByName(cfg.Pattern)
		if err := life.Stamp(g, p, 1, 1); err != nil {
			return nil, err
		}
	} else {
		g.Randomize(core.NewRNG(cfg.Seed))
	}
	logger.Printf("grid %dx%d seed=%d population=%d", g.H, g.W, cfg.Seed, g.Population())
	logger.Printf("left %v, right %v, neighbors=%v", left, right, mode)
	return &session{cfg: cfg, log: logger, grid: g, left: left, right: right, mode: mode, palette: palette}, nil
}

func (s *session) runner(d core.Display) (runner, error) {
	opts := scheduler.Options{
		Mode:         s.mode,
		Tick:         s.cfg.Tick,
		HandoffDepth: s.cfg.HandoffDepth,
		Generations:  s.cfg.Generations,
		Lockstep:     s.cfg.Lockstep,
		Left:         render.RegionPainter{Surface: d, On: s.palette.Left, Off: s.palette.Background},
		Right:        render.RegionPainter{Surface: d, On: s.palette.Right, Off: s.palette.Background},
	}
	if s.cfg.Verbose {
		opts.Logger = s.log
	}
	if s.cfg.Sequential {
		return scheduler.NewSequential(s.grid, s.left, s.right, opts)
	}
	sched, err := scheduler.New(s.grid, s.left, s.right, opts)
	if err != nil {
		return nil, err
	}
	s.log.Printf("lock policy %v", sched.Policy())
	return sched, nil
}

// run is the control loop: it presents once per frame, polls for quit and
// shuts the region loops down.
func (s *session) run(ctx context.Context, d core.Display) error {
	r, err := s.runner(d)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d.Clear(s.palette.Background)
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	ticker := time.NewTicker(s.cfg.Frame)
	defer ticker.Stop()
	for {
		select {
		case err := <-done:
			if err != nil {
				return err
			}
			l, rg := r.Generations()
			s.log.Printf("finished after %d/%d generations", l, rg)
			s.caption(d, r)
			return d.Present()
		case <-ctx.Done():
			return s.shutdown(cancel, done)
		case <-ticker.C:
			if d.QuitRequested() {
				s.log.Printf("quit requested")
				return s.shutdown(cancel, done)
			}
			s.caption(d, r)
			if err := d.Present(); err != nil {
				return errors.Join(err, s.shutdown(cancel, done))
			}
		}
	}
}

func (s *session) caption(d core.Display, r runner) {
	c, ok := d.(core.Captioner)
	if !ok {
		return
	}
	l, rg := r.Generations()
	c.SetCaption(fmt.Sprintf("left gen %d  right gen %d", l, rg))
}

func (s *session) shutdown(cancel context.CancelFunc, done <-chan error) error {
	cancel()
	t := time.NewTimer(s.cfg.ShutdownTimeout)
	defer t.Stop()
	select {
	case err := <-done:
		return err
	case <-t.C:
		return fmt.Errorf("after %v: %w", s.cfg.ShutdownTimeout, ErrShutdownTimeout)
	}
}
