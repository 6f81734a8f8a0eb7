// Package scheduler runs the two region loops that share one grid.
//
// The left loop renders and advances its region, then hands the generation
// number to the right loop, which must receive it before each of its own
// iterations. Hand-offs are buffered values, so a slow right loop falls behind
// but never skips a generation; the left loop only blocks when the right loop
// lags by more than the hand-off depth.
//
// Two lock policies exist. PerRegion gives each loop its own mutex and is only
// used when the regions are disjoint and neighbors are clamped to the region,
// because then the loops read and write disjoint cells. Every other setup uses
// Shared: one mutex and strict turn-taking, which makes the result identical
// to life.Step applied left then right.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"splitlife/internal/core"
	"splitlife/internal/sims/life"
)

// LockPolicy describes how the two loops exclude each other.
type LockPolicy uint8

const (
	// PerRegion gives each loop its own mutex.
	PerRegion LockPolicy = iota
	// Shared uses one mutex and strict left/right alternation.
	Shared
)

func (p LockPolicy) String() string {
	if p == Shared {
		return "shared"
	}
	return "per-region"
}

// Painter renders the cells of one region.
type Painter interface {
	Paint(g *core.Grid, r core.Region)
}

// Options tunes a Scheduler. The zero value runs unpaced, unbounded,
// region-clamped and without rendering.
type Options struct {
	Mode life.NeighborMode
	// Tick is the pacing delay inside each iteration.
	Tick time.Duration
	// HandoffDepth bounds how many generations the left loop may run ahead.
	HandoffDepth int
	// Generations stops each loop after that many iterations; 0 runs until
	// the context is cancelled.
	Generations int
	// Lockstep forces the Shared policy.
	Lockstep bool

	Left, Right Painter
	Logger      *log.Logger
}

// Scheduler owns the left and right loops over a shared grid.
type Scheduler struct {
	grid        *core.Grid
	left, right core.Region
	opts        Options
	policy      LockPolicy

	leftMu, rightMu *sync.Mutex
	handoff         chan uint64
	rightDone       chan uint64

	leftGen, rightGen atomic.Uint64
	log               *log.Logger
}

// New validates the regions against g and picks the lock policy.
func New(g *core.Grid, left, right core.Region, opts Options) (*Scheduler, error) {
	for _, r := range []core.Region{left, right} {
		if _, err := core.NewRegion(g, r.RowStart, r.RowBound, r.ColStart, r.ColBound, r.Scale); err != nil {
			return nil, fmt.Errorf("scheduler: %w", err)
		}
	}
	if opts.HandoffDepth < 1 {
		opts.HandoffDepth = 1
	}
	if opts.Generations < 0 {
		return nil, fmt.Errorf("scheduler: generations %d: %w", opts.Generations, core.ErrConstruction)
	}
	s := &Scheduler{
		grid:      g,
		left:      left,
		right:     right,
		opts:      opts,
		handoff:   make(chan uint64, opts.HandoffDepth),
		rightDone: make(chan uint64, 1),
		log:       opts.Logger,
	}
	if s.log == nil {
		s.log = log.New(io.Discard, "", 0)
	}
	s.leftMu = new(sync.Mutex)
	s.rightMu = s.leftMu
	if !opts.Lockstep && !left.Overlaps(right) && opts.Mode == life.ClampRegion {
		s.policy = PerRegion
		s.rightMu = new(sync.Mutex)
	} else {
		s.policy = Shared
	}
	return s, nil
}

// Policy reports the lock policy chosen by New.
func (s *Scheduler) Policy() LockPolicy { return s.policy }

// Generations reports how many iterations each loop has completed.
func (s *Scheduler) Generations() (left, right uint64) {
	return s.leftGen.Load(), s.rightGen.Load()
}

// Snapshot copies the current generation while holding both loops' locks.
func (s *Scheduler) Snapshot() []uint8 {
	s.leftMu.Lock()
	defer s.leftMu.Unlock()
	if s.rightMu != s.leftMu {
		s.rightMu.Lock()
		defer s.rightMu.Unlock()
	}
	return s.grid.Snapshot()
}

// Run starts both loops and blocks until ctx is cancelled or both loops have
// completed the configured number of generations. Cancellation is not an
// error. Run must be called at most once.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.policy == Shared {
		// The left loop takes this token before every iteration.
		s.rightDone <- 0
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return s.leftLoop(ctx) })
	eg.Go(func() error { return s.rightLoop(ctx) })
	err := eg.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func (s *Scheduler) done(gen uint64) bool {
	return s.opts.Generations > 0 && gen >= uint64(s.opts.Generations)
}

func (s *Scheduler) leftLoop(ctx context.Context) error {
	s.log.Printf("left loop: %v, %v locks", s.left, s.policy)
	defer s.log.Printf("left loop stopped after %d generations", s.leftGen.Load())

	pacer := core.NewPacer(s.opts.Tick)
	for gen := uint64(0); !s.done(gen); {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.policy == Shared {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-s.rightDone:
			}
		}
		if err := s.iterate(ctx, s.leftMu, s.left, s.opts.Left, pacer); err != nil {
			return err
		}
		gen++
		s.leftGen.Store(gen)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s.handoff <- gen:
		}
	}
	return nil
}

func (s *Scheduler) rightLoop(ctx context.Context) error {
	s.log.Printf("right loop: %v, %v locks", s.right, s.policy)
	defer s.log.Printf("right loop stopped after %d generations", s.rightGen.Load())

	pacer := core.NewPacer(s.opts.Tick)
	for gen := uint64(0); !s.done(gen); {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case want := <-s.handoff:
			if want != gen+1 {
				return fmt.Errorf("scheduler: right loop at generation %d received hand-off %d", gen, want)
			}
		}
		if err := s.iterate(ctx, s.rightMu, s.right, s.opts.Right, pacer); err != nil {
			return err
		}
		gen++
		s.rightGen.Store(gen)
		// Only consumed under the Shared policy.
		select {
		case s.rightDone <- gen:
		default:
		}
	}
	return nil
}

func (s *Scheduler) iterate(ctx context.Context, mu *sync.Mutex, r core.Region, p Painter, pacer *core.Pacer) error {
	mu.Lock()
	defer mu.Unlock()
	if p != nil {
		p.Paint(s.grid, r)
	}
	if err := pacer.Wait(ctx); err != nil {
		return err
	}
	life.Advance(s.grid, r, s.opts.Mode)
	return nil
}
