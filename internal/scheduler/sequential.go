package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"splitlife/internal/core"
	"splitlife/internal/sims/life"
)

// Sequential renders and advances both regions on one goroutine, left then
// right. It produces the same generations as a Shared-policy Scheduler.
type Sequential struct {
	grid        *core.Grid
	left, right core.Region
	opts        Options

	mu  sync.Mutex
	gen atomic.Uint64
}

// NewSequential validates the regions against g.
func NewSequential(g *core.Grid, left, right core.Region, opts Options) (*Sequential, error) {
	for _, r := range []core.Region{left, right} {
		if _, err := core.NewRegion(g, r.RowStart, r.RowBound, r.ColStart, r.ColBound, r.Scale); err != nil {
			return nil, fmt.Errorf("sequential: %w", err)
		}
	}
	if opts.Generations < 0 {
		return nil, fmt.Errorf("sequential: generations %d: %w", opts.Generations, core.ErrConstruction)
	}
	return &Sequential{grid: g, left: left, right: right, opts: opts}, nil
}

// Generations reports completed iterations; both halves always agree.
func (s *Sequential) Generations() (left, right uint64) {
	n := s.gen.Load()
	return n, n
}

// Snapshot copies the current generation.
func (s *Sequential) Snapshot() []uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Snapshot()
}

// Run steps until ctx is cancelled or the generation limit is reached.
func (s *Sequential) Run(ctx context.Context) error {
	pacer := core.NewPacer(s.opts.Tick)
	for gen := uint64(0); s.opts.Generations == 0 || gen < uint64(s.opts.Generations); gen++ {
		if err := s.step(ctx, pacer); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
		s.gen.Store(gen + 1)
	}
	return nil
}

func (s *Sequential) step(ctx context.Context, pacer *core.Pacer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range []core.Region{s.left, s.right} {
		p := s.opts.Left
		if i == 1 {
			p = s.opts.Right
		}
		if p != nil {
			p.Paint(s.grid, r)
		}
		if err := pacer.Wait(ctx); err != nil {
			return err
		}
		life.Advance(s.grid, r, s.opts.Mode)
	}
	return nil
}
