package scheduler

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"splitlife/internal/core"
	"splitlife/internal/sims/life"
)

// SweepCase is one scheduler configuration evaluated by Sweep.
type SweepCase struct {
	Height, Width int
	Mode          life.NeighborMode
	Lockstep      bool
	HandoffDepth  int
	Generations   int
	Seed          int64
}

func (c SweepCase) String() string {
	return fmt.Sprintf("%dx%d mode=%s lockstep=%t depth=%d gens=%d",
		c.Height, c.Width, c.Mode, c.Lockstep, c.HandoffDepth, c.Generations)
}

// SweepResult records how a case ran and whether it matched the
// single-threaded reference.
type SweepResult struct {
	Case     SweepCase
	Policy   LockPolicy
	Elapsed  time.Duration
	Matches  bool
	Mismatch int
	Live     int
}

// GenerationsPerSecond is the combined left+right advance rate.
func (r SweepResult) GenerationsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(2*r.Case.Generations) / r.Elapsed.Seconds()
}

// SweepCases builds the cross product of the given axes.
func SweepCases(sizes [][2]int, modes []life.NeighborMode, depths []int, generations int, seed int64) []SweepCase {
	var out []SweepCase
	for _, sz := range sizes {
		for _, m := range modes {
			for _, lockstep := range []bool{false, true} {
				for _, d := range depths {
					out = append(out, SweepCase{
						Height:       sz[0],
						Width:        sz[1],
						Mode:         m,
						Lockstep:     lockstep,
						HandoffDepth: d,
						Generations:  generations,
						Seed:         seed,
					})
				}
			}
		}
	}
	return out
}

// Sweep evaluates every case on up to workers goroutines. Results are
// returned in case order.
func Sweep(ctx context.Context, cases []SweepCase, workers int) ([]SweepResult, error) {
	if workers <= 0 {
		workers = 1
	}
	results := make([]SweepResult, len(cases))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range cases {
		g.Go(func() error {
			res, err := RunCase(ctx, c)
			if err != nil {
				return fmt.Errorf("%s: %w", c, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RunCase runs one concurrent scheduler and compares its final grid with
// life.Step applied the same number of times to an identical seed.
func RunCase(ctx context.Context, c SweepCase) (SweepResult, error) {
	if c.Generations <= 0 {
		return SweepResult{}, fmt.Errorf("generations %d: %w", c.Generations, core.ErrConstruction)
	}
	g, left, right, err := seededGrid(c)
	if err != nil {
		return SweepResult{}, err
	}
	ref, _, _, err := seededGrid(c)
	if err != nil {
		return SweepResult{}, err
	}

	s, err := New(g, left, right, Options{
		Mode:         c.Mode,
		HandoffDepth: c.HandoffDepth,
		Generations:  c.Generations,
		Lockstep:     c.Lockstep,
	})
	if err != nil {
		return SweepResult{}, err
	}
	start := time.Now()
	if err := s.Run(ctx); err != nil {
		return SweepResult{}, err
	}
	elapsed := time.Since(start)
	if err := ctx.Err(); err != nil {
		return SweepResult{}, err
	}

	for range c.Generations {
		life.Step(ref, c.Mode, left, right)
	}
	got, want := g.Snapshot(), ref.Snapshot()
	mismatch := 0
	for i := range got {
		if got[i] != want[i] {
			mismatch++
		}
	}
	return SweepResult{
		Case:     c,
		Policy:   s.Policy(),
		Elapsed:  elapsed,
		Matches:  mismatch == 0,
		Mismatch: mismatch,
		Live:     g.Population(),
	}, nil
}

func seededGrid(c SweepCase) (*core.Grid, core.Region, core.Region, error) {
	g, err := core.NewGrid(c.Height, c.Width)
	if err != nil {
		return nil, core.Region{}, core.Region{}, err
	}
	g.Randomize(core.NewRNG(c.Seed))
	left, right, err := core.SplitColumns(g, 1, 1)
	if err != nil {
		return nil, core.Region{}, core.Region{}, err
	}
	return g, left, right, nil
}
