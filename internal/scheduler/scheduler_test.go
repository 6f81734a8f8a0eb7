package scheduler

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"splitlife/internal/core"
	"splitlife/internal/sims/life"
)

func seeded(t *testing.T, h, w int, seed int64) (*core.Grid, core.Region, core.Region) {
	t.Helper()
	g, err := core.NewGrid(h, w)
	if err != nil {
		t.Fatal(err)
	}
	g.Randomize(core.NewRNG(seed))
	left, right, err := core.SplitColumns(g, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	return g, left, right
}

func sequential(t *testing.T, g *core.Grid, mode life.NeighborMode, n int, regions ...core.Region) []uint8 {
	t.Helper()
	ref, _ := core.NewGrid(g.H, g.W)
	copy(ref.Cells(), g.Cells())
	for i := 0; i < n; i++ {
		life.Step(ref, mode, regions...)
	}
	return ref.Snapshot()
}

func run(t *testing.T, s *Scheduler) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if ctx.Err() != nil {
		t.Fatal("scheduler did not finish before the deadline")
	}
}

func TestMatchesSequentialLeftThenRight(t *testing.T) {
	cases := []struct {
		name     string
		mode     life.NeighborMode
		lockstep bool
		policy   LockPolicy
	}{
		{"region clamp", life.ClampRegion, false, PerRegion},
		{"region clamp lockstep", life.ClampRegion, true, Shared},
		{"grid clamp", life.ClampGrid, false, Shared},
	}
	const n = 60
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, left, right := seeded(t, 20, 30, 5)
			want := sequential(t, g, tc.mode, n, left, right)

			s, err := New(g, left, right, Options{Mode: tc.mode, Generations: n, Lockstep: tc.lockstep})
			if err != nil {
				t.Fatal(err)
			}
			if s.Policy() != tc.policy {
				t.Fatalf("policy %v, expected %v", s.Policy(), tc.policy)
			}
			run(t, s)

			if !slices.Equal(want, s.Snapshot()) {
				t.Fatal("concurrent run diverged from the sequential left-then-right order")
			}
			l, r := s.Generations()
			if l != n || r != n {
				t.Fatalf("generations left=%d right=%d, expected %d each", l, r, n)
			}
		})
	}
}

func TestOverlappingRegionsShareLock(t *testing.T) {
	g, _, _ := seeded(t, 10, 10, 1)
	a, _ := core.NewRegion(g, 0, 10, 0, 6, 1)
	b, _ := core.NewRegion(g, 0, 10, 4, 10, 1)
	s, err := New(g, a, b, Options{Generations: 20})
	if err != nil {
		t.Fatal(err)
	}
	if s.Policy() != Shared {
		t.Fatal("overlapping regions must use the shared policy")
	}
	want := sequential(t, g, life.ClampRegion, 20, a, b)
	run(t, s)
	if !slices.Equal(want, s.Snapshot()) {
		t.Fatal("overlapping regions diverged from sequential order")
	}
}

func TestNewRejectsBadRegions(t *testing.T) {
	g, left, _ := seeded(t, 10, 10, 1)
	bad := core.Region{RowStart: 0, RowBound: 11, ColStart: 0, ColBound: 10, Scale: 1}
	if _, err := New(g, left, bad, Options{}); !errors.Is(err, core.ErrOutOfBounds) {
		t.Fatalf("err=%v, expected ErrOutOfBounds", err)
	}
	if _, err := New(g, left, left, Options{Generations: -1}); !errors.Is(err, core.ErrConstruction) {
		t.Fatalf("err=%v, expected ErrConstruction", err)
	}
}

// sharedRecorder logs the order in which regions are painted.
type sharedRecorder struct {
	mu    *sync.Mutex
	order *[]string
}

type namedPainter struct {
	*sharedRecorder
	name  string
	delay time.Duration
}

func (s *sharedRecorder) named(name string, delay time.Duration) Painter {
	return namedPainter{sharedRecorder: s, name: name, delay: delay}
}

func (p namedPainter) Paint(*core.Grid, core.Region) {
	p.mu.Lock()
	*p.order = append(*p.order, p.name)
	p.mu.Unlock()
	time.Sleep(p.delay)
}

func TestSlowRightLoopNeverSkips(t *testing.T) {
	g, left, right := seeded(t, 8, 8, 2)
	var mu sync.Mutex
	var order []string
	shared := &sharedRecorder{mu: &mu, order: &order}
	s, err := New(g, left, right, Options{
		Generations:  25,
		HandoffDepth: 2,
		Left:         shared.named("L", 0),
		Right:        shared.named("R", time.Millisecond),
	})
	if err != nil {
		t.Fatal(err)
	}
	run(t, s)

	lc, rc := 0, 0
	for _, name := range order {
		switch name {
		case "L":
			lc++
		case "R":
			rc++
			if rc > lc {
				t.Fatalf("right iteration %d started before left iteration %d", rc, rc)
			}
		}
		// depth buffered, one blocked on send, one just started
		if lc-rc > 4 {
			t.Fatalf("left ran %d iterations ahead with a hand-off depth of 2", lc-rc)
		}
	}
	if lc != 25 || rc != 25 {
		t.Fatalf("painted left=%d right=%d, expected 25 each", lc, rc)
	}
}

func TestLockstepAlternates(t *testing.T) {
	g, left, right := seeded(t, 8, 8, 4)
	var mu sync.Mutex
	var order []string
	rec := &sharedRecorder{mu: &mu, order: &order}
	s, err := New(g, left, right, Options{
		Generations: 10,
		Lockstep:    true,
		Left:        rec.named("L", 0),
		Right:       rec.named("R", 0),
	})
	if err != nil {
		t.Fatal(err)
	}
	run(t, s)
	for i, name := range order {
		want := "L"
		if i%2 == 1 {
			want = "R"
		}
		if name != want {
			t.Fatalf("paint %d was %s, expected %s (order %v)", i, name, want, order)
		}
	}
}

func TestCancelStopsPromptly(t *testing.T) {
	g, left, right := seeded(t, 20, 30, 9)
	s, err := New(g, left, right, Options{Tick: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()
	time.Sleep(10 * time.Millisecond)
	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("cancellation must not be reported as an error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	if l, r := s.Generations(); l != 0 || r != 0 {
		t.Fatalf("generations %d/%d, expected none to complete during the first tick", l, r)
	}
}

func BenchmarkScheduler(b *testing.B) {
	for _, mode := range []life.NeighborMode{life.ClampRegion, life.ClampGrid} {
		b.Run(mode.String(), func(b *testing.B) {
			g, _ := core.NewGrid(256, 256)
			g.Randomize(core.NewRNG(1))
			left, right, _ := core.SplitColumns(g, 1, 1)
			for i := 0; i < b.N; i++ {
				s, _ := New(g, left, right, Options{Mode: mode, Generations: 100})
				_ = s.Run(context.Background())
			}
		})
	}
}
