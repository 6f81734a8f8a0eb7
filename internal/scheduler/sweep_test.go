package scheduler

import (
	"context"
	"errors"
	"testing"

	"splitlife/internal/core"
	"splitlife/internal/sims/life"
)

func TestSweepCasesCrossProduct(t *testing.T) {
	cases := SweepCases([][2]int{{8, 8}, {16, 20}}, []life.NeighborMode{life.ClampRegion, life.ClampGrid}, []int{1, 3}, 10, 7)
	if len(cases) != 2*2*2*2 {
		t.Fatalf("expected 16 cases, got %d", len(cases))
	}
	if cases[0].Seed != 7 || cases[0].Generations != 10 {
		t.Fatalf("case fields not propagated: %+v", cases[0])
	}
}

func TestSweepMatchesReference(t *testing.T) {
	cases := SweepCases([][2]int{{12, 16}}, []life.NeighborMode{life.ClampRegion, life.ClampGrid}, []int{1, 2}, 25, 42)
	results, err := Sweep(context.Background(), cases, 4)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(results) != len(cases) {
		t.Fatalf("expected %d results, got %d", len(cases), len(results))
	}
	for i, r := range results {
		if r.Case != cases[i] {
			t.Fatalf("result %d out of order: %v vs %v", i, r.Case, cases[i])
		}
		if !r.Matches {
			t.Fatalf("%s diverged from reference in %d cells", r.Case, r.Mismatch)
		}
		want := Shared
		if r.Case.Mode == life.ClampRegion && !r.Case.Lockstep {
			want = PerRegion
		}
		if r.Policy != want {
			t.Fatalf("%s: policy %v, want %v", r.Case, r.Policy, want)
		}
	}
}

func TestRunCaseRejectsZeroGenerations(t *testing.T) {
	_, err := RunCase(context.Background(), SweepCase{Height: 4, Width: 4, Generations: 0})
	if !errors.Is(err, core.ErrConstruction) {
		t.Fatalf("expected ErrConstruction, got %v", err)
	}
}

func TestSweepReportsBadGrid(t *testing.T) {
	_, err := Sweep(context.Background(), []SweepCase{{Height: 0, Width: 4, Generations: 1}}, 1)
	if !errors.Is(err, core.ErrConstruction) {
		t.Fatalf("expected ErrConstruction, got %v", err)
	}
}
