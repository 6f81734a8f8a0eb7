package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"

	"splitlife/internal/scheduler"
	"splitlife/internal/sims/life"
)

type intList []int

func (l *intList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (l *intList) Set(value string) error {
	for _, f := range strings.Split(value, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return err
		}
		*l = append(*l, v)
	}
	return nil
}

func main() {
	gens := flag.Int("gens", 500, "generations per case")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel case evaluations")
	seed := flag.Int64("seed", 1337, "seed used for every case")
	var heights, widths, depths intList
	flag.Var(&heights, "heights", "comma-separated grid heights (default 20,120)")
	flag.Var(&widths, "widths", "comma-separated grid widths (default 30,160)")
	flag.Var(&depths, "depths", "comma-separated hand-off depths (default 1,4)")
	flag.Parse()

	if len(heights) == 0 {
		heights = intList{20, 120}
	}
	if len(widths) == 0 {
		widths = intList{30, 160}
	}
	if len(depths) == 0 {
		depths = intList{1, 4}
	}
	if len(heights) != len(widths) {
		log.Fatalf("loopbench: %d heights but %d widths", len(heights), len(widths))
	}
	sizes := make([][2]int, len(heights))
	for i := range heights {
		sizes[i] = [2]int{heights[i], widths[i]}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cases := scheduler.SweepCases(sizes, []life.NeighborMode{life.ClampRegion, life.ClampGrid}, depths, *gens, *seed)
	results, err := scheduler.Sweep(ctx, cases, *workers)
	if err != nil {
		log.Fatal(err)
	}

	diverged := 0
	for _, r := range results {
		status := "ok"
		if !r.Matches {
			status = fmt.Sprintf("DIVERGED (%d cells)", r.Mismatch)
			diverged++
		}
		fmt.Printf("%-50s policy=%-9s %10.0f gen/s  live=%-6d %s\n",
			r.Case, r.Policy, r.GenerationsPerSecond(), r.Live, status)
	}
	if diverged > 0 {
		log.Fatalf("loopbench: %d of %d cases diverged from the sequential reference", diverged, len(results))
	}
}
