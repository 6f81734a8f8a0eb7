package core

import (
	"context"
	"time"
)

// Pacer throttles a loop to at most one iteration per step. A zero step
// disables pacing.
type Pacer struct {
	step time.Duration
	next time.Time
}

// NewPacer constructs a Pacer for the given step.
func NewPacer(step time.Duration) *Pacer {
	if step < 0 {
		step = 0
	}
	return &Pacer{step: step}
}

// Step returns the configured delay.
func (p *Pacer) Step() time.Duration { return p.step }

// Wait blocks until the next step boundary or until ctx is done. Deadlines
// that have already passed are not made up; the schedule restarts from now.
func (p *Pacer) Wait(ctx context.Context) error {
	if p.step == 0 {
		return ctx.Err()
	}
	now := time.Now()
	if p.next.IsZero() || p.next.Before(now) {
		p.next = now
	}
	p.next = p.next.Add(p.step)
	t := time.NewTimer(p.next.Sub(now))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
