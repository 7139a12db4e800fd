// Package clock provides the blocking waits used between keystrokes.
package clock

import (
	"context"
	"time"
)

// Clock blocks the caller for a duration.
type Clock interface {
	// Sleep waits for d or until ctx is done, returning ctx.Err() in the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

// Real sleeps on the wall clock.
type Real struct{}

// Sleep implements Clock.
func (Real) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Manual accumulates simulated time without blocking.
type Manual struct {
	elapsed time.Duration
	sleeps  []time.Duration
}

// Sleep implements Clock.
func (m *Manual) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.elapsed += d
	m.sleeps = append(m.sleeps, d)
	return nil
}

// Elapsed returns the total simulated time slept.
func (m *Manual) Elapsed() time.Duration {
	return m.elapsed
}

// Sleeps returns every recorded wait in order.
func (m *Manual) Sleeps() []time.Duration {
	out := make([]time.Duration, len(m.sleeps))
	copy(out, m.sleeps)
	return out
}
