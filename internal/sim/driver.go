package sim

import (
	"context"
	"time"
)

// Drive ticks the session once per value received on ticks and hands each
// snapshot to sink. The caller owns the timer; stopping it, closing the
// channel or cancelling ctx ends the loop between ticks.
func Drive(ctx context.Context, s *Session, sink Sink, ticks <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			sink.Render(s.Tick())
		}
	}
}

// Run ticks n times synchronously, rendering each snapshot, and returns
// the last one.
func Run(s *Session, sink Sink, n int) Snapshot {
	snap := s.Snapshot()
	for i := 0; i < n; i++ {
		snap = s.Tick()
		if sink != nil {
			sink.Render(snap)
		}
	}
	return snap
}
