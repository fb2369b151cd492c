package sim

import (
	"fmt"
	"strings"

	"github.com/vladimirovertheworld/attractors/internal/dynamo"
	"github.com/vladimirovertheworld/attractors/internal/trajectory"
)

type Status int

const (
	Idle Status = iota
	Running
)

func (s Status) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// DivergencePolicy decides what a session does when a step leaves the
// finite numbers.
type DivergencePolicy int

const (
	// SkipDiverged drops the non-finite point, restarts the trail from the
	// initial condition and keeps running.
	SkipDiverged DivergencePolicy = iota
	// Halt stops the session and keeps the buffer for inspection.
	Halt
)

func (p DivergencePolicy) String() string {
	if p == Halt {
		return "halt"
	}
	return "skip"
}

func ParseDivergencePolicy(s string) (DivergencePolicy, error) {
	switch strings.ToLower(s) {
	case "", "skip":
		return SkipDiverged, nil
	case "halt":
		return Halt, nil
	}
	return SkipDiverged, fmt.Errorf("%w: divergence policy %q", dynamo.ErrInvalidConfig, s)
}

type Config struct {
	Dt           float64
	StepsPerTick int
	Policy       trajectory.Policy
	OnDivergence DivergencePolicy
}

// DefaultConfig is the polyline mode: dt 0.01, 10 steps per tick, all
// history kept.
func DefaultConfig() Config {
	return Config{
		Dt:           0.01,
		StepsPerTick: 10,
		Policy:       trajectory.Unbounded(),
		OnDivergence: SkipDiverged,
	}
}

// ScatterConfig is the point-cloud mode: 1000 steps per tick into a
// buffer of the newest 1000 points.
func ScatterConfig() Config {
	return Config{
		Dt:           0.01,
		StepsPerTick: 1000,
		Policy:       trajectory.Capped(1000),
		OnDivergence: SkipDiverged,
	}
}

func (c Config) Validate() error {
	if !(c.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrInvalidConfig, c.Dt)
	}
	if c.StepsPerTick < 1 {
		return fmt.Errorf("%w: steps per tick must be at least 1, got %d", dynamo.ErrInvalidConfig, c.StepsPerTick)
	}
	if c.Policy.IsCapped() && c.Policy.Capacity() < 1 {
		return fmt.Errorf("%w: buffer capacity must be at least 1", dynamo.ErrInvalidConfig)
	}
	return nil
}

// Snapshot is what a tick hands to the renderer.
type Snapshot struct {
	Field  string
	Status Status
	Points []trajectory.Point
	// State is the current integration state; always finite.
	State dynamo.State
	// Steps counts accepted steps since the last reset.
	Steps int
	Ticks int
	// Diverged is set when the last tick hit a non-finite state.
	Diverged   bool
	Divergence *dynamo.DivergenceError
}

// Sink receives snapshots. Rendering happens entirely on its side.
type Sink interface {
	Render(Snapshot)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Snapshot)

func (f SinkFunc) Render(s Snapshot) { f(s) }
