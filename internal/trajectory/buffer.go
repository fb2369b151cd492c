// Package trajectory holds the points streamed out of an integration,
// either all of them or only the most recent ones.
package trajectory

import (
	"fmt"

	"github.com/vladimirovertheworld/attractors/internal/dynamo"
)

// Policy selects what a Buffer does once it holds many points.
type Policy struct {
	capped   bool
	capacity int
}

// Unbounded keeps every point, for polyline rendering.
func Unbounded() Policy {
	return Policy{}
}

// Capped keeps the newest capacity points and silently drops older ones,
// for scatter rendering of the current cloud.
func Capped(capacity int) Policy {
	return Policy{capped: true, capacity: capacity}
}

func (p Policy) IsCapped() bool { return p.capped }

func (p Policy) Capacity() int { return p.capacity }

func (p Policy) String() string {
	if p.IsCapped() {
		return fmt.Sprintf("capped(%d)", p.capacity)
	}
	return "unbounded"
}

// Buffer is an ordered sequence of states. It is not safe for concurrent
// use; a session touches it from a single tick context.
type Buffer struct {
	policy   Policy
	gradient Gradient
	data     []dynamo.State
	pos      int
	full     bool
}

// New creates a buffer. A capped policy with capacity < 1 is rejected.
func New(policy Policy) (*Buffer, error) {
	if policy.capped && policy.capacity < 1 {
		return nil, fmt.Errorf("%w: buffer capacity %d", dynamo.ErrInvalidConfig, policy.capacity)
	}
	b := &Buffer{policy: policy, gradient: DefaultGradient()}
	if policy.IsCapped() {
		b.data = make([]dynamo.State, policy.capacity)
	}
	return b, nil
}

func (b *Buffer) Policy() Policy { return b.policy }

// SetGradient changes the colors used by later snapshots.
func (b *Buffer) SetGradient(g Gradient) { b.gradient = g }

func (b *Buffer) Append(s dynamo.State) {
	if !b.policy.IsCapped() {
		b.data = append(b.data, s)
		return
	}
	b.data[b.pos] = s
	b.pos++
	if b.pos >= b.policy.capacity {
		b.pos = 0
		b.full = true
	}
}

func (b *Buffer) Len() int {
	if !b.policy.IsCapped() {
		return len(b.data)
	}
	if b.full {
		return b.policy.capacity
	}
	return b.pos
}

// Reset drops every point. The backing storage is reused.
func (b *Buffer) Reset() {
	if !b.policy.IsCapped() {
		b.data = b.data[:0]
		return
	}
	b.pos = 0
	b.full = false
}

// Last returns the newest point.
func (b *Buffer) Last() (dynamo.State, bool) {
	n := b.Len()
	if n == 0 {
		return dynamo.State{}, false
	}
	if !b.policy.IsCapped() {
		return b.data[n-1], true
	}
	i := b.pos - 1
	if i < 0 {
		i = b.policy.capacity - 1
	}
	return b.data[i], true
}

// Points returns a copy of the contents, oldest first.
func (b *Buffer) Points() []dynamo.State {
	n := b.Len()
	out := make([]dynamo.State, n)
	switch {
	case !b.policy.IsCapped():
		copy(out, b.data)
	case b.full:
		copy(out, b.data[b.pos:])
		copy(out[b.policy.capacity-b.pos:], b.data[:b.pos])
	default:
		copy(out, b.data[:b.pos])
	}
	return out
}

// Snapshot returns the contents with age and color attached. Ages are
// recomputed on every call since they shift as points arrive.
func (b *Buffer) Snapshot() []Point {
	states := b.Points()
	out := make([]Point, len(states))
	for i, s := range states {
		age := Age(i, len(states))
		out[i] = Point{State: s, Age: age, Color: b.gradient.At(age)}
	}
	return out
}
