package sim

import (
	"fmt"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/vladimirovertheworld/attractors/internal/dynamo"
	"github.com/vladimirovertheworld/attractors/internal/integrators"
	"github.com/vladimirovertheworld/attractors/internal/trajectory"
)

// Session is the live binding of one field, its parameters, the current
// state and the trajectory buffer. It is driven by calling Tick from a
// single goroutine and holds no timers of its own.
type Session struct {
	cfg        Config
	integrator *integrators.Euler
	logger     kitlog.Logger

	field   dynamo.VectorField
	params  dynamo.Params
	initial dynamo.State
	state   dynamo.State
	buf     *trajectory.Buffer
	status  Status

	steps      int
	ticks      int
	diverged   bool
	divergence *dynamo.DivergenceError
}

type SessionOption func(*Session)

func WithLogger(l kitlog.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// WithGradient sets the colors of snapshot points.
func WithGradient(g trajectory.Gradient) SessionOption {
	return func(s *Session) { s.buf.SetGradient(g) }
}

// NewSession creates an idle session on field with default parameters.
func NewSession(field dynamo.VectorField, cfg Config, opts ...SessionOption) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	buf, err := trajectory.New(cfg.Policy)
	if err != nil {
		return nil, err
	}
	s := &Session{
		cfg:        cfg,
		integrator: integrators.NewEuler(),
		logger:     kitlog.NewNopLogger(),
		field:      field,
		params:     field.Defaults(),
		initial:    field.Initial,
		state:      field.Initial,
		buf:        buf,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = kitlog.With(s.logger, "component", "session")
	return s, nil
}

func (s *Session) Status() Status             { return s.status }
func (s *Session) Field() dynamo.VectorField  { return s.field }
func (s *Session) Params() dynamo.Params      { return s.params.Clone() }
func (s *Session) State() dynamo.State        { return s.state }
func (s *Session) Config() Config             { return s.cfg }
func (s *Session) Buffer() *trajectory.Buffer { return s.buf }

// Start resets the buffer, seeds the initial condition and begins running.
// Starting a running session restarts it.
func (s *Session) Start() {
	s.reset()
	s.status = Running
	level.Info(s.logger).Log("msg", "start", "field", s.field.Name, "policy", s.cfg.Policy)
}

// Stop halts ticking. The buffer keeps its contents. Stopping an idle
// session does nothing.
func (s *Session) Stop() {
	if s.status == Idle {
		return
	}
	s.status = Idle
	level.Info(s.logger).Log("msg", "stop", "field", s.field.Name, "steps", s.steps)
}

// SetField switches to another field with its default parameters. A
// running session restarts on the new field; an idle one drops the points
// of the previous field and stays idle.
func (s *Session) SetField(f dynamo.VectorField) {
	s.field = f
	s.params = f.Defaults()
	s.initial = f.Initial
	if s.status == Running {
		s.reset()
	} else {
		s.clear()
	}
	level.Debug(s.logger).Log("msg", "field changed", "field", f.Name, "status", s.status)
}

// SetParams installs validated parameters. A running session restarts.
func (s *Session) SetParams(p dynamo.Params) error {
	if err := s.field.Validate(p); err != nil {
		return err
	}
	s.params = p.Clone()
	if s.status == Running {
		s.reset()
		level.Debug(s.logger).Log("msg", "params changed", "field", s.field.Name)
	}
	return nil
}

// SetInitial changes the starting point used by later resets. Non-finite
// points are rejected.
func (s *Session) SetInitial(x0 dynamo.State) error {
	if !x0.IsFinite() {
		return fmt.Errorf("%w: initial condition %v is not finite", dynamo.ErrInvalidConfig, x0)
	}
	s.initial = x0
	if s.status == Running {
		s.reset()
	}
	return nil
}

// Tick performs StepsPerTick steps when running and returns the buffer
// snapshot. An idle session does no work and returns what it retained.
func (s *Session) Tick() Snapshot {
	if s.status != Running {
		return s.Snapshot()
	}
	s.ticks++
	s.diverged = false

	for i := 0; i < s.cfg.StepsPerTick; i++ {
		next := s.integrator.Step(s.field, s.state, s.params, s.cfg.Dt)
		if !next.IsFinite() {
			s.onDivergence(next)
			break
		}
		s.state = next
		s.steps++
		s.buf.Append(next)
	}
	return s.Snapshot()
}

// Snapshot returns the current buffer contents without stepping.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Field:      s.field.Name,
		Status:     s.status,
		Points:     s.buf.Snapshot(),
		State:      s.state,
		Steps:      s.steps,
		Ticks:      s.ticks,
		Diverged:   s.diverged,
		Divergence: s.divergence,
	}
}

func (s *Session) onDivergence(bad dynamo.State) {
	s.diverged = true
	s.divergence = &dynamo.DivergenceError{Field: s.field.Name, Step: s.steps + 1, State: bad}
	level.Warn(s.logger).Log("msg", "diverged", "field", s.field.Name, "step", s.steps+1, "policy", s.cfg.OnDivergence)

	switch s.cfg.OnDivergence {
	case Halt:
		s.status = Idle
	default:
		// The trail restarts at x0 so no segment joins the escaped
		// trajectory to the reseeded one.
		s.state = s.initial
		s.buf.Reset()
		s.buf.Append(s.state)
	}
}

func (s *Session) reset() {
	s.clear()
	s.buf.Append(s.state)
}

func (s *Session) clear() {
	s.buf.Reset()
	s.state = s.initial
	s.steps = 0
	s.ticks = 0
	s.diverged = false
	s.divergence = nil
}
