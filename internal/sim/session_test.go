package sim

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vladimirovertheworld/attractors/internal/dynamo"
	"github.com/vladimirovertheworld/attractors/internal/physics"
	"github.com/vladimirovertheworld/attractors/internal/trajectory"
)

// escape doubles every coordinate each step, so with dt = 1 it overflows
// after roughly a thousand steps.
func escape() dynamo.VectorField {
	return dynamo.VectorField{
		Name:    "escape",
		Derive:  func(s dynamo.State, _ dynamo.Params) dynamo.State { return s },
		Initial: dynamo.State{1, 1, 1},
	}
}

var _ = Describe("Session", func() {
	var (
		session *Session
		cfg     Config
	)

	BeforeEach(func() {
		cfg = DefaultConfig()
	})

	JustBeforeEach(func() {
		var err error
		session, err = NewSession(physics.Lorenz(), cfg)
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts idle with an empty buffer", func() {
		Expect(session.Status()).To(Equal(Idle))
		Expect(session.Snapshot().Points).To(BeEmpty())
	})

	It("does no work when ticked while idle", func() {
		snap := session.Tick()
		Expect(snap.Steps).To(BeZero())
		Expect(snap.Ticks).To(BeZero())
		Expect(snap.Points).To(BeEmpty())
	})

	Describe("Start", func() {
		JustBeforeEach(func() {
			session.Start()
		})

		It("seeds the buffer with the initial condition", func() {
			snap := session.Snapshot()
			Expect(snap.Status).To(Equal(Running))
			Expect(snap.Points).To(HaveLen(1))
			Expect(snap.Points[0].State).To(Equal(dynamo.State{1, 1, 1}))
		})

		It("performs exactly StepsPerTick steps per tick", func() {
			snap := session.Tick()
			Expect(snap.Steps).To(Equal(10))
			Expect(snap.Points).To(HaveLen(11))
			snap = session.Tick()
			Expect(snap.Steps).To(Equal(20))
			Expect(snap.Ticks).To(Equal(2))
		})

		It("keeps state continuous across ticks", func() {
			field := physics.Lorenz()
			p := field.Defaults()
			s := field.Initial
			for i := 0; i < 30; i++ {
				d := field.Derive(s, p)
				s = dynamo.State{s[0] + 0.01*d[0], s[1] + 0.01*d[1], s[2] + 0.01*d[2]}
			}
			session.Tick()
			session.Tick()
			got := session.Tick().State
			for i := range s {
				Expect(got[i]).To(BeNumerically("~", s[i], 1e-9))
			}
		})

		It("orders snapshot ages from oldest to newest", func() {
			points := session.Tick().Points
			Expect(points[0].Age).To(Equal(0.0))
			Expect(points[len(points)-1].Age).To(Equal(1.0))
		})

		It("restarts when started again", func() {
			session.Tick()
			session.Start()
			Expect(session.Snapshot().Points).To(HaveLen(1))
			Expect(session.Snapshot().Steps).To(BeZero())
		})
	})

	Describe("Stop", func() {
		It("retains the buffer for inspection", func() {
			session.Start()
			session.Tick()
			session.Stop()

			Expect(session.Status()).To(Equal(Idle))
			before := session.Snapshot()
			after := session.Tick()
			Expect(after.Points).To(Equal(before.Points))
			Expect(after.Steps).To(Equal(10))
		})

		It("is a no-op when already idle", func() {
			session.Stop()
			Expect(session.Status()).To(Equal(Idle))
			Expect(session.Snapshot().Points).To(BeEmpty())
		})
	})

	Describe("changing the field", func() {
		It("resets and keeps running", func() {
			session.Start()
			session.Tick()
			session.SetField(physics.Thomas())

			snap := session.Snapshot()
			Expect(snap.Status).To(Equal(Running))
			Expect(snap.Field).To(Equal("thomas"))
			Expect(snap.Points).To(HaveLen(1))
			Expect(snap.State).To(Equal(physics.Thomas().Initial))
			Expect(session.Params()).To(Equal(physics.Thomas().Defaults()))
		})

		It("does not start an idle session", func() {
			session.SetField(physics.Rossler())
			Expect(session.Status()).To(Equal(Idle))
			Expect(session.Snapshot().Points).To(BeEmpty())
		})

		It("drops the previous field's points when idle", func() {
			session.Start()
			session.Tick()
			session.Stop()
			session.SetField(physics.Rossler())

			snap := session.Snapshot()
			Expect(snap.Status).To(Equal(Idle))
			Expect(snap.Field).To(Equal("rossler"))
			Expect(snap.Points).To(BeEmpty())
			Expect(snap.Steps).To(BeZero())
			Expect(snap.State).To(Equal(physics.Rossler().Initial))
		})
	})

	Describe("changing parameters", func() {
		It("resets and keeps running", func() {
			session.Start()
			session.Tick()
			Expect(session.SetParams(dynamo.Params{10, 14, 8.0 / 3.0})).To(Succeed())

			snap := session.Snapshot()
			Expect(snap.Status).To(Equal(Running))
			Expect(snap.Points).To(HaveLen(1))
			Expect(session.Params()[1]).To(Equal(14.0))
		})

		It("rejects values outside the declared range", func() {
			err := session.SetParams(dynamo.Params{10, 500, 8.0 / 3.0})
			Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())
			Expect(session.Params()[1]).To(Equal(28.0))
		})

		It("rejects the wrong arity", func() {
			err := session.SetParams(dynamo.Params{10})
			Expect(errors.Is(err, dynamo.ErrDimensionMismatch)).To(BeTrue())
		})
	})

	Describe("SetInitial", func() {
		It("rejects non-finite points", func() {
			err := session.SetInitial(dynamo.State{math.NaN(), 0, 0})
			Expect(errors.Is(err, dynamo.ErrInvalidConfig)).To(BeTrue())
		})

		It("reseeds a running session", func() {
			session.Start()
			Expect(session.SetInitial(dynamo.State{2, 2, 2})).To(Succeed())
			Expect(session.State()).To(Equal(dynamo.State{2, 2, 2}))
		})
	})

	Context("with a capped buffer", func() {
		BeforeEach(func() {
			cfg = ScatterConfig()
			cfg.StepsPerTick = 300
			cfg.Policy = trajectory.Capped(500)
		})

		It("keeps only the newest points", func() {
			session.Start()
			session.Tick()
			snap := session.Tick()
			Expect(snap.Points).To(HaveLen(500))
			Expect(snap.Points[499].State).To(Equal(snap.State))
		})
	})
})

var _ = Describe("Divergence", func() {
	var cfg Config

	BeforeEach(func() {
		cfg = Config{Dt: 1, StepsPerTick: 2000, Policy: trajectory.Unbounded()}
	})

	It("never stores a non-finite state", func() {
		s, err := NewSession(escape(), cfg)
		Expect(err).NotTo(HaveOccurred())
		s.Start()
		snap := s.Tick()

		Expect(snap.Diverged).To(BeTrue())
		Expect(snap.Divergence).NotTo(BeNil())
		Expect(errors.Is(snap.Divergence, dynamo.ErrDiverged)).To(BeTrue())
		Expect(snap.State.IsFinite()).To(BeTrue())
		for _, p := range snap.Points {
			Expect(p.State.IsFinite()).To(BeTrue())
		}
	})

	It("reseeds and keeps running when skipping", func() {
		cfg.OnDivergence = SkipDiverged
		s, _ := NewSession(escape(), cfg)
		s.Start()
		snap := s.Tick()

		Expect(snap.Status).To(Equal(Running))
		Expect(snap.State).To(Equal(dynamo.State{1, 1, 1}))
	})

	It("restarts the trail at the initial condition when skipping", func() {
		cfg.OnDivergence = SkipDiverged
		s, _ := NewSession(escape(), cfg)
		s.Start()
		snap := s.Tick()

		Expect(snap.Diverged).To(BeTrue())
		Expect(snap.Points).To(HaveLen(1))
		Expect(snap.Points[0].State).To(Equal(dynamo.State{1, 1, 1}))

		s.cfg.StepsPerTick = 1
		next := s.Tick()
		Expect(next.Points).To(HaveLen(2))
		Expect(next.Points[0].State).To(Equal(dynamo.State{1, 1, 1}))
		Expect(next.Points[1].State).To(Equal(dynamo.State{2, 2, 2}))
	})

	It("stops and keeps the buffer under Halt", func() {
		cfg.OnDivergence = Halt
		s, _ := NewSession(escape(), cfg)
		s.Start()
		snap := s.Tick()

		Expect(snap.Status).To(Equal(Idle))
		Expect(snap.Points).NotTo(BeEmpty())
		Expect(s.Tick().Points).To(HaveLen(len(snap.Points)))
	})

	It("clears the divergence flag on the next clean tick", func() {
		cfg.OnDivergence = SkipDiverged
		cfg.StepsPerTick = 1100
		s, _ := NewSession(escape(), cfg)
		s.Start()
		Expect(s.Tick().Diverged).To(BeTrue())
		s.cfg.StepsPerTick = 1
		Expect(s.Tick().Diverged).To(BeFalse())
	})
})
