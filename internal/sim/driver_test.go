package sim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vladimirovertheworld/attractors/internal/experiment"
	"github.com/vladimirovertheworld/attractors/internal/physics"
)

func TestDriveRendersEveryTick(t *testing.T) {
	s, err := NewSession(physics.Lorenz(), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	s.Start()

	ticks := make(chan time.Time, 3)
	for i := 0; i < 3; i++ {
		ticks <- time.Now()
	}
	close(ticks)

	var rendered []Snapshot
	err = Drive(context.Background(), s, SinkFunc(func(snap Snapshot) {
		rendered = append(rendered, snap)
	}), ticks)
	if err != nil {
		t.Fatal(err)
	}
	if len(rendered) != 3 {
		t.Fatalf("rendered %d snapshots, want 3", len(rendered))
	}
	if rendered[2].Steps != 30 {
		t.Errorf("steps = %d, want 30", rendered[2].Steps)
	}
}

func TestDriveStopsOnCancel(t *testing.T) {
	s, _ := NewSession(physics.Lorenz(), DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Drive(ctx, s, SinkFunc(func(Snapshot) {}), make(chan time.Time))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRun(t *testing.T) {
	s, _ := NewSession(physics.Aizawa(), DefaultConfig())
	s.Start()
	snap := Run(s, nil, 5)
	if snap.Steps != 50 || snap.Ticks != 5 {
		t.Errorf("steps=%d ticks=%d", snap.Steps, snap.Ticks)
	}
}

func TestEnsembleRunsEveryField(t *testing.T) {
	reg := experiment.Default()
	var cfgs []experiment.Config
	for _, name := range reg.Names() {
		cfg := experiment.DefaultConfig(name)
		cfg.Samples = 1000
		cfg.TMax = 10
		cfgs = append(cfgs, cfg)
	}
	cfgs = append(cfgs, experiment.Config{Field: "nonexistent", Samples: 10, TMax: 1})

	out, err := NewEnsemble(reg, 4).Run(context.Background(), cfgs)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(cfgs) {
		t.Fatalf("got %d outcomes, want %d", len(out), len(cfgs))
	}
	for i, o := range out[:len(out)-1] {
		if o.Config.Field != cfgs[i].Field {
			t.Errorf("outcome %d out of order: %s", i, o.Config.Field)
		}
		if o.Err != nil {
			t.Errorf("%s: %v", o.Config.Field, o.Err)
			continue
		}
		if o.Result.Diverged != -1 {
			t.Errorf("%s diverged at %d", o.Config.Field, o.Result.Diverged)
		}
	}
	last := out[len(out)-1]
	if last.Err == nil || last.Result != nil {
		t.Error("unknown field should fail in its outcome")
	}
}

func TestPrecomputeAsync(t *testing.T) {
	cfg := experiment.DefaultConfig("rossler")
	ch := PrecomputeAsync(context.Background(), nil, cfg)

	o, ok := <-ch
	if !ok {
		t.Fatal("channel closed without outcome")
	}
	if o.Err != nil {
		t.Fatal(o.Err)
	}
	if len(o.Result.States) != 10000 {
		t.Errorf("got %d states", len(o.Result.States))
	}
	if _, ok := <-ch; ok {
		t.Error("channel not closed after outcome")
	}
}
