package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vladimirovertheworld/attractors/internal/experiment"
)

// Outcome is one finished batch run.
type Outcome struct {
	Config experiment.Config
	Result *experiment.Result
	Err    error
}

// Ensemble runs several batch experiments on worker goroutines.
type Ensemble struct {
	registry *experiment.Registry
	workers  int
}

// NewEnsemble uses reg, or the default registry if nil. workers < 1 means
// one per CPU.
func NewEnsemble(reg *experiment.Registry, workers int) *Ensemble {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Ensemble{registry: reg, workers: workers}
}

// Run executes every config and returns outcomes in input order. A failed
// run is reported in its Outcome; only cancellation aborts the group.
func (e *Ensemble) Run(ctx context.Context, cfgs []experiment.Config) ([]Outcome, error) {
	out := make([]Outcome, len(cfgs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, cfg := range cfgs {
		i, cfg := i, cfg
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := experiment.New(cfg, e.registry).Run(ctx)
			out[i] = Outcome{Config: cfg, Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// PrecomputeAsync runs one batch experiment in the background. The
// outcome arrives on the returned channel, which is then closed; the
// caller applies it from its own loop.
func PrecomputeAsync(ctx context.Context, reg *experiment.Registry, cfg experiment.Config) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		defer close(ch)
		res, err := experiment.New(cfg, reg).Run(ctx)
		ch <- Outcome{Config: cfg, Result: res, Err: err}
	}()
	return ch
}
