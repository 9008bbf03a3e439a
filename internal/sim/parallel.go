package sim

import (
	"context"
	"sync"

	"github.com/san-kum/dropsim/internal/physics"
	"github.com/san-kum/dropsim/internal/scene"
)

// Ensemble runs the same scene layout under consecutive seeds in parallel.
// Every run gets its own bodies, gravity field and metric instances.
type Ensemble struct {
	spec      scene.Spec
	gravity   *physics.GravityField
	numRuns   int
	seedStart int64
	metrics   func() []Metric
}

func NewEnsemble(spec scene.Spec, gravity *physics.GravityField, numRuns int, seedStart int64) *Ensemble {
	if gravity == nil {
		gravity = physics.NewGravityField()
	}
	return &Ensemble{spec: spec, gravity: gravity, numRuns: numRuns, seedStart: seedStart}
}

// WithMetrics sets a constructor called once per run.
func (e *Ensemble) WithMetrics(fn func() []Metric) *Ensemble {
	e.metrics = fn
	return e
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)
	acc := e.gravity.Acceleration()

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			bodies, err := scene.Build(e.spec, cfgCopy.Seed)
			if err != nil {
				errs[idx] = err
				return
			}

			s := New(physics.NewGravityFieldAt(acc))
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, bodies, cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
