package sim

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/dropsim/internal/physics"
)

// Simulator is the tick loop: it owns the stepper and a handle to the shared
// gravity field, and advances a caller-owned set of bodies.
type Simulator struct {
	stepper      *physics.Stepper
	gravity      *physics.GravityField
	feed         GravityFeed
	feedInterval time.Duration
	metrics      []Metric
	observers    []Observer
}

func New(gravity *physics.GravityField) *Simulator {
	if gravity == nil {
		gravity = physics.NewGravityField()
	}
	return &Simulator{
		stepper:   physics.NewStepper(),
		gravity:   gravity,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// SetFeed samples feed every interval of simulation time during Run.
func (s *Simulator) SetFeed(feed GravityFeed, interval time.Duration) {
	s.feed = feed
	s.feedInterval = interval
}

func (s *Simulator) Gravity() *physics.GravityField { return s.gravity }

func (s *Simulator) Run(ctx context.Context, bodies []*physics.Body, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(bodies) == 0 {
		return nil, ErrNoBodies
	}

	steps := cfg.Steps()
	every := cfg.RecordEvery
	if every < 1 {
		every = 1
	}

	result := &Result{
		Frames:    make([]Frame, 0, steps/every+2),
		Metrics:   make(map[string]float64),
		SettledAt: -1,
		Errors:    make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	nextFeed, feedErr := s.pollFeed(t, 0)
	result.addFeedError(feedErr)

	g := s.gravity.Acceleration()
	result.Frames = append(result.Frames, Capture(bodies, g, t))
	s.observe(bodies, g, t)
	if allResting(bodies) {
		result.SettledAt = t
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		nextFeed, feedErr = s.pollFeed(t, nextFeed)
		result.addFeedError(feedErr)

		g = s.gravity.Acceleration()
		result.Contacts += s.stepper.StepWith(bodies, g, cfg.Dt)
		t += cfg.Dt
		result.StepsTaken++

		if cfg.ValidateState {
			if idx := firstInvalid(bodies); idx >= 0 {
				result.Errors = append(result.Errors, &SimulationError{
					Step: i, Time: t, Body: idx, Wrapped: ErrInvalidState,
				})
				result.Frames = append(result.Frames, Capture(bodies, g, t))
				break
			}
		}

		s.observe(bodies, g, t)

		if result.SettledAt < 0 && allResting(bodies) {
			result.SettledAt = t
		} else if result.SettledAt >= 0 && !allResting(bodies) {
			result.SettledAt = -1
		}

		if (i+1)%every == 0 || i == steps-1 {
			result.Frames = append(result.Frames, Capture(bodies, g, t))
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps until Duration elapses, ctx is done or fn returns
// false. Nothing is recorded. A failed feed read keeps the previous gravity
// and the run goes on; the first such error is returned when it ends.
func (s *Simulator) RunWithCallback(ctx context.Context, bodies []*physics.Body, cfg Config, fn func([]*physics.Body, float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	steps := cfg.Steps()
	t := 0.0
	nextFeed := 0.0
	var firstFeedErr error

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !fn(bodies, t) {
			return firstFeedErr
		}

		var feedErr error
		nextFeed, feedErr = s.pollFeed(t, nextFeed)
		if firstFeedErr == nil {
			firstFeedErr = feedErr
		}
		s.stepper.StepAll(bodies, s.gravity, cfg.Dt)
		t += cfg.Dt

		if cfg.ValidateState {
			if idx := firstInvalid(bodies); idx >= 0 {
				return &SimulationError{Step: i, Time: t, Body: idx, Wrapped: ErrInvalidState}
			}
		}
	}

	fn(bodies, t)
	return firstFeedErr
}

func (s *Simulator) validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w, got %f", ErrTimestep, cfg.Dt)
	}
	if !(cfg.Duration > 0) || math.IsInf(cfg.Duration, 0) {
		return fmt.Errorf("%w, got %f", ErrDuration, cfg.Duration)
	}
	return nil
}

// pollFeed applies the feed once t reaches the next interval boundary and
// returns the following boundary along with any read error.
func (s *Simulator) pollFeed(t, next float64) (float64, error) {
	if s.feed == nil || t < next {
		return next, nil
	}
	var feedErr error
	if err := s.feed.Apply(s.gravity, time.Duration(t*float64(time.Second))); err != nil {
		feedErr = fmt.Errorf("gravity feed at t=%.4f: %w", t, err)
	}
	interval := s.feedInterval.Seconds()
	if interval <= 0 {
		return t, feedErr
	}
	for next <= t {
		next += interval
	}
	return next, feedErr
}

func (r *Result) addFeedError(err error) {
	if err != nil {
		r.Errors = append(r.Errors, err)
	}
}

func (s *Simulator) observe(bodies []*physics.Body, g mgl64.Vec3, t float64) {
	for _, m := range s.metrics {
		m.Observe(bodies, g, t)
	}
	for _, o := range s.observers {
		o.OnStep(bodies, g, t)
	}
}

func firstInvalid(bodies []*physics.Body) int {
	for i, b := range bodies {
		if !b.IsValid() {
			return i
		}
	}
	return -1
}

func allResting(bodies []*physics.Body) bool {
	for _, b := range bodies {
		if !b.Resting() {
			return false
		}
	}
	return true
}
