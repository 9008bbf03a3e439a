package sim

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/dropsim/internal/physics"
)

type Metric interface {
	Name() string
	Observe(bodies []*physics.Body, g mgl64.Vec3, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(bodies []*physics.Body, g mgl64.Vec3, t float64)
}

// GravityFeed writes the gravity field at simulation time elapsed. It lets a
// headless run replay a sensor deterministically instead of racing it.
type GravityFeed interface {
	Apply(field *physics.GravityField, elapsed time.Duration) error
}

type Config struct {
	Dt            float64
	Duration      float64
	Seed          int64
	ValidateState bool
	// RecordEvery keeps one frame per N steps; the first and last state are
	// always kept.
	RecordEvery int
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 60,
		Duration:      10.0,
		ValidateState: true,
		RecordEvery:   1,
	}
}

// Steps is the number of whole ticks that fit in Duration.
func (c Config) Steps() int {
	return int(math.Floor(c.Duration/c.Dt + 1e-9))
}

// Frame is the recorded state of every body at one instant.
type Frame struct {
	Time       float64
	Gravity    mgl64.Vec3
	Positions  []mgl64.Vec3
	Velocities []mgl64.Vec3
}

func Capture(bodies []*physics.Body, g mgl64.Vec3, t float64) Frame {
	f := Frame{
		Time:       t,
		Gravity:    g,
		Positions:  make([]mgl64.Vec3, len(bodies)),
		Velocities: make([]mgl64.Vec3, len(bodies)),
	}
	for i, b := range bodies {
		f.Positions[i] = b.Position
		f.Velocities[i] = b.Velocity
	}
	return f
}

type Result struct {
	Frames     []Frame
	Metrics    map[string]float64
	StepsTaken int
	Contacts   int
	// SettledAt is the first time every body was resting, or -1.
	SettledAt float64
	Errors    []error
}
