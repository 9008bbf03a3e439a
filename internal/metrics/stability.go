package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/dropsim/internal/physics"
)

// Containment is the fraction of samples in which every body stayed within
// radius of the vertical axis. Nothing bounds horizontal motion, so tilted
// gravity slides bodies away indefinitely.
type Containment struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewContainment(radius float64) *Containment {
	return &Containment{
		name:   "containment",
		radius: radius,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(bodies []*physics.Body, g mgl64.Vec3, t float64) {
	c.samples++
	for _, b := range bodies {
		if math.Hypot(b.Position.X(), b.Position.Z()) > c.radius {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}

// Resting is the fraction of bodies resting on the ground at the last sample.
type Resting struct {
	name     string
	fraction float64
}

func NewResting() *Resting {
	return &Resting{name: "resting"}
}

func (r *Resting) Name() string { return r.name }

func (r *Resting) Observe(bodies []*physics.Body, g mgl64.Vec3, t float64) {
	if len(bodies) == 0 {
		r.fraction = 0
		return
	}
	n := 0
	for _, b := range bodies {
		if b.Resting() {
			n++
		}
	}
	r.fraction = float64(n) / float64(len(bodies))
}

func (r *Resting) Value() float64 { return r.fraction }

func (r *Resting) Reset() { r.fraction = 0 }
