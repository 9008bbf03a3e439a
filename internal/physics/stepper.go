package physics

import "github.com/go-gl/mathgl/mgl64"

// Stepper advances bodies with semi-implicit Euler and resolves contact with
// the ground plane. Velocity is integrated before position and the position
// update uses the new velocity.
type Stepper struct{}

func NewStepper() *Stepper {
	return &Stepper{}
}

// Step advances one body by delta seconds using the field's current vector.
// Negative deltas integrate backward in time; the ground clamp still applies.
func (s *Stepper) Step(b *Body, g *GravityField, delta float64) {
	s.Integrate(b, g.Acceleration(), delta)
}

// StepAll samples the field once and steps every body with that sample, so a
// concurrent Set lands between ticks rather than partway through the list.
// It returns the number of ground contacts resolved.
func (s *Stepper) StepAll(bodies []*Body, g *GravityField, delta float64) int {
	return s.StepWith(bodies, g.Acceleration(), delta)
}

// StepWith steps every body under acc and returns the ground contact count.
func (s *Stepper) StepWith(bodies []*Body, acc mgl64.Vec3, delta float64) int {
	contacts := 0
	for _, b := range bodies {
		if s.Integrate(b, acc, delta) {
			contacts++
		}
	}
	return contacts
}

// Integrate advances b under a fixed acceleration and reports whether the
// ground clamp fired. The clamp is a position snap, not a swept test: a body
// that would end up anywhere below its half extent lands exactly on it.
func (s *Stepper) Integrate(b *Body, acc mgl64.Vec3, delta float64) bool {
	b.Velocity = b.Velocity.Add(acc.Mul(delta))
	b.Position = b.Position.Add(b.Velocity.Mul(delta))

	if b.Position[1] < b.HalfExtentY {
		b.Position[1] = b.HalfExtentY
		b.Velocity[1] = 0
		return true
	}
	return false
}
