// Package physics provides the falling-box simulation core.
//
// The package is a rigid-point-mass stepper with a single collision
// geometry, the ground plane at y = 0:
//
//   - [GravityField]: shared acceleration vector, one writer, many readers
//   - [Body]: point mass with position, velocity and a ground-contact half extent
//   - [Stepper]: semi-implicit Euler integration plus ground clamp
//
// # Example
//
//	g := physics.NewGravityField()
//	b := physics.NewBody(mgl64.Vec3{0, 5, 0})
//	s := physics.NewStepper()
//	s.Step(b, g, 1.0/60)
//
// # Thread Safety
//
// [GravityField] may be written from a sensor goroutine while the tick loop
// reads it. Bodies are NOT thread-safe and belong to the driver that steps them.
package physics
