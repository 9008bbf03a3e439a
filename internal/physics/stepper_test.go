package physics_test

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dropsim/internal/physics"
)

const tol = 1e-12

func randomBody(r *rand.Rand) *physics.Body {
	b := physics.NewBox(mgl64.Vec3{
		(r.Float64() - 0.5) * 10,
		r.Float64() * 20,
		(r.Float64() - 0.5) * 10,
	}, 0.2+r.Float64()*2)
	b.Velocity = mgl64.Vec3{
		(r.Float64() - 0.5) * 20,
		(r.Float64() - 0.5) * 40,
		(r.Float64() - 0.5) * 20,
	}
	if b.Position[1] < b.HalfExtentY {
		b.Position[1] = b.HalfExtentY
	}
	return b
}

func randomGravity(r *rand.Rand) mgl64.Vec3 {
	return mgl64.Vec3{
		(r.Float64() - 0.5) * 20,
		(r.Float64() - 0.5) * 20,
		(r.Float64() - 0.5) * 20,
	}
}

var _ = Describe("Stepper", func() {
	var (
		stepper *physics.Stepper
		gravity *physics.GravityField
	)

	BeforeEach(func() {
		stepper = physics.NewStepper()
		gravity = physics.NewGravityField()
	})

	Describe("free fall", func() {
		It("integrates velocity before position", func() {
			b := physics.NewBody(mgl64.Vec3{0, 5, 0})

			stepper.Step(b, gravity, 0.1)

			Expect(b.Velocity.X()).To(BeZero())
			Expect(b.Velocity.Y()).To(BeNumerically("~", -0.981, tol))
			Expect(b.Velocity.Z()).To(BeZero())
			Expect(b.Position.X()).To(BeZero())
			Expect(b.Position.Y()).To(BeNumerically("~", 4.9019, tol))
			Expect(b.Position.Z()).To(BeZero())
		})

		It("follows the tilted field on every axis", func() {
			gravity.Set(1, -2, 3)
			b := physics.NewBody(mgl64.Vec3{0, 10, 0})

			stepper.Step(b, gravity, 0.5)

			Expect(b.Velocity).To(Equal(mgl64.Vec3{0.5, -1, 1.5}))
			Expect(b.Position).To(Equal(mgl64.Vec3{0.25, 9.5, 0.75}))
		})

		It("does nothing to a floating body under zero gravity", func() {
			gravity.Set(0, 0, 0)
			b := physics.NewBody(mgl64.Vec3{1, 3, 1})

			stepper.Step(b, gravity, 1.0/60)

			Expect(b.Position).To(Equal(mgl64.Vec3{1, 3, 1}))
			Expect(b.Velocity).To(Equal(mgl64.Vec3{}))
		})

		It("lets reversed gravity lift bodies without a ceiling", func() {
			gravity.Set(0, physics.StandardGravity, 0)
			b := physics.NewBody(mgl64.Vec3{0, 0.5, 0})

			for i := 0; i < 600; i++ {
				stepper.Step(b, gravity, 1.0/60)
			}

			Expect(b.Position.Y()).To(BeNumerically(">", 100))
			Expect(b.Velocity.Y()).To(BeNumerically(">", 0))
		})
	})

	Describe("ground contact", func() {
		It("clamps a landing body and zeroes its vertical velocity", func() {
			b := physics.NewBody(mgl64.Vec3{0, 0.52, 0})
			b.Velocity = mgl64.Vec3{0, -1, 0}

			stepper.Step(b, gravity, 0.1)

			Expect(b.Position.Y()).To(Equal(0.5))
			Expect(b.Velocity.Y()).To(Equal(0.0))
		})

		It("keeps horizontal velocity through the clamp", func() {
			b := physics.NewBody(mgl64.Vec3{0, 0.6, 0})
			b.Velocity = mgl64.Vec3{2, -5, 0}

			stepper.Step(b, gravity, 0.1)

			Expect(b.Velocity).To(Equal(mgl64.Vec3{2, 0, 0}))
			Expect(b.Position.X()).To(BeNumerically("~", 0.2, tol))
			Expect(b.Position.Y()).To(Equal(0.5))
		})

		It("snaps a body that would tunnel far below the ground", func() {
			b := physics.NewBody(mgl64.Vec3{0, 1000, 0})
			b.Velocity = mgl64.Vec3{0, -1e6, 0}

			stepper.Step(b, gravity, 1)

			Expect(b.Position.Y()).To(Equal(physics.DefaultHalfExtent))
			Expect(b.Velocity.Y()).To(BeZero())
		})

		It("uses each body's own half extent", func() {
			b := physics.NewBox(mgl64.Vec3{0, 3, 0}, 4)

			stepper.Step(b, gravity, 1)

			Expect(b.Position.Y()).To(Equal(2.0))
			Expect(b.Resting()).To(BeTrue())
		})

		It("keeps a resting body at rest", func() {
			b := physics.NewBody(mgl64.Vec3{0, 0.5, 0})

			for i := 0; i < 120; i++ {
				stepper.Step(b, gravity, 1.0/60)
			}

			Expect(b.Position).To(Equal(mgl64.Vec3{0, 0.5, 0}))
			Expect(b.Resting()).To(BeTrue())
		})

		It("slides a resting body under sideways gravity", func() {
			gravity.Set(3, -physics.StandardGravity, 0)
			b := physics.NewBody(mgl64.Vec3{0, 0.5, 0})

			stepper.Step(b, gravity, 1)

			Expect(b.Position).To(Equal(mgl64.Vec3{3, 0.5, 0}))
			Expect(b.Velocity).To(Equal(mgl64.Vec3{3, 0, 0}))
		})
	})

	Describe("zero delta", func() {
		It("leaves bodies above the ground unchanged", func() {
			r := rand.New(rand.NewSource(7))
			for i := 0; i < 500; i++ {
				b := randomBody(r)
				gravity.SetVec(randomGravity(r))
				before := b.Clone()

				stepper.Step(b, gravity, 0)

				Expect(b.Position).To(Equal(before.Position))
				Expect(b.Velocity).To(Equal(before.Velocity))
			}
		})
	})

	Describe("negative delta", func() {
		It("integrates backward instead of rejecting the step", func() {
			b := physics.NewBody(mgl64.Vec3{0, 5, 0})

			stepper.Step(b, gravity, 0.1)
			stepper.Step(b, gravity, -0.1)

			Expect(b.Velocity.Y()).To(BeNumerically("~", 0, tol))
			Expect(b.Position.Y()).To(BeNumerically("~", 4.9019, tol))
		})

		It("still applies the ground clamp", func() {
			b := physics.NewBody(mgl64.Vec3{0, 0.6, 0})
			b.Velocity = mgl64.Vec3{0, 5, 0}

			stepper.Step(b, gravity, -1)

			Expect(b.Position.Y()).To(Equal(physics.DefaultHalfExtent))
			Expect(b.Velocity.Y()).To(BeZero())
		})
	})

	DescribeTable("ground clamp invariant",
		func(seed int64, maxDelta float64) {
			r := rand.New(rand.NewSource(seed))
			for i := 0; i < 1000; i++ {
				b := randomBody(r)
				gravity.SetVec(randomGravity(r))

				stepper.Step(b, gravity, r.Float64()*maxDelta)

				Expect(b.Position.Y()).To(BeNumerically(">=", b.HalfExtentY))
			}
		},
		Entry("frame-sized deltas", int64(1), 1.0/30),
		Entry("large deltas", int64(2), 2.0),
		Entry("huge deltas", int64(3), 100.0),
	)

	DescribeTable("velocity zeroing when the floor is crossed",
		func(seed int64) {
			r := rand.New(rand.NewSource(seed))
			checked := 0
			for i := 0; i < 2000; i++ {
				b := randomBody(r)
				acc := randomGravity(r)
				if acc[1] > 0 {
					acc[1] = -acc[1]
				}
				gravity.SetVec(acc)
				delta := r.Float64()

				crosses := b.Position.Y()+b.Velocity.Y()*delta < b.HalfExtentY
				stepper.Step(b, gravity, delta)

				if crosses {
					checked++
					Expect(b.Velocity.Y()).To(Equal(0.0))
					Expect(b.Position.Y()).To(Equal(b.HalfExtentY))
				}
			}
			Expect(checked).To(BeNumerically(">", 0))
		},
		Entry("seed 11", int64(11)),
		Entry("seed 12", int64(12)),
	)

	Describe("StepAll", func() {
		It("matches stepping each body against the same snapshot", func() {
			r := rand.New(rand.NewSource(42))
			bodies := make([]*physics.Body, 32)
			singles := make([]*physics.Body, 32)
			for i := range bodies {
				bodies[i] = randomBody(r)
				singles[i] = bodies[i].Clone()
			}
			gravity.SetVec(randomGravity(r))
			acc := gravity.Acceleration()

			stepper.StepAll(bodies, gravity, 0.05)
			for _, b := range singles {
				stepper.Integrate(b, acc, 0.05)
			}

			for i := range bodies {
				Expect(*bodies[i]).To(Equal(*singles[i]))
			}
		})

		It("counts ground contacts", func() {
			bodies := []*physics.Body{
				physics.NewBody(mgl64.Vec3{0, 0.5, 0}),
				physics.NewBody(mgl64.Vec3{0, 0.51, 0}),
				physics.NewBody(mgl64.Vec3{0, 50, 0}),
			}

			Expect(stepper.StepAll(bodies, gravity, 0.1)).To(Equal(2))
		})

		It("handles an empty scene", func() {
			Expect(stepper.StepAll(nil, gravity, 0.1)).To(BeZero())
		})
	})
})
