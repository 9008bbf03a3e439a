package physics_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dropsim/internal/physics"
)

var _ = Describe("Body", func() {
	It("starts as a unit box at rest", func() {
		b := physics.NewBody(mgl64.Vec3{1, 2, 3})

		Expect(b.Position).To(Equal(mgl64.Vec3{1, 2, 3}))
		Expect(b.Velocity).To(Equal(mgl64.Vec3{}))
		Expect(b.HalfExtentY).To(Equal(0.5))
	})

	It("derives the half extent from the box side", func() {
		Expect(physics.NewBox(mgl64.Vec3{}, 3).HalfExtentY).To(Equal(1.5))
	})

	It("clones independently", func() {
		b := physics.NewBody(mgl64.Vec3{0, 1, 0})
		c := b.Clone()
		c.Position[1] = 9

		Expect(b.Position.Y()).To(Equal(1.0))
	})

	DescribeTable("IsValid",
		func(pos, vel mgl64.Vec3, valid bool) {
			b := physics.NewBody(pos)
			b.Velocity = vel
			Expect(b.IsValid()).To(Equal(valid))
		},
		Entry("finite", mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, -1, 0}, true),
		Entry("NaN position", mgl64.Vec3{math.NaN(), 1, 0}, mgl64.Vec3{}, false),
		Entry("+Inf velocity", mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, math.Inf(1), 0}, false),
		Entry("-Inf velocity", mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, math.Inf(-1)}, false),
	)

	It("propagates non-finite input without complaint", func() {
		b := physics.NewBody(mgl64.Vec3{0, 5, 0})
		g := physics.NewGravityField()

		physics.NewStepper().Step(b, g, math.NaN())

		Expect(b.IsValid()).To(BeFalse())
	})
})
