package physics_test

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dropsim/internal/physics"
)

var _ = Describe("GravityField", func() {
	It("defaults to standard gravity along -Y", func() {
		g := physics.NewGravityField()
		Expect(g.Acceleration()).To(Equal(mgl64.Vec3{0, -9.81, 0}))
	})

	It("treats a zero value as default gravity", func() {
		var g physics.GravityField
		Expect(g.Acceleration()).To(Equal(physics.DefaultGravity))
	})

	It("overwrites the vector without validation", func() {
		g := physics.NewGravityField()

		g.Set(0, 0, 0)
		Expect(g.Acceleration()).To(Equal(mgl64.Vec3{}))

		g.Set(-3, 9.81, 1e9)
		Expect(g.Acceleration()).To(Equal(mgl64.Vec3{-3, 9.81, 1e9}))

		g.Reset()
		Expect(g.Acceleration()).To(Equal(physics.DefaultGravity))
	})

	It("returns snapshots the caller cannot mutate", func() {
		g := physics.NewGravityField()
		v := g.Acceleration()
		v[1] = 100

		Expect(g.Acceleration()).To(Equal(physics.DefaultGravity))
	})

	It("never exposes a torn vector to concurrent readers", func() {
		g := physics.NewGravityFieldAt(mgl64.Vec3{1, 1, 1})
		a := mgl64.Vec3{1, 1, 1}
		b := mgl64.Vec3{-2, -2, -2}

		var wg sync.WaitGroup
		done := make(chan struct{})
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; ; i++ {
				select {
				case <-done:
					return
				default:
				}
				if i%2 == 0 {
					g.SetVec(b)
				} else {
					g.SetVec(a)
				}
			}
		}()

		for i := 0; i < 20000; i++ {
			v := g.Acceleration()
			Expect(v == a || v == b).To(BeTrue(), "torn read: %v", v)
		}
		close(done)
		wg.Wait()
	})
})
