// Package sensor feeds device orientation into a gravity field.
//
// Sources produce accelerometer readings in device g-units; a [Mapping]
// turns them into world-space acceleration. The axis and sign convention is
// owned here, never by the stepper.
package sensor

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/dropsim/internal/physics"
)

// Reading is one accelerometer sample in g-units, device axes.
type Reading struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Upright is the reading of a device held in portrait, which maps to
// straight-down gravity under [DefaultMapping].
var Upright = Reading{X: 0, Y: 1, Z: 0}

// Mapping scales device g-units to m/s² and flips axes into world space.
type Mapping struct {
	Scale float64    `yaml:"scale"`
	Signs [3]float64 `yaml:"signs"`
}

// DefaultMapping gives world = (x*9.81, -y*9.81, z*9.81).
var DefaultMapping = Mapping{
	Scale: physics.StandardGravity,
	Signs: [3]float64{1, -1, 1},
}

func (m Mapping) World(r Reading) mgl64.Vec3 {
	return mgl64.Vec3{
		r.X * m.Signs[0] * m.Scale,
		r.Y * m.Signs[1] * m.Scale,
		r.Z * m.Signs[2] * m.Scale,
	}
}
