package physics

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
)

// StandardGravity is the magnitude of Earth gravity in m/s².
const StandardGravity = 9.81

// DefaultGravity points straight down the world Y axis.
var DefaultGravity = mgl64.Vec3{0, -StandardGravity, 0}

// GravityField holds the current gravitational acceleration. Writes replace
// the whole vector at once so a reader sees either the old or the new value,
// never a mix of components.
type GravityField struct {
	acc atomic.Pointer[mgl64.Vec3]
}

func NewGravityField() *GravityField {
	return NewGravityFieldAt(DefaultGravity)
}

func NewGravityFieldAt(v mgl64.Vec3) *GravityField {
	g := &GravityField{}
	g.SetVec(v)
	return g
}

// Set overwrites the acceleration. Any triple is accepted, including zero
// and reversed gravity.
func (g *GravityField) Set(x, y, z float64) {
	g.SetVec(mgl64.Vec3{x, y, z})
}

func (g *GravityField) SetVec(v mgl64.Vec3) {
	g.acc.Store(&v)
}

// Acceleration returns a snapshot of the current vector.
func (g *GravityField) Acceleration() mgl64.Vec3 {
	if v := g.acc.Load(); v != nil {
		return *v
	}
	return DefaultGravity
}

func (g *GravityField) Reset() { g.SetVec(DefaultGravity) }
