package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultHalfExtent is the ground-contact distance of a unit cube.
const DefaultHalfExtent = 0.5

// Body is a simulated point mass. HalfExtentY is the lowest height its
// center may reach above the ground plane.
type Body struct {
	Position    mgl64.Vec3
	Velocity    mgl64.Vec3
	HalfExtentY float64
}

// NewBody returns a unit box at pos with zero velocity.
func NewBody(pos mgl64.Vec3) *Body {
	return &Body{
		Position:    pos,
		HalfExtentY: DefaultHalfExtent,
	}
}

// NewBox returns a box of the given side length at pos. Rotation is not
// modelled, so only the vertical half extent matters.
func NewBox(pos mgl64.Vec3, side float64) *Body {
	return &Body{
		Position:    pos,
		HalfExtentY: side / 2,
	}
}

func (b *Body) Clone() *Body {
	c := *b
	return &c
}

// OnGround reports whether the body sits at its clamp height.
func (b *Body) OnGround() bool {
	return b.Position.Y() <= b.HalfExtentY
}

// Resting reports whether the body is on the ground with no vertical motion.
func (b *Body) Resting() bool {
	return b.OnGround() && b.Velocity.Y() == 0
}

// IsValid reports whether every component of position and velocity is finite.
func (b *Body) IsValid() bool {
	for i := 0; i < 3; i++ {
		if !finite(b.Position[i]) || !finite(b.Velocity[i]) {
			return false
		}
	}
	return finite(b.HalfExtentY)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
