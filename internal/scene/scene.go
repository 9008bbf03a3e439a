// Package scene builds the initial set of bodies for a run.
package scene

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/dropsim/internal/physics"
)

const (
	DefaultNumBodies  = 5
	DefaultSpread     = 4.0
	DefaultBaseHeight = 5.0
	DefaultSpacing    = 2.0
)

var (
	ErrNoBodies    = errors.New("scene: at least one body required")
	ErrBelowGround = errors.New("scene: body starts below the ground plane")
	ErrHalfExtent  = errors.New("scene: half extent must be positive")
)

// Spec describes a column of boxes dropped from increasing heights with
// random horizontal jitter.
type Spec struct {
	NumBodies  int     `yaml:"num_bodies" env:"NUM_BODIES"`
	Spread     float64 `yaml:"spread" env:"SPREAD"`
	BaseHeight float64 `yaml:"base_height" env:"BASE_HEIGHT"`
	Spacing    float64 `yaml:"spacing" env:"SPACING"`
	HalfExtent float64 `yaml:"half_extent" env:"HALF_EXTENT"`
}

func DefaultSpec() Spec {
	return Spec{
		NumBodies:  DefaultNumBodies,
		Spread:     DefaultSpread,
		BaseHeight: DefaultBaseHeight,
		Spacing:    DefaultSpacing,
		HalfExtent: physics.DefaultHalfExtent,
	}
}

func (s Spec) Validate() error {
	if s.NumBodies <= 0 {
		return ErrNoBodies
	}
	if s.HalfExtent <= 0 {
		return fmt.Errorf("%w, got %f", ErrHalfExtent, s.HalfExtent)
	}
	lowest := s.BaseHeight
	if top := s.BaseHeight + float64(s.NumBodies-1)*s.Spacing; top < lowest {
		lowest = top
	}
	if lowest < s.HalfExtent {
		return fmt.Errorf("%w: lowest center %.3f < half extent %.3f", ErrBelowGround, lowest, s.HalfExtent)
	}
	return nil
}

// Build places body i at ((r-0.5)*spread, base+i*spacing, (r-0.5)*spread)
// with zero velocity. The same seed yields the same scene.
func Build(s Spec, seed int64) ([]*physics.Body, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	r := rand.New(rand.NewSource(seed))
	bodies := make([]*physics.Body, s.NumBodies)
	for i := range bodies {
		pos := mgl64.Vec3{
			(r.Float64() - 0.5) * s.Spread,
			s.BaseHeight + float64(i)*s.Spacing,
			(r.Float64() - 0.5) * s.Spread,
		}
		bodies[i] = physics.NewBox(pos, s.HalfExtent*2)
	}
	return bodies, nil
}

// Clone deep-copies a scene so a run can be replayed from its start.
func Clone(bodies []*physics.Body) []*physics.Body {
	out := make([]*physics.Body, len(bodies))
	for i, b := range bodies {
		out[i] = b.Clone()
	}
	return out
}
