package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/dropsim/internal/physics"
)

// SpecificEnergy is kinetic plus potential energy per unit mass in field g,
// with the potential zero at the origin.
func SpecificEnergy(b *physics.Body, g mgl64.Vec3) float64 {
	return 0.5*b.Velocity.Dot(b.Velocity) - g.Dot(b.Position)
}

// TotalEnergy sums SpecificEnergy over bodies.
func TotalEnergy(bodies []*physics.Body, g mgl64.Vec3) float64 {
	total := 0.0
	for _, b := range bodies {
		total += SpecificEnergy(b, g)
	}
	return total
}

// Energy reports the mean per-body specific energy averaged over all samples.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(bodies []*physics.Body, g mgl64.Vec3, t float64) {
	if len(bodies) == 0 {
		return
	}
	e.totalEnergy += TotalEnergy(bodies, g) / float64(len(bodies))
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyLoss is the fraction of the first sample's energy gone by the last
// sample. Ground contacts are fully inelastic, so a settling scene loses
// energy on every landing.
type EnergyLoss struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	samples       int
}

func NewEnergyLoss() *EnergyLoss {
	return &EnergyLoss{name: "energy_loss"}
}

func (e *EnergyLoss) Name() string { return e.name }

func (e *EnergyLoss) Observe(bodies []*physics.Body, g mgl64.Vec3, t float64) {
	energy := TotalEnergy(bodies, g)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.currentEnergy = energy
	e.samples++
}

func (e *EnergyLoss) Value() float64 {
	if e.samples == 0 || e.initialEnergy == 0 {
		return 0
	}
	return (e.initialEnergy - e.currentEnergy) / math.Abs(e.initialEnergy)
}

func (e *EnergyLoss) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.samples = 0
}
