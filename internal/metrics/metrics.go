// Package metrics provides scalar summaries observed on every tick.
package metrics

import "github.com/san-kum/dropsim/internal/sim"

// DefaultContainmentRadius is twice the default scene spread.
const DefaultContainmentRadius = 8.0

// Default returns fresh instances of the standard metric set.
func Default() []sim.Metric {
	return []sim.Metric{
		NewEnergy(),
		NewEnergyLoss(),
		NewResting(),
		NewMaxSpeed(),
		NewContainment(DefaultContainmentRadius),
	}
}
