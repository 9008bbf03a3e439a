package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState indicates a body position or velocity went NaN or Inf.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrTimestep indicates a non-positive or non-finite tick length.
	ErrTimestep = errors.New("sim: dt must be positive")

	// ErrDuration indicates a non-positive run length.
	ErrDuration = errors.New("sim: duration must be positive")

	// ErrNoBodies indicates an empty scene.
	ErrNoBodies = errors.New("sim: no bodies to simulate")
)

// SimulationError wraps an error with the tick and body it occurred on.
type SimulationError struct {
	Step    int
	Time    float64
	Body    int
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f) body %d: %v", e.Step, e.Time, e.Body, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
