// Package viz renders a live side view of a falling-box scene in the
// terminal using Bubble Tea.
//
// [Model] is the frame driver: every tick steps all bodies once with the
// wall-clock time since the previous tick and redraws a Braille [Canvas].
// The arrow keys tilt a virtual device and write the matching vector into
// the shared [physics.GravityField].
//
// # Key Bindings
//
//	←→↑↓  - Tilt gravity
//	G     - Reset gravity
//	Space - Pause/Resume
//	R     - Reset scene
//	T     - Cycle color themes
//	Q     - Quit
package viz
