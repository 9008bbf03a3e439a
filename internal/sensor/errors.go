package sensor

import "errors"

var (
	ErrEmptyScript = errors.New("sensor: script has no samples")
	ErrUnknownKind = errors.New("sensor: unknown source kind")
	ErrMissingPath = errors.New("sensor: source needs a path")
	ErrBadInterval = errors.New("sensor: interval must be positive")
	ErrNoSource    = errors.New("sensor: no source configured")
)
