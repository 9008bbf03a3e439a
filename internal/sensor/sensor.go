package sensor

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/san-kum/dropsim/internal/physics"
)

// DefaultInterval matches a 20 Hz accelerometer.
const DefaultInterval = 50 * time.Millisecond

const (
	KindNone   = "none"
	KindFixed  = "fixed"
	KindTilt   = "tilt"
	KindScript = "script"
	KindFile   = "file"
)

// Sensor is the only writer of a gravity field. It polls its source at a
// fixed interval, independent of the simulation tick.
type Sensor struct {
	Source   Source
	Mapping  Mapping
	Interval time.Duration
}

func New(src Source) *Sensor {
	return &Sensor{
		Source:   src,
		Mapping:  DefaultMapping,
		Interval: DefaultInterval,
	}
}

// Apply reads the source at elapsed and writes the mapped vector into field.
func (s *Sensor) Apply(field *physics.GravityField, elapsed time.Duration) error {
	r, err := s.Source.Read(elapsed)
	if err != nil {
		return err
	}
	field.SetVec(s.Mapping.World(r))
	return nil
}

// Run polls until ctx is done. Read errors are logged and the previous
// vector is kept.
func (s *Sensor) Run(ctx context.Context, field *physics.GravityField) error {
	if s.Source == nil {
		return ErrNoSource
	}
	if s.Interval <= 0 {
		return fmt.Errorf("%w, got %v", ErrBadInterval, s.Interval)
	}

	start := time.Now()
	if err := s.Apply(field, 0); err != nil {
		log.Printf("sensor: read: %v", err)
	}

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if err := s.Apply(field, now.Sub(start)); err != nil {
				log.Printf("sensor: read: %v", err)
			}
		}
	}
}

// Close releases the source if it holds resources.
func (s *Sensor) Close() error {
	if c, ok := s.Source.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Config selects and parameterises a source.
type Config struct {
	Kind      string        `yaml:"kind" env:"KIND"`
	Interval  time.Duration `yaml:"interval" env:"INTERVAL"`
	Reading   Reading       `yaml:"reading"`
	Amplitude float64       `yaml:"amplitude" env:"AMPLITUDE"`
	Period    time.Duration `yaml:"period" env:"PERIOD"`
	Path      string        `yaml:"path" env:"PATH"`
	Mapping   Mapping       `yaml:"mapping"`
}

func DefaultConfig() Config {
	return Config{
		Kind:      KindNone,
		Interval:  DefaultInterval,
		Reading:   Upright,
		Amplitude: 0.5,
		Period:    4 * time.Second,
		Mapping:   DefaultMapping,
	}
}

// FromConfig builds a sensor, or returns nil for kind "none".
func FromConfig(cfg Config) (*Sensor, error) {
	var src Source
	switch cfg.Kind {
	case "", KindNone:
		return nil, nil
	case KindFixed:
		src = NewFixed(cfg.Reading)
	case KindTilt:
		src = NewTilt(cfg.Amplitude, cfg.Period)
	case KindScript:
		if cfg.Path == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingPath, cfg.Kind)
		}
		s, err := LoadScript(cfg.Path)
		if err != nil {
			return nil, err
		}
		src = s
	case KindFile:
		if cfg.Path == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingPath, cfg.Kind)
		}
		f, err := NewFileSource(cfg.Path)
		if err != nil {
			return nil, err
		}
		src = f
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}

	s := New(src)
	if cfg.Interval > 0 {
		s.Interval = cfg.Interval
	}
	if cfg.Mapping.Scale != 0 {
		s.Mapping = cfg.Mapping
	}
	return s, nil
}

func Kinds() []string {
	return []string{KindNone, KindFixed, KindTilt, KindScript, KindFile}
}
