package sensor

import (
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Source produces the reading for a moment measured from the start of a run.
type Source interface {
	Read(elapsed time.Duration) (Reading, error)
}

// Fixed always reports the same reading.
type Fixed struct {
	Reading Reading
}

func NewFixed(r Reading) *Fixed { return &Fixed{Reading: r} }

func (f *Fixed) Read(time.Duration) (Reading, error) { return f.Reading, nil }

// Tilt rocks the device left and right around upright. The tilt angle is
// Amplitude*sin(2πt/Period) radians; the reading keeps unit magnitude.
type Tilt struct {
	Amplitude float64
	Period    time.Duration
}

func NewTilt(amplitude float64, period time.Duration) *Tilt {
	return &Tilt{Amplitude: amplitude, Period: period}
}

func (t *Tilt) Read(elapsed time.Duration) (Reading, error) {
	if t.Period <= 0 {
		return Upright, nil
	}
	phase := 2 * math.Pi * elapsed.Seconds() / t.Period.Seconds()
	angle := t.Amplitude * math.Sin(phase)
	return Reading{X: math.Sin(angle), Y: math.Cos(angle)}, nil
}

// Sample is one step of a scripted timeline. At is seconds from start.
type Sample struct {
	At      float64 `yaml:"at"`
	Reading `yaml:",inline"`
}

// Script replays a piecewise-constant timeline of readings. With Loop set
// the timeline repeats every Period seconds.
type Script struct {
	Samples []Sample `yaml:"samples"`
	Loop    bool     `yaml:"loop"`
	Period  float64  `yaml:"period"`
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script %s: %w", path, err)
	}
	if err := s.normalize(); err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return &s, nil
}

func (s *Script) normalize() error {
	if len(s.Samples) == 0 {
		return ErrEmptyScript
	}
	sort.SliceStable(s.Samples, func(i, j int) bool { return s.Samples[i].At < s.Samples[j].At })
	if s.Loop && s.Period <= 0 {
		return fmt.Errorf("looping script needs a positive period, got %f", s.Period)
	}
	return nil
}

func (s *Script) Read(elapsed time.Duration) (Reading, error) {
	if len(s.Samples) == 0 {
		return Reading{}, ErrEmptyScript
	}
	t := elapsed.Seconds()
	if s.Loop && s.Period > 0 {
		t = math.Mod(t, s.Period)
	}
	i := sort.Search(len(s.Samples), func(i int) bool { return s.Samples[i].At > t })
	if i == 0 {
		return s.Samples[0].Reading, nil
	}
	return s.Samples[i-1].Reading, nil
}
