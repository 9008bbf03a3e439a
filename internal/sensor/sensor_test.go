package sensor

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/dropsim/internal/physics"
)

func TestDefaultMapping(t *testing.T) {
	tests := []struct {
		name string
		in   Reading
		want mgl64.Vec3
	}{
		{"upright", Upright, mgl64.Vec3{0, -9.81, 0}},
		{"flat", Reading{0, 0, 1}, mgl64.Vec3{0, 0, 9.81}},
		{"tilted right", Reading{1, 0, 0}, mgl64.Vec3{9.81, 0, 0}},
		{"upside down", Reading{0, -1, 0}, mgl64.Vec3{0, 9.81, 0}},
		{"free fall", Reading{}, mgl64.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultMapping.World(tt.in)
			if !got.ApproxEqual(tt.want) {
				t.Errorf("World(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTilt(t *testing.T) {
	src := NewTilt(math.Pi/6, 4*time.Second)

	r, _ := src.Read(0)
	if r != Upright {
		t.Errorf("expected upright at t=0, got %v", r)
	}

	r, _ = src.Read(time.Second)
	if math.Abs(r.X-0.5) > 1e-9 {
		t.Errorf("expected x=0.5 at quarter period, got %f", r.X)
	}

	for _, at := range []time.Duration{0, 300 * time.Millisecond, 2700 * time.Millisecond} {
		r, _ := src.Read(at)
		if mag := math.Hypot(r.X, r.Y); math.Abs(mag-1) > 1e-9 {
			t.Errorf("t=%v: expected unit reading, got magnitude %f", at, mag)
		}
	}

	still := NewTilt(1, 0)
	if r, _ := still.Read(time.Second); r != Upright {
		t.Errorf("zero period should stay upright, got %v", r)
	}
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadScript(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tilt.yaml", `
loop: true
period: 3
samples:
  - at: 2
    x: 1
    y: 0
  - at: 0
    x: 0
    y: 1
`)

	s, err := LoadScript(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	tests := []struct {
		at   time.Duration
		want Reading
	}{
		{0, Reading{0, 1, 0}},
		{1500 * time.Millisecond, Reading{0, 1, 0}},
		{2 * time.Second, Reading{1, 0, 0}},
		{2900 * time.Millisecond, Reading{1, 0, 0}},
		{3500 * time.Millisecond, Reading{0, 1, 0}},
	}
	for _, tt := range tests {
		got, err := s.Read(tt.at)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if got != tt.want {
			t.Errorf("Read(%v) = %v, want %v", tt.at, got, tt.want)
		}
	}
}

func TestLoadScriptErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadScript(writeFile(t, dir, "empty.yaml", "samples: []\n")); !errors.Is(err, ErrEmptyScript) {
		t.Errorf("expected ErrEmptyScript, got %v", err)
	}
	if _, err := LoadScript(writeFile(t, dir, "loop.yaml", "loop: true\nsamples:\n  - at: 0\n    y: 1\n")); err == nil {
		t.Error("expected error for loop without period")
	}
	if _, err := LoadScript(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSensorApply(t *testing.T) {
	field := physics.NewGravityField()
	s := New(NewFixed(Reading{X: 0.5, Y: 0.5}))

	if err := s.Apply(field, 0); err != nil {
		t.Fatalf("apply: %v", err)
	}

	want := mgl64.Vec3{0.5 * 9.81, -0.5 * 9.81, 0}
	if got := field.Acceleration(); !got.ApproxEqual(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSensorRun(t *testing.T) {
	field := physics.NewGravityField()
	s := New(NewFixed(Reading{}))
	s.Interval = 5 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := s.Run(ctx, field)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if got := field.Acceleration(); got != (mgl64.Vec3{}) {
		t.Errorf("expected zero gravity, got %v", got)
	}
}

func TestSensorRunInvalid(t *testing.T) {
	field := physics.NewGravityField()

	if err := (&Sensor{}).Run(context.Background(), field); !errors.Is(err, ErrNoSource) {
		t.Errorf("expected ErrNoSource, got %v", err)
	}

	s := New(NewFixed(Upright))
	s.Interval = 0
	if err := s.Run(context.Background(), field); !errors.Is(err, ErrBadInterval) {
		t.Errorf("expected ErrBadInterval, got %v", err)
	}
}

func TestFromConfig(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "s.yaml", "samples:\n  - at: 0\n    y: 1\n")
	reading := writeFile(t, dir, "r.yaml", "y: 1\n")

	tests := []struct {
		name    string
		cfg     Config
		wantNil bool
		wantErr error
	}{
		{"none", Config{Kind: KindNone}, true, nil},
		{"empty kind", Config{}, true, nil},
		{"fixed", Config{Kind: KindFixed, Reading: Upright}, false, nil},
		{"tilt", Config{Kind: KindTilt, Amplitude: 0.3, Period: time.Second}, false, nil},
		{"script", Config{Kind: KindScript, Path: script}, false, nil},
		{"file", Config{Kind: KindFile, Path: reading}, false, nil},
		{"script without path", Config{Kind: KindScript}, true, ErrMissingPath},
		{"file without path", Config{Kind: KindFile}, true, ErrMissingPath},
		{"unknown", Config{Kind: "gyro"}, true, ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := FromConfig(tt.cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("FromConfig() error = %v, want %v", err, tt.wantErr)
			}
			if (s == nil) != tt.wantNil {
				t.Fatalf("FromConfig() sensor nil = %v, want %v", s == nil, tt.wantNil)
			}
			if s != nil {
				defer s.Close()
				if s.Interval != DefaultInterval {
					t.Errorf("expected default interval, got %v", s.Interval)
				}
			}
		})
	}
}

func TestFileSourceReload(t *testing.T) {
	path := writeFile(t, t.TempDir(), "gravity.yaml", "x: 0\ny: 1\nz: 0\n")

	src, err := NewFileSource(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer src.Close()

	if r, _ := src.Read(0); r != Upright {
		t.Fatalf("expected initial upright reading, got %v", r)
	}

	want := Reading{X: 1}
	if err := WriteReadingFile(path, want); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if r, _ := src.Read(0); r == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	r, _ := src.Read(0)
	t.Errorf("reading not reloaded: got %v after %d reloads", r, src.Reloads())
}

func TestFileSourceMissing(t *testing.T) {
	if _, err := NewFileSource(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
