package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/dropsim/internal/sim"
)

const (
	gravityCols = 4 // time, gx, gy, gz
	bodyCols    = 6 // x, y, z, vx, vy, vz
)

var ErrBadFrames = errors.New("storage: malformed frames")

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func framesHeader(numBodies int) []string {
	header := []string{"time", "gx", "gy", "gz"}
	for i := 0; i < numBodies; i++ {
		header = append(header,
			fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i), fmt.Sprintf("z%d", i),
			fmt.Sprintf("vx%d", i), fmt.Sprintf("vy%d", i), fmt.Sprintf("vz%d", i),
		)
	}
	return header
}

// WriteFramesCSV writes one row per frame. Every frame must hold the same
// number of bodies as the first.
func WriteFramesCSV(w io.Writer, frames []sim.Frame) error {
	cw := csv.NewWriter(w)

	if len(frames) == 0 {
		cw.Flush()
		return cw.Error()
	}

	numBodies := len(frames[0].Positions)
	if err := cw.Write(framesHeader(numBodies)); err != nil {
		return err
	}

	row := make([]string, 0, gravityCols+bodyCols*numBodies)
	for i, f := range frames {
		if len(f.Positions) != numBodies || len(f.Velocities) != numBodies {
			return fmt.Errorf("%w: frame %d has %d bodies, want %d", ErrBadFrames, i, len(f.Positions), numBodies)
		}

		row = row[:0]
		row = append(row, formatFloat(f.Time), formatFloat(f.Gravity[0]), formatFloat(f.Gravity[1]), formatFloat(f.Gravity[2]))
		for b := 0; b < numBodies; b++ {
			p, v := f.Positions[b], f.Velocities[b]
			row = append(row,
				formatFloat(p[0]), formatFloat(p[1]), formatFloat(p[2]),
				formatFloat(v[0]), formatFloat(v[1]), formatFloat(v[2]),
			)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func ReadFramesCSV(r io.Reader) ([]sim.Frame, error) {
	cr := csv.NewReader(r)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	cols := len(records[0])
	if cols < gravityCols || (cols-gravityCols)%bodyCols != 0 {
		return nil, fmt.Errorf("%w: %d columns", ErrBadFrames, cols)
	}
	numBodies := (cols - gravityCols) / bodyCols

	frames := make([]sim.Frame, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		vals := make([]float64, cols)
		for j, field := range records[i] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d col %d: %v", ErrBadFrames, i, j, err)
			}
			vals[j] = v
		}

		f := sim.Frame{
			Time:       vals[0],
			Gravity:    mgl64.Vec3{vals[1], vals[2], vals[3]},
			Positions:  make([]mgl64.Vec3, numBodies),
			Velocities: make([]mgl64.Vec3, numBodies),
		}
		for b := 0; b < numBodies; b++ {
			o := gravityCols + b*bodyCols
			f.Positions[b] = mgl64.Vec3{vals[o], vals[o+1], vals[o+2]}
			f.Velocities[b] = mgl64.Vec3{vals[o+3], vals[o+4], vals[o+5]}
		}
		frames = append(frames, f)
	}

	return frames, nil
}
