package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/dropsim/internal/sim"
)

type ExportFrame struct {
	Time       float64      `json:"time"`
	Gravity    [3]float64   `json:"gravity"`
	Positions  [][3]float64 `json:"positions"`
	Velocities [][3]float64 `json:"velocities"`
}

type ExportData struct {
	Run    RunMetadata   `json:"run"`
	Frames []ExportFrame `json:"frames"`
}

func ExportJSON(w io.Writer, meta RunMetadata, frames []sim.Frame) error {
	data := ExportData{
		Run:    meta,
		Frames: make([]ExportFrame, len(frames)),
	}

	for i, f := range frames {
		ef := ExportFrame{
			Time:       f.Time,
			Gravity:    f.Gravity,
			Positions:  make([][3]float64, len(f.Positions)),
			Velocities: make([][3]float64, len(f.Velocities)),
		}
		for j, p := range f.Positions {
			ef.Positions[j] = p
		}
		for j, v := range f.Velocities {
			ef.Velocities[j] = v
		}
		data.Frames[i] = ef
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Heights returns the vertical position of body over the frames.
func Heights(frames []sim.Frame, body int) []float64 {
	out := make([]float64, 0, len(frames))
	for _, f := range frames {
		if body < len(f.Positions) {
			out = append(out, f.Positions[body][1])
		}
	}
	return out
}
