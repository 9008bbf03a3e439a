// Package export renders stored runs as standalone SVG charts.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/dropsim/internal/sim"
)

var ErrTooFewFrames = errors.New("export: need at least two frames")

var palette = []string{"#00ffff", "#ff00ff", "#ffff00", "#00ff88", "#ff8800", "#8888ff"}

type point struct{ X, Y float64 }

type bounds struct {
	minX, maxX, minY, maxY float64
}

func (b *bounds) add(p point) {
	b.minX = math.Min(b.minX, p.X)
	b.maxX = math.Max(b.maxX, p.X)
	b.minY = math.Min(b.minY, p.Y)
	b.maxY = math.Max(b.maxY, p.Y)
}

// pad widens the box by 10% on each side; a degenerate axis becomes one unit.
func (b *bounds) pad() {
	rx, ry := b.maxX-b.minX, b.maxY-b.minY
	if rx == 0 {
		rx = 1
	}
	if ry == 0 {
		ry = 1
	}
	b.minX -= rx * 0.1
	b.maxX += rx * 0.1
	b.minY -= ry * 0.1
	b.maxY += ry * 0.1
}

func emptyBounds() bounds {
	return bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
}

type chart struct {
	sb            strings.Builder
	width, height int
	b             bounds
}

func newChart(width, height int, b bounds) *chart {
	c := &chart{width: width, height: height, b: b}
	fmt.Fprintf(&c.sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
	return c
}

func (c *chart) project(p point) (float64, float64) {
	x := (p.X - c.b.minX) / (c.b.maxX - c.b.minX) * float64(c.width)
	y := float64(c.height) - (p.Y-c.b.minY)/(c.b.maxY-c.b.minY)*float64(c.height)
	return x, y
}

func (c *chart) path(points []point, stroke string) {
	fmt.Fprintf(&c.sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, stroke)
	for i, p := range points {
		x, y := c.project(p)
		if i == 0 {
			fmt.Fprintf(&c.sb, "M%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&c.sb, " L%.1f,%.1f", x, y)
		}
	}
	c.sb.WriteString("\"/>\n")
}

// ground draws the y = 0 plane as a dashed line.
func (c *chart) ground() {
	_, y := c.project(point{0, 0})
	fmt.Fprintf(&c.sb, `<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#666666" stroke-dasharray="4 4"/>
`, y, c.width, y)
}

func (c *chart) writeTo(w io.Writer) error {
	c.sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, c.sb.String())
	return err
}

// HeightsSVG plots every body's height against time.
func HeightsSVG(w io.Writer, frames []sim.Frame, width, height int) error {
	if len(frames) < 2 {
		return ErrTooFewFrames
	}

	b := emptyBounds()
	b.add(point{frames[0].Time, 0})
	series := make([][]point, len(frames[0].Positions))
	for _, f := range frames {
		for i, p := range f.Positions {
			if i >= len(series) {
				break
			}
			pt := point{f.Time, p[1]}
			series[i] = append(series[i], pt)
			b.add(pt)
		}
	}
	b.pad()

	c := newChart(width, height, b)
	c.ground()
	for i, s := range series {
		c.path(s, palette[i%len(palette)])
	}
	return c.writeTo(w)
}

// SideViewSVG traces every body's path in the x-y plane.
func SideViewSVG(w io.Writer, frames []sim.Frame, width, height int) error {
	if len(frames) < 2 {
		return ErrTooFewFrames
	}

	b := emptyBounds()
	b.add(point{0, 0})
	series := make([][]point, len(frames[0].Positions))
	for _, f := range frames {
		for i, p := range f.Positions {
			if i >= len(series) {
				break
			}
			pt := point{p[0], p[1]}
			series[i] = append(series[i], pt)
			b.add(pt)
		}
	}
	b.pad()

	c := newChart(width, height, b)
	c.ground()
	for i, s := range series {
		c.path(s, palette[i%len(palette)])
	}
	return c.writeTo(w)
}
