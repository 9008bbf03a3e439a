package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/dropsim/internal/metrics"
	"github.com/san-kum/dropsim/internal/physics"
	"github.com/san-kum/dropsim/internal/scene"
)

const (
	canvasWidth     = 60
	canvasHeight    = 20
	historyCapacity = 300
	defaultFPS      = 60

	// maxFrameDelta caps the wall-clock step after a stall, in seconds.
	maxFrameDelta = 0.25
	// tiltStep is the device rotation per arrow key press, in radians.
	tiltStep = 0.1
)

type TickMsg time.Time

type Options struct {
	Title   string
	Spec    scene.Spec
	Seed    int64
	FPS     int
	Gravity *physics.GravityField
	Theme   string
}

// Model steps the scene once per frame with the wall-clock time elapsed
// since the previous frame.
type Model struct {
	title   string
	spec    scene.Spec
	frame   time.Duration
	field   *physics.GravityField
	stepper *physics.Stepper

	initial []*physics.Body
	bodies  []*physics.Body

	last     time.Time
	t        float64
	ticks    int
	contacts int
	running  bool

	roll, pitch float64

	energy []float64

	canvas       *Canvas
	xRange, yMax float64
	theme        int
	styles       styles
}

func NewModel(opts Options) (Model, error) {
	bodies, err := scene.Build(opts.Spec, opts.Seed)
	if err != nil {
		return Model{}, err
	}

	field := opts.Gravity
	if field == nil {
		field = physics.NewGravityField()
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	title := opts.Title
	if title == "" {
		title = "dropsim"
	}

	theme := themeIndex(opts.Theme)

	half := opts.Spec.HalfExtent
	top := opts.Spec.BaseHeight + float64(opts.Spec.NumBodies-1)*opts.Spec.Spacing

	return Model{
		title:   title,
		spec:    opts.Spec,
		frame:   time.Second / time.Duration(fps),
		field:   field,
		stepper: physics.NewStepper(),
		initial: scene.Clone(bodies),
		bodies:  bodies,
		running: true,
		energy:  make([]float64, 0, historyCapacity),
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		xRange:  math.Max(opts.Spec.Spread/2+2*half, 4),
		yMax:    top + 2*half + 1,
		theme:   theme,
		styles:  newStyles(Themes[theme]),
	}, nil
}

func (m Model) Bodies() []*physics.Body        { return m.bodies }
func (m Model) Time() float64                  { return m.t }
func (m Model) Ticks() int                     { return m.ticks }
func (m Model) Contacts() int                  { return m.contacts }
func (m Model) Running() bool                  { return m.running }
func (m Model) Gravity() *physics.GravityField { return m.field }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			m.last = time.Time{}
		case "r":
			m.reset()
		case "g":
			m.roll, m.pitch = 0, 0
			m.field.Reset()
		case "left":
			m.tilt(-tiltStep, 0)
		case "right":
			m.tilt(tiltStep, 0)
		case "up":
			m.tilt(0, tiltStep)
		case "down":
			m.tilt(0, -tiltStep)
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
			m.styles = newStyles(Themes[m.theme])
		}
	case TickMsg:
		if m.running {
			m.advance(m.frameDelta(time.Time(msg)))
		}
		return m, m.tick()
	}
	return m, nil
}

// frameDelta returns seconds since the previous tick: zero on the first
// tick, never negative.
func (m *Model) frameDelta(now time.Time) float64 {
	if m.last.IsZero() {
		m.last = now
		return 0
	}
	d := now.Sub(m.last).Seconds()
	m.last = now
	if d < 0 {
		return 0
	}
	return math.Min(d, maxFrameDelta)
}

func (m *Model) advance(delta float64) {
	g := m.field.Acceleration()
	m.contacts += m.stepper.StepWith(m.bodies, g, delta)
	m.t += delta
	m.ticks++

	m.energy = append(m.energy, metrics.TotalEnergy(m.bodies, g)/float64(len(m.bodies)))
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[1:]
	}
}

// tilt rotates the virtual device and writes the resulting gravity, the
// same way an orientation sensor would.
func (m *Model) tilt(dRoll, dPitch float64) {
	m.roll += dRoll
	m.pitch += dPitch
	g := physics.StandardGravity
	m.field.Set(
		g*math.Sin(m.roll)*math.Cos(m.pitch),
		-g*math.Cos(m.roll)*math.Cos(m.pitch),
		g*math.Sin(m.pitch),
	)
}

func (m *Model) reset() {
	m.bodies = scene.Clone(m.initial)
	m.t = 0
	m.ticks = 0
	m.contacts = 0
	m.last = time.Time{}
	m.energy = m.energy[:0]
}

// project maps world (x, y) onto canvas dots, y up.
func (m *Model) project(x, y float64) (int, int) {
	w := float64(m.canvas.DotsWide() - 1)
	h := float64(m.canvas.DotsHigh() - 1)
	px := (x + m.xRange) / (2 * m.xRange) * w
	py := h - y/m.yMax*h
	return int(math.Round(px)), int(math.Round(py))
}

func (m *Model) draw() {
	m.canvas.Clear()
	for _, b := range m.bodies {
		p, half := b.Position, b.HalfExtentY
		x0, y0 := m.project(p[0]-half, p[1]+half)
		x1, y1 := m.project(p[0]+half, p[1]-half)
		m.canvas.DrawRect(x0, y0, x1, y1)
	}
}

func (m Model) resting() int {
	n := 0
	for _, b := range m.bodies {
		if b.Resting() {
			n++
		}
	}
	return n
}

func (m Model) View() string {
	m.draw()
	st := m.styles

	side := st.canvas.Render(m.canvas.String()) + "\n" +
		st.ground.Render(strings.Repeat("▔", canvasWidth))

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.title)) + "\n")
	if m.running {
		s.WriteString(st.running.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(st.paused.Render("PAUSED") + "\n\n")
	}

	g := m.field.Acceleration()
	rest := m.resting()
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.t))
	row("Bodies", fmt.Sprintf("%d", len(m.bodies)))
	row("Resting", fmt.Sprintf("%s %d", ProgressBar(float64(rest)/float64(len(m.bodies)), 10), rest))
	row("Contacts", fmt.Sprintf("%d", m.contacts))
	row("Gravity", fmt.Sprintf("(%.2f, %.2f, %.2f)", g[0], g[1], g[2]))
	row("|g|", fmt.Sprintf("%.2f m/s²", g.Len()))
	if len(m.energy) > 0 {
		row("Energy", fmt.Sprintf("%.2f J/kg", m.energy[len(m.energy)-1]))
	}

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("energy"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	s.WriteString(st.help.Render("←→↑↓ tilt  g gravity  space pause\nr reset  t theme  q quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, side, st.panel.Render(s.String()))
}
