package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ellipsim/ellipsim/internal/geom"
	"github.com/ellipsim/ellipsim/internal/sim"
)

const (
	canvasWidth     = 70
	canvasHeight    = 22
	historyCapacity = 200
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	canvasStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))

	statsStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	paramStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Model is the interactive terminal view of a running simulation.
type Model struct {
	dyn        sim.System
	integrator sim.Integrator
	shape      geom.Ellipse
	modelName  string

	state sim.State
	init  sim.State
	t     float64
	dt    float64

	canvas *Canvas
	proj   Projection

	energyHistory []float64
	paused        bool
	stepsPerTick  int

	// Tunable parameters, if the system exposes them.
	params     []string
	paramIdx   int
	tunable    sim.Configurable
	hamilton   sim.Hamiltonian
	frameCount int
}

// NewModel builds a live view around the given system.
func NewModel(dyn sim.System, integ sim.Integrator, shape geom.Ellipse, modelName string, initState sim.State, dt float64) *Model {
	c := NewCanvas(canvasWidth, canvasHeight)
	m := &Model{
		dyn:          dyn,
		integrator:   integ,
		shape:        shape,
		modelName:    modelName,
		state:        initState.Clone(),
		init:         initState.Clone(),
		dt:           dt,
		canvas:       c,
		proj:         c.NewProjection(shape),
		stepsPerTick: 4,
	}
	if cfg, ok := dyn.(sim.Configurable); ok {
		m.tunable = cfg
		for name := range cfg.GetParams() {
			m.params = append(m.params, name)
		}
	}
	if h, ok := dyn.(sim.Hamiltonian); ok {
		m.hamilton = h
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.state = m.init.Clone()
			m.t = 0
			m.energyHistory = m.energyHistory[:0]
		case "+", "=":
			if m.stepsPerTick < 64 {
				m.stepsPerTick *= 2
			}
		case "-":
			if m.stepsPerTick > 1 {
				m.stepsPerTick /= 2
			}
		case "tab":
			if len(m.params) > 0 {
				m.paramIdx = (m.paramIdx + 1) % len(m.params)
			}
		case "up":
			m.adjustParam(1.1)
		case "down":
			m.adjustParam(1 / 1.1)
		}
	case TickMsg:
		if !m.paused {
			for i := 0; i < m.stepsPerTick; i++ {
				m.step()
			}
		}
		m.frameCount++
		return m, tick()
	}
	return m, nil
}

func (m *Model) adjustParam(factor float64) {
	if m.tunable == nil || len(m.params) == 0 {
		return
	}
	name := m.params[m.paramIdx]
	val := m.tunable.GetParams()[name]
	if val == 0 {
		val = 0.1 * (factor - 1) / math.Abs(factor-1)
	} else {
		val *= factor
	}
	if err := m.tunable.SetParam(name, val); err != nil {
		// Unknown parameter names leave the model untouched.
		return
	}
}

func (m *Model) step() {
	next := m.integrator.Step(m.dyn, m.state, m.t, m.dt)
	if !next.IsValid() {
		m.paused = true
		return
	}
	m.state = next
	m.t += m.dt

	if m.hamilton != nil {
		m.energyHistory = append(m.energyHistory, m.hamilton.Energy(m.state))
		if len(m.energyHistory) > historyCapacity {
			m.energyHistory = m.energyHistory[1:]
		}
	}
}

// particleAngles extracts the angular positions from the state layout
// [theta_1..theta_n, thetadot_1..thetadot_n].
func (m *Model) particleAngles() []float64 {
	n := len(m.state) / 2
	return m.state[:n]
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.canvas.DrawEllipse(m.shape, m.proj)
	for _, theta := range m.particleAngles() {
		m.canvas.DrawParticle(m.shape, m.proj, theta)
	}
}

func (m *Model) View() string {
	m.draw()

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("ellipsim — %s (a=%.2f b=%.2f)", m.modelName, m.shape.A, m.shape.B)))
	b.WriteString("\n")
	b.WriteString(canvasStyle.Render(m.canvas.String()))
	b.WriteString("\n")
	b.WriteString(m.statsView())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space pause · r reset · +/- speed · tab/↑/↓ tune · q quit"))
	return b.String()
}

func (m *Model) statsView() string {
	var s strings.Builder
	status := "running"
	if m.paused {
		status = "paused"
	}
	fmt.Fprintf(&s, "t=%8.3f  dt=%.4f  x%d  [%s]\n", m.t, m.dt, m.stepsPerTick, status)

	if m.hamilton != nil {
		fmt.Fprintf(&s, "E=%+.6f", m.hamilton.Energy(m.state))
		if len(m.energyHistory) > 2 {
			s.WriteString("\n")
			s.WriteString(asciigraph.Plot(m.energyHistory,
				asciigraph.Height(5),
				asciigraph.Width(canvasWidth-10),
				asciigraph.Precision(4)))
		}
	}

	if m.tunable != nil && len(m.params) > 0 {
		s.WriteString("\n")
		vals := m.tunable.GetParams()
		for i, name := range m.params {
			line := fmt.Sprintf("%s=%.3f", name, vals[name])
			if i == m.paramIdx {
				line = paramStyle.Render("▸ " + line)
			} else {
				line = "  " + line
			}
			s.WriteString(line)
			if i < len(m.params)-1 {
				s.WriteString("  ")
			}
		}
	}
	return statsStyle.Render(s.String())
}

// Run starts the live view and blocks until the user quits.
func Run(m *Model) error {
	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}
