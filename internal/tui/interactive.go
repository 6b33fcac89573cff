package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/fireworks/internal/sim"
	"github.com/san-kum/fireworks/internal/viz"
)

var (
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	orange = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

const (
	minInterval = 10 * time.Millisecond
	maxInterval = time.Second
)

type tickMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the interactive show. It shares the simulator and renderer with
// the plain loop; only the pacing and the keyboard handling differ.
type Model struct {
	sim       *sim.Simulator
	renderer  *viz.Renderer
	interval  time.Duration
	frames    int
	fixedSize bool
	paused    bool
}

// NewModel builds the interactive show. frames <= 0 runs until quit; a fixed
// size ignores window resizes.
func NewModel(s *sim.Simulator, r *viz.Renderer, interval time.Duration, frames int, fixedSize bool) Model {
	return Model{
		sim:       s,
		renderer:  r,
		interval:  clampInterval(interval),
		frames:    frames,
		fixedSize: fixedSize,
	}
}

func (m Model) Init() tea.Cmd { return tick(m.interval) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		if !m.fixedSize {
			m.sim.Resize(msg.Width, msg.Height-1)
		}
		return m, nil
	case tickMsg:
		if !m.paused {
			m.sim.Step()
		}
		if m.frames > 0 && m.sim.Frame() >= m.frames {
			return m, tea.Quit
		}
		return m, tick(m.interval)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.paused = !m.paused
	case "b":
		m.sim.Burst()
	case "r":
		w, h := m.sim.Size()
		m.sim.Initialize(m.sim.Seed()+1, w, h)
	case "+", "=":
		m.interval = clampInterval(m.interval / 2)
	case "-", "_":
		m.interval = clampInterval(m.interval * 2)
	}
	return m, nil
}

func (m Model) Paused() bool            { return m.paused }
func (m Model) Interval() time.Duration { return m.interval }

func (m Model) View() string {
	w, h := m.sim.Size()
	var b strings.Builder
	b.WriteString(m.renderer.Grid(m.sim.Particles(), w, h))
	b.WriteString("\n")

	state := yellow.Render("fireworks")
	if m.paused {
		state = orange.Render("paused")
	}
	info := fmt.Sprintf(" frame %d  sparks %d  seed %d  %s ", m.sim.Frame(), m.sim.Len(), m.sim.Seed(), m.interval)
	b.WriteString(state + dim.Render(info+"· space pause · b burst · r restart · +/- speed · q quit"))
	return b.String()
}

func clampInterval(d time.Duration) time.Duration {
	if d < minInterval {
		return minInterval
	}
	if d > maxInterval {
		return maxInterval
	}
	return d
}

func RunInteractive(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
