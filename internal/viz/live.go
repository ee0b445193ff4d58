// Package viz renders the gas live in the terminal.
package viz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/julianBogado1/disksim/internal/core"
	"github.com/julianBogado1/disksim/internal/geom"
	"github.com/julianBogado1/disksim/internal/metrics"
	"github.com/julianBogado1/disksim/internal/world"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 300
	eventsPerFrame  = 32
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).Width(40)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives the engine from the bubbletea event loop, a batch of
// collision events per frame.
type Model struct {
	engine   *core.Engine
	segments []geom.Segment

	canvas        *Canvas
	particles     []core.Particle
	energyHistory []float64
	running       bool
	failed        error
	fps           int
}

func NewModel(engine *core.Engine, segments []geom.Segment, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		engine:        engine,
		segments:      segments,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		particles:     engine.Particles(),
		energyHistory: make([]float64, 0, historyCapacity),
		running:       true,
		fps:           fps,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
	case TickMsg:
		if m.running && m.failed == nil {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step drains a bounded batch of events so one slow frame cannot stall
// the UI.
func (m *Model) step() {
	for i := 0; i < eventsPerFrame; i++ {
		snap, err := m.engine.Advance(context.Background())
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				m.failed = err
				m.running = false
			}
			return
		}
		m.particles = snap.Particles
	}
	m.energyHistory = append(m.energyHistory, metrics.KineticEnergy(m.particles))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m Model) View() string {
	m.canvas.Clear()
	m.canvas.DrawWalls(m.segments)
	m.canvas.DrawParticles(m.particles)

	var s strings.Builder
	s.WriteString(headerStyle.Render("HARD-DISK GAS") + "\n")

	status := "RUNNING"
	if m.failed != nil {
		status = "FAILED: " + m.failed.Error()
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(4),
			asciigraph.Width(28),
			asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	left, right := 0, 0
	for i := range m.particles {
		if side(m.particles[i]) == 0 {
			left++
		} else {
			right++
		}
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.4f", m.engine.Now())) + "\n")
	s.WriteString(labelStyle.Render("Events") + valueStyle.Render(fmt.Sprintf("%d", m.engine.Step())) + "\n")
	s.WriteString(labelStyle.Render("Queue") + valueStyle.Render(fmt.Sprintf("%d", m.engine.QueueLen())) + "\n")
	s.WriteString(labelStyle.Render("Left") + valueStyle.Render(fmt.Sprintf("%d", left)) + "\n")
	s.WriteString(labelStyle.Render("Right") + valueStyle.Render(fmt.Sprintf("%d", right)) + "\n")

	s.WriteString(helpStyle.Render("\nSP:Pause Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(s.String()))
}

func side(p core.Particle) int {
	if p.Position.X < world.Side {
		return 0
	}
	return 1
}
