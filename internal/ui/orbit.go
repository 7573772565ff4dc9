// SPDX-License-Identifier: EPL-2.0

// Package ui holds the interactive terminal views of the ambisonic command.
package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Noxmore/ambisonic/bformat"
	"github.com/Noxmore/ambisonic/internal/config"
)

// Target is the source the orbit view steers. *bmixer.Handle satisfies it.
type Target interface {
	SetPosition(bformat.Direction)
	Stop()
	Done() <-chan struct{}
}

type keyMap struct {
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding
	Stop  key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.Stop, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var keys = keyMap{
	Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "turn left")),
	Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "turn right")),
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "raise")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "lower")),
	Stop:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "stop")),
	Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// finishedMsg reports that the target left the mix.
type finishedMsg struct{}

type orbitModel struct {
	target    Target
	label     string
	azimuth   float64
	elevation float64
	step      float64
	stopped   bool
	finished  bool
	help      help.Model
}

// NewOrbitModel returns a view that moves target around the listener with
// the arrow keys. label names the source in the header.
func NewOrbitModel(target Target, label string) tea.Model {
	m := &orbitModel{target: target, label: label, step: config.OrbitStep, help: help.New()}
	m.apply()
	return m
}

func (m *orbitModel) Init() tea.Cmd {
	done := m.target.Done()
	return func() tea.Msg {
		<-done
		return finishedMsg{}
	}
}

func (m *orbitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case finishedMsg:
		m.finished = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Stop):
			if !m.stopped {
				m.target.Stop()
				m.stopped = true
			}
			return m, nil
		case key.Matches(msg, keys.Left):
			m.azimuth = wrap(m.azimuth - m.step)
		case key.Matches(msg, keys.Right):
			m.azimuth = wrap(m.azimuth + m.step)
		case key.Matches(msg, keys.Up):
			m.elevation = min(m.elevation+m.step, 90)
		case key.Matches(msg, keys.Down):
			m.elevation = max(m.elevation-m.step, -90)
		default:
			return m, nil
		}
		m.apply()
	}

	return m, nil
}

func (m *orbitModel) apply() {
	m.target.SetPosition(bformat.Azimuth(m.azimuth, m.elevation))
}

// wrap keeps an azimuth in (-180, 180].
func wrap(deg float64) float64 {
	deg = math.Mod(deg, 360)
	switch {
	case deg > 180:
		deg -= 360
	case deg <= -180:
		deg += 360
	}
	return deg
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2E86AB"))
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	sourceStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F6AE2D"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

const radarSize = 9

func (m *orbitModel) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("ambisonic orbit"))
	s.WriteString("  ")
	s.WriteString(mutedStyle.Render(m.label))
	s.WriteString("\n\n")

	s.WriteString(boxStyle.Render(m.radar()))
	s.WriteString("\n")

	fmt.Fprintf(&s, "azimuth %+6.1f°  elevation %+5.1f°\n", m.azimuth, m.elevation)
	switch {
	case m.finished:
		s.WriteString(mutedStyle.Render("source finished"))
	case m.stopped:
		s.WriteString(mutedStyle.Render("stopped"))
	default:
		s.WriteString(m.help.View(keys))
	}
	s.WriteString("\n")
	return s.String()
}

// radar draws the listener at the centre of a top-down grid with front at
// the top.
func (m *orbitModel) radar() string {
	d := bformat.Azimuth(m.azimuth, 0)
	c := radarSize / 2
	col := c + int(math.Round(float64(d[0])*float64(c)))
	row := c - int(math.Round(float64(d[1])*float64(c)))

	var s strings.Builder
	for r := range radarSize {
		for x := range radarSize {
			switch {
			case r == row && x == col:
				s.WriteString(sourceStyle.Render("●"))
			case r == c && x == c:
				s.WriteString("+")
			default:
				s.WriteString(mutedStyle.Render("·"))
			}
			if x < radarSize-1 {
				s.WriteString(" ")
			}
		}
		if r < radarSize-1 {
			s.WriteString("\n")
		}
	}
	return s.String()
}
