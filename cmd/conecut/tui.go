/*
Copyright © 2015-2022 Leo Antunes <leo@costela.net>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/

package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/floats"

	"github.com/costela/conecut"
)

// The plot view steps through the cut history of a 2D solve: ← and →
// replay the cuts one by one, showing how the box relaxation shrinks
// towards the ball.

const (
	plotCols = 61
	plotRows = 31
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	canvasStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	solutionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	rejectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	cutLineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	ringStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	excludedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

type plotKeyMap struct {
	Prev key.Binding
	Next key.Binding
	Quit key.Binding
}

func (k plotKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Quit}
}

func (k plotKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next, k.Quit}}
}

var plotKeys = plotKeyMap{
	Prev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous cut"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next cut"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type plotModel struct {
	inst   instance
	result *conecut.Result
	step   int // number of cuts currently shown
	keys   plotKeyMap
	help   help.Model
}

func runPlot(inst instance, result *conecut.Result) error {
	m := plotModel{
		inst:   inst,
		result: result,
		step:   len(result.Cuts),
		keys:   plotKeys,
		help:   help.New(),
	}

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m plotModel) Init() tea.Cmd {
	return nil
}

func (m plotModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Prev):
			if m.step > 0 {
				m.step--
			}
		case key.Matches(msg, m.keys.Next):
			if m.step < len(m.result.Cuts) {
				m.step++
			}
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m plotModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("conecut  ‖x‖ ≤ %g over the integer box", m.inst.Radius)))
	b.WriteString("\n")
	b.WriteString(canvasStyle.Render(m.canvas()))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m plotModel) status() string {
	if m.step == 0 {
		return fmt.Sprintf("box relaxation, no cuts yet (of %d)", len(m.result.Cuts))
	}

	cut := m.result.Cuts[m.step-1]
	return fmt.Sprintf(
		"cut %d/%d: ⟨(%g, %g), x⟩ ≤ %.2f — rejected candidate with norm %.2f",
		m.step, len(m.result.Cuts),
		cut.Coefs[0], cut.Coefs[1], cut.Upper,
		floats.Norm(cut.Coefs, 2),
	)
}

// canvas rasterizes the box with the ball boundary, the hyperplanes
// and rejected candidates of the first step cuts, and the final
// solution.
func (m plotModel) canvas() string {
	radius := m.inst.Radius
	span := 2 * radius * 1.05
	sx := span / (plotCols - 1)
	sy := span / (plotRows - 1)
	band := math.Max(sx, sy) * 0.6

	active := m.result.Cuts[:m.step]

	var rows []string
	for r := 0; r < plotRows; r++ {
		var row strings.Builder
		for c := 0; c < plotCols; c++ {
			p := []float64{
				-span/2 + float64(c)*sx,
				span/2 - float64(r)*sy,
			}
			row.WriteString(m.cell(p, active, sx, sy, band))
		}
		rows = append(rows, row.String())
	}

	return strings.Join(rows, "\n")
}

func (m plotModel) cell(p []float64, active []conecut.Cut, sx, sy, band float64) string {
	if math.Abs(p[0]-m.result.X[0]) <= sx/2 && math.Abs(p[1]-m.result.X[1]) <= sy/2 {
		return solutionStyle.Render("◉")
	}

	for _, cut := range active {
		if math.Abs(p[0]-cut.Coefs[0]) <= sx/2 && math.Abs(p[1]-cut.Coefs[1]) <= sy/2 {
			return rejectedStyle.Render("×")
		}
	}

	for _, cut := range active {
		normal := floats.Norm(cut.Coefs, 2)
		if normal == 0 {
			continue
		}
		if math.Abs(floats.Dot(cut.Coefs, p)-cut.Upper)/normal <= band {
			return cutLineStyle.Render("╱")
		}
	}

	if math.Abs(floats.Norm(p, 2)-m.inst.Radius) <= band {
		return ringStyle.Render("·")
	}

	for _, cut := range active {
		if cut.Violates(p) {
			return excludedStyle.Render("░")
		}
	}

	return " "
}
