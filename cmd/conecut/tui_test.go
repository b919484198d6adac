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
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/costela/conecut"
)

func newTestPlotModel() plotModel {
	return plotModel{
		inst: instance{Objective: []float64{3, 4}, Radius: 5},
		result: &conecut.Result{
			X:         []float64{3, 4},
			Norm:      5,
			Objective: 25,
			Callbacks: 2,
			Cuts:      []conecut.Cut{{Coefs: []float64{5, 5}, Upper: 35.36}},
		},
		step: 1,
		keys: plotKeys,
	}
}

func TestPlotStepNavigation(t *testing.T) {
	m := newTestPlotModel()

	assert.Contains(t, m.status(), "cut 1/1")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = updated.(plotModel)
	assert.Equal(t, 0, m.step)
	assert.Contains(t, m.status(), "no cuts yet")

	// stepping below zero is a no-op
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = updated.(plotModel)
	assert.Equal(t, 0, m.step)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(plotModel)
	assert.Equal(t, 1, m.step)

	// and so is stepping past the last cut
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(plotModel)
	assert.Equal(t, 1, m.step)
}

func TestPlotCanvasMarksPoints(t *testing.T) {
	m := newTestPlotModel()

	canvas := m.canvas()
	assert.Contains(t, canvas, "◉", "final solution is drawn")
	assert.Contains(t, canvas, "×", "rejected candidate is drawn")

	m.step = 0
	canvas = m.canvas()
	assert.NotContains(t, canvas, "×", "no candidates before the first cut")
}
