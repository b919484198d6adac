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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costela/conecut"
)

func TestParseObjective(t *testing.T) {
	objective, err := parseObjective("0.59, 0.22")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.59, 0.22}, objective)

	_, err = parseObjective("")
	assert.Error(t, err)

	_, err = parseObjective("1,foo")
	assert.Error(t, err)
}

func TestLoadInstanceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instance.yaml")
	err := os.WriteFile(path, []byte("objective: [0.59, 0.22]\nradius: 50\n"), 0o600)
	require.NoError(t, err)

	inst, err := loadInstanceFile(path)
	require.NoError(t, err)

	assert.Equal(t, []float64{0.59, 0.22}, inst.Objective)
	assert.Equal(t, 50.0, inst.Radius)
	assert.Equal(t, conecut.DefaultTolerance, inst.Tolerance, "tolerance defaults when omitted")
	assert.False(t, inst.Relative)

	_, err = loadInstanceFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
