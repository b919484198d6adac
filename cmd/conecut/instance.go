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
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/costela/conecut"
)

// instance is one problem instance, settable via flags or a YAML
// file:
//
//	objective: [0.59, 0.22]
//	radius: 50
//	tolerance: 1e-6
//	relative: false
type instance struct {
	Objective []float64 `yaml:"objective"`
	Radius    float64   `yaml:"radius"`
	Tolerance float64   `yaml:"tolerance"`
	Relative  bool      `yaml:"relative"`
}

// loadInstance assembles the instance from -instance or from the
// individual flags. Value validation is left to the library.
func loadInstance() (instance, error) {
	if *instanceFlag != "" {
		return loadInstanceFile(*instanceFlag)
	}

	objective, err := parseObjective(*objectiveFlag)
	if err != nil {
		return instance{}, err
	}

	return instance{
		Objective: objective,
		Radius:    *radiusFlag,
		Tolerance: *toleranceFlag,
		Relative:  *relativeFlag,
	}, nil
}

func loadInstanceFile(path string) (instance, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return instance{}, fmt.Errorf("reading instance: %w", err)
	}

	inst := instance{Tolerance: conecut.DefaultTolerance}
	if err := yaml.Unmarshal(raw, &inst); err != nil {
		return instance{}, fmt.Errorf("parsing instance %s: %w", path, err)
	}

	return inst, nil
}

func parseObjective(raw string) ([]float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("no objective given; use -objective or -instance")
	}

	parts := strings.Split(raw, ",")
	objective := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("objective coefficient %d: %w", i, err)
		}
		objective[i] = v
	}

	return objective, nil
}
