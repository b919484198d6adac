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

package conecut

import (
	"context"
	"fmt"
	"math"

	"github.com/costela/conecut/glpk"
)

// Candidate is one integer-feasible candidate produced by the
// backend's search: a read-only snapshot of its values plus a
// write-only handle for cutting it off. It is only valid for the
// duration of the callback invocation.
type Candidate interface {
	// Values returns the candidate point.
	Values() []float64
	// Reject adds the cut to the model for the remainder of the
	// search, removing the candidate from the feasible set.
	Reject(cut Cut) error
}

// Outcome is the terminal state of a backend search.
type Outcome struct {
	X         []float64
	Objective float64
	Optimal   bool
}

// Backend is the minimal solver surface the refiner drives: build the
// box-relaxed model maximize ⟨c, x⟩ over x ∈ ([-radius, radius] ∩ Z)ⁿ,
// run branch-and-cut with cb invoked on every integer-feasible
// candidate, and report the accepted solution.
//
// A backend must treat cuts added through Candidate.Reject as
// permanent from the point of addition onward; it is free not to
// re-check parts of the search tree pruned before the cut existed.
type Backend interface {
	Optimize(ctx context.Context, c []float64, radius float64, cb func(Candidate) error) (*Outcome, error)
}

// glpkBackend is the default Backend, driving GLPK's branch-and-cut
// through the glpk subpackage.
type glpkBackend struct {
	logger  Logger
	verbose bool
}

func (b *glpkBackend) Optimize(ctx context.Context, c []float64, radius float64, cb func(Candidate) error) (*Outcome, error) {
	opts := []glpk.Option{glpk.WithLogger(b.logger)}
	if b.verbose {
		opts = append(opts, glpk.WithVerbose())
	}

	model, err := glpk.NewModel("conecut", glpk.Maximize, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating model: %w", err)
	}

	vars := make([]*glpk.Variable, len(c))
	for i, coef := range c {
		v, err := model.AddDefinedVariable(fmt.Sprintf("x%d", i), glpk.IntegerVariable, coef, -radius, radius)
		if err != nil {
			return nil, fmt.Errorf("adding variable %d: %w", i, err)
		}
		vars[i] = v
	}

	model.SetIncumbentCallback(func(inc *glpk.Incumbent) error {
		return cb(&glpkCandidate{inc: inc, vars: vars})
	})

	res, err := model.SolveWithContext(ctx)
	if res == nil {
		return nil, err
	}

	outcome := &Outcome{
		X:         make([]float64, len(vars)),
		Objective: res.ObjectiveValue(),
		Optimal:   res.Status() == glpk.SolutionOptimal,
	}
	for i, v := range vars {
		// integral by construction; rounding only strips solver noise
		outcome.X[i] = math.Round(res.Value(v))
	}

	// err may still carry a context cancellation here, in which case
	// outcome holds the best incumbent found before the abort
	return outcome, err
}

type glpkCandidate struct {
	inc  *glpk.Incumbent
	vars []*glpk.Variable
}

func (gc *glpkCandidate) Values() []float64 {
	x := make([]float64, len(gc.vars))
	for i, v := range gc.vars {
		x[i] = math.Round(gc.inc.Value(v))
	}
	return x
}

func (gc *glpkCandidate) Reject(cut Cut) error {
	return gc.inc.AddRow(gc.vars, cut.Coefs, cut.Upper)
}
