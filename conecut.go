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

/*
Package conecut maximizes a linear objective over the integer points
of a Euclidean ball by outer approximation: the ball constraint
‖x‖ ≤ Γ is relaxed to the integer box [-Γ,Γ]ⁿ and handed to a
branch-and-cut solver, and every integer-feasible candidate the
search produces is checked against the ball. Candidates outside it
are cut off with the supporting hyperplane of the ball along their
own direction, ⟨N, x⟩ ≤ Γ·‖N‖, added to the model as a lazy
constraint. Since every cut excludes at least the candidate it was
derived from and the box contains finitely many integer points, the
search terminates with a solution satisfying ‖x‖ ≤ Γ within the
configured tolerance.

	refiner, _ := conecut.New([]float64{0.59, 0.22}, 50)

	result, _ := refiner.Solve(context.Background()) // you should check for errors

	fmt.Printf("x = %v\n", result.X)
	fmt.Printf("‖x‖ = %f after %d callbacks\n", result.Norm, result.Callbacks)

The heavy lifting is done by GLPK through the glpk subpackage; an
alternative solver can be plugged in via WithBackend.
*/
package conecut

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultTolerance is the acceptance slack applied to the ball radius
// when no tolerance option is given.
const DefaultTolerance = 1e-6

// Sentinel errors reported before the solver is ever invoked.
var (
	ErrEmptyObjective = errors.New("conecut: objective vector is empty")
	ErrBadRadius      = errors.New("conecut: radius must be positive and finite")
	ErrBadTolerance   = errors.New("conecut: tolerance must be positive")
)

// Refiner holds one problem instance: the objective vector, the ball
// radius and the acceptance tolerance. It is safe to reuse for
// repeated solves; per-solve state (counters, cut history) lives in
// the returned Result.
type Refiner struct {
	c        []float64
	radius   float64
	tol      float64
	relative bool
	backend  Backend
	logger   Logger

	verboseSolver bool
}

// New validates the problem instance maximize ⟨c, x⟩ subject to
// x ∈ Zⁿ, ‖x‖ ≤ radius, and returns a Refiner for it.
func New(c []float64, radius float64, opts ...Option) (*Refiner, error) {
	if len(c) == 0 {
		return nil, ErrEmptyObjective
	}
	if radius <= 0 || math.IsInf(radius, 0) || math.IsNaN(radius) {
		return nil, ErrBadRadius
	}

	r := &Refiner{
		c:      append([]float64(nil), c...),
		radius: radius,
		tol:    DefaultTolerance,
		logger: noopLogger{},
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("applying refiner option: %w", err)
		}
	}

	if r.backend == nil {
		r.backend = &glpkBackend{logger: r.logger, verbose: r.verboseSolver}
	}

	return r, nil
}

// Dimension returns the length of the objective vector.
func (r *Refiner) Dimension() int {
	return len(r.c)
}

// run collects the per-solve state: the callback invocation counter
// and the accumulated cuts.
type run struct {
	refiner   *Refiner
	callbacks int
	cuts      []Cut
}

// observe is the cut-generation callback. It is invoked by the
// backend on every integer-feasible candidate and either accepts it
// (no side effect) or rejects it by registering a supporting
// hyperplane of the ball as a new lazy constraint.
func (s *run) observe(cand Candidate) error {
	s.callbacks++

	x := cand.Values()
	if len(x) != len(s.refiner.c) {
		panic(fmt.Sprintf("conecut: candidate dimension %d does not match objective dimension %d", len(x), len(s.refiner.c)))
	}

	cut, violated := s.refiner.separate(x)
	if !violated {
		return nil
	}

	s.cuts = append(s.cuts, cut)
	s.refiner.logger.Print(fmt.Sprintf("cut %d: rejected candidate %v with norm %f", len(s.cuts), x, floats.Norm(x, 2)))

	return cand.Reject(cut)
}

// Solve runs the backend's branch-and-cut search with the
// cut-generation callback registered and returns the accepted
// solution together with the solve's diagnostics.
//
// If the context is cancelled mid-search and an integer-feasible
// incumbent exists, that incumbent is returned (Result.Optimal will
// be false) alongside the context's error; without an incumbent only
// the error is returned. Solver failures such as an infeasible model
// or an exceeded solver-side limit are propagated as errors, never as
// a fabricated solution.
func (r *Refiner) Solve(ctx context.Context) (*Result, error) {
	s := &run{refiner: r}

	outcome, err := r.backend.Optimize(ctx, r.c, r.radius, s.observe)
	if outcome == nil {
		if err == nil {
			err = errors.New("conecut: backend reported no outcome")
		}
		return nil, err
	}

	result := &Result{
		X:         outcome.X,
		Objective: outcome.Objective,
		Norm:      floats.Norm(outcome.X, 2),
		Callbacks: s.callbacks,
		Cuts:      s.cuts,
		Optimal:   outcome.Optimal,
	}

	return result, err
}

// limit is the effective acceptance bound on the candidate norm.
func (r *Refiner) limit() float64 {
	if r.relative {
		return r.radius * (1 + r.tol)
	}
	return r.radius + r.tol
}
