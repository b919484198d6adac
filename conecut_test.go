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
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

const delta = 0.0000001 // acceptable numerical deviation for test results

// enumBackend is a deliberately dumb stand-in for a real MIP solver:
// it scans every integer point of the box, picks the best one that
// satisfies all cuts added so far, and offers it to the callback.
// Rejection restarts the scan with the enlarged cut set. Scan order
// is fixed, so results are deterministic.
type enumBackend struct {
	maxRounds int
	rounds    int
}

type enumCandidate struct {
	x        []float64
	cuts     *[]Cut
	rejected bool
}

func (c *enumCandidate) Values() []float64 {
	return append([]float64(nil), c.x...)
}

func (c *enumCandidate) Reject(cut Cut) error {
	*c.cuts = append(*c.cuts, cut)
	c.rejected = true
	return nil
}

func (b *enumBackend) Optimize(ctx context.Context, c []float64, radius float64, cb func(Candidate) error) (*Outcome, error) {
	var cuts []Cut

	maxRounds := b.maxRounds
	if maxRounds == 0 {
		maxRounds = 10000
	}

	for b.rounds = 0; b.rounds < maxRounds; b.rounds++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		best := bestLatticePoint(c, radius, func(p []float64) bool {
			for _, cut := range cuts {
				if cut.Violates(p) {
					return false
				}
			}
			return true
		})
		if best == nil {
			return nil, errors.New("no feasible point left")
		}

		cand := &enumCandidate{x: best, cuts: &cuts}
		if err := cb(cand); err != nil {
			return nil, err
		}
		if !cand.rejected {
			return &Outcome{
				X:         best,
				Objective: floats.Dot(c, best),
				Optimal:   true,
			}, nil
		}
	}

	return nil, errors.New("round limit exceeded")
}

// bestLatticePoint scans ([-radius,radius] ∩ Z)ⁿ in a fixed order and
// returns the admissible point maximizing ⟨c, p⟩, or nil.
func bestLatticePoint(c []float64, radius float64, admissible func([]float64) bool) []float64 {
	bound := int(math.Floor(radius))
	n := len(c)

	point := make([]int, n)
	for i := range point {
		point[i] = -bound
	}

	var best []float64
	bestObj := math.Inf(-1)

	for {
		p := make([]float64, n)
		for i, v := range point {
			p[i] = float64(v)
		}
		if admissible(p) {
			if obj := floats.Dot(c, p); obj > bestObj {
				best = p
				bestObj = obj
			}
		}

		i := 0
		for ; i < n; i++ {
			point[i]++
			if point[i] <= bound {
				break
			}
			point[i] = -bound
		}
		if i == n {
			return best
		}
	}
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil, 10)
	assert.ErrorIs(t, err, ErrEmptyObjective)

	_, err = New([]float64{}, 10)
	assert.ErrorIs(t, err, ErrEmptyObjective)

	for _, radius := range []float64{0, -1, math.Inf(1), math.NaN()} {
		_, err = New([]float64{1}, radius)
		assert.ErrorIs(t, err, ErrBadRadius)
	}

	_, err = New([]float64{1}, 10, WithTolerance(0))
	assert.ErrorIs(t, err, ErrBadTolerance)

	_, err = New([]float64{1}, 10, WithRelativeTolerance(-1e-9))
	assert.ErrorIs(t, err, ErrBadTolerance)
}

func TestScenario2D(t *testing.T) {
	c := []float64{0.59, 0.22}
	radius := 50.0

	refiner, err := New(c, radius, WithBackend(&enumBackend{}))
	require.NoError(t, err)

	res, err := refiner.Solve(context.Background())
	require.NoError(t, err)

	assert.True(t, res.Optimal)
	assert.LessOrEqual(t, res.Norm, radius+DefaultTolerance)
	assert.GreaterOrEqual(t, res.Callbacks, 1)
	assert.NotEmpty(t, res.Cuts, "box corner lies outside the ball, at least one cut is needed")

	for _, x := range res.X {
		assert.Equal(t, math.Round(x), x, "solution must be integral")
	}

	// the accepted solution must be the true optimum over the ball's
	// lattice points
	wantObj := floats.Dot(c, bestLatticePoint(c, radius, func(p []float64) bool {
		return floats.Norm(p, 2) <= radius+DefaultTolerance
	}))
	assert.InDelta(t, wantObj, res.Objective, delta)
	assert.InDelta(t, res.Objective, floats.Dot(c, res.X), delta)
}

func TestFastPathNoCuts(t *testing.T) {
	// in one dimension the box equals the ball, so the very first
	// candidate is already inside it
	refiner, err := New([]float64{2}, 7, WithBackend(&enumBackend{}))
	require.NoError(t, err)

	res, err := refiner.Solve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []float64{7}, res.X)
	assert.InDelta(t, 14, res.Objective, delta)
	assert.Equal(t, 1, res.Callbacks)
	assert.Empty(t, res.Cuts)
}

func TestBoundaryCandidateAccepted(t *testing.T) {
	// (3,4) sits exactly on the ball of radius 5 and is optimal for
	// the objective (3,4); being on the boundary it must be accepted,
	// not cut off
	refiner, err := New([]float64{3, 4}, 5, WithBackend(&enumBackend{}))
	require.NoError(t, err)

	res, err := refiner.Solve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []float64{3, 4}, res.X)
	assert.Equal(t, 5.0, res.Norm)
	for _, cut := range res.Cuts {
		assert.NotEqual(t, []float64{3, 4}, cut.Coefs)
	}
}

func TestCutsNeverExcludeBallPoints(t *testing.T) {
	c := []float64{1, 1}
	radius := 8.0

	refiner, err := New(c, radius, WithBackend(&enumBackend{}))
	require.NoError(t, err)

	res, err := refiner.Solve(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, res.Cuts)

	for _, cut := range res.Cuts {
		// every cut excludes the candidate it was derived from...
		assert.True(t, cut.Violates(cut.Coefs))

		// ...and no lattice point of the ball
		for x := -8; x <= 8; x++ {
			for y := -8; y <= 8; y++ {
				p := []float64{float64(x), float64(y)}
				if floats.Norm(p, 2) <= radius {
					assert.False(t, cut.Violates(p), "cut %v excludes ball point %v", cut, p)
				}
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	c := []float64{0.59, 0.22}

	solveOnce := func() *Result {
		refiner, err := New(c, 20, WithBackend(&enumBackend{}))
		require.NoError(t, err)

		res, err := refiner.Solve(context.Background())
		require.NoError(t, err)
		return res
	}

	first := solveOnce()
	second := solveOnce()

	assert.Empty(t, cmp.Diff(first, second))
}

func TestRelativeTolerance(t *testing.T) {
	refiner, err := New([]float64{1, 1}, 1000, WithRelativeTolerance(1e-9))
	require.NoError(t, err)

	assert.InDelta(t, 1000*(1+1e-9), refiner.limit(), delta)

	refiner, err = New([]float64{1, 1}, 1000, WithTolerance(1e-3))
	require.NoError(t, err)

	assert.InDelta(t, 1000.001, refiner.limit(), delta)
}

// wrongDimBackend hands the callback a candidate of the wrong
// dimension, which is an internal-consistency fault.
type wrongDimBackend struct{}

func (wrongDimBackend) Optimize(ctx context.Context, c []float64, radius float64, cb func(Candidate) error) (*Outcome, error) {
	err := cb(&enumCandidate{x: make([]float64, len(c)+1), cuts: new([]Cut)})
	return nil, err
}

func TestMalformedCandidatePanics(t *testing.T) {
	refiner, err := New([]float64{1, 2}, 5, WithBackend(wrongDimBackend{}))
	require.NoError(t, err)

	assert.Panics(t, func() {
		_, _ = refiner.Solve(context.Background())
	})
}

func TestBackendErrorPropagation(t *testing.T) {
	refiner, err := New([]float64{1}, 5, WithBackend(&enumBackend{maxRounds: 0}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := refiner.Solve(ctx)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRefinerReuse(t *testing.T) {
	refiner, err := New([]float64{0.59, 0.22}, 12, WithBackend(&enumBackend{}))
	require.NoError(t, err)

	first, err := refiner.Solve(context.Background())
	require.NoError(t, err)

	second, err := refiner.Solve(context.Background())
	require.NoError(t, err)

	// counters and cut history are per solve, not accumulated on the
	// refiner
	assert.Equal(t, first.Callbacks, second.Callbacks)
	assert.Equal(t, len(first.Cuts), len(second.Cuts))
	assert.Equal(t, first.X, second.X)
}
