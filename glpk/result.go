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

package glpk

// #cgo LDFLAGS: -lglpk
// #include <glpk.h>
// #include <stdlib.h>
import "C"

/* Types */

type SolveResult struct {
	model  *Model
	status SolveStatus
}

type SolveStatus C.int

const (
	SolutionOptimal  = SolveStatus(C.GLP_OPT)
	SolutionFeasible = SolveStatus(C.GLP_FEAS)
)

type SolveError C.int

const (
	ErrBadBasis         = SolveError(C.GLP_EBADB)
	ErrSingularBasis    = SolveError(C.GLP_ESING)
	ErrIllConditioned   = SolveError(C.GLP_ECOND)
	ErrBadBounds        = SolveError(C.GLP_EBOUND)
	ErrSolverFailure    = SolveError(C.GLP_EFAIL)
	ErrIterationLimit   = SolveError(C.GLP_EITLIM)
	ErrTimeLimit        = SolveError(C.GLP_ETMLIM)
	ErrNoPrimalFeasible = SolveError(C.GLP_ENOPFS)
	ErrNoDualFeasible   = SolveError(C.GLP_ENODFS)
	ErrRootRequired     = SolveError(C.GLP_EROOT)
	ErrSearchTerminated = SolveError(C.GLP_ESTOP)
	ErrMIPGapReached    = SolveError(C.GLP_EMIPGAP)
)

// Error returns a string representation of the given error value.
func (e SolveError) Error() string {
	switch e {
	case ErrBadBasis:
		return "initial basis is invalid"
	case ErrSingularBasis:
		return "initial basis is exactly singular"
	case ErrIllConditioned:
		return "initial basis is ill-conditioned"
	case ErrBadBounds:
		return "a double-bounded variable has incorrect bounds"
	case ErrSolverFailure:
		return "solver failure"
	case ErrIterationLimit:
		return "simplex iteration limit exceeded"
	case ErrTimeLimit:
		return "time limit exceeded"
	case ErrNoPrimalFeasible:
		return "LP relaxation has no primal feasible solution"
	case ErrNoDualFeasible:
		return "LP relaxation has no dual feasible solution"
	case ErrRootRequired:
		return "optimal basis for the initial LP relaxation not provided"
	case ErrSearchTerminated:
		return "search terminated by application"
	case ErrMIPGapReached:
		return "relative MIP gap tolerance reached"
	default:
		return "unknown glpk error"
	}
}

// glpSolveError maps a glp_simplex/glp_intopt return code to a
// SolveError, or nil on success.
func glpSolveError(ret C.int) error {
	if ret == 0 {
		return nil
	}
	return SolveError(ret)
}

// Status reports whether the solution is proven optimal
// (SolutionOptimal) or merely integer-feasible (SolutionFeasible, as
// happens when the search is interrupted).
func (res *SolveResult) Status() SolveStatus {
	return res.status
}

// Value returns the computed value of the given variable for this
// optimization result.
func (res *SolveResult) Value(v *Variable) float64 {
	res.model.mu.RLock()
	defer res.model.mu.RUnlock()

	return float64(C.glp_mip_col_val(res.model.prob, C.int(v.index+1)))
}

// ObjectiveValue returns the value of the objective function for this
// optimization result. This value is only optimal if Status also
// returns SolutionOptimal.
func (res *SolveResult) ObjectiveValue() float64 {
	res.model.mu.RLock()
	defer res.model.mu.RUnlock()

	return float64(C.glp_mip_obj_val(res.model.prob))
}
