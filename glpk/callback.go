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
// extern void treeCallback(glp_tree *tree, void *info);
// extern int termCallback(void *info, char *s);
import "C"

import (
	"context"
	"fmt"
	"math"
	"unsafe"
)

// candidates are considered integral when within this distance of the
// nearest integer; matches the default of glp_iocp.tol_int closely
// enough for our purposes while staying strict.
const integralityTol = 1e-7

// IncumbentFunc is invoked from within the branch-and-cut search
// whenever an integer-feasible candidate is found. The callback may
// inspect the candidate through the Incumbent value and reject it by
// adding one or more rows via Incumbent.AddRow; if it adds no row,
// the candidate is accepted as the new incumbent.
//
// The callback runs on the solver's search thread and must return
// promptly. Returning a non-nil error terminates the search and is
// surfaced by Solve. The Incumbent value is only valid for the
// duration of the call.
type IncumbentFunc func(inc *Incumbent) error

// SetIncumbentCallback registers cb to be invoked on every
// integer-feasible candidate of subsequent solves. Passing nil
// removes the callback.
func (model *Model) SetIncumbentCallback(cb IncumbentFunc) {
	model.mu.Lock()
	defer model.mu.Unlock()

	model.incumbentCB = cb
}

// solveState carries everything the tree callback needs across the
// cgo boundary for the duration of one solve.
type solveState struct {
	model *Model
	ctx   context.Context
	cb    IncumbentFunc
	cbErr error
}

// Incumbent is a read-only view of an integer-feasible candidate,
// plus a write-only handle for adding rows that cut it off. It is
// handed to the IncumbentFunc and must not be retained.
//
// Note that Incumbent deliberately bypasses the model's lock: it is
// only ever used from the callback, which runs while the solving
// goroutine already holds it.
type Incumbent struct {
	model *Model
	tree  *C.glp_tree
	prob  *C.glp_prob
}

// Value returns the candidate's value for the given variable.
func (inc *Incumbent) Value(v *Variable) float64 {
	return float64(C.glp_get_col_prim(inc.prob, C.int(v.index+1)))
}

// ObjectiveValue returns the candidate's objective function value.
func (inc *Incumbent) ObjectiveValue() float64 {
	return float64(C.glp_get_obj_val(inc.prob))
}

// AddRow adds the inequality ⟨coefs, vars⟩ ≤ upper to the model,
// effective from this point of the search onward. The row is kept for
// the remainder of the search and also remains in the model
// afterwards; already-explored parts of the tree are not revisited,
// but any candidate accepted later will satisfy it.
func (inc *Incumbent) AddRow(vars []*Variable, coefs []float64, upper float64) error {
	if len(vars) != len(coefs) {
		return fmt.Errorf("inconsistent number of variables and coefficients: %d != %d", len(vars), len(coefs))
	}

	// glpk indices start at 1; index 0 is reserved
	ind := make([]C.int, len(vars)+1)
	val := make([]C.double, len(vars)+1)
	for i, v := range vars {
		ind[i+1] = C.int(v.index + 1)
		val[i+1] = C.double(coefs[i])
	}

	row := C.glp_add_rows(inc.prob, 1)
	C.glp_set_row_bnds(inc.prob, row, C.GLP_UP, C.double(0), C.double(upper))
	C.glp_set_mat_row(inc.prob, row, C.int(len(vars)), &ind[0], &val[0])

	// record the row's coefficients in the model's triplets as well,
	// so they survive the matrix reload of a subsequent solve. Safe
	// without the lock: the solving goroutine already holds it.
	for i, v := range vars {
		inc.model.ia = append(inc.model.ia, row)
		inc.model.ja = append(inc.model.ja, C.int(v.index+1))
		inc.model.ar = append(inc.model.ar, C.double(coefs[i]))
	}

	return nil
}

// integral reports whether every integer column of prob currently
// sits on an integer value.
func (state *solveState) integral(prob *C.glp_prob) bool {
	for _, v := range state.model.vars {
		if C.glp_get_col_kind(prob, C.int(v.index+1)) == C.GLP_CV {
			continue
		}
		value := float64(C.glp_get_col_prim(prob, C.int(v.index+1)))
		if math.Abs(value-math.Round(value)) > integralityTol {
			return false
		}
	}
	return true
}

//export treeCallback
func treeCallback(tree *C.glp_tree, info unsafe.Pointer) {
	state, ok := loadRef(info).(*solveState)
	if !ok {
		return
	}

	if state.ctx != nil && state.ctx.Err() != nil {
		C.glp_ios_terminate(tree)
		return
	}

	// GLP_IROWGEN is the only hook at which glpk lets us add rows to
	// the problem object; it fires whenever a node's relaxation has
	// been solved to optimality, so an integral relaxation here is
	// exactly an integer-feasible candidate about to become the
	// incumbent.
	if C.glp_ios_reason(tree) != C.GLP_IROWGEN || state.cb == nil {
		return
	}

	prob := C.glp_ios_get_prob(tree)
	if !state.integral(prob) {
		return
	}

	inc := &Incumbent{model: state.model, tree: tree, prob: prob}
	if err := state.cb(inc); err != nil {
		state.cbErr = err
		C.glp_ios_terminate(tree)
	}
}

//export termCallback
func termCallback(info unsafe.Pointer, msg *C.char) C.int {
	state, ok := loadRef(info).(*solveState)
	if !ok {
		return 1
	}

	state.model.logger.Print(C.GoString(msg))

	// non-zero return suppresses glpk's own terminal output
	return 1
}
