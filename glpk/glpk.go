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
Package glpk wraps the GNU Linear Programming Kit for modelling and
solving (mixed-)integer linear programming problems.

Besides the usual model-building and solving surface, the package
exposes GLPK's branch-and-cut tree callback in the form of an
incumbent callback: a function invoked whenever the search finds an
integer-feasible candidate, which may inspect the candidate's values
and reject it by adding a new "lazy" inequality to the model. Rows
added this way stay active for the remainder of the search.

A minimal integer model looks like this:

	model, _ := glpk.NewModel("example", glpk.Maximize)
	x, _ := model.AddDefinedVariable("x", glpk.IntegerVariable, 1, 0, 10)
	y, _ := model.AddDefinedVariable("y", glpk.IntegerVariable, 2, 0, 10)

	model.AddConstraint(math.Inf(-1), 12, []*glpk.Variable{x, y}, []float64{1, 1})

	result, _ := model.Solve() // you should check for errors

	fmt.Printf("x = %f, y = %f\n", result.Value(x), result.Value(y))
*/
package glpk

// #cgo LDFLAGS: -lglpk
// #include <glpk.h>
// #include <stdlib.h>
//
// extern void treeCallback(glp_tree *tree, void *info);
// extern int termCallback(void *info, char *s);
//
// static void set_tree_callback(glp_iocp *parm, void *info) {
//     parm->cb_func = treeCallback;
//     parm->cb_info = info;
// }
//
// static void set_term_hook(void *info) {
//     glp_term_hook((int (*)(void *, const char *))termCallback, info);
// }
//
// static void clear_term_hook(void) {
//     glp_term_hook(NULL, NULL);
// }
import "C"

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"
	"unsafe"
)

/* Types */

type Model struct {
	mu      sync.RWMutex
	prob    *C.glp_prob
	vars    []*Variable
	ia      []C.int
	ja      []C.int
	ar      []C.double
	logger  Logger
	verbose bool

	incumbentCB IncumbentFunc
}

type direction C.int

const (
	Minimize = direction(C.GLP_MIN)
	Maximize = direction(C.GLP_MAX)
)

// Errors derived from solver statuses rather than glp_* return codes.
var (
	ErrModelInfeasible = errors.New("glpk: model is infeasible")
	ErrModelUnbounded  = errors.New("glpk: model is unbounded")
	ErrNoFeasibleFound = errors.New("glpk: no integer feasible solution exists")
)

/* Model related functions */

// NewModel instantiates a new (mixed-integer) linear programming
// model, providing a name (purely informational) and an optimization
// direction (either Minimize or Maximize).
func NewModel(name string, dir direction, opts ...Option) (*Model, error) {
	prob := C.glp_create_prob()

	c_name := C.CString(name)
	defer C.free(unsafe.Pointer(c_name))

	C.glp_set_prob_name(prob, c_name)
	C.glp_set_obj_dir(prob, C.int(dir))

	model := &Model{
		prob:   prob,
		logger: noopLogger{},
	}

	// glpk indices start at 1; index 0 is reserved
	model.ia = append(model.ia, 0)
	model.ja = append(model.ja, 0)
	model.ar = append(model.ar, 0.0)

	for _, opt := range opts {
		if err := opt(model); err != nil {
			return nil, fmt.Errorf("applying model option: %w", err)
		}
	}

	// plug the underlying C library's destructors to the instance of Model,
	// otherwise we get a memory-leak of the underlying struct
	runtime.SetFinalizer(model, finalizeModel)

	return model, nil
}

// finalizeModel is the function registered to be called upon garbage-
// collection of the model value
func finalizeModel(model *Model) {
	C.glp_delete_prob(model.prob)
}

// Clone returns a copy of the model. The incumbent callback, if any,
// is carried over.
func (model *Model) Clone() *Model {
	model.mu.RLock()
	defer model.mu.RUnlock()

	newProb := C.glp_create_prob()
	C.glp_copy_prob(newProb, model.prob, C.GLP_ON)

	newModel := &Model{
		prob:        newProb,
		logger:      model.logger,
		verbose:     model.verbose,
		incumbentCB: model.incumbentCB,
		ia:          append([]C.int(nil), model.ia...),
		ja:          append([]C.int(nil), model.ja...),
		ar:          append([]C.double(nil), model.ar...),
	}

	newVars := make([]*Variable, len(model.vars))
	for i, v := range model.vars {
		newVars[i] = &Variable{
			model: newModel,
			index: v.index,
		}
	}
	newModel.vars = newVars

	runtime.SetFinalizer(newModel, finalizeModel)

	return newModel
}

// Name returns the name provided upon instantiation of a model
func (model *Model) Name() string {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return C.GoString(C.glp_get_prob_name(model.prob))
}

// SetDirection changes the direction of the model's optimization
func (model *Model) SetDirection(dir direction) {
	model.mu.Lock()
	defer model.mu.Unlock()

	C.glp_set_obj_dir(model.prob, C.int(dir))
}

// Direction returns the model's current optimization direction
func (model *Model) Direction() direction {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return direction(C.glp_get_obj_dir(model.prob))
}

/* Column-related functions */

// VariableCount returns the number of variables (columns) currently
// in the model.
func (model *Model) VariableCount() int {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return int(C.glp_get_num_cols(model.prob))
}

// Variables returns a new slice with the model's variables. Changes
// to the slice will not be reflected in the model.
func (model *Model) Variables() []*Variable {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return append([]*Variable(nil), model.vars...)
}

// AddVariable adds a variable to the model and returns a reference to
// it. A freshly instantiated variable has the default type of
// ContinuousVariable, no bounds and an objective coefficient of 1.
//
// A variable is bound to its model. Attempting to use a variable
// created in one model for fetching solutions from a different model
// results in undefined behaviour.
//
// Empty names will automatically be replaced by a unique name.
func (model *Model) AddVariable(name string) (v *Variable, err error) {
	return model.AddDefinedVariable(name, ContinuousVariable, 1, math.Inf(-1), math.Inf(1))
}

// AddBinaryVariable is a convenience function for adding a single
// named binary variable to the model, with a default coefficient of 1.
func (model *Model) AddBinaryVariable(name string) (v *Variable, err error) {
	return model.AddDefinedVariable(name, BinaryVariable, 1, 0, 1)
}

// AddIntegerVariable is a convenience function for adding a single
// named unbounded integer variable to the model, with a default
// objective coefficient of 1.
func (model *Model) AddIntegerVariable(name string) (v *Variable, err error) {
	return model.AddDefinedVariable(name, IntegerVariable, 1, math.Inf(-1), math.Inf(1))
}

// AddDefinedVariable adds a variable to the model with its attributes
// passed as arguments.
// If varType is BinaryVariable, the bounds are ignored.
func (model *Model) AddDefinedVariable(name string, varType VariableType, coefficient, lowerBound, upperBound float64) (v *Variable, err error) {
	size := model.VariableCount()

	func() {
		model.mu.Lock()
		defer model.mu.Unlock()

		v = new(Variable)
		v.index = size
		v.model = model
		model.vars = append(model.vars, v)

		if ret := C.glp_add_cols(model.prob, 1); ret < 1 {
			err = fmt.Errorf("could not add column to model")
			return
		}

		if name == "" {
			name = fmt.Sprintf("V%d", size)
		}

		c_name := C.CString(name)
		defer C.free(unsafe.Pointer(c_name))

		C.glp_set_col_name(model.prob, C.int(v.index+1), c_name)
	}()
	if err != nil {
		return nil, err
	}

	v.SetType(varType)
	v.SetObjectiveCoefficient(coefficient)
	if varType != BinaryVariable {
		v.SetBounds(lowerBound, upperBound)
	}

	return
}

// SetObjectiveFunction defines the objective function for the model
// as a slice of coefficients and a slice of its respective variables.
func (model *Model) SetObjectiveFunction(coefs []float64, vars []*Variable) error {
	if len(vars) != len(coefs) {
		return fmt.Errorf("inconsistent number of variables and coefficients: %d != %d", len(vars), len(coefs))
	}

	for i, v := range vars {
		v.SetObjectiveCoefficient(coefs[i])
	}
	return nil
}

/* Constraint-related functions */

// ConstraintCount returns the number of individual constraints (rows)
// in the model, including any rows added by an incumbent callback
// during a previous solve.
func (model *Model) ConstraintCount() int {
	model.mu.RLock()
	defer model.mu.RUnlock()

	return int(C.glp_get_num_rows(model.prob))
}

// AddConstraint adds a constraint to the model as a lower and an
// upper bound, a slice of variables and a slice of their respective
// coefficients.
func (model *Model) AddConstraint(lower, upper float64, vars []*Variable, coefs []float64) error {
	if len(vars) != len(coefs) {
		return fmt.Errorf("inconsistent number of variables and coefficients: %d != %d", len(vars), len(coefs))
	}

	model.mu.Lock()
	defer model.mu.Unlock()

	size := int(C.glp_get_num_rows(model.prob))
	if ret := C.glp_add_rows(model.prob, 1); ret < 1 {
		return fmt.Errorf("could not add row to model")
	}

	switch {
	case math.IsInf(lower, 0) && math.IsInf(upper, 0):
		C.glp_set_row_bnds(model.prob, C.int(size+1), C.GLP_FR, C.double(0), C.double(0))
	case math.IsInf(lower, 0):
		C.glp_set_row_bnds(model.prob, C.int(size+1), C.GLP_UP, C.double(0), C.double(upper))
	case math.IsInf(upper, 0):
		C.glp_set_row_bnds(model.prob, C.int(size+1), C.GLP_LO, C.double(lower), C.double(0))
	case upper == lower:
		C.glp_set_row_bnds(model.prob, C.int(size+1), C.GLP_FX, C.double(lower), C.double(upper))
	default:
		C.glp_set_row_bnds(model.prob, C.int(size+1), C.GLP_DB, C.double(lower), C.double(upper))
	}

	for i, v := range vars {
		model.ia = append(model.ia, C.int(size+1))
		model.ja = append(model.ja, C.int(v.index+1))
		model.ar = append(model.ar, C.double(coefs[i]))
	}
	return nil
}

// messageLevel decides how chatty glpk itself should be; the output
// ends up in the model's logger via the terminal hook either way.
func (model *Model) messageLevel() C.int {
	if model.verbose {
		return C.GLP_MSG_ALL
	}
	return C.GLP_MSG_OFF
}

func (model *Model) loadMatrix() {
	C.glp_load_matrix(model.prob, C.int(len(model.ia)-1), &model.ia[0], &model.ja[0], &model.ar[0])
}

/* Solving */

// Solve attempts to find an optimal solution to the model. For models
// containing integer or binary variables the branch-and-cut algorithm
// is used, with the incumbent callback (if any) invoked on every
// integer-feasible candidate.
// Information about the solution can be queried from the returned
// SolveResult value.
func (model *Model) Solve() (res *SolveResult, err error) {
	return model.solve(context.Background())
}

// SolveWithContext wraps Solve() with a context. If the context is
// cancelled or times out, the search is aborted and the context error
// is returned. If an integer-feasible incumbent was already found, it
// is returned alongside the context error, with a status of
// SolutionFeasible.
func (model *Model) SolveWithContext(ctx context.Context) (res *SolveResult, err error) {
	return model.solve(ctx)
}

func (model *Model) solve(ctx context.Context) (res *SolveResult, err error) {
	model.mu.Lock()
	defer model.mu.Unlock()

	model.loadMatrix()

	state := &solveState{
		model: model,
		ctx:   ctx,
		cb:    model.incumbentCB,
	}
	ref := saveRef(state)
	defer dropRef(ref)

	// route glpk's terminal output through our logger
	C.set_term_hook(ref)
	defer C.clear_term_hook()

	// the branch-and-cut tree is rooted at an optimal basis of the LP
	// relaxation, which we have to provide since the MIP presolver
	// must stay off: rows added by the incumbent callback only land on
	// the original problem object.
	var smcp C.glp_smcp
	C.glp_init_smcp(&smcp)
	smcp.msg_lev = model.messageLevel()

	if err := glpSolveError(C.glp_simplex(model.prob, &smcp)); err != nil {
		return nil, err
	}

	switch C.glp_get_status(model.prob) {
	case C.GLP_OPT:
		// proceed to the integer optimizer
	case C.GLP_INFEAS, C.GLP_NOFEAS:
		return nil, ErrModelInfeasible
	case C.GLP_UNBND:
		return nil, ErrModelUnbounded
	default:
		return nil, fmt.Errorf("unexpected relaxation status %d", int(C.glp_get_status(model.prob)))
	}

	var iocp C.glp_iocp
	C.glp_init_iocp(&iocp)
	iocp.msg_lev = model.messageLevel()
	iocp.presolve = C.GLP_OFF
	C.set_tree_callback(&iocp, ref)

	ret := C.glp_intopt(model.prob, &iocp)

	if ret == C.GLP_ESTOP {
		switch {
		case state.cbErr != nil:
			return nil, state.cbErr
		case ctx.Err() != nil:
			if C.glp_mip_status(model.prob) == C.GLP_FEAS {
				return &SolveResult{model: model, status: SolutionFeasible}, ctx.Err()
			}
			return nil, ctx.Err()
		}
	}
	if err := glpSolveError(ret); err != nil {
		return nil, err
	}

	switch status := C.glp_mip_status(model.prob); status {
	case C.GLP_OPT, C.GLP_FEAS:
		return &SolveResult{model: model, status: SolveStatus(status)}, nil
	case C.GLP_NOFEAS:
		return nil, ErrNoFeasibleFound
	default:
		return nil, fmt.Errorf("unexpected MIP status %d", int(status))
	}
}
