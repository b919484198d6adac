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

// The conecut command maximizes a linear objective over the integer
// points of a Euclidean ball and reports the solution together with
// the cutting-plane diagnostics:
//
//	conecut -objective 0.59,0.22 -radius 50
//
// An instance can also be read from a YAML file (see instance.go) and,
// for two-dimensional instances, the accumulated cuts can be explored
// interactively with -plot.
package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/costela/conecut"
)

var (
	objectiveFlag = flag.String("objective", "", "comma-separated objective coefficients, e.g. 0.59,0.22")
	radiusFlag    = flag.Float64("radius", 0, "ball radius Γ")
	toleranceFlag = flag.Float64("tolerance", conecut.DefaultTolerance, "acceptance tolerance ε")
	relativeFlag  = flag.Bool("relative", false, "treat the tolerance as relative to the radius")
	instanceFlag  = flag.String("instance", "", "read the instance from a YAML file instead of flags")
	timeoutFlag   = flag.Duration("timeout", 0, "abort the search after this duration (0 = no limit)")
	plotFlag      = flag.Bool("plot", false, "explore the cut history interactively (2D instances only)")
	verboseFlag   = flag.Bool("verbose", false, "log the solver's search progress")
)

// glogPrinter adapts glog to the library's Logger interface.
type glogPrinter struct{}

func (glogPrinter) Print(v ...interface{}) {
	glog.Info(v...)
}

func main() {
	flag.Parse()
	defer glog.Flush()

	if err := run(); err != nil {
		glog.Exit(err)
	}
}

func run() error {
	inst, err := loadInstance()
	if err != nil {
		return err
	}

	opts := []conecut.Option{conecut.WithLogger(glogPrinter{})}
	if inst.Relative {
		opts = append(opts, conecut.WithRelativeTolerance(inst.Tolerance))
	} else {
		opts = append(opts, conecut.WithTolerance(inst.Tolerance))
	}
	if *verboseFlag {
		opts = append(opts, conecut.WithVerboseSolver())
	}

	refiner, err := conecut.New(inst.Objective, inst.Radius, opts...)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if *timeoutFlag > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeoutFlag)
		defer cancel()
	}

	glog.Infof("solving: n=%d Γ=%g ε=%g", len(inst.Objective), inst.Radius, inst.Tolerance)
	start := time.Now()

	result, err := refiner.Solve(ctx)
	if result == nil {
		return err
	}
	if err != nil {
		glog.Warningf("search interrupted, reporting best incumbent: %v", err)
	}

	printResult(inst, result, time.Since(start))

	if *plotFlag {
		if len(inst.Objective) != 2 {
			return fmt.Errorf("-plot requires a two-dimensional instance, got %d dimensions", len(inst.Objective))
		}
		return runPlot(inst, result)
	}

	return nil
}

func printResult(inst instance, result *conecut.Result, elapsed time.Duration) {
	status := "feasible"
	if result.Optimal {
		status = "optimal"
	}

	fmt.Printf("x         = %s\n", formatVector(result.X))
	fmt.Printf("objective = %.6f\n", result.Objective)
	fmt.Printf("norm      = %.6f (radius %g)\n", result.Norm, inst.Radius)
	fmt.Printf("callbacks = %d, cuts = %d\n", result.Callbacks, len(result.Cuts))
	fmt.Printf("status    = %s in %s\n", status, elapsed.Round(time.Millisecond))
}

func formatVector(x []float64) string {
	parts := make([]string, len(x))
	for i, v := range x {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
