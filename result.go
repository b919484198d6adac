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

// Result describes the terminal state of one solve: the accepted
// integer solution and the diagnostics of the cutting-plane loop that
// produced it. Every entry of X is integral and the invariant
// Norm ≤ Γ + ε (or Γ·(1+ε) in relative-tolerance mode) holds.
type Result struct {
	// X is the accepted solution.
	X []float64

	// Objective is ⟨c, X⟩.
	Objective float64

	// Norm is the Euclidean norm of X.
	Norm float64

	// Callbacks counts how often the cut-generation callback was
	// invoked during the search, accepting candidates included.
	Callbacks int

	// Cuts holds every cut added during the search, in order of
	// addition. The coefficient vector of each cut is the candidate
	// it rejected.
	Cuts []Cut

	// Optimal reports whether the solver proved optimality. It is
	// false when the search was interrupted with an incumbent at
	// hand.
	Optimal bool
}
