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

import "gonum.org/v1/gonum/floats"

// Cut is the linear inequality ⟨Coefs, x⟩ ≤ Upper. Cuts produced by
// the refiner are supporting hyperplanes of the ball ‖x‖ ≤ Γ, so the
// coefficient vector is the rejected candidate itself and the bound
// is Γ times its norm: by Cauchy-Schwarz no point of the ball can
// violate such an inequality, while the rejected candidate always
// does (its inner product with itself is ‖N‖² > Γ‖N‖).
type Cut struct {
	Coefs []float64
	Upper float64
}

// Violates reports whether x lies on the far side of the cut, beyond
// the hyperplane.
func (cut Cut) Violates(x []float64) bool {
	return floats.Dot(cut.Coefs, x) > cut.Upper
}

// separate decides accept/reject for a candidate: candidates with
// norm within the acceptance limit produce no cut, all others yield
// the supporting hyperplane at the ball's boundary point along the
// candidate's own ray. The zero vector can never reach this branch
// since its norm is 0 ≤ Γ, so the returned cut is never degenerate.
func (r *Refiner) separate(x []float64) (Cut, bool) {
	norm := floats.Norm(x, 2)
	if norm <= r.limit() {
		return Cut{}, false
	}

	return Cut{
		Coefs: append([]float64(nil), x...),
		Upper: r.radius * norm,
	}, true
}
