package conecut

type Option func(*Refiner) error

// WithLogger attaches a logger to the refiner; it receives one line
// per rejected candidate, plus the solver chatter of the default
// backend. The default discards everything.
func WithLogger(logger Logger) Option {
	return func(r *Refiner) error {
		r.logger = logger

		return nil
	}
}

// WithTolerance sets the absolute acceptance slack ε: candidates with
// ‖x‖ ≤ Γ + ε are accepted. The default is DefaultTolerance.
func WithTolerance(tol float64) Option {
	return func(r *Refiner) error {
		if tol <= 0 {
			return ErrBadTolerance
		}
		r.tol = tol
		r.relative = false

		return nil
	}
}

// WithRelativeTolerance makes the acceptance slack scale with the
// radius: candidates with ‖x‖ ≤ Γ·(1+ε) are accepted. Preferable to
// the absolute variant for large radii or dimensions.
func WithRelativeTolerance(tol float64) Option {
	return func(r *Refiner) error {
		if tol <= 0 {
			return ErrBadTolerance
		}
		r.tol = tol
		r.relative = true

		return nil
	}
}

// WithBackend replaces the default GLPK backend.
func WithBackend(backend Backend) Option {
	return func(r *Refiner) error {
		r.backend = backend

		return nil
	}
}

// WithVerboseSolver makes the default backend report the solver's
// full search progress to the logger. It has no effect on backends
// supplied via WithBackend.
func WithVerboseSolver() Option {
	return func(r *Refiner) error {
		r.verboseSolver = true

		return nil
	}
}
