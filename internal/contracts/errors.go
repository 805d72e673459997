package contracts

import "errors"

// Error taxonomy shared across the analytics packages. Callers match with
// errors.Is; each raising site wraps these with context via fmt.Errorf("%w: ...").
var (
	// ErrInputShape: dimension mismatch or malformed matrix (not square,
	// misaligned series lengths). Detected before any solver is invoked.
	ErrInputShape = errors.New("input shape mismatch")

	// ErrDivergence: the constrained solver did not reach a feasible point
	// within its iteration and tolerance budget.
	ErrDivergence = errors.New("optimization did not converge")

	// ErrSingularCovariance: covariance matrix inversion is not numerically
	// viable (closed-form tangency only).
	ErrSingularCovariance = errors.New("covariance matrix is singular or ill-conditioned")

	// ErrDegenerateInput: too few assets or too few frontier grid points.
	ErrDegenerateInput = errors.New("degenerate input")
)
