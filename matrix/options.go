// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the solvers.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, every tolerance is passed per call.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

// Numeric policy.
const (
	// DefaultValidateNaNInf toggles strict finite-value validation in Set and constructors.
	DefaultValidateNaNInf = true

	// DefaultSingularTol is the absolute threshold under which a diagonal entry of R
	// makes back substitution fail with ErrSingular.
	DefaultSingularTol = 1e-14

	// DefaultPivotTol is the absolute threshold under which a Gauss-Jordan pivot
	// makes Inverse fail with ErrSingular.
	DefaultPivotTol = 1e-10

	// DefaultEigenTol stops Jacobi rotations once the largest off-diagonal magnitude
	// falls below it.
	DefaultEigenTol = 1e-12

	// DefaultEigenIterFactor sets the Jacobi rotation cap to factor·n² when no
	// explicit cap is configured.
	DefaultEigenIterFactor = 5

	// DefaultRCond is the relative eigenvalue cutoff of the pseudoinverse: eigenvalues
	// of AᵀA at or below rcond·λmax are treated as zero singular values.
	DefaultRCond = 1e-10
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicSingularTolInvalid = "matrix: WithSingularTol: tol must be finite, positive"
	panicPivotTolInvalid    = "matrix: WithPivotTol: tol must be finite, positive"
	panicEigenTolInvalid    = "matrix: WithEigenTol: tol must be finite, positive"
	panicEigenIterInvalid   = "matrix: WithEigenMaxIter: maxIter must be >= 1"
	panicRCondInvalid       = "matrix: WithRCond: rcond must be finite, in [0,1)"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective solver configuration after applying Option setters.
type Options struct {
	singularTol  float64 // DefaultSingularTol
	pivotTol     float64 // DefaultPivotTol
	eigenTol     float64 // DefaultEigenTol
	eigenMaxIter int     // 0 ⇒ DefaultEigenIterFactor·n²
	rcond        float64 // DefaultRCond
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// WithSingularTol overrides the back-substitution singularity threshold.
// Panics if tol is not finite and positive.
func WithSingularTol(tol float64) Option {
	if !positiveFinite(tol) {
		panic(panicSingularTolInvalid)
	}

	return func(o *Options) { o.singularTol = tol }
}

// WithPivotTol overrides the Gauss-Jordan pivot threshold.
// Panics if tol is not finite and positive.
func WithPivotTol(tol float64) Option {
	if !positiveFinite(tol) {
		panic(panicPivotTolInvalid)
	}

	return func(o *Options) { o.pivotTol = tol }
}

// WithEigenTol overrides the Jacobi convergence threshold.
// Panics if tol is not finite and positive.
func WithEigenTol(tol float64) Option {
	if !positiveFinite(tol) {
		panic(panicEigenTolInvalid)
	}

	return func(o *Options) { o.eigenTol = tol }
}

// WithEigenMaxIter caps the number of Jacobi rotations.
// Panics if maxIter < 1.
func WithEigenMaxIter(maxIter int) Option {
	if maxIter < 1 {
		panic(panicEigenIterInvalid)
	}

	return func(o *Options) { o.eigenMaxIter = maxIter }
}

// WithRCond overrides the relative eigenvalue cutoff of PseudoSolve.
// Panics if rcond is not finite or outside [0,1).
func WithRCond(rcond float64) Option {
	if math.IsNaN(rcond) || math.IsInf(rcond, 0) || rcond < 0 || rcond >= 1 {
		panic(panicRCondInvalid)
	}

	return func(o *Options) { o.rcond = rcond }
}

// gatherOptions applies user-provided Option setters on top of defaults
// (last-writer-wins).
func gatherOptions(user ...Option) Options {
	o := Options{
		singularTol: DefaultSingularTol,
		pivotTol:    DefaultPivotTol,
		eigenTol:    DefaultEigenTol,
		rcond:       DefaultRCond,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}

// eigenIterCap resolves the Jacobi rotation cap for an n×n matrix.
func (o Options) eigenIterCap(n int) int {
	if o.eigenMaxIter > 0 {
		return o.eigenMaxIter
	}
	if n < 1 {
		return 1
	}

	return DefaultEigenIterFactor * n * n
}
