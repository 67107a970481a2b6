// SPDX-License-Identifier: MIT

package glm

import (
	"log/slog"
	"math"

	"github.com/katalvlaran/lvstat/family"
	"github.com/katalvlaran/lvstat/matrix"
)

// Defaults of Fit.
const (
	// DefaultEpsilon is the relative deviance tolerance of the convergence test.
	DefaultEpsilon = 1e-8
	// DefaultMaxIter caps the IRWLS iterations.
	DefaultMaxIter = 25
	// DefaultIntercept prepends a column of ones.
	DefaultIntercept = true
)

const (
	panicNilFamily      = "glm: WithFamily(nil)"
	panicNilLogger      = "glm: WithLogger(nil)"
	panicEpsilonInvalid = "glm: WithEpsilon requires a finite eps > 0"
	panicMaxIterInvalid = "glm: WithMaxIter requires maxit >= 1"
)

// Option configures Fit.
type Option func(*Options)

// Options is the resolved configuration. Fields are set through Option constructors.
type Options struct {
	family    family.Family
	weights   []float64
	epsilon   float64
	maxIter   int
	intercept bool
	logger    *slog.Logger
	solver    []matrix.Option
}

// WithFamily selects the family and link (default family.Gaussian()).
// Panics if f is nil.
func WithFamily(f family.Family) Option {
	if f == nil {
		panic(panicNilFamily)
	}

	return func(o *Options) { o.family = f }
}

// WithWeights sets prior weights, one per input observation (before missing-value
// filtering). Weights must be strictly positive; a missing weight drops its row.
func WithWeights(w []float64) Option {
	cp := append([]float64(nil), w...)

	return func(o *Options) { o.weights = cp }
}

// WithEpsilon sets the convergence tolerance.
// Panics if eps is not finite and positive.
func WithEpsilon(eps float64) Option {
	if !(eps > 0) || math.IsInf(eps, 0) {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.epsilon = eps }
}

// WithMaxIter caps the IRWLS iterations.
// Panics if maxit < 1.
func WithMaxIter(maxit int) Option {
	if maxit < 1 {
		panic(panicMaxIterInvalid)
	}

	return func(o *Options) { o.maxIter = maxit }
}

// WithIntercept toggles the leading column of ones.
func WithIntercept(on bool) Option {
	return func(o *Options) { o.intercept = on }
}

// WithLogger routes iteration traces and convergence warnings to l.
// Panics if l is nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicNilLogger)
	}

	return func(o *Options) { o.logger = l }
}

// WithSolverOptions forwards tolerances to the least-squares solver and inversion.
func WithSolverOptions(opts ...matrix.Option) Option {
	return func(o *Options) { o.solver = append(o.solver, opts...) }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		family:    family.Gaussian(),
		epsilon:   DefaultEpsilon,
		maxIter:   DefaultMaxIter,
		intercept: DefaultIntercept,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
