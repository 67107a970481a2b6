// SPDX-License-Identifier: MIT

package lm

import (
	"log/slog"

	"github.com/katalvlaran/lvstat/matrix"
)

// DefaultIntercept is the intercept setting of Fit.
const DefaultIntercept = true

const panicNilLogger = "lm: WithLogger(nil)"

// Option configures Fit and Anova.
type Option func(*Options)

// Options is the resolved configuration. Fields are set through Option constructors.
type Options struct {
	intercept bool
	logger    *slog.Logger
	solver    []matrix.Option
}

// WithIntercept toggles the leading column of ones.
func WithIntercept(on bool) Option {
	return func(o *Options) { o.intercept = on }
}

// WithLogger routes fit events (solver fallback, rank deficiency) to l.
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
		intercept: DefaultIntercept,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
