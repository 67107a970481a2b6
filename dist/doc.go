// SPDX-License-Identifier: MIT

// Package dist adapts the scalar distribution functions consumed by the
// regression engines (p-values, confidence intervals, AIC log-likelihoods)
// to plain float64 functions over gonum's stat/distuv.
//
// Degrees-of-freedom and scale arguments outside their domain yield NaN;
// callers check inputs before they get here.
package dist
