// SPDX-License-Identifier: MIT

// Package design turns a response vector and predictor columns into the
// design frame shared by the linear and generalized linear model engines.
//
// Build drops every row whose response, any predictor, or prior weight is
// missing (listwise deletion), prepends the intercept column when asked,
// names the coefficients "(Intercept)", "x1", …, "xk", and refuses to go on
// unless the retained observation count n exceeds the parameter count p.
//
// Missing values are represented by the NaN sentinel Missing; ±Inf is never
// a missing marker and is rejected with ErrNonFinite.
package design
