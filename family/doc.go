// SPDX-License-Identifier: MIT

// Package family implements the closed set of exponential families used by
// the GLM engine: Gaussian, Binomial, Poisson and Gamma, each paired with one
// of six link functions (identity, log, inverse, logit, probit, sqrt).
//
// A Family is an immutable value exposing the link transform, its inverse and
// derivative, the variance function, unit deviances, the AIC term, a validity
// predicate on mu, the IRWLS starting values and the clamp that returns an
// out-of-domain mu to the valid region. The interface is sealed: the four
// variants above are the only implementations.
//
// Allowed links per family:
//
//	gaussian  identity (default), log, inverse
//	binomial  logit (default), probit, log
//	poisson   log (default), identity, sqrt
//	gamma     inverse (default), identity, log
package family
