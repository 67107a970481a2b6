// SPDX-License-Identifier: MIT

// Package config reads a model description from YAML and converts it into
// the functional options of lm and glm.
//
// A document looks like:
//
//	kind: glm
//	family: binomial
//	link: probit
//	intercept: true
//	epsilon: 1e-8
//	maxit: 25
//	solver:
//	  singular_tol: 1e-14
//	  pivot_tol: 1e-10
//	  rcond: 1e-10
//
// Omitted fields keep the package defaults of the fitting engine. Validation
// runs at load time, so option constructors never panic on a loaded config.
package config
