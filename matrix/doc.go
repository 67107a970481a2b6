// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear algebra used by the regression
// engines: a row-major Dense container, elementary kernels, Householder QR,
// back substitution, a least-squares solver with a minimum-norm fallback,
// Jacobi eigen-decomposition of symmetric matrices and Gauss-Jordan inversion.
//
// Least squares is a two-tier strategy:
//
//	SolveQR(A, b)       // tier 1: Householder QR + back substitution, ErrSingular on a tiny R[i,i]
//	PseudoSolve(A, b)   // tier 2: eigen-decomposition of AᵀA, minimum-norm solution
//	LeastSquares(A, b)  // tier 1, then tier 2 when tier 1 reports ErrSingular
//
// Every routine works on private copies: inputs are never mutated, so a design
// matrix retained by a fitted model can be shared read-only with diagnostics.
//
// Errors are package sentinels (see errors.go) wrapped with an operation tag;
// match them with errors.Is.
package matrix
