// SPDX-License-Identifier: MIT
// Package matrix: Jacobi eigen-decomposition of real symmetric matrices.
//
// Purpose:
//   - Eigen(S, tol, maxIter): strict variant, fails when the tolerance is not reached.
//   - jacobi(...): shared rotation kernel; the pseudoinverse accepts its best-effort
//     result at the iteration cap.
//
// Determinism & Performance:
//   - Fixed i→j pivot scan (first maximum wins), fixed update order.

package matrix

import (
	"math"
	"sort"
)

const opEigen = "Eigen"

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix via Jacobi rotations.
// Implementation:
//   - Stage 1: ValidateSymmetric(m, tol).
//   - Stage 2: repeatedly zero the largest |A[p,q]| with the rotation angle
//     φ = ½·atan2(2·A[p,q], A[q,q] − A[p,p]) until max|A[p,q]| < tol or maxIter rotations.
//   - Stage 3: sort eigenpairs by descending eigenvalue.
//
// Inputs:
//   - m: symmetric matrix (within tol).
//   - tol: convergence threshold (typ. 1e-12 for float64).
//   - maxIter: cap on rotations.
//
// Returns:
//   - []float64: eigenvalues, descending.
//   - *Dense: columns are the matching unit eigenvectors.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry, ErrNaNInf (bad tol),
//     ErrMatrixEigenFailed (not converged within maxIter).
//
// Complexity:
//   - Time O(maxIter·n²) (each rotation scans the triangle and updates O(n) entries), Space O(n²).
func Eigen(m Matrix, tol float64, maxIter int) ([]float64, *Dense, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	d, err := toDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	vals, vecs, converged := jacobi(d, math.Abs(tol), maxIter)
	if !converged {
		return nil, nil, matrixErrorf(opEigen, ErrMatrixEigenFailed)
	}

	return vals, vecs, nil
}

// jacobi runs cyclic-max Jacobi rotations on a copy of the symmetric matrix s.
// It returns eigenvalues sorted descending, the matching eigenvector columns, and
// whether max|A[p,q]| < tol was reached within maxIter rotations.
func jacobi(s *Dense, tol float64, maxIter int) ([]float64, *Dense, bool) {
	n := s.r
	a := s.cloneDense()
	q, _ := NewIdentity(n) // n ≥ 1 for any validated Dense

	var (
		iter, i, j, p, r int
		maxOff, off      float64
		app, aqq, apq    float64
		aip, aiq         float64
		phi, c, sn       float64
		converged        bool
	)
	for iter = 0; ; iter++ {
		// Pivot: largest |A[p,r]| over the strict upper triangle.
		maxOff = ZeroSum
		p, r = 0, 0
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				off = math.Abs(a.data[i*n+j])
				if off > maxOff {
					maxOff, p, r = off, i, j
				}
			}
		}
		if maxOff < tol {
			converged = true
			break
		}
		if iter >= maxIter {
			break
		}

		app = a.data[p*n+p]
		aqq = a.data[r*n+r]
		apq = a.data[p*n+r]
		phi = 0.5 * math.Atan2(2*apq, aqq-app)
		c = math.Cos(phi)
		sn = math.Sin(phi)

		for i = 0; i < n; i++ {
			if i == p || i == r {
				continue
			}
			aip = a.data[i*n+p]
			aiq = a.data[i*n+r]
			a.data[i*n+p] = c*aip - sn*aiq
			a.data[p*n+i] = a.data[i*n+p]
			a.data[i*n+r] = sn*aip + c*aiq
			a.data[r*n+i] = a.data[i*n+r]
		}
		a.data[p*n+p] = c*c*app - 2*c*sn*apq + sn*sn*aqq
		a.data[r*n+r] = sn*sn*app + 2*c*sn*apq + c*c*aqq
		a.data[p*n+r] = 0
		a.data[r*n+p] = 0

		for i = 0; i < n; i++ {
			aip = q.data[i*n+p]
			aiq = q.data[i*n+r]
			q.data[i*n+p] = c*aip - sn*aiq
			q.data[i*n+r] = sn*aip + c*aiq
		}
	}

	vals, vecs := sortEigenDesc(a, q)

	return vals, vecs, converged
}

// sortEigenDesc extracts diag(a) and reorders eigenvalues (descending) together
// with the eigenvector columns of q. Ties keep their original order.
func sortEigenDesc(a, q *Dense) ([]float64, *Dense) {
	n := a.r
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return a.data[order[x]*n+order[x]] > a.data[order[y]*n+order[y]]
	})

	vals := make([]float64, n)
	vecs, _ := NewDense(n, n)
	var i, k, src int
	for k = 0; k < n; k++ {
		src = order[k]
		vals[k] = a.data[src*n+src]
		for i = 0; i < n; i++ {
			vecs.data[i*n+k] = q.data[i*n+src]
		}
	}

	return vals, vecs
}
