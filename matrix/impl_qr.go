// SPDX-License-Identifier: MIT
// Package matrix: Householder QR, back substitution and the two-tier least-squares solver.
//
// Purpose:
//   - QR(A) for any m×n A, with A = Q·R, Q orthogonal (m×m) and R upper triangular (m×n).
//   - BackSolve(R, b) on the leading n×n block of R.
//   - SolveQR(A, b) (tier 1) and LeastSquares(A, b) (tier 1 with the PseudoSolve fallback).
//
// Determinism & Performance:
//   - Fixed k→{j,i} visitation; reflectors are applied to working copies only.

package matrix

import (
	"errors"
	"fmt"
	"math"
)

const (
	opQR           = "QR"
	opBackSolve    = "BackSolve"
	opSolveQR      = "SolveQR"
	opLeastSquares = "LeastSquares"
)

// QR computes the Householder factorization A = Q·R.
// Implementation:
//   - Stage 1: validate A; clone it into the working R; initialize Q to the m×m identity.
//   - Stage 2: for k = 0 .. min(m−1, n)−1:
//     x = R[k:,k]; skip when ‖x‖ is ~0 (column already triangular);
//     v = x, v₀ += sign(x₀)·‖x‖ (no cancellation), β = 2/‖v‖² (skip when ‖v‖² is ~0);
//     R[k:,k:] -= β·v·(vᵀR[k:,k:]) and Q[:,k:] -= β·(Q[:,k:]v)·vᵀ.
//   - Stage 3: store the exact reflected column (−sign(x₀)‖x‖, 0, …, 0) to keep R triangular.
//
// Inputs:
//   - m: any non-nil matrix (m×n); it is never mutated.
//   - opts: WithSingularTol controls the "~0" threshold for column and reflector norms.
//
// Returns:
//   - Q (*Dense m×m), R (*Dense m×n).
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(m²·n), Space O(m² + m·n).
func QR(m Matrix, opts ...Option) (*Dense, *Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}
	src, err := toDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}
	o := gatherOptions(opts...)

	rows, cols := src.r, src.c
	R := src.cloneDense() // working copy, becomes R
	Q, err := NewIdentity(rows)
	if err != nil {
		return nil, nil, matrixErrorf(opQR, err)
	}

	steps := rows - 1
	if cols < steps {
		steps = cols
	}

	v := make([]float64, rows) // Householder vector, only v[k:] is used
	var (
		i, j, k          int
		norm, vnorm2     float64
		beta, sum, sign  float64
		x0               float64
		rowBase, colSize int
	)
	for k = 0; k < steps; k++ {
		// Norm of the sub-column R[k:,k].
		norm = ZeroSum
		for i = k; i < rows; i++ {
			norm += R.data[i*cols+k] * R.data[i*cols+k]
		}
		norm = math.Sqrt(norm)
		if norm < o.singularTol {
			continue // already triangular in this column
		}

		// v = x + sign(x₀)·‖x‖·e₁ (sign(0) taken as +1).
		x0 = R.data[k*cols+k]
		sign = 1.0
		if x0 < 0 {
			sign = -1.0
		}
		colSize = rows - k
		for i = 0; i < colSize; i++ {
			v[k+i] = R.data[(k+i)*cols+k]
		}
		v[k] += sign * norm
		vnorm2 = ZeroSum
		for i = k; i < rows; i++ {
			vnorm2 += v[i] * v[i]
		}
		if vnorm2 < o.singularTol*o.singularTol {
			continue // degenerate reflector
		}
		beta = 2.0 / vnorm2

		// Column k is reflected exactly onto −sign(x₀)‖x‖·e₁.
		R.data[k*cols+k] = -sign * norm
		for i = k + 1; i < rows; i++ {
			R.data[i*cols+k] = 0
		}

		// Apply H = I − β·vvᵀ to the trailing columns of R.
		for j = k + 1; j < cols; j++ {
			sum = ZeroSum
			for i = k; i < rows; i++ {
				sum += v[i] * R.data[i*cols+j]
			}
			sum *= beta
			for i = k; i < rows; i++ {
				R.data[i*cols+j] -= sum * v[i]
			}
		}

		// Accumulate Q = Q·H.
		for i = 0; i < rows; i++ {
			rowBase = i * rows
			sum = ZeroSum
			for j = k; j < rows; j++ {
				sum += Q.data[rowBase+j] * v[j]
			}
			sum *= beta
			for j = k; j < rows; j++ {
				Q.data[rowBase+j] -= sum * v[j]
			}
		}
	}

	return Q, R, nil
}

// BackSolve solves R[:n,:n]·x = b[:n] for an upper-triangular R with rows ≥ cols = n.
// Implementation:
//   - Stage 1: validate shape (rows ≥ cols) and len(b) == rows.
//   - Stage 2: substitute from the last row to the first.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//   - ErrSingular naming the row when |R[i,i]| < singular tolerance (default 1e-14).
//
// Complexity:
//   - Time O(n²), Space O(n).
func BackSolve(R Matrix, b []float64, opts ...Option) ([]float64, error) {
	if err := ValidateNotNil(R); err != nil {
		return nil, matrixErrorf(opBackSolve, err)
	}
	if R.Rows() < R.Cols() {
		return nil, matrixErrorf(opBackSolve, fmt.Errorf("R is %dx%d: %w", R.Rows(), R.Cols(), ErrDimensionMismatch))
	}
	if err := ValidateVecLen(b, R.Rows()); err != nil {
		return nil, matrixErrorf(opBackSolve, err)
	}
	d, err := toDense(R)
	if err != nil {
		return nil, matrixErrorf(opBackSolve, err)
	}
	o := gatherOptions(opts...)

	n := d.c
	x := make([]float64, n)
	var i, k int
	var sum, pivot float64
	for i = n - 1; i >= 0; i-- {
		pivot = d.data[i*n+i]
		if math.Abs(pivot) < o.singularTol {
			return nil, matrixErrorf(opBackSolve, fmt.Errorf("row %d: |R[%d,%d]| = %g: %w", i, i, i, math.Abs(pivot), ErrSingular))
		}
		sum = b[i]
		for k = i + 1; k < n; k++ {
			sum -= d.data[i*n+k] * x[k]
		}
		x[i] = sum / pivot
	}

	return x, nil
}

// SolveQR is the first least-squares tier: x = R⁻¹·(Qᵀb) from a Householder QR of A.
// Implementation:
//   - Stage 1: validate len(b) == A.Rows(); an underdetermined A (rows < cols) is reported
//     as ErrSingular because R cannot have a full non-zero diagonal.
//   - Stage 2: Q, R = QR(A); c = Qᵀb; x = BackSolve(R, c).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrSingular (rank-deficient A).
//
// Complexity:
//   - Time O(m²·n), Space O(m² + m·n).
func SolveQR(A Matrix, b []float64, opts ...Option) ([]float64, error) {
	if err := ValidateNotNil(A); err != nil {
		return nil, matrixErrorf(opSolveQR, err)
	}
	if err := ValidateVecLen(b, A.Rows()); err != nil {
		return nil, matrixErrorf(opSolveQR, err)
	}
	if A.Rows() < A.Cols() {
		return nil, matrixErrorf(opSolveQR, fmt.Errorf("%d rows < %d cols: %w", A.Rows(), A.Cols(), ErrSingular))
	}
	Q, R, err := QR(A, opts...)
	if err != nil {
		return nil, matrixErrorf(opSolveQR, err)
	}
	qtb, err := TMatVec(Q, b)
	if err != nil {
		return nil, matrixErrorf(opSolveQR, err)
	}
	x, err := BackSolve(R, qtb, opts...)
	if err != nil {
		return nil, matrixErrorf(opSolveQR, err)
	}

	return x, nil
}

// LeastSquares minimizes ‖A·x − b‖₂.
// Implementation:
//   - Stage 1: tier 1, SolveQR.
//   - Stage 2: when tier 1 reports ErrSingular, tier 2, PseudoSolve (minimum-norm solution).
//     Any other tier-1 error is returned unchanged.
//
// Behavior highlights:
//   - Rank-deficient designs yield a best-effort solution instead of an error; the
//     Solution.Method field tells callers which tier produced it.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch; ErrSingular never escapes.
//
// Complexity:
//   - Tier 1: Time O(m²·n). Tier 2: Time O(m·n² + iter·n).
func LeastSquares(A Matrix, b []float64, opts ...Option) (Solution, error) {
	x, err := SolveQR(A, b, opts...)
	if err == nil {
		return Solution{X: x, Method: MethodQR, Rank: A.Cols()}, nil
	}
	if !errors.Is(err, ErrSingular) {
		return Solution{}, matrixErrorf(opLeastSquares, err)
	}

	sol, err := PseudoSolve(A, b, opts...)
	if err != nil {
		return Solution{}, matrixErrorf(opLeastSquares, err)
	}

	return sol, nil
}
