// SPDX-License-Identifier: MIT
// Package matrix: minimum-norm least squares through a minimal SVD.
//
// The singular structure of A is recovered from the Gram matrix AᵀA = V·Λ·Vᵀ:
// σᵢ = √max(0, λᵢ), uᵢ = A·vᵢ/σᵢ, and x = Σ vᵢ·(uᵢᵀb)/σᵢ over retained σᵢ.
// Dropping the null directions is what makes x the least-norm minimizer.

package matrix

import (
	"math"
)

const opPseudoSolve = "PseudoSolve"

// PseudoSolve returns the minimum-norm least-squares solution of A·x ≈ b.
// Implementation:
//   - Stage 1: validate; form G = AᵀA.
//   - Stage 2: Jacobi-diagonalize G (tol 1e-12, cap 5n² rotations by default); the
//     best-effort result is accepted when the cap is reached.
//   - Stage 3: keep eigenpairs with λᵢ > rcond·λmax (and λᵢ > 0); σᵢ = √λᵢ;
//     uᵢ = A·vᵢ/σᵢ; x = Σ vᵢ·(uᵢᵀb)/σᵢ.
//
// Inputs:
//   - A: m×n design, any rank; never mutated.
//   - b: right-hand side, len(b) == m.
//   - opts: WithEigenTol, WithEigenMaxIter, WithRCond.
//
// Returns:
//   - Solution{X, MethodPseudoInverse, Rank}; an all-zero A yields X = 0 and Rank = 0.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(m·n² + iter·n + m·n·rank), Space O(n² + m·n).
func PseudoSolve(A Matrix, b []float64, opts ...Option) (Solution, error) {
	if err := ValidateNotNil(A); err != nil {
		return Solution{}, matrixErrorf(opPseudoSolve, err)
	}
	if err := ValidateVecLen(b, A.Rows()); err != nil {
		return Solution{}, matrixErrorf(opPseudoSolve, err)
	}
	a, err := toDense(A)
	if err != nil {
		return Solution{}, matrixErrorf(opPseudoSolve, err)
	}
	o := gatherOptions(opts...)

	g, err := Gram(a)
	if err != nil {
		return Solution{}, matrixErrorf(opPseudoSolve, err)
	}
	n := a.c
	lambda, V, _ := jacobi(g, o.eigenTol, o.eigenIterCap(n))

	x := make([]float64, n)
	if len(lambda) == 0 || lambda[0] <= 0 {
		return Solution{X: x, Method: MethodPseudoInverse, Rank: 0}, nil
	}
	cutoff := o.rcond * lambda[0]

	m := a.r
	v := make([]float64, n)
	var (
		i, j, k, rank int
		sigma, utb    float64
		ui            float64
	)
	for k = 0; k < n; k++ {
		if lambda[k] <= cutoff || lambda[k] <= 0 {
			break // eigenvalues are sorted descending
		}
		sigma = math.Sqrt(lambda[k])
		for j = 0; j < n; j++ {
			v[j] = V.data[j*n+k]
		}
		// uₖᵀb with uₖ = A·vₖ/σₖ, accumulated row by row.
		utb = ZeroSum
		for i = 0; i < m; i++ {
			ui = ZeroSum
			for j = 0; j < n; j++ {
				ui += a.data[i*n+j] * v[j]
			}
			utb += (ui / sigma) * b[i]
		}
		for j = 0; j < n; j++ {
			x[j] += v[j] * utb / sigma
		}
		rank++
	}

	return Solution{X: x, Method: MethodPseudoInverse, Rank: rank}, nil
}
