// SPDX-License-Identifier: MIT
// Package matrix: Gauss-Jordan inversion with partial pivoting.
//
// Intended for the small p×p cross-product matrices of regression inference
// and diagnostics; it is not a general-purpose solver.

package matrix

import (
	"fmt"
	"math"
)

const opInverse = "Inverse"

// Inverse computes A⁻¹ by Gauss-Jordan elimination on the augmented matrix [A | I].
// Implementation:
//   - Stage 1: validate square input; build the n×2n augmented buffer.
//   - Stage 2: for each column pick the row with the largest |pivot| at or below the
//     diagonal, swap it up, scale the pivot row, eliminate the column in every other row.
//   - Stage 3: copy the right half out.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square).
//   - ErrSingular when the best available |pivot| < pivot tolerance (default 1e-10).
//
// Complexity:
//   - Time O(n³), Space O(n²).
func Inverse(m Matrix, opts ...Option) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	o := gatherOptions(opts...)

	n := d.r
	w := 2 * n
	aug := make([]float64, n*w)
	var i, j, k, best int
	for i = 0; i < n; i++ {
		copy(aug[i*w:i*w+n], d.data[i*n:(i+1)*n])
		aug[i*w+n+i] = 1.0
	}

	var pivot, factor, absV, bestAbs float64
	for k = 0; k < n; k++ {
		// Partial pivoting: largest magnitude in column k, rows k..n-1.
		best, bestAbs = k, math.Abs(aug[k*w+k])
		for i = k + 1; i < n; i++ {
			absV = math.Abs(aug[i*w+k])
			if absV > bestAbs {
				best, bestAbs = i, absV
			}
		}
		if bestAbs < o.pivotTol {
			return nil, matrixErrorf(opInverse, fmt.Errorf("column %d: |pivot| = %g: %w", k, bestAbs, ErrSingular))
		}
		if best != k {
			for j = 0; j < w; j++ {
				aug[k*w+j], aug[best*w+j] = aug[best*w+j], aug[k*w+j]
			}
		}

		// Scale pivot row to a unit pivot.
		pivot = aug[k*w+k]
		for j = 0; j < w; j++ {
			aug[k*w+j] /= pivot
		}

		// Eliminate column k in every other row.
		for i = 0; i < n; i++ {
			if i == k {
				continue
			}
			factor = aug[i*w+k]
			if factor == 0 {
				continue
			}
			for j = 0; j < w; j++ {
				aug[i*w+j] -= factor * aug[k*w+j]
			}
		}
	}

	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	for i = 0; i < n; i++ {
		copy(inv.data[i*n:(i+1)*n], aug[i*w+n:(i+1)*w])
	}

	return inv, nil
}
