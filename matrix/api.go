// SPDX-License-Identifier: MIT
// Package matrix: convenience facades over the kernels.
//
// Purpose:
//   - Keep call sites short for the frequent regression compositions
//     (Xβ, (XᵀX)⁻¹, vector norms of residual-like quantities).

package matrix

import "math"

const opInverseGram = "InverseGram"

// InverseGram returns (AᵀA)⁻¹, the unscaled coefficient covariance of a design A.
// Errors: ErrNilMatrix, ErrSingular (rank-deficient A).
// Complexity: Time O(r·c² + c³), Space O(c²).
func InverseGram(a Matrix, opts ...Option) (*Dense, error) {
	g, err := Gram(a)
	if err != nil {
		return nil, matrixErrorf(opInverseGram, err)
	}
	inv, err := Inverse(g, opts...)
	if err != nil {
		return nil, matrixErrorf(opInverseGram, err)
	}

	return inv, nil
}

// Diag returns a copy of the main diagonal of m (length min(r, c)).
// Errors: ErrNilMatrix.
func Diag(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	d, err := toDense(m)
	if err != nil {
		return nil, err
	}
	k := d.r
	if d.c < k {
		k = d.c
	}
	out := make([]float64, k)
	for i := 0; i < k; i++ {
		out[i] = d.data[i*d.c+i]
	}

	return out, nil
}

// FrobeniusNorm returns sqrt(Σ m[i,j]²).
// Errors: ErrNilMatrix.
func FrobeniusNorm(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, err
	}
	d, err := toDense(m)
	if err != nil {
		return 0, err
	}
	acc := ZeroSum
	for _, v := range d.data {
		acc += v * v
	}

	return math.Sqrt(acc), nil
}
