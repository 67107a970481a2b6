// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Row broadcast scaling (the √w weighting of weighted least squares).
//   - Tolerance comparison of two matrices (numpy-style allclose).
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1) over row-major buffers.

package matrix

import (
	"math"
)

const (
	opScaleRows = "ScaleRows"
	opAllClose  = "AllClose"
)

// ScaleRows computes out[i,j] = X[i,j] * scale[i].
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(scale) != rows).
// Complexity: Time O(r*c), Space O(r*c).
func ScaleRows(X Matrix, scale []float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	if err := ValidateVecLen(scale, X.Rows()); err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	d, err := toDense(X)
	if err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}
	out, err := NewDense(d.r, d.c)
	if err != nil {
		return nil, matrixErrorf(opScaleRows, err)
	}

	var i, j, base int
	var sf float64
	for i = 0; i < d.r; i++ {
		base = i * d.c
		sf = scale[i]
		for j = 0; j < d.c; j++ {
			out.data[base+j] = d.data[base+j] * sf
		}
	}

	return out, nil
}

// AllClose reports whether |a−b| ≤ atol + rtol·|b| holds element-wise.
// Negative tolerances are taken by absolute value.
//
// Errors: ErrNaNInf (non-finite tolerance), ErrNilMatrix, ErrDimensionMismatch.
// Complexity: Time O(r*c), Space O(1) for Dense inputs.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	da, err := toDense(a)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	db, err := toDense(b)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	for k := range da.data {
		if math.Abs(da.data[k]-db.data[k]) > atol+rtol*math.Abs(db.data[k]) {
			return false, nil // early exit on first violation
		}
	}

	return true, nil
}
