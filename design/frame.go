// SPDX-License-Identifier: MIT

package design

import (
	"fmt"
	"math"
	"strconv"

	"github.com/katalvlaran/lvstat/matrix"
)

// InterceptName is the coefficient name of the constant column.
const InterceptName = "(Intercept)"

// Missing is the missing-value sentinel accepted in responses, predictors and weights.
var Missing = math.NaN()

// IsMissing reports whether v is the missing-value sentinel.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// Frame is the filtered data of one fit. It is read-only after Build.
type Frame struct {
	// Y holds the retained responses, len n.
	Y []float64
	// X is the n×p design matrix.
	X *matrix.Dense
	// W holds the retained prior weights, len n (all 1 when none were supplied).
	W []float64
	// Rows maps each retained observation to its index in the caller's input.
	Rows []int
	// Names are the coefficient names, len p.
	Names []string
	// Intercept reports whether column 0 is the constant 1.
	Intercept bool
	// Predictors is the number of predictor columns k (p = k + intercept).
	Predictors int
}

// N is the retained observation count.
func (f *Frame) N() int { return len(f.Y) }

// P is the parameter count (design columns).
func (f *Frame) P() int { return f.X.Cols() }

// Column returns a copy of the filtered values of predictor j (0-based).
func (f *Frame) Column(j int) ([]float64, error) {
	off := 0
	if f.Intercept {
		off = 1
	}

	return f.X.Col(j + off)
}

// Names returns the coefficient names for k predictors.
func Names(k int, intercept bool) []string {
	out := make([]string, 0, k+1)
	if intercept {
		out = append(out, InterceptName)
	}
	for j := 1; j <= k; j++ {
		out = append(out, "x"+strconv.Itoa(j))
	}

	return out
}

// Build assembles the design frame of one fit.
// Implementation:
//   - Stage 1: check that every predictor (and weights, when non-nil) has len(y) entries.
//   - Stage 2: keep row i only when y[i], every predictors[j][i] and weights[i] are
//     present; reject ±Inf anywhere and non-positive weights on kept rows.
//   - Stage 3: require n > p, then fill the n×p design (intercept column first).
//
// Errors:
//   - matrix.ErrDimensionMismatch on ragged input.
//   - ErrNonFinite, ErrInvalidWeight naming the offending input row.
//   - ErrEmptyModel when p == 0; ErrInsufficientObservations naming n and p.
func Build(y []float64, predictors [][]float64, intercept bool, weights []float64) (*Frame, error) {
	m := len(y)
	for j, col := range predictors {
		if len(col) != m {
			return nil, fmt.Errorf("design: predictor x%d has %d values, response has %d: %w",
				j+1, len(col), m, matrix.ErrDimensionMismatch)
		}
	}
	if weights != nil && len(weights) != m {
		return nil, fmt.Errorf("design: %d weights for %d observations: %w", len(weights), m, matrix.ErrDimensionMismatch)
	}

	k := len(predictors)
	p := k
	if intercept {
		p++
	}
	if p == 0 {
		return nil, ErrEmptyModel
	}

	rows := make([]int, 0, m)
	var i, j int
	var v float64
scan:
	for i = 0; i < m; i++ {
		if IsMissing(y[i]) {
			continue
		}
		if math.IsInf(y[i], 0) {
			return nil, fmt.Errorf("design: response row %d: %w", i, ErrNonFinite)
		}
		for j = 0; j < k; j++ {
			v = predictors[j][i]
			if IsMissing(v) {
				continue scan
			}
			if math.IsInf(v, 0) {
				return nil, fmt.Errorf("design: predictor x%d row %d: %w", j+1, i, ErrNonFinite)
			}
		}
		if weights != nil {
			v = weights[i]
			if IsMissing(v) {
				continue
			}
			if math.IsInf(v, 0) {
				return nil, fmt.Errorf("design: weight row %d: %w", i, ErrNonFinite)
			}
			if v <= 0 {
				return nil, fmt.Errorf("design: weight row %d = %g: %w", i, v, ErrInvalidWeight)
			}
		}
		rows = append(rows, i)
	}

	n := len(rows)
	if n <= p {
		return nil, fmt.Errorf("design: n = %d, p = %d: %w", n, p, ErrInsufficientObservations)
	}

	X, err := matrix.NewDense(n, p)
	if err != nil {
		return nil, fmt.Errorf("design: %w", err)
	}
	f := &Frame{
		Y:          make([]float64, n),
		X:          X,
		W:          make([]float64, n),
		Rows:       rows,
		Names:      Names(k, intercept),
		Intercept:  intercept,
		Predictors: k,
	}
	off := 0
	if intercept {
		off = 1
	}
	for r, src := range rows {
		f.Y[r] = y[src]
		f.W[r] = 1
		if weights != nil {
			f.W[r] = weights[src]
		}
		if intercept {
			_ = X.Set(r, 0, 1) // in range, finite
		}
		for j = 0; j < k; j++ {
			_ = X.Set(r, j+off, predictors[j][src])
		}
	}

	return f, nil
}

// Matrix builds a design matrix for new predictor values, as used by prediction.
// Missing values are not allowed here.
//
// Errors: matrix.ErrDimensionMismatch (ragged or empty columns), ErrMissingValue,
// ErrNonFinite, ErrEmptyModel.
func Matrix(predictors [][]float64, intercept bool) (*matrix.Dense, error) {
	k := len(predictors)
	p := k
	if intercept {
		p++
	}
	if p == 0 {
		return nil, ErrEmptyModel
	}
	if k == 0 {
		return nil, fmt.Errorf("design: row count unknown without predictors: %w", matrix.ErrDimensionMismatch)
	}
	n := len(predictors[0])
	if n == 0 {
		return nil, fmt.Errorf("design: no rows: %w", matrix.ErrDimensionMismatch)
	}
	for j, col := range predictors {
		if len(col) != n {
			return nil, fmt.Errorf("design: predictor x%d has %d values, want %d: %w",
				j+1, len(col), n, matrix.ErrDimensionMismatch)
		}
	}

	X, err := matrix.NewDense(n, p)
	if err != nil {
		return nil, fmt.Errorf("design: %w", err)
	}
	off := 0
	if intercept {
		off = 1
	}
	for i := 0; i < n; i++ {
		if intercept {
			_ = X.Set(i, 0, 1)
		}
		for j := 0; j < k; j++ {
			v := predictors[j][i]
			if IsMissing(v) {
				return nil, fmt.Errorf("design: predictor x%d row %d: %w", j+1, i, ErrMissingValue)
			}
			if math.IsInf(v, 0) {
				return nil, fmt.Errorf("design: predictor x%d row %d: %w", j+1, i, ErrNonFinite)
			}
			_ = X.Set(i, j+off, v)
		}
	}

	return X, nil
}
