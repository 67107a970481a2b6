// SPDX-License-Identifier: MIT

package lm

import (
	"fmt"

	"github.com/katalvlaran/lvstat/design"
	"github.com/katalvlaran/lvstat/dist"
	"github.com/katalvlaran/lvstat/matrix"
)

// Interval is a two-sided confidence interval.
type Interval struct {
	Lower, Upper float64
}

// Predict applies the fitted coefficients to new predictor columns.
// No refitting occurs.
//
// Errors: ErrNoPredictors, ErrPredictorCount, design.ErrMissingValue,
// design.ErrNonFinite, matrix.ErrDimensionMismatch.
func (m *Model) Predict(predictors [][]float64) ([]float64, error) {
	if m.frame.Predictors == 0 {
		return nil, ErrNoPredictors
	}
	if len(predictors) != m.frame.Predictors {
		return nil, fmt.Errorf("lm: got %d predictors, fit has %d: %w",
			len(predictors), m.frame.Predictors, ErrPredictorCount)
	}
	X, err := design.Matrix(predictors, m.Intercept)
	if err != nil {
		return nil, fmt.Errorf("lm: %w", err)
	}
	out, err := matrix.MatVec(X, m.Coefficients)
	if err != nil {
		return nil, fmt.Errorf("lm: %w", err)
	}

	return out, nil
}

// ConfInt returns per-coefficient intervals β ± t(1−α/2, DFResidual)·SE at the
// given level. Bounds are NaN when the model is rank-deficient.
func (m *Model) ConfInt(level float64) ([]Interval, error) {
	if !(level > 0 && level < 1) {
		return nil, fmt.Errorf("lm: level %g: %w", level, ErrInvalidLevel)
	}
	q := dist.StudentsTQuantile(1-(1-level)/2, float64(m.DFResidual))
	out := make([]Interval, len(m.Coefficients))
	for j, b := range m.Coefficients {
		half := q * m.StdErrors[j]
		out[j] = Interval{Lower: b - half, Upper: b + half}
	}

	return out, nil
}
