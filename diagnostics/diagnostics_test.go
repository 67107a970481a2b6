// SPDX-License-Identifier: MIT
package diagnostics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvstat/diagnostics"
	"github.com/katalvlaran/lvstat/family"
	"github.com/katalvlaran/lvstat/glm"
	"github.com/katalvlaran/lvstat/lm"
	"github.com/katalvlaran/lvstat/matrix"
)

// stub is a hand-built Fitted.
type stub struct {
	X     *matrix.Dense
	resid []float64
	sigma float64
	rows  []int
}

func (s stub) DesignMatrix() *matrix.Dense { return s.X }
func (s stub) RawResiduals() []float64 { return s.resid }
func (s stub) Scale() float64 { return s.sigma }
func (s stub) ObservationRows() []int { return s.rows }

func sum(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}

	return s
}

// outlierData is y = 1 + 2x with alternating ±0.3 noise on x = 1..10, plus a
// far point x = 20, y = 60 (line predicts 41). Input row 0 is missing.
func outlierData() (y, x []float64) {
	y = []float64{math.NaN()}
	x = []float64{0}
	for i := 1; i <= 10; i++ {
		e := 0.3
		if i%2 == 0 {
			e = -0.3
		}
		x = append(x, float64(i))
		y = append(y, 1+2*float64(i)+e)
	}
	x = append(x, 20)
	y = append(y, 60)

	return y, x
}

func TestCompute_LinearModelFormulas(t *testing.T) {
	t.Parallel()
	y, x := outlierData()
	m, err := lm.Fit(y, [][]float64{x})
	require.NoError(t, err)
	require.Equal(t, 11, m.N)

	r, err := diagnostics.Compute(m)
	require.NoError(t, err)
	require.Len(t, r.Leverage, 11)
	require.InDelta(t, float64(m.P), sum(r.Leverage), 1e-9)

	// simple regression: h = 1/n + (x−x̄)²/Sxx
	xs := x[1:]
	var mean, sxx float64
	for _, v := range xs {
		mean += v
	}
	mean /= float64(len(xs))
	for _, v := range xs {
		sxx += (v - mean) * (v - mean)
	}

	n, p := float64(m.N), float64(m.P)
	for i, xi := range xs {
		h := 1/n + (xi-mean)*(xi-mean)/sxx
		require.InDelta(t, h, r.Leverage[i], 1e-10, "leverage %d", i)

		e := m.Residuals[i]
		stud := e / (m.Sigma * math.Sqrt(1-h))
		require.InDelta(t, e/m.Sigma, r.Standardized[i], 1e-10)
		require.InDelta(t, stud, r.Studentized[i], 1e-10)
		require.InDelta(t, stud*stud*h/(p*(1-h)), r.CooksDistance[i], 1e-10)
		require.InDelta(t, stud*math.Sqrt(h/(1-h)), r.DFFITS[i], 1e-10)
		require.Len(t, r.DFBETAS[i], 2)
	}

	require.Equal(t, 2*p/n, r.Thresholds.Leverage)
	require.Equal(t, 4/n, r.Thresholds.CooksDistance)
	require.InDelta(t, 2*math.Sqrt(p/n), r.Thresholds.DFFITS, 1e-15)
	require.InDelta(t, 2/math.Sqrt(n), r.Thresholds.DFBETAS, 1e-15)
}

func TestCompute_FlagsOutlierWithInputRow(t *testing.T) {
	t.Parallel()
	y, x := outlierData()
	m, err := lm.Fit(y, [][]float64{x})
	require.NoError(t, err)

	r, err := diagnostics.Compute(m)
	require.NoError(t, err)
	require.Contains(t, r.Flagged(), 11)

	var far diagnostics.Flag
	for _, f := range r.Flags {
		if f.Row == 11 {
			far = f
		}
	}
	require.Equal(t, 10, far.Index)
	require.Contains(t, far.Reasons, diagnostics.ReasonLeverage)
	require.Contains(t, far.Reasons, diagnostics.ReasonCooksDistance)
	require.Contains(t, far.Reasons, diagnostics.ReasonDFFITS)
	require.Greater(t, r.CooksDistance[10], 1.0)
}

func TestCompute_ExactFitHasNoResidualMeasures(t *testing.T) {
	t.Parallel()
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 3 - v
	}
	m, err := lm.Fit(y, [][]float64{x})
	require.NoError(t, err)

	r, err := diagnostics.Compute(stub{X: m.DesignMatrix(), resid: m.Residuals, sigma: 0, rows: m.Rows})
	require.NoError(t, err)
	require.InDelta(t, 2, sum(r.Leverage), 1e-9)
	for i := range x {
		require.Zero(t, r.Studentized[i])
		require.Zero(t, r.CooksDistance[i])
		require.Zero(t, r.DFFITS[i])
		require.Equal(t, []float64{0, 0}, r.DFBETAS[i])
	}
	require.Empty(t, r.Flags)
}

func TestCompute_FullLeverageRow(t *testing.T) {
	t.Parallel()
	// the indicator column puts row 4 exactly on the fit: h = 1
	X, err := matrix.NewFromColumns([][]float64{
		{1, 1, 1, 1, 1},
		{0, 0, 0, 0, 1},
	})
	require.NoError(t, err)
	r, err := diagnostics.Compute(stub{X: X, resid: []float64{1, -1, 1, -1, 0}, sigma: 1})
	require.NoError(t, err)
	require.InDelta(t, 1, r.Leverage[4], 1e-12)
	require.InDelta(t, 0.25, r.Leverage[0], 1e-12)
	require.Zero(t, r.Studentized[4])
	require.Zero(t, r.CooksDistance[4])
	require.Zero(t, r.DFFITS[4])

	var found bool
	for _, f := range r.Flags {
		if f.Row != 4 {
			require.NotContains(t, f.Reasons, diagnostics.ReasonLeverage)
			continue
		}
		found = true
		require.Equal(t, 4, f.Index)
		require.Equal(t, []diagnostics.Reason{diagnostics.ReasonLeverage}, f.Reasons)
	}
	require.True(t, found)
}

func TestCompute_GLM(t *testing.T) {
	t.Parallel()
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	counts := []float64{1, 0, 2, 3, 2, 5, 4, 7, 9, 8}
	m, err := glm.Fit(counts, [][]float64{x}, glm.WithFamily(family.Poisson()))
	require.NoError(t, err)

	r, err := diagnostics.Compute(m)
	require.NoError(t, err)
	require.InDelta(t, 2, sum(r.Leverage), 1e-6)
	for i, e := range m.PearsonResiduals {
		require.InDelta(t, e, r.Standardized[i], 1e-12)
		require.GreaterOrEqual(t, r.Leverage[i], 0.0)
		require.LessOrEqual(t, r.Leverage[i], 1.0)
	}
}

func TestCompute_Errors(t *testing.T) {
	t.Parallel()
	_, err := diagnostics.Compute(nil)
	require.ErrorIs(t, err, diagnostics.ErrNilModel)

	_, err = diagnostics.Compute(stub{})
	require.ErrorIs(t, err, diagnostics.ErrDesignRequired)
	require.EqualError(t, err, "diagnostics: design matrix required")

	for name, m := range map[string]diagnostics.Fitted{
		"zero lm":       &lm.Model{},
		"typed nil lm":  (*lm.Model)(nil),
		"zero glm":      &glm.Model{},
		"typed nil glm": (*glm.Model)(nil),
	} {
		t.Run(name, func(t *testing.T) {
			require.NotPanics(t, func() {
				_, err := diagnostics.Compute(m)
				require.ErrorIs(t, err, diagnostics.ErrDesignRequired)
			})
		})
	}

	X, err := matrix.NewFromColumns([][]float64{{1, 1, 1}})
	require.NoError(t, err)
	_, err = diagnostics.Compute(stub{X: X, resid: []float64{1}, sigma: 1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	dup, err := matrix.NewFromColumns([][]float64{{1, 2, 3}, {1, 2, 3}})
	require.NoError(t, err)
	_, err = diagnostics.Compute(stub{X: dup, resid: []float64{0, 0, 0}, sigma: 1})
	require.ErrorIs(t, err, matrix.ErrSingular)
}
