// SPDX-License-Identifier: MIT
package design_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvstat/design"
	"github.com/katalvlaran/lvstat/matrix"
)

func TestBuild_InterceptAndNames(t *testing.T) {
	f, err := design.Build(
		[]float64{1, 2, 3, 4},
		[][]float64{{10, 20, 30, 40}, {5, 6, 7, 9}},
		true, nil,
	)
	require.NoError(t, err)
	require.Equal(t, 4, f.N())
	require.Equal(t, 3, f.P())
	require.Equal(t, []string{"(Intercept)", "x1", "x2"}, f.Names)
	require.Equal(t, []int{0, 1, 2, 3}, f.Rows)
	require.Equal(t, []float64{1, 1, 1, 1}, f.W)

	row, err := f.X.Row(2)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 30, 7}, row)

	col, err := f.Column(1)
	require.NoError(t, err)
	require.Equal(t, []float64{5, 6, 7, 9}, col)
}

func TestBuild_ListwiseDeletion(t *testing.T) {
	y := []float64{1, design.Missing, 3, 4, 5, 6}
	x := []float64{1, 2, design.Missing, 4, 5, 6}
	w := []float64{1, 1, 1, design.Missing, 2, 3}

	f, err := design.Build(y, [][]float64{x}, true, w)
	require.NoError(t, err)
	require.Equal(t, []int{0, 4, 5}, f.Rows)
	require.Equal(t, []float64{1, 5, 6}, f.Y)
	require.Equal(t, []float64{1, 2, 3}, f.W)
	require.True(t, design.IsMissing(design.Missing))
	require.False(t, design.IsMissing(math.Inf(1)))
}

func TestBuild_Errors(t *testing.T) {
	for _, tc := range []struct {
		name       string
		y          []float64
		x          [][]float64
		intercept  bool
		w          []float64
		want       error
		wantSubstr string
	}{
		{"ragged", []float64{1, 2, 3}, [][]float64{{1, 2}}, true, nil, matrix.ErrDimensionMismatch, "x1"},
		{"weights length", []float64{1, 2, 3}, [][]float64{{1, 2, 3}}, true, []float64{1}, matrix.ErrDimensionMismatch, "weights"},
		{"n equals p", []float64{1, 2}, [][]float64{{1, 2}}, true, nil, design.ErrInsufficientObservations, "n = 2, p = 2"},
		{"after filtering", []float64{1, design.Missing, 3}, [][]float64{{1, 2, 3}}, true, nil, design.ErrInsufficientObservations, "n = 2"},
		{"inf response", []float64{1, math.Inf(1), 3, 4}, [][]float64{{1, 2, 3, 4}}, true, nil, design.ErrNonFinite, "row 1"},
		{"inf predictor", []float64{1, 2, 3, 4}, [][]float64{{1, 2, math.Inf(-1), 4}}, true, nil, design.ErrNonFinite, "x1 row 2"},
		{"zero weight", []float64{1, 2, 3, 4}, [][]float64{{1, 2, 3, 4}}, true, []float64{1, 0, 1, 1}, design.ErrInvalidWeight, "row 1"},
		{"empty", []float64{1, 2, 3}, nil, false, nil, design.ErrEmptyModel, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := design.Build(tc.y, tc.x, tc.intercept, tc.w)
			require.ErrorIs(t, err, tc.want)
			require.Contains(t, err.Error(), tc.wantSubstr)
		})
	}
}

func TestBuild_InterceptOnly(t *testing.T) {
	f, err := design.Build([]float64{3, 4, 5}, nil, true, nil)
	require.NoError(t, err)
	require.Equal(t, 1, f.P())
	require.Equal(t, []string{"(Intercept)"}, f.Names)
}

func TestMatrix(t *testing.T) {
	X, err := design.Matrix([][]float64{{1, 2}, {3, 4}}, true)
	require.NoError(t, err)
	r0, err := X.Row(0)
	require.NoError(t, err)
	require.Equal(t, []float64{1, 1, 3}, r0)

	_, err = design.Matrix([][]float64{{1, design.Missing}}, false)
	require.ErrorIs(t, err, design.ErrMissingValue)
	_, err = design.Matrix([][]float64{{1, 2}, {3}}, false)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = design.Matrix(nil, false)
	require.ErrorIs(t, err, design.ErrEmptyModel)
}

func TestNames(t *testing.T) {
	require.Equal(t, []string{"x1", "x2", "x3"}, design.Names(3, false))
	require.Equal(t, []string{"(Intercept)"}, design.Names(0, true))
}
