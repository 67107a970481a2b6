// SPDX-License-Identifier: MIT

// Package lm fits linear models by ordinary least squares with R-compatible
// summary statistics.
//
// Fit builds the design frame (listwise deletion of missing values, optional
// intercept, n > p guard), solves it with matrix.LeastSquares (Householder QR,
// or the minimum-norm pseudoinverse when the design is rank-deficient) and
// derives residuals, R², adjusted R², sigma, coefficient standard errors with
// t-tests, the overall F-test, log-likelihood, AIC and BIC.
//
//	m, err := lm.Fit(y, [][]float64{x1, x2})
//	if err != nil { ... }
//	fmt.Println(m.Names, m.Coefficients, m.RSquared)
//	ci, _ := m.ConfInt(0.95)
//	yhat, _ := m.Predict([][]float64{newX1, newX2})
//
// A rank-deficient design still yields coefficients (the minimum-norm
// solution) but RankDeficient is set and the inference fields that depend on
// (XᵀX)⁻¹ are NaN, matching R's NA.
//
// Anova fits the sequence of nested models concurrently and returns the
// sequential (type I) sums of squares table.
package lm
