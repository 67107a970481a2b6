// SPDX-License-Identifier: MIT

package lm

import "errors"

var (
	// ErrPredictorCount indicates new data with a different number of predictors than the fit.
	ErrPredictorCount = errors.New("lm: predictor count mismatch")

	// ErrInvalidLevel indicates a confidence level outside (0, 1).
	ErrInvalidLevel = errors.New("lm: confidence level must be in (0, 1)")

	// ErrNoPredictors indicates a prediction or ANOVA request on a model without predictors.
	ErrNoPredictors = errors.New("lm: model has no predictors")
)
