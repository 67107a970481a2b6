// SPDX-License-Identifier: MIT

package glm

import "errors"

var (
	// ErrPredictorCount indicates new data with a different number of predictors than the fit.
	ErrPredictorCount = errors.New("glm: predictor count mismatch")

	// ErrNoPredictors indicates a prediction request on a model without predictors.
	ErrNoPredictors = errors.New("glm: model has no predictors")

	// ErrInvalidEta indicates a linear predictor outside the link domain
	// (η ≤ 0 for sqrt, η = 0 for inverse) that step halving could not repair.
	ErrInvalidEta = errors.New("glm: no valid linear predictor")

	// ErrPredictType indicates an unknown PredictType.
	ErrPredictType = errors.New("glm: unknown prediction type")
)
