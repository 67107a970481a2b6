// SPDX-License-Identifier: MIT

package design

import "errors"

var (
	// ErrInsufficientObservations indicates n ≤ p after missing-value filtering.
	// The wrapping error names both counts.
	ErrInsufficientObservations = errors.New("design: insufficient observations")

	// ErrNonFinite indicates a ±Inf value in the response, a predictor or a weight.
	ErrNonFinite = errors.New("design: non-finite value")

	// ErrInvalidWeight indicates a prior weight that is not strictly positive.
	ErrInvalidWeight = errors.New("design: invalid weight")

	// ErrEmptyModel indicates a model with no columns (no intercept and no predictors).
	ErrEmptyModel = errors.New("design: model has no parameters")

	// ErrMissingValue indicates a missing value where one is not allowed (prediction input).
	ErrMissingValue = errors.New("design: missing value")
)
