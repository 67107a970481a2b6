// SPDX-License-Identifier: MIT

package diagnostics

import "errors"

var (
	// ErrDesignRequired indicates a model without a retained design matrix.
	ErrDesignRequired = errors.New("diagnostics: design matrix required")

	// ErrNilModel indicates a nil model.
	ErrNilModel = errors.New("diagnostics: nil model")
)
