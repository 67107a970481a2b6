// SPDX-License-Identifier: MIT

package config

import "errors"

var (
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrKindMismatch indicates options requested for a different model kind.
	ErrKindMismatch = errors.New("config: model kind mismatch")
)
