// SPDX-License-Identifier: MIT

package family

import "errors"

var (
	// ErrInvalidLink indicates an unknown link name or a link the family does not allow.
	ErrInvalidLink = errors.New("family: invalid link")

	// ErrInvalidFamily indicates an unknown family name.
	ErrInvalidFamily = errors.New("family: invalid family")

	// ErrInvalidDomain indicates a response value outside the family's support,
	// e.g. a binomial proportion outside [0,1].
	ErrInvalidDomain = errors.New("family: response outside family domain")
)
