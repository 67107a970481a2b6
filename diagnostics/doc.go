// SPDX-License-Identifier: MIT

// Package diagnostics computes per-observation influence measures for a
// fitted regression model: leverage (hat values), standardized and
// studentized residuals, Cook's distance, DFFITS and DFBETAS, and flags the
// observations that cross the conventional thresholds
//
//	leverage  > 2p/n
//	Cook's D  > 4/n
//	|DFFITS|  > 2·√(p/n)
//	|DFBETAS| > 2/√n
//
// Any model exposing its design matrix, residuals and residual scale can be
// inspected; *lm.Model and *glm.Model both qualify. A Report never mutates the
// model it was computed from.
package diagnostics
