// SPDX-License-Identifier: MIT

package glm

// State is the phase of an IRWLS fit.
type State int

const (
	// StateInitializing: starting mu and eta are being seeded.
	StateInitializing State = iota
	// StateIterating: reweighted least-squares updates are running.
	StateIterating
	// StateConverged: the deviance change fell below the tolerance.
	StateConverged
	// StateMaxIterReached: maxit iterations ran without convergence.
	StateMaxIterReached
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateIterating:
		return "iterating"
	case StateConverged:
		return "converged"
	case StateMaxIterReached:
		return "max_iter_reached"
	default:
		return "unknown"
	}
}

// PredictType selects the scale of Predict.
type PredictType int

const (
	// PredictLink returns the linear predictor η = Xβ.
	PredictLink PredictType = iota
	// PredictResponse returns μ = g⁻¹(η).
	PredictResponse
)
