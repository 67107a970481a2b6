// SPDX-License-Identifier: MIT

// Package glm fits generalized linear models by Iteratively Reweighted Least
// Squares over the families of package family.
//
// A fit moves through the states Initializing → Iterating → Converged or
// MaxIterReached. Each iteration forms working weights
// wᵢ = priorᵢ·(dμ/dη)²/max(V(μᵢ), 1e-10) and working responses
// zᵢ = ηᵢ + (yᵢ−μᵢ)/(dμ/dη), solves the √w-scaled least-squares problem with
// matrix.LeastSquares, and recomputes η, μ and the deviance. It stops when
// |dev − devₚᵣₑᵥ| < ε·(0.1 + |dev|). Reaching maxit is not an error: the model
// is returned with Converged == false.
//
//	m, err := glm.Fit(y, [][]float64{x}, glm.WithFamily(family.Binomial()))
//	if err != nil { ... }
//	if !m.Converged { ... }
//	p, _ := m.Predict([][]float64{newX}, glm.PredictResponse)
package glm
