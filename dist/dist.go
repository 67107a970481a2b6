// SPDX-License-Identifier: MIT

package dist

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

func badDF(df float64) bool {
	return !(df > 0) || math.IsInf(df, 0)
}

// StudentsTCDF returns P(T ≤ x) for Student's t with df degrees of freedom.
func StudentsTCDF(x, df float64) float64 {
	if badDF(df) {
		return math.NaN()
	}

	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.CDF(x)
}

// StudentsTTwoSided returns the two-sided p-value 2·P(T > |t|).
func StudentsTTwoSided(t, df float64) float64 {
	if badDF(df) || math.IsNaN(t) {
		return math.NaN()
	}

	return 2 * distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Survival(math.Abs(t))
}

// StudentsTQuantile returns the p-quantile of Student's t.
func StudentsTQuantile(p, df float64) float64 {
	if badDF(df) || !(p > 0 && p < 1) {
		return math.NaN()
	}

	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Quantile(p)
}

// FCDF returns P(F ≤ x) for the F distribution with (d1, d2) degrees of freedom.
func FCDF(x, d1, d2 float64) float64 {
	if badDF(d1) || badDF(d2) {
		return math.NaN()
	}
	if x <= 0 {
		return 0
	}

	return distuv.F{D1: d1, D2: d2}.CDF(x)
}

// FSurvival returns P(F > x), the upper-tail p-value of an F test.
func FSurvival(x, d1, d2 float64) float64 {
	if badDF(d1) || badDF(d2) || math.IsNaN(x) {
		return math.NaN()
	}
	if x <= 0 {
		return 1
	}

	return distuv.F{D1: d1, D2: d2}.Survival(x)
}

// ChiSquaredCDF returns P(X ≤ x) for a chi-squared variable with k degrees of freedom.
func ChiSquaredCDF(x, k float64) float64 {
	if badDF(k) {
		return math.NaN()
	}
	if x <= 0 {
		return 0
	}

	return distuv.ChiSquared{K: k}.CDF(x)
}

// ChiSquaredSurvival returns P(X > x).
func ChiSquaredSurvival(x, k float64) float64 {
	if badDF(k) || math.IsNaN(x) {
		return math.NaN()
	}
	if x <= 0 {
		return 1
	}

	return distuv.ChiSquared{K: k}.Survival(x)
}

// NormalCDF is Φ(x), the standard normal CDF.
func NormalCDF(x float64) float64 { return distuv.UnitNormal.CDF(x) }

// NormalPDF is φ(x), the standard normal density.
func NormalPDF(x float64) float64 { return distuv.UnitNormal.Prob(x) }

// NormalQuantile is Φ⁻¹(p) for p in (0, 1).
func NormalQuantile(p float64) float64 {
	if !(p > 0 && p < 1) {
		return math.NaN()
	}

	return distuv.UnitNormal.Quantile(p)
}

// NormalTwoSided returns the two-sided p-value 2·P(Z > |z|).
func NormalTwoSided(z float64) float64 {
	if math.IsNaN(z) {
		return math.NaN()
	}

	return 2 * distuv.UnitNormal.Survival(math.Abs(z))
}

// NormalLogProb is log N(x; mu, sigma²).
func NormalLogProb(x, mu, sigma float64) float64 {
	if !(sigma > 0) {
		return math.NaN()
	}

	return distuv.Normal{Mu: mu, Sigma: sigma}.LogProb(x)
}

// BinomialLogProb is log P(K = k) for K ~ Binomial(n, p).
// Non-integer k yields -Inf.
func BinomialLogProb(k, n, p float64) float64 {
	if n < 0 || !(p >= 0 && p <= 1) {
		return math.NaN()
	}

	return distuv.Binomial{N: n, P: p}.LogProb(k)
}

// PoissonLogProb is log P(K = k) for K ~ Poisson(lambda).
// Non-integer k yields -Inf.
func PoissonLogProb(k, lambda float64) float64 {
	if !(lambda > 0) {
		return math.NaN()
	}

	return distuv.Poisson{Lambda: lambda}.LogProb(k)
}

// GammaLogProb is the log density of Gamma(shape, rate) at x.
func GammaLogProb(x, shape, rate float64) float64 {
	if !(shape > 0) || !(rate > 0) {
		return math.NaN()
	}

	return distuv.Gamma{Alpha: shape, Beta: rate}.LogProb(x)
}
