// SPDX-License-Identifier: MIT

package family

import (
	"math"

	"github.com/katalvlaran/lvstat/dist"
)

// gaussian: V(μ) = 1, unit deviance w(y−μ)², dispersion estimated.
type gaussian struct{ linked }

func (gaussian) Kind() Kind { return KindGaussian }
func (gaussian) Variance(float64) float64 { return 1 }
func (gaussian) EstimatesDispersion() bool { return true }
func (gaussian) StartMu(y, _ float64) float64 { return y }

func (gaussian) DevResid(y, mu, w float64) float64 {
	d := y - mu
	return w * d * d
}

func (g gaussian) ValidMu(mu float64) bool {
	if !finite(mu) {
		return false
	}
	switch g.link {
	case LinkLog:
		return mu > 0
	case LinkInverse:
		return mu != 0
	}

	return true
}

func (g gaussian) ClampMu(mu float64) float64 {
	if g.link == LinkLog && !(mu > 0) {
		return PositiveEps
	}
	if g.link == LinkInverse && mu == 0 {
		return PositiveEps
	}

	return mu
}

// CheckResponse: the log link needs y > 0 and the inverse link y ≠ 0 for the
// starting values μ = y.
func (g gaussian) CheckResponse(y []float64) error {
	for i, v := range y {
		switch {
		case g.link == LinkLog && v <= 0:
			return responseError(KindGaussian, i, v, "> 0 for the log link")
		case g.link == LinkInverse && v == 0:
			return responseError(KindGaussian, i, v, "≠ 0 for the inverse link")
		}
	}

	return nil
}

// AIC uses the maximum-likelihood variance σ² = dev/n; the weighted normal
// density has variance σ²/wᵢ.
func (gaussian) AIC(y, mu, w []float64, dev float64) float64 {
	n := float64(len(y))
	s2 := dev / n
	var ll float64
	for i := range y {
		ll += dist.NormalLogProb(y[i], mu[i], math.Sqrt(s2/w[i]))
	}

	return -2*ll + 2
}

// binomial: y is a proportion of w trials, V(μ) = μ(1−μ).
type binomial struct{ linked }

func (binomial) Kind() Kind { return KindBinomial }
func (binomial) EstimatesDispersion() bool { return false }

func (binomial) Variance(mu float64) float64 { return mu * (1 - mu) }

func (binomial) StartMu(y, w float64) float64 { return (w*y + 0.5) / (w + 1) }

func (binomial) DevResid(y, mu, w float64) float64 {
	return 2 * w * (ylogy(y, mu) + ylogy(1-y, 1-mu))
}

// ValidMu accepts μ in [ProbEps, 1−ProbEps]; the logit inverse saturates
// closer to 0 and 1 than that, so separated data must be clamped here.
func (binomial) ValidMu(mu float64) bool { return finite(mu) && mu >= ProbEps && mu <= 1-ProbEps }

func (binomial) ClampMu(mu float64) float64 {
	if math.IsNaN(mu) {
		return 0.5
	}

	return math.Min(math.Max(mu, ProbEps), 1-ProbEps)
}

func (binomial) CheckResponse(y []float64) error {
	for i, v := range y {
		if v < 0 || v > 1 {
			return responseError(KindBinomial, i, v, "in [0,1]")
		}
	}

	return nil
}

// AIC treats wᵢ as the trial count mᵢ: Σ log dbinom(round(mᵢyᵢ); round(mᵢ), μᵢ).
func (binomial) AIC(y, mu, w []float64, _ float64) float64 {
	var ll float64
	for i := range y {
		ll += dist.BinomialLogProb(math.Round(w[i]*y[i]), math.Round(w[i]), mu[i])
	}

	return -2 * ll
}

// poisson: V(μ) = μ, φ = 1.
type poisson struct{ linked }

func (poisson) Kind() Kind { return KindPoisson }
func (poisson) EstimatesDispersion() bool { return false }
func (poisson) Variance(mu float64) float64 { return mu }
func (poisson) StartMu(y, _ float64) float64 { return y + 0.1 }

func (poisson) DevResid(y, mu, w float64) float64 {
	return 2 * w * (ylogy(y, mu) - (y - mu))
}

func (poisson) ValidMu(mu float64) bool { return finite(mu) && mu > 0 }

func (poisson) ClampMu(mu float64) float64 {
	if math.IsNaN(mu) || mu < PositiveEps {
		return PositiveEps
	}

	return mu
}

func (poisson) CheckResponse(y []float64) error {
	for i, v := range y {
		if v < 0 {
			return responseError(KindPoisson, i, v, ">= 0")
		}
	}

	return nil
}

// AIC is −2·Σ wᵢ·log dpois(yᵢ; μᵢ). Non-integer counts give +Inf.
func (poisson) AIC(y, mu, w []float64, _ float64) float64 {
	var ll float64
	for i := range y {
		ll += w[i] * dist.PoissonLogProb(y[i], mu[i])
	}

	return -2 * ll
}

// gamma: V(μ) = μ², dispersion estimated.
type gamma struct{ linked }

func (gamma) Kind() Kind { return KindGamma }
func (gamma) EstimatesDispersion() bool { return true }
func (gamma) Variance(mu float64) float64 { return mu * mu }
func (gamma) StartMu(y, _ float64) float64 { return y }

func (gamma) DevResid(y, mu, w float64) float64 {
	return -2 * w * (math.Log(y/mu) - (y-mu)/mu)
}

func (gamma) ValidMu(mu float64) bool { return finite(mu) && mu > 0 }

func (gamma) ClampMu(mu float64) float64 {
	if math.IsNaN(mu) || mu < PositiveEps {
		return PositiveEps
	}

	return mu
}

func (gamma) CheckResponse(y []float64) error {
	for i, v := range y {
		if v <= 0 {
			return responseError(KindGamma, i, v, "> 0")
		}
	}

	return nil
}

// AIC uses shape 1/φ and rate 1/(μφ) with φ = dev/Σw.
func (gamma) AIC(y, mu, w []float64, dev float64) float64 {
	var sw float64
	for _, v := range w {
		sw += v
	}
	disp := dev / sw
	shape := 1 / disp
	var ll float64
	for i := range y {
		ll += w[i] * dist.GammaLogProb(y[i], shape, 1/(mu[i]*disp))
	}

	return -2*ll + 2
}
