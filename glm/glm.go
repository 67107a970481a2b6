// SPDX-License-Identifier: MIT

package glm

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/lvstat/design"
	"github.com/katalvlaran/lvstat/family"
	"github.com/katalvlaran/lvstat/matrix"
)

// Numeric floors of the IRWLS working quantities.
const (
	// MinVariance bounds V(μ) from below in the working weights.
	MinVariance = 1e-10
	// MinMuEta bounds |dμ/dη| from below in the working response.
	MinMuEta = 1e-10
	// MinWeight replaces non-finite or underflowing working weights.
	MinWeight = 1e-10
	// MaxHalvings caps the step halvings that pull η back into the link domain.
	MaxHalvings = 30
)

// Model is a fitted GLM. It is immutable once returned.
type Model struct {
	// Coefficients are the IRWLS estimates, in Names order.
	Coefficients []float64
	// Names are "(Intercept)" (when present) then "x1" … "xk".
	Names []string

	// FittedValues is μ and LinearPredictors is η, per retained observation.
	FittedValues     []float64
	LinearPredictors []float64

	// ResponseResiduals y−μ, PearsonResiduals (y−μ)√w/√V(μ) and
	// DevianceResiduals sign(y−μ)·√dᵢ.
	ResponseResiduals []float64
	PearsonResiduals  []float64
	DevianceResiduals []float64

	// PriorWeights are the retained prior weights; WorkingWeights are those of the final solve.
	PriorWeights   []float64
	WorkingWeights []float64

	// Deviance and NullDeviance (intercept-only fit, or η = 0 without an intercept).
	Deviance, NullDeviance float64
	// N retained observations, P parameters, Rank of the final solve.
	N, P, Rank int
	// DFResidual = N − Rank; DFNull = N − intercept.
	DFResidual, DFNull int

	// Dispersion is Deviance/DFResidual.
	Dispersion float64
	// SummaryDispersion is the φ used for inference: 1 for binomial and Poisson,
	// the Pearson estimate Σ pearson²/DFResidual otherwise.
	SummaryDispersion float64

	// AIC is −2·logLik + 2·(Rank + estimated dispersion); BIC uses log(N) instead of 2.
	LogLik, AIC, BIC float64

	// LRStatistic is (NullDeviance − Deviance)/φ, chi-squared on DFNull − DFResidual
	// degrees of freedom against the null model; LRPValue is its upper tail.
	// Both are NaN when the model adds no parameters to the null model.
	LRStatistic, LRPValue float64

	// StdErrors √(φ·diag((XᵀWX)⁻¹)), Statistics β/SE and their two-sided PValues;
	// NaN when RankDeficient.
	StdErrors  []float64
	Statistics []float64
	PValues    []float64
	// TTest reports Student-t (estimated φ) rather than normal (known φ) tests.
	TTest bool

	// Converged, Iterations and State describe the IRWLS run.
	Converged  bool
	Iterations int
	State      State

	// Family is the descriptor the model was fitted with.
	Family family.Family
	// Method is the least-squares tier of the final iteration.
	Method matrix.Method
	// RankDeficient is set when any iteration used the pseudoinverse fallback.
	RankDeficient bool
	// Intercept reports whether the design has a leading column of ones.
	Intercept bool
	// Rows maps each retained observation to its index in the caller's input.
	Rows []int

	frame *design.Frame
	// weighted is √W·X of the final solve.
	weighted *matrix.Dense
}

// Fit fits y on the predictor columns by IRWLS.
// Implementation:
//   - Stage 1 (Initializing): design.Build with prior weights; family response check;
//     μ₀ from the family heuristic, η₀ = g(μ₀).
//   - Stage 2 (Iterating): working weights and response, √w scaling, matrix.LeastSquares,
//     η = Xβ (step halved toward the previous β while η leaves the link domain),
//     μ = g⁻¹(η) clamped into the family domain, deviance and convergence test.
//   - Stage 3: residuals, null deviance, dispersion, AIC and coefficient inference.
//
// Errors:
//   - design errors (insufficient observations naming n and p, non-finite values,
//     invalid weights), family.ErrInvalidDomain, matrix.ErrDimensionMismatch.
//   - ErrInvalidEta when the first step leaves the link domain or halving cannot recover.
//   - Non-convergence is reported through Model.Converged, never as an error.
func Fit(y []float64, predictors [][]float64, opts ...Option) (*Model, error) {
	o := gatherOptions(opts...)
	f, err := design.Build(y, predictors, o.intercept, o.weights)
	if err != nil {
		return nil, fmt.Errorf("glm: %w", err)
	}
	if err = o.family.CheckResponse(f.Y); err != nil {
		return nil, fmt.Errorf("glm: %w", err)
	}

	return fitFrame(f, o)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func validEta(link family.Link, eta []float64) bool {
	for _, e := range eta {
		if !link.ValidEta(e) {
			return false
		}
	}

	return true
}

// halveStep moves coef toward coefOld by halves, in place, until Xβ lies in
// the domain of link. It returns the new η and the number of halvings.
func halveStep(X *matrix.Dense, coef, coefOld []float64, link family.Link) ([]float64, int, error) {
	for h := 1; h <= MaxHalvings; h++ {
		for j := range coef {
			coef[j] = (coef[j] + coefOld[j]) / 2
		}
		eta, err := matrix.MatVec(X, coef)
		if err != nil {
			return nil, h, err
		}
		if validEta(link, eta) {
			return eta, h, nil
		}
	}

	return nil, MaxHalvings, ErrInvalidEta
}

func deviance(fam family.Family, y, mu, w []float64) float64 {
	var dev float64
	for i := range y {
		dev += fam.DevResid(y[i], mu[i], w[i])
	}

	return dev
}

func fitFrame(f *design.Frame, o Options) (*Model, error) {
	fam := o.family
	n, p := f.N(), f.P()
	y, pw := f.Y, f.W
	logger := o.logger.With(
		slog.String("family", fam.Kind().String()),
		slog.String("link", fam.Link().String()),
	)

	m := &Model{
		Names:     f.Names,
		N:         n,
		P:         p,
		Family:    fam,
		Intercept: f.Intercept,
		Rows:      f.Rows,
		State:     StateInitializing,
		frame:     f,
	}

	mu := make([]float64, n)
	eta := make([]float64, n)
	for i := range y {
		mu[i] = fam.StartMu(y[i], pw[i])
		if !fam.ValidMu(mu[i]) {
			mu[i] = fam.ClampMu(mu[i])
		}
		eta[i] = fam.LinkFun(mu[i])
	}
	devOld := deviance(fam, y, mu, pw)
	logger.Debug("glm: initialized", slog.Int("n", n), slog.Int("p", p), slog.Float64("deviance", devOld))

	var (
		sol      matrix.Solution
		weighted *matrix.Dense
		err      error
		dev      float64
		g, v, wi float64
		zi, gs   float64
		clamped  int
		halved   int
		coefOld  []float64
	)
	work := make([]float64, n)
	sw := make([]float64, n)
	zs := make([]float64, n)
	m.State = StateIterating
	for m.Iterations = 1; m.Iterations <= o.maxIter; m.Iterations++ {
		for i := range y {
			g = fam.MuEta(eta[i])
			gs = g
			if math.Abs(gs) < MinMuEta {
				gs = math.Copysign(MinMuEta, g)
			}
			v = math.Max(fam.Variance(mu[i]), MinVariance)
			wi = pw[i] * g * g / v
			if !finite(wi) || wi < MinWeight {
				wi = MinWeight
			}
			zi = eta[i] + (y[i]-mu[i])/gs
			if !finite(zi) {
				zi = eta[i]
			}
			work[i] = wi
			sw[i] = math.Sqrt(wi)
			zs[i] = zi * sw[i]
		}

		if weighted, err = matrix.ScaleRows(f.X, sw); err != nil {
			return nil, fmt.Errorf("glm: iteration %d: %w", m.Iterations, err)
		}
		if sol, err = matrix.LeastSquares(weighted, zs, o.solver...); err != nil {
			return nil, fmt.Errorf("glm: iteration %d: %w", m.Iterations, err)
		}
		if sol.Method == matrix.MethodPseudoInverse && !m.RankDeficient {
			m.RankDeficient = true
			logger.Warn("glm: singular weighted design, using minimum-norm solution",
				slog.Int("iteration", m.Iterations), slog.Int("rank", sol.Rank))
		}
		if eta, err = matrix.MatVec(f.X, sol.X); err != nil {
			return nil, fmt.Errorf("glm: iteration %d: %w", m.Iterations, err)
		}
		if !validEta(fam.Link(), eta) {
			if coefOld == nil {
				return nil, fmt.Errorf("glm: iteration %d: %w", m.Iterations, ErrInvalidEta)
			}
			if eta, halved, err = halveStep(f.X, sol.X, coefOld, fam.Link()); err != nil {
				return nil, fmt.Errorf("glm: iteration %d: %w", m.Iterations, err)
			}
			logger.Debug("glm: step halved into link domain",
				slog.Int("iteration", m.Iterations), slog.Int("halvings", halved))
		}
		coefOld = append(coefOld[:0], sol.X...)

		clamped = 0
		for i := range eta {
			mu[i] = fam.LinkInv(eta[i])
			if !fam.ValidMu(mu[i]) {
				mu[i] = fam.ClampMu(mu[i])
				eta[i] = fam.LinkFun(mu[i])
				clamped++
			}
		}
		if clamped > 0 {
			logger.Debug("glm: mu clamped into family domain",
				slog.Int("iteration", m.Iterations), slog.Int("count", clamped))
		}

		dev = deviance(fam, y, mu, pw)
		logger.Debug("glm: iteration", slog.Int("iteration", m.Iterations), slog.Float64("deviance", dev))
		if math.Abs(dev-devOld) < o.epsilon*(0.1+math.Abs(dev)) {
			m.Converged = true
			break
		}
		devOld = dev
	}
	if m.Converged {
		m.State = StateConverged
	} else {
		m.State = StateMaxIterReached
		m.Iterations = o.maxIter
		logger.Warn("glm: IRWLS did not converge",
			slog.Int("maxit", o.maxIter), slog.Float64("deviance", dev))
	}

	m.Coefficients = sol.X
	m.Rank = sol.Rank
	m.Method = sol.Method
	m.FittedValues = mu
	m.LinearPredictors = eta
	m.Deviance = dev
	m.PriorWeights = pw
	m.WorkingWeights = work
	m.weighted = weighted
	m.DFResidual = n - sol.Rank
	m.DFNull = n
	if f.Intercept {
		m.DFNull--
	}

	m.summarize(o)

	return m, nil
}
