// SPDX-License-Identifier: MIT

package lm

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvstat/design"
	"github.com/katalvlaran/lvstat/dist"
	"github.com/katalvlaran/lvstat/matrix"
)

// Model is a fitted linear model. It is immutable once returned.
type Model struct {
	// Coefficients are the least-squares estimates, in Names order.
	Coefficients []float64
	// Names are "(Intercept)" (when present) then "x1" … "xk".
	Names []string

	// Residuals and FittedValues have one entry per retained observation.
	Residuals    []float64
	FittedValues []float64

	// StdErrors, TValues and PValues are per coefficient; NaN when RankDeficient.
	StdErrors []float64
	TValues   []float64
	PValues   []float64

	// N is the retained observation count, P the parameter count, Rank the numerical rank.
	N, P, Rank int
	// DFResidual = N − Rank, DFModel = Rank − intercept, DFTotal = N − intercept.
	DFResidual, DFModel, DFTotal int

	// RSS is Σ residual²; TSS is the total sum of squares (centered with an intercept).
	RSS, TSS float64
	// Sigma is the residual standard error √(RSS/DFResidual).
	Sigma float64
	// RSquared and AdjRSquared are the coefficient of determination and its df adjustment.
	RSquared, AdjRSquared float64
	// FStatistic tests all non-intercept coefficients jointly; FPValue is its upper tail.
	FStatistic, FPValue float64

	// LogLik is the Gaussian log-likelihood at the ML variance; AIC and BIC count Rank+1 parameters.
	LogLik, AIC, BIC float64

	// Method is the least-squares tier that produced Coefficients.
	Method matrix.Method
	// RankDeficient is set when the pseudoinverse fallback was used.
	RankDeficient bool
	// Intercept reports whether the design has a leading column of ones.
	Intercept bool
	// Rows maps each retained observation to its index in the caller's input.
	Rows []int

	frame *design.Frame
	// cov is the unscaled (XᵀX)⁻¹; nil when RankDeficient.
	cov *matrix.Dense
}

// Fit fits y on the predictor columns by ordinary least squares.
// Implementation:
//   - Stage 1: design.Build (listwise deletion, intercept, n > p guard).
//   - Stage 2: matrix.LeastSquares; a singular QR falls back to the minimum-norm solution.
//   - Stage 3: residual statistics, inference from sigma²·(XᵀX)⁻¹, likelihood criteria.
//
// Errors:
//   - design.ErrInsufficientObservations (naming n and p), design.ErrNonFinite,
//     design.ErrEmptyModel, matrix.ErrDimensionMismatch.
func Fit(y []float64, predictors [][]float64, opts ...Option) (*Model, error) {
	o := gatherOptions(opts...)
	f, err := design.Build(y, predictors, o.intercept, nil)
	if err != nil {
		return nil, fmt.Errorf("lm: %w", err)
	}

	return fitFrame(f, o)
}

func fitFrame(f *design.Frame, o Options) (*Model, error) {
	n, p := f.N(), f.P()
	sol, err := matrix.LeastSquares(f.X, f.Y, o.solver...)
	if err != nil {
		return nil, fmt.Errorf("lm: %w", err)
	}
	fitted, err := matrix.MatVec(f.X, sol.X)
	if err != nil {
		return nil, fmt.Errorf("lm: %w", err)
	}
	resid := make([]float64, n)
	floats.SubTo(resid, f.Y, fitted)

	icpt := 0
	if f.Intercept {
		icpt = 1
	}
	m := &Model{
		Coefficients: sol.X,
		Names:        f.Names,
		Residuals:    resid,
		FittedValues: fitted,
		N:            n,
		P:            p,
		Rank:         sol.Rank,
		DFResidual:   n - sol.Rank,
		DFModel:      sol.Rank - icpt,
		DFTotal:      n - icpt,
		Method:       sol.Method,
		Intercept:    f.Intercept,
		Rows:         f.Rows,
		frame:        f,
	}

	m.RSS = floats.Dot(resid, resid)
	if f.Intercept {
		mean := floats.Sum(f.Y) / float64(n)
		for _, v := range f.Y {
			m.TSS += (v - mean) * (v - mean)
		}
	} else {
		m.TSS = floats.Dot(f.Y, f.Y)
	}

	dfRes, dfModel := float64(m.DFResidual), float64(m.DFModel)
	m.RSquared = 1 - m.RSS/m.TSS
	m.AdjRSquared = 1 - (m.RSS/dfRes)/(m.TSS/float64(m.DFTotal))
	m.Sigma = math.Sqrt(m.RSS / dfRes)
	m.FStatistic, m.FPValue = math.NaN(), math.NaN()
	if m.DFModel > 0 {
		m.FStatistic = ((m.TSS - m.RSS) / dfModel) / (m.RSS / dfRes)
		m.FPValue = dist.FSurvival(m.FStatistic, dfModel, dfRes)
	}

	nf := float64(n)
	m.LogLik = 0.5 * -nf * (math.Log(2*math.Pi) + 1 - math.Log(nf) + math.Log(m.RSS))
	k := float64(m.Rank + 1)
	m.AIC = -2*m.LogLik + 2*k
	m.BIC = -2*m.LogLik + math.Log(nf)*k

	m.StdErrors = nanSlice(p)
	m.TValues = nanSlice(p)
	m.PValues = nanSlice(p)
	if sol.Method == matrix.MethodPseudoInverse {
		m.RankDeficient = true
		o.logger.Warn("lm: singular design, using minimum-norm solution",
			slog.Int("n", n), slog.Int("p", p), slog.Int("rank", sol.Rank))
		return m, nil
	}

	cov, err := matrix.InverseGram(f.X, o.solver...)
	if err != nil {
		// QR accepted the design but the cross-product is numerically singular.
		m.RankDeficient = true
		o.logger.Warn("lm: (XᵀX)⁻¹ unavailable, inference omitted",
			slog.Int("n", n), slog.Int("p", p), slog.String("error", err.Error()))
		return m, nil
	}
	m.cov = cov
	diag, _ := matrix.Diag(cov)
	for j := 0; j < p; j++ {
		m.StdErrors[j] = m.Sigma * math.Sqrt(diag[j])
		m.TValues[j] = m.Coefficients[j] / m.StdErrors[j]
		m.PValues[j] = dist.StudentsTTwoSided(m.TValues[j], dfRes)
	}
	o.logger.Debug("lm: fit complete",
		slog.Int("n", n), slog.Int("p", p), slog.String("method", sol.Method.String()),
		slog.Float64("rss", m.RSS))

	return m, nil
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}

// DesignMatrix returns the retained n×p design, or nil for a model that was
// not produced by Fit. Callers must not mutate it.
func (m *Model) DesignMatrix() *matrix.Dense {
	if m == nil || m.frame == nil {
		return nil
	}

	return m.frame.X
}

// RawResiduals returns the response residuals y − ŷ.
func (m *Model) RawResiduals() []float64 { return m.Residuals }

// Scale returns the residual standard error.
func (m *Model) Scale() float64 { return m.Sigma }

// ObservationRows maps retained observations to input indices.
func (m *Model) ObservationRows() []int { return m.Rows }

// Response returns the retained response values.
func (m *Model) Response() []float64 {
	if m == nil || m.frame == nil {
		return nil
	}

	return m.frame.Y
}

// CovUnscaled returns (XᵀX)⁻¹, or nil when the model is rank-deficient.
func (m *Model) CovUnscaled() *matrix.Dense { return m.cov }
