// SPDX-License-Identifier: MIT

package glm

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvstat/design"
	"github.com/katalvlaran/lvstat/dist"
	"github.com/katalvlaran/lvstat/matrix"
)

// summarize fills residuals, null deviance, dispersion, information criteria
// and coefficient inference from the final IRWLS state.
func (m *Model) summarize(o Options) {
	fam := m.Family
	y, mu, pw := m.frame.Y, m.FittedValues, m.PriorWeights
	n := m.N

	m.ResponseResiduals = make([]float64, n)
	m.PearsonResiduals = make([]float64, n)
	m.DevianceResiduals = make([]float64, n)
	floats.SubTo(m.ResponseResiduals, y, mu)
	var d float64
	for i, r := range m.ResponseResiduals {
		m.PearsonResiduals[i] = r * math.Sqrt(pw[i]) / math.Sqrt(fam.Variance(mu[i]))
		d = math.Sqrt(math.Max(fam.DevResid(y[i], mu[i], pw[i]), 0))
		if r < 0 {
			d = -d
		}
		m.DevianceResiduals[i] = d
	}

	// Null model: weighted mean with an intercept, η = 0 without one.
	var mu0 float64
	if m.Intercept {
		mu0 = floats.Dot(pw, y) / floats.Sum(pw)
	} else {
		mu0 = fam.LinkInv(0)
	}
	if !fam.ValidMu(mu0) {
		mu0 = fam.ClampMu(mu0)
	}
	for i := range y {
		m.NullDeviance += fam.DevResid(y[i], mu0, pw[i])
	}

	dfRes := float64(m.DFResidual)
	m.Dispersion = m.Deviance / dfRes
	m.TTest = fam.EstimatesDispersion()
	m.SummaryDispersion = 1
	if m.TTest {
		m.SummaryDispersion = floats.Dot(m.PearsonResiduals, m.PearsonResiduals) / dfRes
	}

	aicTerm := fam.AIC(y, mu, pw, m.Deviance)
	k := float64(m.Rank)
	if m.TTest {
		k++
	}
	m.AIC = aicTerm + 2*float64(m.Rank)
	m.LogLik = k - m.AIC/2
	m.BIC = -2*m.LogLik + math.Log(float64(n))*k

	m.LRStatistic, m.LRPValue = math.NaN(), math.NaN()
	if df := float64(m.DFNull - m.DFResidual); df > 0 {
		m.LRStatistic = math.Max(m.NullDeviance-m.Deviance, 0) / m.SummaryDispersion
		m.LRPValue = dist.ChiSquaredSurvival(m.LRStatistic, df)
	}

	p := m.P
	m.StdErrors = nanSlice(p)
	m.Statistics = nanSlice(p)
	m.PValues = nanSlice(p)
	if m.RankDeficient || m.Rank < p {
		return
	}
	cov, err := matrix.InverseGram(m.weighted, o.solver...)
	if err != nil {
		m.RankDeficient = true
		o.logger.Warn("glm: (XᵀWX)⁻¹ unavailable, inference omitted", slog.String("error", err.Error()))
		return
	}
	diag, _ := matrix.Diag(cov)
	for j := 0; j < p; j++ {
		m.StdErrors[j] = math.Sqrt(m.SummaryDispersion * diag[j])
		m.Statistics[j] = m.Coefficients[j] / m.StdErrors[j]
		if m.TTest {
			m.PValues[j] = dist.StudentsTTwoSided(m.Statistics[j], dfRes)
		} else {
			m.PValues[j] = dist.NormalTwoSided(m.Statistics[j])
		}
	}
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}

// Predict applies the fitted coefficients to new predictor columns, returning
// η (PredictLink) or μ (PredictResponse). No refitting occurs.
//
// Errors: ErrNoPredictors, ErrPredictorCount, ErrPredictType,
// design.ErrMissingValue, design.ErrNonFinite, matrix.ErrDimensionMismatch.
func (m *Model) Predict(predictors [][]float64, typ PredictType) ([]float64, error) {
	if typ != PredictLink && typ != PredictResponse {
		return nil, fmt.Errorf("glm: %d: %w", int(typ), ErrPredictType)
	}
	if m.frame.Predictors == 0 {
		return nil, ErrNoPredictors
	}
	if len(predictors) != m.frame.Predictors {
		return nil, fmt.Errorf("glm: got %d predictors, fit has %d: %w",
			len(predictors), m.frame.Predictors, ErrPredictorCount)
	}
	X, err := design.Matrix(predictors, m.Intercept)
	if err != nil {
		return nil, fmt.Errorf("glm: %w", err)
	}
	eta, err := matrix.MatVec(X, m.Coefficients)
	if err != nil {
		return nil, fmt.Errorf("glm: %w", err)
	}
	if typ == PredictResponse {
		for i, e := range eta {
			eta[i] = m.Family.LinkInv(e)
		}
	}

	return eta, nil
}

// Design returns the retained n×p design matrix, or nil for a model that was
// not produced by Fit. Callers must not mutate it.
func (m *Model) Design() *matrix.Dense {
	if m == nil || m.frame == nil {
		return nil
	}

	return m.frame.X
}

// Response returns the retained response values.
func (m *Model) Response() []float64 {
	if m == nil || m.frame == nil {
		return nil
	}

	return m.frame.Y
}

// DesignMatrix returns √W·X of the final iteration, so that leverage computed
// from it is the diagonal of the GLM hat matrix. Nil when the model was not
// produced by Fit.
func (m *Model) DesignMatrix() *matrix.Dense {
	if m == nil {
		return nil
	}

	return m.weighted
}

// RawResiduals returns the Pearson residuals.
func (m *Model) RawResiduals() []float64 { return m.PearsonResiduals }

// Scale returns √φ, the square root of SummaryDispersion.
func (m *Model) Scale() float64 { return math.Sqrt(m.SummaryDispersion) }

// ObservationRows maps retained observations to input indices.
func (m *Model) ObservationRows() []int { return m.Rows }
