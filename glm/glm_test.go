// SPDX-License-Identifier: MIT
package glm_test

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvstat/design"
	"github.com/katalvlaran/lvstat/dist"
	"github.com/katalvlaran/lvstat/family"
	"github.com/katalvlaran/lvstat/glm"
	"github.com/katalvlaran/lvstat/lm"
	"github.com/katalvlaran/lvstat/matrix"
)

func TestGaussianMatchesLM(t *testing.T) {
	x1 := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	x2 := []float64{2.5, 1.0, 3.5, 2.0, 4.0, 6.5, 5.0, 7.5, 6.0}
	y := []float64{3.1, 3.9, 6.2, 6.8, 9.5, 12.1, 11.8, 15.2, 14.9}

	ref, err := lm.Fit(y, [][]float64{x1, x2})
	require.NoError(t, err)
	m, err := glm.Fit(y, [][]float64{x1, x2})
	require.NoError(t, err)

	require.True(t, m.Converged)
	require.Equal(t, glm.StateConverged, m.State)
	require.LessOrEqual(t, m.Iterations, 3)
	for j := range ref.Coefficients {
		require.InDelta(t, ref.Coefficients[j], m.Coefficients[j], 1e-6)
		require.InDelta(t, ref.StdErrors[j], m.StdErrors[j], 1e-6)
		require.InDelta(t, ref.PValues[j], m.PValues[j], 1e-6)
	}
	require.InDelta(t, ref.RSS, m.Deviance, 1e-9)
	require.InDelta(t, ref.TSS, m.NullDeviance, 1e-9)
	require.InDelta(t, ref.Sigma*ref.Sigma, m.Dispersion, 1e-9)
	require.InDelta(t, ref.AIC, m.AIC, 1e-6)
	require.InDelta(t, ref.LogLik, m.LogLik, 1e-6)
	require.True(t, m.TTest)
	require.Equal(t, ref.DFResidual, m.DFResidual)
	require.Equal(t, 8, m.DFNull)
}

func TestBinomialSeparatedData(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := []float64{0, 0, 0, 0, 1, 1, 1, 1}

	m, err := glm.Fit(y, [][]float64{x}, glm.WithFamily(family.Binomial()))
	require.NoError(t, err)
	require.True(t, m.Converged)
	require.LessOrEqual(t, m.Iterations, glm.DefaultMaxIter)
	require.Less(t, m.Deviance, m.NullDeviance)
	require.InDelta(t, 8*math.Log(2)*2, m.NullDeviance, 1e-9)
	require.InDelta(t, m.NullDeviance-m.Deviance, m.LRStatistic, 1e-12)
	require.InDelta(t, dist.ChiSquaredSurvival(m.LRStatistic, 1), m.LRPValue, 1e-15)
	require.Less(t, m.LRPValue, 0.01)
	require.Equal(t, glm.StateConverged, m.State)
	for _, mu := range m.FittedValues {
		require.GreaterOrEqual(t, mu, family.ProbEps)
		require.LessOrEqual(t, mu, 1-family.ProbEps)
	}

	probs, err := m.Predict([][]float64{x}, glm.PredictResponse)
	require.NoError(t, err)
	for i := 1; i < len(probs); i++ {
		require.GreaterOrEqual(t, probs[i], probs[i-1])
	}
	for _, mu := range m.FittedValues {
		require.True(t, mu > 0 && mu < 1)
	}
	require.False(t, m.TTest)
	require.Equal(t, 1.0, m.SummaryDispersion)
}

func TestBinomialMonotoneOverlap(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	y := []float64{0, 0, 1, 0, 0, 1, 0, 1, 1, 1}

	m, err := glm.Fit(y, [][]float64{x}, glm.WithFamily(family.Binomial()))
	require.NoError(t, err)
	require.True(t, m.Converged)
	require.Greater(t, m.Coefficients[1], 0.0)

	probs, err := m.Predict([][]float64{x}, glm.PredictResponse)
	require.NoError(t, err)
	for i := 1; i < len(probs); i++ {
		require.Greater(t, probs[i], probs[i-1])
	}

	// score equations at the MLE: Xᵀ(y − μ) = 0 for the canonical link
	var s0, s1 float64
	for i := range y {
		s0 += y[i] - m.FittedValues[i]
		s1 += x[i] * (y[i] - m.FittedValues[i])
	}
	require.InDelta(t, 0, s0, 1e-4)
	require.InDelta(t, 0, s1, 1e-4)
}

// Two-group designs are saturated in the group means, so the MLE is closed form.
func TestTwoGroupClosedForms(t *testing.T) {
	g := []float64{0, 0, 0, 0, 1, 1, 1, 1}
	// group means: counts 2 and 5, times 1.5 and 4, props 0.25 and 0.75
	counts := []float64{2, 3, 1, 2, 6, 4, 5, 5}
	times := []float64{1, 2, 1.5, 1.5, 4, 3, 5, 4}
	props := []float64{0, 1, 0, 0, 1, 1, 0, 1}

	pois, err := glm.Fit(counts, [][]float64{g}, glm.WithFamily(family.Poisson()))
	require.NoError(t, err)
	require.True(t, pois.Converged)
	require.InDelta(t, math.Log(2), pois.Coefficients[0], 1e-6)
	require.InDelta(t, math.Log(5.0/2), pois.Coefficients[1], 1e-6)
	require.False(t, pois.TTest)

	gam, err := glm.Fit(times, [][]float64{g}, glm.WithFamily(family.Gamma()))
	require.NoError(t, err)
	require.True(t, gam.Converged)
	require.InDelta(t, 1/1.5, gam.Coefficients[0], 1e-6)
	require.InDelta(t, 1/4.0-1/1.5, gam.Coefficients[1], 1e-6)
	require.True(t, gam.TTest)

	logLink, err := family.New(family.KindGamma, family.LinkLog)
	require.NoError(t, err)
	gamLog, err := glm.Fit(times, [][]float64{g}, glm.WithFamily(logLink))
	require.NoError(t, err)
	require.InDelta(t, math.Log(1.5), gamLog.Coefficients[0], 1e-6)
	require.InDelta(t, gam.Deviance, gamLog.Deviance, 1e-8)

	bin, err := glm.Fit(props, [][]float64{g}, glm.WithFamily(family.Binomial()))
	require.NoError(t, err)
	require.InDelta(t, math.Log(0.25/0.75), bin.Coefficients[0], 1e-6)
	require.InDelta(t, 2*math.Log(3), bin.Coefficients[1], 1e-6)

	probit, err := family.New(family.KindBinomial, family.LinkProbit)
	require.NoError(t, err)
	binP, err := glm.Fit(props, [][]float64{g}, glm.WithFamily(probit))
	require.NoError(t, err)
	mu, err := binP.Predict([][]float64{{0, 1}}, glm.PredictResponse)
	require.NoError(t, err)
	require.InDelta(t, 0.25, mu[0], 1e-6)
	require.InDelta(t, 0.75, mu[1], 1e-6)
}

func TestResidualIdentities(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	y := []float64{1, 0, 2, 3, 2, 5, 4, 7, 8, 9}
	m, err := glm.Fit(y, [][]float64{x}, glm.WithFamily(family.Poisson()))
	require.NoError(t, err)

	var dev, pearson float64
	for i := range y {
		require.InDelta(t, y[i]-m.FittedValues[i], m.ResponseResiduals[i], 1e-12)
		require.InDelta(t, (y[i]-m.FittedValues[i])/math.Sqrt(m.FittedValues[i]), m.PearsonResiduals[i], 1e-12)
		dev += m.DevianceResiduals[i] * m.DevianceResiduals[i]
		pearson += m.PearsonResiduals[i] * m.PearsonResiduals[i]
		require.InDelta(t, math.Exp(m.LinearPredictors[i]), m.FittedValues[i], 1e-9)
	}
	require.InDelta(t, m.Deviance, dev, 1e-9)
	require.InDelta(t, m.Deviance/float64(m.DFResidual), m.Dispersion, 1e-12)
	require.Greater(t, pearson, 0.0)
	require.InDelta(t, family.Poisson().AIC(m.Response(), m.FittedValues, m.PriorWeights, m.Deviance)+4, m.AIC, 1e-9)
	require.InDelta(t, -2*m.LogLik+math.Log(10)*2, m.BIC, 1e-9)
}

func TestPriorWeightsEqualReplication(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{1, 3, 2, 6, 8}
	w := []float64{1, 2, 1, 3, 1}

	var xr, yr []float64
	for i := range x {
		for k := 0; k < int(w[i]); k++ {
			xr = append(xr, x[i])
			yr = append(yr, y[i])
		}
	}

	weighted, err := glm.Fit(y, [][]float64{x}, glm.WithFamily(family.Poisson()), glm.WithWeights(w))
	require.NoError(t, err)
	replicated, err := glm.Fit(yr, [][]float64{xr}, glm.WithFamily(family.Poisson()))
	require.NoError(t, err)
	for j := range weighted.Coefficients {
		require.InDelta(t, replicated.Coefficients[j], weighted.Coefficients[j], 1e-6)
	}
	require.InDelta(t, replicated.Deviance, weighted.Deviance, 1e-6)
}

func TestNonConvergenceIsNotAnError(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	y := []float64{1, 0, 2, 3, 2, 5, 4, 7, 8, 9}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	m, err := glm.Fit(y, [][]float64{x},
		glm.WithFamily(family.Poisson()), glm.WithMaxIter(1), glm.WithLogger(logger))
	require.NoError(t, err)
	require.False(t, m.Converged)
	require.Equal(t, glm.StateMaxIterReached, m.State)
	require.Equal(t, 1, m.Iterations)
	require.Contains(t, buf.String(), "did not converge")
	require.Len(t, m.Coefficients, 2)
}

func TestDomainAndInputErrors(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	_, err := glm.Fit([]float64{0, 1, 2, 1}, [][]float64{x}, glm.WithFamily(family.Binomial()))
	require.ErrorIs(t, err, family.ErrInvalidDomain)
	_, err = glm.Fit([]float64{0, -1, 2, 1}, [][]float64{x}, glm.WithFamily(family.Poisson()))
	require.ErrorIs(t, err, family.ErrInvalidDomain)
	_, err = glm.Fit([]float64{1, 0, 2, 1}, [][]float64{x}, glm.WithFamily(family.Gamma()))
	require.ErrorIs(t, err, family.ErrInvalidDomain)

	_, err = glm.Fit([]float64{1, 2}, [][]float64{{1, 2}})
	require.ErrorIs(t, err, design.ErrInsufficientObservations)
	_, err = glm.Fit([]float64{1, 2, 3, 4}, [][]float64{x}, glm.WithWeights([]float64{1, 1, -1, 1}))
	require.ErrorIs(t, err, design.ErrInvalidWeight)
}

func TestMissingRowsExcluded(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{1, design.Missing, 2, 4, 5, 7}
	m, err := glm.Fit(y, [][]float64{x}, glm.WithFamily(family.Poisson()))
	require.NoError(t, err)
	require.Equal(t, 5, m.N)
	require.Equal(t, []int{0, 2, 3, 4, 5}, m.Rows)
	require.Equal(t, m.Rows, m.ObservationRows())
}

func TestPredict(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{1, 1, 2, 4, 5, 7}
	m, err := glm.Fit(y, [][]float64{x}, glm.WithFamily(family.Poisson()))
	require.NoError(t, err)

	eta, err := m.Predict([][]float64{x}, glm.PredictLink)
	require.NoError(t, err)
	mu, err := m.Predict([][]float64{x}, glm.PredictResponse)
	require.NoError(t, err)
	for i := range x {
		require.InDelta(t, m.LinearPredictors[i], eta[i], 1e-9)
		require.InDelta(t, m.FittedValues[i], mu[i], 1e-9)
		require.InDelta(t, math.Exp(eta[i]), mu[i], 1e-12)
	}

	_, err = m.Predict([][]float64{x, x}, glm.PredictLink)
	require.ErrorIs(t, err, glm.ErrPredictorCount)
	_, err = m.Predict([][]float64{x}, glm.PredictType(7))
	require.ErrorIs(t, err, glm.ErrPredictType)
}

func TestNoInterceptNullDeviance(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{0, 0, 1, 1, 1}
	m, err := glm.Fit(y, [][]float64{x}, glm.WithFamily(family.Binomial()), glm.WithIntercept(false))
	require.NoError(t, err)
	require.Equal(t, []string{"x1"}, m.Names)
	require.Equal(t, 5, m.DFNull)
	// η = 0 gives μ = 0.5 for every row
	require.InDelta(t, 5*2*math.Log(2), m.NullDeviance, 1e-9)
}

func TestOptionPanics(t *testing.T) {
	require.Panics(t, func() { glm.WithFamily(nil) })
	require.Panics(t, func() { glm.WithLogger(nil) })
	require.Panics(t, func() { glm.WithEpsilon(0) })
	require.Panics(t, func() { glm.WithEpsilon(math.Inf(1)) })
	require.Panics(t, func() { glm.WithMaxIter(0) })
}

func TestStateString(t *testing.T) {
	require.Equal(t, "initializing", glm.StateInitializing.String())
	require.Equal(t, "iterating", glm.StateIterating.String())
	require.Equal(t, "converged", glm.StateConverged.String())
	require.Equal(t, "max_iter_reached", glm.StateMaxIterReached.String())
}

func TestSqrtLinkFirstStepOutsideDomain(t *testing.T) {
	// the first weighted least-squares step predicts η < 0 at x = 6
	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{9, 4, 1, 0, 0, 0}
	sqrtPoisson, err := family.New(family.KindPoisson, family.LinkSqrt)
	require.NoError(t, err)

	_, err = glm.Fit(y, [][]float64{x}, glm.WithFamily(sqrtPoisson))
	require.ErrorIs(t, err, glm.ErrInvalidEta)
}

func TestHalveStep(t *testing.T) {
	X, err := matrix.NewFromColumns([][]float64{{1, 1, 1}, {0, 1, 2}})
	require.NoError(t, err)

	coef := []float64{1, -2}
	eta, halvings, err := glm.HalveStep_TestOnly(X, coef, []float64{1, 0}, family.LinkSqrt)
	require.NoError(t, err)
	require.Equal(t, 3, halvings)
	require.Equal(t, []float64{1, -0.25}, coef)
	require.Equal(t, []float64{1, 0.75, 0.5}, eta)

	// the previous coefficients are themselves on the boundary: no halving can help
	_, halvings, err = glm.HalveStep_TestOnly(X, []float64{-1, 0}, []float64{0, 0}, family.LinkSqrt)
	require.ErrorIs(t, err, glm.ErrInvalidEta)
	require.Equal(t, glm.MaxHalvings, halvings)
}
