// SPDX-License-Identifier: MIT
package dist_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvstat/dist"
)

func TestReferenceValues(t *testing.T) {
	for _, tc := range []struct {
		name string
		got  float64
		want float64
	}{
		{"pt(0,5)", dist.StudentsTCDF(0, 5), 0.5},
		{"qt(0.975,10)", dist.StudentsTQuantile(0.975, 10), 2.228138851986274},
		{"2*pt(-2.228,10)", dist.StudentsTTwoSided(2.228138851986274, 10), 0.05},
		{"pf(qf(.95,2,10))", dist.FCDF(4.102821015130399, 2, 10), 0.95},
		{"1-pf(qf(.95,2,10))", dist.FSurvival(4.102821015130399, 2, 10), 0.05},
		{"pchisq(3.84,1)", dist.ChiSquaredCDF(3.841458820694124, 1), 0.95},
		{"1-pchisq(3.84,1)", dist.ChiSquaredSurvival(3.841458820694124, 1), 0.05},
		{"pnorm(1.96)", dist.NormalCDF(1.959963984540054), 0.975},
		{"qnorm(.975)", dist.NormalQuantile(0.975), 1.959963984540054},
		{"2*pnorm(-1.96)", dist.NormalTwoSided(-1.959963984540054), 0.05},
		{"dnorm(0)", dist.NormalPDF(0), 1 / math.Sqrt(2*math.Pi)},
		{"dnorm(1,0,2,log)", dist.NormalLogProb(1, 0, 2), -math.Log(2*math.Sqrt(2*math.Pi)) - 0.125},
		{"dbinom(3,10,.5,log)", dist.BinomialLogProb(3, 10, 0.5), math.Log(0.1171875)},
		{"dpois(2,3,log)", dist.PoissonLogProb(2, 3), 2*math.Log(3) - 3 - math.Log(2)},
		{"dgamma(1,2,1,log)", dist.GammaLogProb(1, 2, 1), -1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.InDelta(t, tc.want, tc.got, 1e-9)
		})
	}
}

func TestDomainViolationsAreNaN(t *testing.T) {
	require.True(t, math.IsNaN(dist.StudentsTCDF(1, 0)))
	require.True(t, math.IsNaN(dist.StudentsTQuantile(1, 5)))
	require.True(t, math.IsNaN(dist.FSurvival(1, -1, 3)))
	require.True(t, math.IsNaN(dist.ChiSquaredCDF(1, math.Inf(1))))
	require.True(t, math.IsNaN(dist.NormalQuantile(0)))
	require.True(t, math.IsNaN(dist.NormalLogProb(0, 0, 0)))
	require.True(t, math.IsNaN(dist.PoissonLogProb(1, 0)))
	require.True(t, math.IsNaN(dist.GammaLogProb(1, 0, 1)))
	require.True(t, math.IsNaN(dist.BinomialLogProb(1, 2, 1.5)))
}

func TestTails(t *testing.T) {
	require.Equal(t, 1.0, dist.FSurvival(0, 1, 5))
	require.Equal(t, 0.0, dist.FCDF(-1, 1, 5))
	require.Equal(t, 1.0, dist.ChiSquaredSurvival(0, 3))
	require.True(t, math.IsInf(dist.PoissonLogProb(1.5, 2), -1))
}
