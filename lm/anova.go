// SPDX-License-Identifier: MIT

package lm

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvstat/design"
	"github.com/katalvlaran/lvstat/dist"
)

// ResidualsTerm labels the last row of an ANOVA table.
const ResidualsTerm = "Residuals"

// AnovaRow is one line of a sequential ANOVA table.
// F and PValue are NaN on the Residuals row and on aliased terms (DF == 0).
type AnovaRow struct {
	Term   string
	DF     int
	SumSq  float64
	MeanSq float64
	F      float64
	PValue float64
}

// AnovaTable holds one row per predictor, in entry order, then the Residuals row.
type AnovaTable struct {
	Rows []AnovaRow
}

// Anova computes sequential (type I) sums of squares for y on predictors.
// Implementation:
//   - Stage 1: build the full design once; every nested model uses its retained rows.
//   - Stage 2: fit the k nested models x1, x1+x2, …, x1+…+xk concurrently; each fit
//     owns its frame and solver scratch.
//   - Stage 3: SSⱼ = RSSⱼ₋₁ − RSSⱼ, Fⱼ = (SSⱼ/DFⱼ)/(RSS/DFResidual) of the full model.
//
// The base model is the intercept-only fit (Σ(y−ȳ)²) or, without an intercept,
// the empty model (Σy²).
//
// Errors: ErrNoPredictors, the errors of Fit, ctx.Err() when cancelled.
func Anova(ctx context.Context, y []float64, predictors [][]float64, opts ...Option) (*AnovaTable, error) {
	o := gatherOptions(opts...)
	full, err := design.Build(y, predictors, o.intercept, nil)
	if err != nil {
		return nil, fmt.Errorf("lm: %w", err)
	}
	k := full.Predictors
	if k == 0 {
		return nil, ErrNoPredictors
	}

	cols := make([][]float64, k)
	for j := range cols {
		if cols[j], err = full.Column(j); err != nil {
			return nil, fmt.Errorf("lm: %w", err)
		}
	}

	rss := make([]float64, k+1)
	rank := make([]int, k+1)
	if o.intercept {
		mean := floats.Sum(full.Y) / float64(full.N())
		for _, v := range full.Y {
			rss[0] += (v - mean) * (v - mean)
		}
		rank[0] = 1
	} else {
		rss[0] = floats.Dot(full.Y, full.Y)
	}

	var dfRes int
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for j := 1; j <= k; j++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := design.Build(full.Y, cols[:j], o.intercept, nil)
			if err != nil {
				return err
			}
			m, err := fitFrame(f, o)
			if err != nil {
				return err
			}
			rss[j], rank[j] = m.RSS, m.Rank
			if j == k {
				dfRes = m.DFResidual
			}
			o.logger.Debug("lm: anova step", slog.Int("terms", j), slog.Float64("rss", m.RSS))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("lm: anova: %w", err)
	}

	scale := rss[k] / float64(dfRes)
	t := &AnovaTable{Rows: make([]AnovaRow, 0, k+1)}
	for j := 1; j <= k; j++ {
		row := AnovaRow{
			Term:   full.Names[len(full.Names)-k+j-1],
			DF:     rank[j] - rank[j-1],
			SumSq:  rss[j-1] - rss[j],
			MeanSq: math.NaN(),
			F:      math.NaN(),
			PValue: math.NaN(),
		}
		if row.DF > 0 {
			row.MeanSq = row.SumSq / float64(row.DF)
			row.F = row.MeanSq / scale
			row.PValue = dist.FSurvival(row.F, float64(row.DF), float64(dfRes))
		}
		t.Rows = append(t.Rows, row)
	}
	t.Rows = append(t.Rows, AnovaRow{
		Term:   ResidualsTerm,
		DF:     dfRes,
		SumSq:  rss[k],
		MeanSq: scale,
		F:      math.NaN(),
		PValue: math.NaN(),
	})

	return t, nil
}
