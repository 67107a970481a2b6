// SPDX-License-Identifier: MIT

package diagnostics

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvstat/matrix"
)

// Fitted is the view of a fitted model the diagnostics need.
type Fitted interface {
	// DesignMatrix returns the n×p design (√W-weighted for GLMs).
	DesignMatrix() *matrix.Dense
	// RawResiduals returns the n residuals on the scale of DesignMatrix.
	RawResiduals() []float64
	// Scale returns the residual scale σ.
	Scale() float64
	// ObservationRows maps the n observations to input indices.
	ObservationRows() []int
}

// Reason names a threshold crossed by an observation.
type Reason string

// Flag reasons.
const (
	ReasonLeverage      Reason = "leverage"
	ReasonCooksDistance Reason = "cooks_distance"
	ReasonDFFITS        Reason = "dffits"
	ReasonDFBETAS       Reason = "dfbetas"
)

// HatTol is the distance from 1 below which 1−h is treated as zero.
const HatTol = 1e-10

// Flag marks one influential observation.
type Flag struct {
	// Index is the position in the report's per-observation slices.
	Index int
	// Row is the observation's index in the caller's input.
	Row int
	// Reasons lists every threshold crossed, in leverage, Cook's D, DFFITS, DFBETAS order.
	Reasons []Reason
}

// Thresholds are the cutoffs used for flagging.
type Thresholds struct {
	Leverage, CooksDistance, DFFITS, DFBETAS float64
}

// Report holds the influence measures of every observation.
type Report struct {
	Leverage      []float64
	Standardized  []float64
	Studentized   []float64
	CooksDistance []float64
	DFFITS        []float64
	// DFBETAS is n×p, one row per observation.
	DFBETAS [][]float64

	Thresholds Thresholds
	Flags      []Flag
}

// Compute derives the influence measures of m.
// Implementation:
//   - Stage 1: C = (XᵀX)⁻¹ by Gauss-Jordan; hᵢ = xᵢᵀCxᵢ clamped to [0,1].
//   - Stage 2: standardized rᵢ/σ, studentized rᵢ/(σ√(1−hᵢ)), Cook's D
//     stud²·h/(p(1−h)), DFFITS stud·√(h/(1−h)),
//     DFBETASᵢⱼ = stud·xᵢⱼ/(σ√Cⱼⱼ·√(1−hᵢ)).
//   - Stage 3: flag observations above the thresholds.
//
// Degenerate cases: when 1−hᵢ < HatTol (the fit passes exactly through the
// observation) or σ == 0, the residual-based measures of that observation are 0.
//
// Errors: ErrNilModel, ErrDesignRequired, matrix.ErrDimensionMismatch (residual count),
// matrix.ErrSingular (rank-deficient design).
func Compute(m Fitted) (*Report, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	X := m.DesignMatrix()
	if X == nil {
		return nil, ErrDesignRequired
	}
	n, p := X.Rows(), X.Cols()
	resid := m.RawResiduals()
	if len(resid) != n {
		return nil, fmt.Errorf("diagnostics: %d residuals for %d rows: %w", len(resid), n, matrix.ErrDimensionMismatch)
	}
	C, err := matrix.InverseGram(X)
	if err != nil {
		return nil, fmt.Errorf("diagnostics: %w", err)
	}
	cdiag, err := matrix.Diag(C)
	if err != nil {
		return nil, fmt.Errorf("diagnostics: %w", err)
	}
	sigma := m.Scale()

	r := &Report{
		Leverage:      make([]float64, n),
		Standardized:  make([]float64, n),
		Studentized:   make([]float64, n),
		CooksDistance: make([]float64, n),
		DFFITS:        make([]float64, n),
		DFBETAS:       make([][]float64, n),
	}
	nf, pf := float64(n), float64(p)
	r.Thresholds = Thresholds{
		Leverage:      2 * pf / nf,
		CooksDistance: 4 / nf,
		DFFITS:        2 * math.Sqrt(pf/nf),
		DFBETAS:       2 / math.Sqrt(nf),
	}

	degenerate := !(sigma > 0) || math.IsInf(sigma, 0)
	var (
		xi, cx     []float64
		h, oneMinH float64
		stud       float64
	)
	for i := 0; i < n; i++ {
		if xi, err = X.Row(i); err != nil {
			return nil, fmt.Errorf("diagnostics: %w", err)
		}
		if cx, err = matrix.MatVec(C, xi); err != nil {
			return nil, fmt.Errorf("diagnostics: %w", err)
		}
		h = 0
		for j := range xi {
			h += xi[j] * cx[j]
		}
		h = math.Min(math.Max(h, 0), 1)
		r.Leverage[i] = h
		r.DFBETAS[i] = make([]float64, p)

		oneMinH = 1 - h
		if degenerate {
			continue
		}
		r.Standardized[i] = resid[i] / sigma
		if oneMinH < HatTol {
			continue
		}
		stud = resid[i] / (sigma * math.Sqrt(oneMinH))
		r.Studentized[i] = stud
		r.CooksDistance[i] = stud * stud * h / (pf * oneMinH)
		r.DFFITS[i] = stud * math.Sqrt(h/oneMinH)
		for j := 0; j < p; j++ {
			r.DFBETAS[i][j] = stud * xi[j] / (sigma * math.Sqrt(cdiag[j]) * math.Sqrt(oneMinH))
		}
	}

	r.Flags = r.flag(m.ObservationRows())

	return r, nil
}

func (r *Report) flag(rows []int) []Flag {
	var flags []Flag
	for i := range r.Leverage {
		var reasons []Reason
		if r.Leverage[i] > r.Thresholds.Leverage {
			reasons = append(reasons, ReasonLeverage)
		}
		if r.CooksDistance[i] > r.Thresholds.CooksDistance {
			reasons = append(reasons, ReasonCooksDistance)
		}
		if math.Abs(r.DFFITS[i]) > r.Thresholds.DFFITS {
			reasons = append(reasons, ReasonDFFITS)
		}
		for _, d := range r.DFBETAS[i] {
			if math.Abs(d) > r.Thresholds.DFBETAS {
				reasons = append(reasons, ReasonDFBETAS)
				break
			}
		}
		if len(reasons) == 0 {
			continue
		}
		row := i
		if i < len(rows) {
			row = rows[i]
		}
		flags = append(flags, Flag{Index: i, Row: row, Reasons: reasons})
	}

	return flags
}

// Flagged returns the input row indices of all flagged observations.
func (r *Report) Flagged() []int {
	out := make([]int, len(r.Flags))
	for i, f := range r.Flags {
		out[i] = f.Row
	}

	return out
}
