// SPDX-License-Identifier: MIT

package family

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvstat/dist"
)

// Link names a link function g with η = g(μ).
type Link int

const (
	// LinkIdentity is η = μ.
	LinkIdentity Link = iota
	// LinkLog is η = log μ.
	LinkLog
	// LinkInverse is η = 1/μ.
	LinkInverse
	// LinkLogit is η = log(μ/(1−μ)).
	LinkLogit
	// LinkProbit is η = Φ⁻¹(μ).
	LinkProbit
	// LinkSqrt is η = √μ.
	LinkSqrt
)

const (
	// machineEps is the float64 unit roundoff (R's .Machine$double.eps).
	machineEps = 2.220446049250313e-16
	// logitBound is the |η| beyond which the inverse logit saturates.
	logitBound = 30.0
)

// probitBound is −Φ⁻¹(ε): inverse probit saturates beyond ±probitBound.
var probitBound = -dist.NormalQuantile(machineEps)

var linkNames = [...]string{
	LinkIdentity: "identity",
	LinkLog:      "log",
	LinkInverse:  "inverse",
	LinkLogit:    "logit",
	LinkProbit:   "probit",
	LinkSqrt:     "sqrt",
}

// String returns the link name.
func (l Link) String() string {
	if l < 0 || int(l) >= len(linkNames) {
		return fmt.Sprintf("Link(%d)", int(l))
	}

	return linkNames[l]
}

// ParseLink resolves a link by name.
func ParseLink(name string) (Link, error) {
	for i, s := range linkNames {
		if s == name {
			return Link(i), nil
		}
	}

	return 0, fmt.Errorf("family: link %q: %w", name, ErrInvalidLink)
}

// Fun is the link transform η = g(μ).
func (l Link) Fun(mu float64) float64 {
	switch l {
	case LinkLog:
		return math.Log(mu)
	case LinkInverse:
		return 1 / mu
	case LinkLogit:
		return math.Log(mu / (1 - mu))
	case LinkProbit:
		return dist.NormalQuantile(mu)
	case LinkSqrt:
		return math.Sqrt(mu)
	default:
		return mu
	}
}

// Inv is the inverse link μ = g⁻¹(η).
// The log, logit and probit inverses are bounded away from 0 and 1 by ε.
func (l Link) Inv(eta float64) float64 {
	switch l {
	case LinkLog:
		return math.Max(math.Exp(eta), machineEps)
	case LinkInverse:
		return 1 / eta
	case LinkLogit:
		switch {
		case eta < -logitBound:
			return machineEps
		case eta > logitBound:
			return 1 - machineEps
		}
		return 1 / (1 + math.Exp(-eta))
	case LinkProbit:
		eta = math.Min(math.Max(eta, -probitBound), probitBound)
		return dist.NormalCDF(eta)
	case LinkSqrt:
		return eta * eta
	default:
		return eta
	}
}

// MuEta is the derivative dμ/dη evaluated at η.
func (l Link) MuEta(eta float64) float64 {
	switch l {
	case LinkLog:
		return math.Max(math.Exp(eta), machineEps)
	case LinkInverse:
		return -1 / (eta * eta)
	case LinkLogit:
		if math.Abs(eta) > logitBound {
			return machineEps
		}
		e := math.Exp(eta)
		return e / ((1 + e) * (1 + e))
	case LinkProbit:
		return math.Max(dist.NormalPDF(eta), machineEps)
	case LinkSqrt:
		return 2 * eta
	default:
		return 1
	}
}

// ValidEta reports whether η lies in the domain of the inverse link.
func (l Link) ValidEta(eta float64) bool {
	if math.IsNaN(eta) || math.IsInf(eta, 0) {
		return false
	}
	switch l {
	case LinkInverse:
		return eta != 0
	case LinkSqrt:
		return eta > 0
	default:
		return true
	}
}
