// SPDX-License-Identifier: MIT

package family

import (
	"fmt"
	"math"
)

// Kind names one of the four supported exponential families.
type Kind int

const (
	// KindGaussian is the normal family, V(μ) = 1.
	KindGaussian Kind = iota
	// KindBinomial is the binomial family, V(μ) = μ(1−μ).
	KindBinomial
	// KindPoisson is the Poisson family, V(μ) = μ.
	KindPoisson
	// KindGamma is the Gamma family, V(μ) = μ².
	KindGamma
)

var kindNames = [...]string{
	KindGaussian: "gaussian",
	KindBinomial: "binomial",
	KindPoisson:  "poisson",
	KindGamma:    "gamma",
}

// String returns the family name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// ParseKind resolves a family by name.
func ParseKind(name string) (Kind, error) {
	for i, s := range kindNames {
		if s == name {
			return Kind(i), nil
		}
	}

	return 0, fmt.Errorf("family: %q: %w", name, ErrInvalidFamily)
}

// Clamp bounds applied when an IRWLS update leaves the valid mu domain.
const (
	// ProbEps keeps binomial mu inside (ProbEps, 1−ProbEps).
	ProbEps = 1e-6
	// PositiveEps is the floor for Poisson and Gamma mu.
	PositiveEps = 1e-10
)

// Family is the descriptor consumed by the GLM engine.
type Family interface {
	// Kind identifies the variant.
	Kind() Kind
	// Link returns the link in use.
	Link() Link

	// LinkFun is η = g(μ).
	LinkFun(mu float64) float64
	// LinkInv is μ = g⁻¹(η).
	LinkInv(eta float64) float64
	// MuEta is dμ/dη at η.
	MuEta(eta float64) float64
	// Variance is V(μ).
	Variance(mu float64) float64
	// DevResid is the unit deviance of one observation with prior weight w.
	DevResid(y, mu, w float64) float64
	// AIC returns −2·logLik of the fitted mu, plus 2 when the family
	// estimates a dispersion parameter. The caller adds 2·rank.
	AIC(y, mu, w []float64, deviance float64) float64

	// ValidMu reports whether μ lies in the family's open domain.
	ValidMu(mu float64) bool
	// ClampMu returns μ moved into the valid domain.
	ClampMu(mu float64) float64
	// StartMu is the IRWLS starting value for response y with prior weight w.
	StartMu(y, w float64) float64
	// CheckResponse rejects responses outside the family's support
	// (and starting values the link cannot map).
	CheckResponse(y []float64) error
	// EstimatesDispersion is false when φ is fixed at 1 (binomial, Poisson).
	EstimatesDispersion() bool

	sealed()
}

var allowed = map[Kind][]Link{
	KindGaussian: {LinkIdentity, LinkLog, LinkInverse},
	KindBinomial: {LinkLogit, LinkProbit, LinkLog},
	KindPoisson:  {LinkLog, LinkIdentity, LinkSqrt},
	KindGamma:    {LinkInverse, LinkIdentity, LinkLog},
}

// DefaultLink returns the canonical link of kind.
func DefaultLink(kind Kind) Link {
	return allowed[kind][0]
}

// AllowedLinks lists the links accepted by kind, default first.
func AllowedLinks(kind Kind) []Link {
	return append([]Link(nil), allowed[kind]...)
}

// New returns the family kind with the given link.
// Errors: ErrInvalidFamily, ErrInvalidLink (link not allowed for kind).
func New(kind Kind, link Link) (Family, error) {
	links, ok := allowed[kind]
	if !ok {
		return nil, fmt.Errorf("family: %v: %w", kind, ErrInvalidFamily)
	}
	found := false
	for _, l := range links {
		if l == link {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("family: %v does not allow link %v: %w", kind, link, ErrInvalidLink)
	}

	base := linked{link: link}
	switch kind {
	case KindBinomial:
		return binomial{base}, nil
	case KindPoisson:
		return poisson{base}, nil
	case KindGamma:
		return gamma{base}, nil
	default:
		return gaussian{base}, nil
	}
}

// Parse resolves a family and link by name; an empty link selects the default.
func Parse(familyName, linkName string) (Family, error) {
	kind, err := ParseKind(familyName)
	if err != nil {
		return nil, err
	}
	link := DefaultLink(kind)
	if linkName != "" {
		if link, err = ParseLink(linkName); err != nil {
			return nil, err
		}
	}

	return New(kind, link)
}

// Gaussian returns the Gaussian family with the identity link.
func Gaussian() Family { return gaussian{linked{LinkIdentity}} }

// Binomial returns the binomial family with the logit link.
func Binomial() Family { return binomial{linked{LinkLogit}} }

// Poisson returns the Poisson family with the log link.
func Poisson() Family { return poisson{linked{LinkLog}} }

// Gamma returns the Gamma family with the inverse link.
func Gamma() Family { return gamma{linked{LinkInverse}} }

// linked carries the link part shared by every variant.
type linked struct{ link Link }

func (l linked) Link() Link { return l.link }

func (l linked) LinkFun(mu float64) float64 { return l.link.Fun(mu) }

func (l linked) LinkInv(eta float64) float64 { return l.link.Inv(eta) }

func (l linked) MuEta(eta float64) float64 { return l.link.MuEta(eta) }

func (linked) sealed() {}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// ylogy is y·log(y/μ) with the 0·log 0 = 0 convention.
func ylogy(y, mu float64) float64 {
	if y == 0 {
		return 0
	}

	return y * math.Log(y/mu)
}

// responseError reports the first offending response value.
func responseError(kind Kind, i int, y float64, want string) error {
	return fmt.Errorf("family: %v response y[%d] = %g, want %s: %w", kind, i, y, want, ErrInvalidDomain)
}
