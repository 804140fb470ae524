package dist

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"gozinf/domain/core"
	"gozinf/domain/link"
	"gozinf/internal/rng"
)

// Family tags a positive-part family with a moment-matching derivation.
type Family uint8

const (
	FamilyLogNormal Family = iota
	FamilyGamma
	FamilyInverseGamma
	FamilyInverseGaussian
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case FamilyLogNormal:
		return "lognormal"
	case FamilyGamma:
		return "gamma"
	case FamilyInverseGamma:
		return "inverse-gamma"
	case FamilyInverseGaussian:
		return "inverse-gaussian"
	default:
		return "unknown"
	}
}

// ParseFamily maps a family name to its tag.
func ParseFamily(name string) (Family, error) {
	for _, f := range []Family{FamilyLogNormal, FamilyGamma, FamilyInverseGamma, FamilyInverseGaussian} {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, core.NewUnsupportedFamilyError(name)
}

// derivation translates a (rate, dispersion) pair into the natural
// parameters of one positive-part family. Each registry entry owns its
// own formula.
type derivation func(rate, dispersion float64, biasCorrect bool, src rand.Source) PositiveContinuous

var derivations = map[Family]derivation{
	FamilyLogNormal:       deriveLogNormal,
	FamilyGamma:           deriveGamma,
	FamilyInverseGamma:    deriveInverseGamma,
	FamilyInverseGaussian: deriveInverseGaussian,
}

// The dispersion is the log-scale standard deviation. With bias
// correction the location is shifted by -dispersion^2/2 so the mean of
// the log-normal equals the rate; without it the median does.
func deriveLogNormal(rate, dispersion float64, biasCorrect bool, src rand.Source) PositiveContinuous {
	mu := math.Log(rate)
	if biasCorrect {
		mu -= dispersion * dispersion / 2
	}
	return NewLogNormal(mu, dispersion, src)
}

// Solving mean = alpha*theta and std = sqrt(alpha)*theta for the
// shape-scale parameterization gives shape (mu/sigma)^2 and scale
// sigma^2/mu; distuv.Gamma takes the rate mu/sigma^2.
func deriveGamma(rate, dispersion float64, _ bool, src rand.Source) PositiveContinuous {
	alpha := (rate / dispersion) * (rate / dispersion)
	return NewGamma(alpha, rate/(dispersion*dispersion), src)
}

// Solving mu = beta/(alpha-1) and sigma^2 = beta^2/((alpha-1)^2(alpha-2))
// gives alpha = (mu/sigma)^2 + 2 and beta = mu*(alpha-1); alpha > 2 holds
// whenever dispersion > 0, so both moments exist.
func deriveInverseGamma(rate, dispersion float64, _ bool, src rand.Source) PositiveContinuous {
	alpha := (rate/dispersion)*(rate/dispersion) + 2
	return NewInverseGamma(alpha, rate*(alpha-1), src)
}

// The dispersion is the shape parameter directly.
func deriveInverseGaussian(rate, dispersion float64, _ bool, src rand.Source) PositiveContinuous {
	return NewInverseGaussian(rate, dispersion, src)
}

// Derive builds a zero-inflated distribution from a link, a positive-part
// family and the two linear predictors: the encounter probability becomes
// Bernoulli(p) and the (rate, dispersion) pair is moment-matched into the
// family's natural parameters. Transformed-scale locations are bias
// corrected so the positive mean matches the rate. A nil src binds the
// process default source.
func Derive(lnk link.Link, fam Family, p1, p2, dispersion float64, src rand.Source) (ZeroInflated, error) {
	return derive(lnk, fam, p1, p2, dispersion, true, src)
}

// DeriveUncorrected is Derive without the bias correction: the log-normal
// median, not its mean, matches the rate. Families with untransformed
// locations are unaffected.
func DeriveUncorrected(lnk link.Link, fam Family, p1, p2, dispersion float64, src rand.Source) (ZeroInflated, error) {
	return derive(lnk, fam, p1, p2, dispersion, false, src)
}

func derive(lnk link.Link, fam Family, p1, p2, dispersion float64, biasCorrect bool, src rand.Source) (ZeroInflated, error) {
	build, ok := derivations[fam]
	if !ok {
		return ZeroInflated{}, core.NewUnsupportedFamilyError(fam.String())
	}

	p, err := lnk.EncounterProbability(p1, p2)
	if err != nil {
		return ZeroInflated{}, err
	}
	rate, err := lnk.PositiveRate(p1, p2, 0)
	if err != nil {
		return ZeroInflated{}, err
	}
	if !(dispersion > 0) {
		return ZeroInflated{}, core.NewDomainError("dispersion", dispersion, "> 0")
	}
	if !(rate > 0) {
		return ZeroInflated{}, core.NewDomainError("positive rate", rate, "> 0")
	}

	if src == nil {
		src = rng.Default()
	}
	return New(distuv.Bernoulli{P: p, Src: src}, build(rate, dispersion, biasCorrect, src))
}
