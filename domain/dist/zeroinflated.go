// Package dist builds zero-inflated (hurdle) distributions for
// non-negative continuous observations: a Bernoulli encounter process
// deciding whether the observation is positive, and a positive-part
// continuous distribution describing its value when it is.
package dist

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"gozinf/domain/core"
	"gozinf/internal/rng"
)

const badQuantile = "dist: quantile out of range [0,1]"

// ZeroInflated is an immutable composite of an encounter distribution and
// a positive-part distribution. It is safe to share across concurrent
// readers; concurrent Rand calls require the underlying sources to be
// safe for concurrent draws (the process default from internal/rng is).
type ZeroInflated struct {
	enc distuv.Bernoulli
	pos PositiveContinuous
}

// New composes a zero-inflated distribution from an encounter
// distribution, whose success probability is the probability of a
// positive observation, and a positive-part distribution. Both are stored
// unchanged, except that a nil encounter source is bound to the process
// default so sampling never falls back to the ambient global generator.
func New(enc distuv.Bernoulli, pos PositiveContinuous) (ZeroInflated, error) {
	if !(enc.P >= 0 && enc.P <= 1) {
		return ZeroInflated{}, core.NewDomainError("encounter probability", enc.P, "in [0,1]")
	}
	if enc.Src == nil {
		enc.Src = rng.Default()
	}
	return ZeroInflated{enc: enc, pos: pos}, nil
}

// EncounterDistribution returns the Bernoulli encounter component.
func (z ZeroInflated) EncounterDistribution() distuv.Bernoulli { return z.enc }

// PositiveDistribution returns the positive-part component.
func (z ZeroInflated) PositiveDistribution() PositiveContinuous { return z.pos }

// Prob returns the density at x: the zero-mass probability at exactly 0,
// the encounter probability times the positive density for x > 0, and 0
// for negative x, which is outside the support.
func (z ZeroInflated) Prob(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x == 0 {
		return z.enc.Prob(0)
	}
	return z.enc.Prob(1) * z.pos.Prob(x)
}

// LogProb returns the log density at x. It is composed in log space
// rather than as log(Prob(x)) so small probabilities keep their accuracy.
func (z ZeroInflated) LogProb(x float64) float64 {
	if x < 0 {
		return math.Inf(-1)
	}
	if x == 0 {
		return z.enc.LogProb(0)
	}
	return z.enc.LogProb(1) + z.pos.LogProb(x)
}

// LogLikelihood returns the sum of log densities over a sample.
func (z ZeroInflated) LogLikelihood(xs []float64) float64 {
	var ll float64
	for _, x := range xs {
		ll += z.LogProb(x)
	}
	return ll
}

// CDF returns the cumulative probability at x. At and below zero this is
// exactly the zero-mass probability.
func (z ZeroInflated) CDF(x float64) float64 {
	p0 := z.enc.Prob(0)
	if x <= 0 {
		return p0
	}
	return p0 + z.enc.P*z.pos.CDF(x)
}

// Quantile returns the inverse CDF at q. Any q within the zero mass maps
// to exactly 0; above it the positive quantile is evaluated on the
// conditional scale. Quantile panics if q is outside [0,1].
func (z ZeroInflated) Quantile(q float64) float64 {
	if q < 0 || q > 1 {
		panic(badQuantile)
	}
	p0 := z.enc.Prob(0)
	if q <= p0 {
		return 0
	}
	return z.pos.Quantile((q - p0) / (1 - p0))
}

// Min returns the lower bound of the support.
func (z ZeroInflated) Min() float64 { return 0 }

// Max returns the upper bound of the support. All supported positive-part
// families are unbounded above. When the encounter probability is exactly
// 0 or 1 the composite degenerates to the point mass at zero or to the
// positive part alone; the bounds reported here are the natural formulas,
// with no special case for those boundaries.
func (z ZeroInflated) Max() float64 { return math.Inf(1) }

// InSupport reports whether x lies inside [Min, Max].
func (z ZeroInflated) InSupport(x float64) bool {
	return x >= z.Min() && x <= z.Max()
}

// Mean returns the unconditional mean p * E[positive].
func (z ZeroInflated) Mean() float64 {
	return z.enc.P * z.pos.Mean()
}

// Variance follows the law of total variance for the two-component
// mixture: p*(Var[pos] + E[pos]^2) - (p*E[pos])^2.
func (z ZeroInflated) Variance() float64 {
	p := z.enc.P
	m := z.pos.Mean()
	return p*(z.pos.Variance()+m*m) - p*m*p*m
}

// StdDev returns the standard deviation.
func (z ZeroInflated) StdDev() float64 {
	return math.Sqrt(z.Variance())
}

// Modes returns the pair (0, mode of the positive part). The composite is
// bimodal or degenerate at the boundary, so no single mode exists.
func (z ZeroInflated) Modes() [2]float64 {
	return [2]float64{0, z.pos.Mode()}
}

// Rand draws a Bernoulli encounter outcome and a positive value
// independently and returns their product: exactly 0 with probability
// 1-p, a positive draw otherwise.
func (z ZeroInflated) Rand() float64 {
	return z.enc.Rand() * z.pos.Rand()
}
