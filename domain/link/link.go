// Package link maps linear predictors to the two quantities a hurdle model
// needs: the probability that an observation is positive (the encounter
// probability) and the expected value of an observation given that it is
// positive (the positive rate).
package link

import (
	"math"

	"gozinf/domain/core"
)

// Type selects a link function. The set is closed: every operation
// dispatches over exactly these variants.
type Type uint8

const (
	// TypeLogitLog maps p1 through the logistic function and p2 through exp.
	TypeLogitLog Type = iota

	// TypePoisson is the Thorson link: a complementary log-log encounter
	// probability with a positive offset, and a rate that preserves the
	// product encprob * posrate = offset-scaled exp(p1+p2).
	TypePoisson

	// TypeIdentity passes both predictors through unchanged. The first
	// predictor must already be a probability strictly inside (0,1).
	TypeIdentity
)

// String returns the link name.
func (t Type) String() string {
	switch t {
	case TypeLogitLog:
		return "logit-log"
	case TypePoisson:
		return "poisson"
	case TypeIdentity:
		return "identity"
	default:
		return "unknown"
	}
}

// Link is an immutable link-function value. The zero value is the
// logit-log link.
type Link struct {
	typ Type

	// offset scales the Poisson-link intensity. Unused by other links.
	offset float64
}

// New returns the link of the given type. The Poisson link gets the
// default offset 1.
func New(t Type) (Link, error) {
	switch t {
	case TypeLogitLog, TypeIdentity:
		return Link{typ: t}, nil
	case TypePoisson:
		return NewPoisson(1)
	default:
		return Link{}, core.NewDomainError("link type", float64(t), "a known link type")
	}
}

// NewPoisson returns a Poisson link with the given intensity offset.
// The offset must be strictly positive.
func NewPoisson(offset float64) (Link, error) {
	if !(offset > 0) {
		return Link{}, core.NewDomainError("offset", offset, "> 0")
	}
	return Link{typ: TypePoisson, offset: offset}, nil
}

// Type returns the link's variant tag.
func (l Link) Type() Type { return l.typ }

// Offset returns the Poisson-link offset (1 unless set by NewPoisson).
func (l Link) Offset() float64 {
	if l.typ == TypePoisson {
		return l.offset
	}
	return 1
}

// EncounterProbability maps the first linear predictor to the probability
// of a positive observation. A second predictor may be supplied for
// symmetry with PositiveRate; every current link ignores it, so the one-
// and two-predictor forms always agree.
//
// The identity link performs no squashing: it returns a domain error
// unless p1 lies strictly inside (0,1).
func (l Link) EncounterProbability(p1 float64, p2 ...float64) (float64, error) {
	_ = p2

	switch l.typ {
	case TypeLogitLog:
		return 1 / (1 + math.Exp(-p1)), nil
	case TypePoisson:
		return 1 - math.Exp(-l.offset*math.Exp(p1)), nil
	case TypeIdentity:
		if !(p1 > 0 && p1 < 1) {
			return 0, core.NewDomainError("p1", p1, "strictly inside (0,1) for the identity link")
		}
		return p1, nil
	default:
		return 0, core.NewDomainError("link type", float64(l.typ), "a known link type")
	}
}

// PositiveRate maps the predictors to the conditional mean of the positive
// part, minus bias. The bias term backs out the correction applied when a
// transformed-scale mean was shifted before prediction; pass 0 for none.
func (l Link) PositiveRate(p1, p2, bias float64) (float64, error) {
	switch l.typ {
	case TypeLogitLog:
		return math.Exp(p2) - bias, nil
	case TypePoisson:
		encprob, err := l.EncounterProbability(p1)
		if err != nil {
			return 0, err
		}
		return math.Exp(p1+p2)/encprob - bias, nil
	case TypeIdentity:
		return p2 - bias, nil
	default:
		return 0, core.NewDomainError("link type", float64(l.typ), "a known link type")
	}
}
