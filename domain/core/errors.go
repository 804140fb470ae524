package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrDomain marks an input that violates a mathematical precondition
	// (non-positive Poisson offset, identity-link probability outside (0,1),
	// non-positive dispersion or rate in a derivation).
	ErrDomain = errors.New("input outside mathematical domain")

	// ErrUnsupportedFamily marks a derivation request for a positive-part
	// family with no moment-matching formula.
	ErrUnsupportedFamily = errors.New("unsupported positive-part family")
)

// Error constructors with context
func NewDomainError(quantity string, value float64, constraint string) error {
	return fmt.Errorf("%w: %s = %v, require %s", ErrDomain, quantity, value, constraint)
}

func NewUnsupportedFamilyError(family string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFamily, family)
}

// Error checking helpers
func IsDomainErr(err error) bool {
	return errors.Is(err, ErrDomain)
}

func IsUnsupportedFamilyErr(err error) bool {
	return errors.Is(err, ErrUnsupportedFamily)
}
