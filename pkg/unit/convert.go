package unit

import (
	"math"

	errs "github.com/matzehuels/units/pkg/errors"
)

// Factor returns the effective multiplicative coefficient of u.
//
// For an atomic unit it is the unit's own coefficient; the unitless unit has
// factor 1. A composite unit's factor is the product of coefficient^exponent
// over its terms and is only defined when every term is linear; otherwise
// Factor returns ErrCodeNonLinearComposite.
func (u Unit) Factor() (float64, error) {
	if u.atom != nil {
		return u.atom.coefficient, nil
	}
	f := 1.0
	for _, t := range u.Terms() {
		if !t.Atomic.IsLinear() {
			return 0, errs.New(errs.ErrCodeNonLinearComposite,
				"unit %q has an additive offset and cannot take part in composite %q",
				t.Atomic.symbol, u.Symbol())
		}
		f *= math.Pow(t.Atomic.coefficient, float64(t.Exp))
	}
	return f, nil
}

// IsLinear reports whether u converts by multiplication alone: an atomic
// unit without constant, or a composite of linear atomic units.
func (u Unit) IsLinear() bool {
	if u.atom != nil {
		return u.atom.IsLinear()
	}
	for _, t := range u.terms {
		if !t.Atomic.IsLinear() {
			return false
		}
	}
	return true
}

// ToBase converts value expressed in u into the base units of u's dimension.
func (u Unit) ToBase(value float64) (float64, error) {
	if u.atom != nil {
		return value*u.atom.coefficient + u.atom.constant, nil
	}
	f, err := u.Factor()
	if err != nil {
		return 0, err
	}
	return value * f, nil
}

// FromBase converts a base-unit value into u.
func (u Unit) FromBase(value float64) (float64, error) {
	if u.atom != nil {
		return (value - u.atom.constant) / u.atom.coefficient, nil
	}
	f, err := u.Factor()
	if err != nil {
		return 0, err
	}
	return value / f, nil
}

// Convert converts value from one unit into another.
//
// The units must be dimensionally equivalent, else ErrCodeIncompatibleUnits
// is returned. Either side may fail with ErrCodeNonLinearComposite.
func Convert(value float64, from, to Unit) (float64, error) {
	if !from.IsDimensionallyEquivalent(to) {
		return 0, errs.New(errs.ErrCodeIncompatibleUnits,
			"cannot convert %q %s to %q %s",
			from.Symbol(), from.Dimension(), to.Symbol(), to.Dimension())
	}
	base, err := from.ToBase(value)
	if err != nil {
		return 0, err
	}
	return to.FromBase(base)
}
