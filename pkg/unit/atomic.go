package unit

import (
	"math"

	"github.com/matzehuels/units/pkg/dimension"
	errs "github.com/matzehuels/units/pkg/errors"
)

// Atomic is an indivisible named unit with its own affine conversion law.
// Atomic values are immutable; share them by pointer.
type Atomic struct {
	name        string
	symbol      string
	dim         dimension.Vector
	coefficient float64
	constant    float64
}

// NewAtomic validates and creates an atomic unit.
//
// The symbol must satisfy [errs.ValidateSymbol] and the name
// [errs.ValidateName]. The coefficient must be finite and non-zero and the
// constant finite; violations return ErrCodeInvalidInput.
func NewAtomic(name, symbol string, dim dimension.Vector, coefficient, constant float64) (*Atomic, error) {
	if err := errs.ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	if err := errs.ValidateName(name); err != nil {
		return nil, err
	}
	if coefficient == 0 || math.IsNaN(coefficient) || math.IsInf(coefficient, 0) {
		return nil, errs.New(errs.ErrCodeInvalidInput, "unit %q: coefficient must be finite and non-zero, got %v", symbol, coefficient)
	}
	if math.IsNaN(constant) || math.IsInf(constant, 0) {
		return nil, errs.New(errs.ErrCodeInvalidInput, "unit %q: constant must be finite, got %v", symbol, constant)
	}
	return &Atomic{
		name:        name,
		symbol:      symbol,
		dim:         dim,
		coefficient: coefficient,
		constant:    constant,
	}, nil
}

// MustAtomic is like [NewAtomic] but panics on error.
func MustAtomic(name, symbol string, dim dimension.Vector, coefficient, constant float64) *Atomic {
	a, err := NewAtomic(name, symbol, dim, coefficient, constant)
	if err != nil {
		panic(err)
	}
	return a
}

func (a *Atomic) Name() string                { return a.name }
func (a *Atomic) Symbol() string              { return a.symbol }
func (a *Atomic) Dimension() dimension.Vector { return a.dim }
func (a *Atomic) Coefficient() float64        { return a.coefficient }
func (a *Atomic) Constant() float64           { return a.constant }

// IsLinear reports whether the unit has no additive shift.
func (a *Atomic) IsLinear() bool { return a.constant == 0 }

// String returns the unit's symbol.
func (a *Atomic) String() string { return a.symbol }

// Equal reports whether a and o share a symbol, dimension and conversion law.
// The long name is a display attribute and does not take part.
func (a *Atomic) Equal(o *Atomic) bool {
	if a == o {
		return true
	}
	if a == nil || o == nil {
		return false
	}
	return a.symbol == o.symbol &&
		a.coefficient == o.coefficient &&
		a.constant == o.constant &&
		a.dim.Equal(o.dim)
}
