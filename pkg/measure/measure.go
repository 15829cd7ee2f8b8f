// Package measure pairs numeric values with units.
//
// A [Measurement] forwards its arithmetic to the unit algebra in
// [github.com/matzehuels/units/pkg/unit]: adding or subtracting requires
// identical units, multiplying and dividing composes them, and converting
// goes through each unit's conversion law.
//
//	speed := measure.New(90, kmPerHour)
//	mph, err := speed.Convert(milesPerHour)
package measure

import (
	"math"
	"strconv"

	errs "github.com/matzehuels/units/pkg/errors"
	"github.com/matzehuels/units/pkg/unit"
)

// Measurement is a value expressed in a unit.
type Measurement struct {
	Value float64
	Unit  unit.Unit
}

// New returns a measurement of value in u.
func New(value float64, u unit.Unit) Measurement {
	return Measurement{Value: value, Unit: u}
}

// Scalar returns a unitless measurement.
func Scalar(value float64) Measurement {
	return Measurement{Value: value, Unit: unit.Unitless()}
}

// Add returns m + o. Both measurements must carry equal units; convert one
// of them first when they differ.
func (m Measurement) Add(o Measurement) (Measurement, error) {
	if !m.Unit.Equal(o.Unit) {
		return Measurement{}, errs.New(errs.ErrCodeIncompatibleUnits,
			"cannot add %s to %s", o.Unit, m.Unit)
	}
	return Measurement{Value: m.Value + o.Value, Unit: m.Unit}, nil
}

// Sub returns m - o under the same rules as [Measurement.Add].
func (m Measurement) Sub(o Measurement) (Measurement, error) {
	if !m.Unit.Equal(o.Unit) {
		return Measurement{}, errs.New(errs.ErrCodeIncompatibleUnits,
			"cannot subtract %s from %s", o.Unit, m.Unit)
	}
	return Measurement{Value: m.Value - o.Value, Unit: m.Unit}, nil
}

// Mul returns m * o with the product unit.
func (m Measurement) Mul(o Measurement) Measurement {
	return Measurement{Value: m.Value * o.Value, Unit: m.Unit.Mul(o.Unit)}
}

// Div returns m / o with the quotient unit. Division by a zero value follows
// IEEE 754 and yields an infinity or NaN.
func (m Measurement) Div(o Measurement) Measurement {
	return Measurement{Value: m.Value / o.Value, Unit: m.Unit.Div(o.Unit)}
}

// Pow raises both the value and the unit to the integer power n.
func (m Measurement) Pow(n int) Measurement {
	return Measurement{Value: math.Pow(m.Value, float64(n)), Unit: m.Unit.Pow(n)}
}

// Scale multiplies the value by k, keeping the unit.
func (m Measurement) Scale(k float64) Measurement {
	return Measurement{Value: m.Value * k, Unit: m.Unit}
}

// Convert expresses m in the unit to.
//
// Errors:
//   - ErrCodeIncompatibleUnits: the dimensions differ
//   - ErrCodeNonLinearComposite: a composite unit contains an affine term
func (m Measurement) Convert(to unit.Unit) (Measurement, error) {
	v, err := unit.Convert(m.Value, m.Unit, to)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{Value: v, Unit: to}, nil
}

// Equal reports whether both measurements have the same value and
// structurally equal units. It does not convert.
func (m Measurement) Equal(o Measurement) bool {
	return m.Value == o.Value && m.Unit.Equal(o.Unit)
}

// String renders the measurement as "<value> <symbol>". Unitless
// measurements render as the bare value.
func (m Measurement) String() string {
	v := strconv.FormatFloat(m.Value, 'g', -1, 64)
	if m.Unit.IsUnitless() {
		return v
	}
	return v + " " + m.Unit.Symbol()
}
