// Package builtin provides the default unit table: the SI base units,
// common metric and imperial lengths, masses and times, the temperature
// scales, and a handful of derived SI units.
//
// Derived units are declared by expression ("kg*m/s^2") so their
// coefficients and dimensions come from the units they are built from.
package builtin

import (
	"github.com/matzehuels/units/pkg/dimension"
	errs "github.com/matzehuels/units/pkg/errors"
	"github.com/matzehuels/units/pkg/registry"
)

func dim(id dimension.ID) map[string]int { return map[string]int{string(id): 1} }

var (
	length      = dim(dimension.Length)
	mass        = dim(dimension.Mass)
	duration    = dim(dimension.Time)
	current     = dim(dimension.Current)
	temperature = dim(dimension.Temperature)
	amount      = dim(dimension.Amount)
	luminosity  = dim(dimension.Luminosity)
)

// Definitions is the default unit table in registration order. Units
// defined by expression only reference units listed before them.
var Definitions = []registry.Definition{
	// SI base units
	{Name: "meter", Symbol: "m", Dimension: length, Coefficient: 1, Aliases: []string{"metre"}},
	{Name: "kilogram", Symbol: "kg", Dimension: mass, Coefficient: 1},
	{Name: "second", Symbol: "s", Dimension: duration, Coefficient: 1, Aliases: []string{"sec"}},
	{Name: "ampere", Symbol: "A", Dimension: current, Coefficient: 1, Aliases: []string{"amp"}},
	{Name: "kelvin", Symbol: "K", Dimension: temperature, Coefficient: 1},
	{Name: "mole", Symbol: "mol", Dimension: amount, Coefficient: 1},
	{Name: "candela", Symbol: "cd", Dimension: luminosity, Coefficient: 1},

	// Length
	{Name: "kilometer", Symbol: "km", Dimension: length, Coefficient: 1e3},
	{Name: "centimeter", Symbol: "cm", Dimension: length, Coefficient: 1e-2},
	{Name: "millimeter", Symbol: "mm", Dimension: length, Coefficient: 1e-3},
	{Name: "inch", Symbol: "in", Dimension: length, Coefficient: 0.0254, Aliases: []string{"inches"}},
	{Name: "foot", Symbol: "ft", Dimension: length, Coefficient: 0.3048, Aliases: []string{"feet"}},
	{Name: "yard", Symbol: "yd", Dimension: length, Coefficient: 0.9144, Aliases: []string{"yards"}},
	{Name: "mile", Symbol: "mi", Dimension: length, Coefficient: 1609.344, Aliases: []string{"miles"}},
	{Name: "nautical mile", Symbol: "nmi", Dimension: length, Coefficient: 1852},

	// Mass
	{Name: "gram", Symbol: "g", Dimension: mass, Coefficient: 1e-3},
	{Name: "milligram", Symbol: "mg", Dimension: mass, Coefficient: 1e-6},
	{Name: "tonne", Symbol: "t", Dimension: mass, Coefficient: 1e3},
	{Name: "pound", Symbol: "lb", Dimension: mass, Coefficient: 0.45359237, Aliases: []string{"lbs"}},
	{Name: "ounce", Symbol: "oz", Dimension: mass, Coefficient: 0.028349523125},

	// Time
	{Name: "minute", Symbol: "min", Dimension: duration, Coefficient: 60},
	{Name: "hour", Symbol: "h", Dimension: duration, Coefficient: 3600, Aliases: []string{"hr"}},
	{Name: "day", Symbol: "d", Dimension: duration, Coefficient: 86400},

	// Temperature
	{Name: "degree Celsius", Symbol: "degC", Dimension: temperature, Coefficient: 1, Constant: 273.15, Aliases: []string{"°C"}},
	{Name: "degree Fahrenheit", Symbol: "degF", Dimension: temperature, Coefficient: 5.0 / 9.0, Constant: 459.67 * 5.0 / 9.0, Aliases: []string{"°F"}},
	{Name: "degree Rankine", Symbol: "degR", Dimension: temperature, Coefficient: 5.0 / 9.0, Aliases: []string{"°R"}},

	// Derived SI units
	{Name: "newton", Symbol: "N", Of: "kg*m/s^2"},
	{Name: "joule", Symbol: "J", Of: "N*m"},
	{Name: "watt", Symbol: "W", Of: "J/s"},
	{Name: "pascal", Symbol: "Pa", Of: "N/m^2"},
	{Name: "hertz", Symbol: "Hz", Of: "1/s"},
	{Name: "coulomb", Symbol: "C", Of: "A*s"},
	{Name: "volt", Symbol: "V", Of: "W/A"},

	// Volume
	{Name: "liter", Symbol: "L", Of: "m^3", Coefficient: 1e-3, Aliases: []string{"litre"}},
}

// New returns a registry holding the default unit table.
func New(opts ...registry.Option) (*registry.Registry, error) {
	r := registry.New(opts...)
	if err := Register(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Register defines every unit of the default table in r.
func Register(r *registry.Registry) error {
	for _, def := range Definitions {
		if _, err := r.Define(def); err != nil {
			return errs.Wrap(errs.ErrCodeInternal, err, "register builtin unit %q", def.Symbol)
		}
	}
	return nil
}

// MustNew is like [New] but panics on error. The default table is static,
// so an error here is a programming mistake.
func MustNew(opts ...registry.Option) *registry.Registry {
	r, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// IsBuiltin reports whether symbol belongs to the default table.
func IsBuiltin(symbol string) bool {
	_, ok := bySymbol[symbol]
	return ok
}

var bySymbol = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Definitions))
	for _, def := range Definitions {
		m[def.Symbol] = struct{}{}
	}
	return m
}()
