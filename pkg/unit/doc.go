// Package unit implements the unit algebra and conversion engine.
//
// # Atomic and Composite Units
//
// An [Atomic] unit is a named, symbol-bearing building block with a
// [dimension.Vector] and an affine conversion law
//
//	base = value*coefficient + constant
//
// where the base unit of each dimension has coefficient 1 and constant 0.
// Atomic units are immutable and shared by pointer between every [Unit]
// that references them; their symbol is the identity key.
//
// A [Unit] is a tagged value that is exactly one of:
//   - unitless: no terms (the zero value)
//   - atomic: a single Atomic with implicit exponent 1
//   - composite: a set of (Atomic, exponent) terms with non-zero exponents
//
// Constructors and algebra normalize their results: a composite with a
// single term of exponent 1 is returned in atomic form, and a composite
// whose exponents all cancel is returned as unitless.
//
// # Algebra
//
// [Unit.Mul], [Unit.Div] and [Unit.Pow] merge term maps by summing
// exponents per atomic symbol. The dimension of a unit is the sum of its
// terms' dimensions weighted by their exponents.
//
// # Conversion
//
// [Convert] requires both units to be dimensionally equivalent and
// round-trips through the base unit. A composite unit has a conversion law
// only when every contributing atomic unit has a zero constant; shifted
// scales such as Celsius or Fahrenheit cannot be multiplied into composites
// and report [errors.ErrCodeNonLinearComposite] when converted.
//
// # Rendering
//
// [Unit.Symbol] and [Unit.Name] produce the canonical text form. Terms with
// positive exponents come first, then negative ones; each group is ordered
// by ascending absolute exponent with ties broken alphabetically. The
// resulting grammar is
//
//	SYMBOL := ['1/'] ATOM ['^' DIGITS] ( ('*'|'/') ATOM ['^' DIGITS] )*
//
// and is accepted back by the registry parser, so structurally equal units
// always render identically.
//
// # Equality
//
// [Unit.Equal] is structural: both units carry the same atomic symbols with
// the same exponents, and paired atomic units have identical dimensions,
// coefficients and constants.
package unit
