package unit

import (
	"math"

	"github.com/matzehuels/units/pkg/dimension"
	errs "github.com/matzehuels/units/pkg/errors"
)

// MaxExponent bounds the magnitude of a term exponent. Parsing rejects
// expressions that exceed it, which keeps exponent arithmetic far from int
// overflow and every parsed unit renderable.
const MaxExponent = math.MaxInt32

// Kind distinguishes the three forms a Unit can take.
type Kind int

const (
	// KindUnitless is a unit with no terms (the zero value).
	KindUnitless Kind = iota
	// KindAtomic wraps a single Atomic with exponent 1.
	KindAtomic
	// KindComposite is a product of atomic units raised to integer exponents.
	KindComposite
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAtomic:
		return "atomic"
	case KindComposite:
		return "composite"
	default:
		return "unitless"
	}
}

// Term is one factor of a unit: an atomic unit raised to a non-zero exponent.
type Term struct {
	Atomic *Atomic
	Exp    int
}

// Unit is an immutable unit value. The zero value is the unitless unit.
//
// Exactly one of atom and terms is set for atomic and composite units; both
// are empty for the unitless unit. The terms map is never modified after
// construction.
type Unit struct {
	atom  *Atomic
	terms map[string]Term
}

// Unitless returns the unit with no terms.
func Unitless() Unit { return Unit{} }

// Of returns the atomic form of a.
func Of(a *Atomic) Unit {
	if a == nil {
		return Unit{}
	}
	return Unit{atom: a}
}

// FromTerms folds terms into a unit, summing exponents of repeated atomic
// units and normalizing the result. Terms with a nil Atomic or a zero
// exponent are ignored.
//
// Atomic units are identified by symbol; when two terms carry different
// Atomic values with the same symbol, the first one wins.
func FromTerms(terms ...Term) Unit {
	m := make(map[string]Term, len(terms))
	for _, t := range terms {
		if t.Atomic == nil || t.Exp == 0 {
			continue
		}
		accumulate(m, t, 1)
	}
	return normalize(m)
}

// accumulate adds sign*t.Exp to the entry for t's symbol, dropping it on zero.
func accumulate(m map[string]Term, t Term, sign int) {
	sym := t.Atomic.symbol
	cur, ok := m[sym]
	if !ok {
		cur = Term{Atomic: t.Atomic}
	}
	cur.Exp += sign * t.Exp
	if cur.Exp == 0 {
		delete(m, sym)
		return
	}
	m[sym] = cur
}

// normalize turns a term map into its canonical Unit form.
func normalize(m map[string]Term) Unit {
	switch len(m) {
	case 0:
		return Unit{}
	case 1:
		for _, t := range m {
			if t.Exp == 1 {
				return Unit{atom: t.Atomic}
			}
		}
	}
	return Unit{terms: m}
}

// termMap returns a fresh, mutable copy of u's terms.
func (u Unit) termMap() map[string]Term {
	if u.atom != nil {
		return map[string]Term{u.atom.symbol: {Atomic: u.atom, Exp: 1}}
	}
	m := make(map[string]Term, len(u.terms))
	for k, t := range u.terms {
		m[k] = t
	}
	return m
}

// Kind reports which form u has.
func (u Unit) Kind() Kind {
	switch {
	case u.atom != nil:
		return KindAtomic
	case len(u.terms) > 0:
		return KindComposite
	default:
		return KindUnitless
	}
}

// IsUnitless reports whether u has no terms.
func (u Unit) IsUnitless() bool { return u.Kind() == KindUnitless }

// Atomic returns the wrapped atomic unit when u is in atomic form.
func (u Unit) Atomic() (*Atomic, bool) {
	return u.atom, u.atom != nil
}

// Terms returns u's terms in canonical rendering order.
// An atomic unit yields one term with exponent 1; the unitless unit yields none.
func (u Unit) Terms() []Term {
	return orderedTerms(u, symbolLabel)
}

// Exponent returns the exponent of the atomic unit with the given symbol,
// or 0 when u does not reference it.
func (u Unit) Exponent(symbol string) int {
	if u.atom != nil {
		if u.atom.symbol == symbol {
			return 1
		}
		return 0
	}
	return u.terms[symbol].Exp
}

// Mul returns u*o.
func (u Unit) Mul(o Unit) Unit {
	return combine(u, o, 1)
}

// Div returns u/o.
func (u Unit) Div(o Unit) Unit {
	return combine(u, o, -1)
}

func combine(a, b Unit, sign int) Unit {
	m := a.termMap()
	for _, t := range b.termMap() {
		accumulate(m, t, sign)
	}
	return normalize(m)
}

// CheckExponents returns an INVALID_INPUT error when a term exponent of u
// lies outside ±MaxExponent. Mul, Div and Pow do not bound their results;
// callers composing units from untrusted powers check the result.
func (u Unit) CheckExponents() error {
	for sym, t := range u.terms {
		if t.Exp > MaxExponent || t.Exp < -MaxExponent {
			return errs.New(errs.ErrCodeInvalidInput, "exponent %d of %q is out of range", t.Exp, sym)
		}
	}
	return nil
}

// Pow returns u raised to the integer power n. Pow(0) is unitless.
func (u Unit) Pow(n int) Unit {
	if n == 0 {
		return Unit{}
	}
	m := u.termMap()
	for k, t := range m {
		t.Exp *= n
		m[k] = t
	}
	return normalize(m)
}

// Dimension returns the dimensional signature of u: the sum over its terms
// of each atomic dimension scaled by the term's exponent.
func (u Unit) Dimension() dimension.Vector {
	if u.atom != nil {
		return u.atom.dim
	}
	dim := dimension.None()
	for _, t := range u.terms {
		dim = dimension.Combine(dim, dimension.Scale(t.Atomic.dim, t.Exp), dimension.Add)
	}
	return dim
}

// IsDimensionallyEquivalent reports whether u and o share a dimension.
// Units of different scale (meter, foot) are equivalent and convertible.
func (u Unit) IsDimensionallyEquivalent(o Unit) bool {
	return u.Dimension().Equal(o.Dimension())
}

// Equal reports structural equality: the same atomic symbols with the same
// exponents, where paired atomic units have identical conversion laws.
func (u Unit) Equal(o Unit) bool {
	if u.Kind() != o.Kind() {
		return false
	}
	if u.atom != nil {
		return u.atom.Equal(o.atom)
	}
	if len(u.terms) != len(o.terms) {
		return false
	}
	for sym, t := range u.terms {
		ot, ok := o.terms[sym]
		if !ok || ot.Exp != t.Exp || !t.Atomic.Equal(ot.Atomic) {
			return false
		}
	}
	return true
}
