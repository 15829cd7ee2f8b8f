package unit

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	errs "github.com/matzehuels/units/pkg/errors"
)

// Style selects the operators used when rendering a unit.
type Style struct {
	Mul        string // separator between positive terms
	Div        string // prefix of each negative term
	Reciprocal string // prefix when only negative terms exist
}

var (
	// SymbolStyle is the compact canonical grammar: "kg*m/s^2".
	SymbolStyle = Style{Mul: "*", Div: "/", Reciprocal: errs.UnitlessSymbol + "/"}

	// NameStyle spaces out operators for long names: "kilogram * meter / second^2".
	NameStyle = Style{Mul: " * ", Div: " / ", Reciprocal: errs.UnitlessSymbol + " / "}
)

// Label chooses the text printed for an atomic unit.
type Label func(*Atomic) string

func symbolLabel(a *Atomic) string { return a.symbol }
func nameLabel(a *Atomic) string   { return a.name }

// Symbol returns the canonical symbol of u, e.g. "kg*m/s^2".
// The unitless unit renders as "1".
func (u Unit) Symbol() string {
	return u.Format(symbolLabel, SymbolStyle)
}

// Name returns the long-name rendering of u, e.g. "kilogram * meter / second^2".
func (u Unit) Name() string {
	return u.Format(nameLabel, NameStyle)
}

// String returns u.Symbol().
func (u Unit) String() string { return u.Symbol() }

// Format renders u with a custom label and style. Terms are ordered by the
// label text, so the result is deterministic for any label function.
func (u Unit) Format(label Label, style Style) string {
	if u.atom != nil {
		return label(u.atom)
	}
	terms := orderedTerms(u, label)
	if len(terms) == 0 {
		return errs.UnitlessSymbol
	}

	var b strings.Builder
	positives := 0
	for _, t := range terms {
		switch {
		case t.Exp > 0:
			if positives > 0 {
				b.WriteString(style.Mul)
			}
			positives++
		case positives == 0 && b.Len() == 0:
			b.WriteString(style.Reciprocal)
		default:
			b.WriteString(style.Div)
		}
		b.WriteString(label(t.Atomic))
		if e := abs(t.Exp); e > 1 {
			b.WriteByte('^')
			b.WriteString(strconv.Itoa(e))
		}
	}
	return b.String()
}

// orderedTerms returns u's terms with positive exponents first, each group
// sorted by ascending absolute exponent and then by label.
func orderedTerms(u Unit, label Label) []Term {
	if u.atom != nil {
		return []Term{{Atomic: u.atom, Exp: 1}}
	}
	terms := make([]Term, 0, len(u.terms))
	for _, t := range u.terms {
		terms = append(terms, t)
	}
	slices.SortFunc(terms, func(a, b Term) int {
		if pa, pb := a.Exp > 0, b.Exp > 0; pa != pb {
			if pa {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(abs(a.Exp), abs(b.Exp)); c != 0 {
			return c
		}
		if c := cmp.Compare(label(a.Atomic), label(b.Atomic)); c != 0 {
			return c
		}
		return cmp.Compare(a.Atomic.symbol, b.Atomic.symbol)
	})
	return terms
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
