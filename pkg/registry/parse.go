package registry

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	errs "github.com/matzehuels/units/pkg/errors"
	"github.com/matzehuels/units/pkg/unit"
)

// Parse reconstructs a unit from its canonical symbol, resolving every atom
// by symbol. It accepts exactly what [unit.Unit.Symbol] produces.
func (r *Registry) Parse(expr string) (unit.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.parseLocked(expr, r.bySymbol)
}

// ParseLenient is like Parse but also resolves atoms by long name and by
// display alias, in that order of precedence after symbols.
func (r *Registry) ParseLenient(expr string) (unit.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.parseLocked(expr, r.lenient)
}

type tokenKind int

const (
	tokAtom tokenKind = iota
	tokMul
	tokDiv
	tokPow
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex splits expr into atoms and operators. Whitespace is never valid.
func lex(expr string) ([]token, error) {
	var tokens []token
	start := -1
	flush := func(end int) {
		if start >= 0 {
			tokens = append(tokens, token{kind: tokAtom, text: expr[start:end], pos: start})
			start = -1
		}
	}

	for i := 0; i < len(expr); {
		r, size := utf8.DecodeRuneInString(expr[i:])
		switch {
		case r == '*':
			flush(i)
			tokens = append(tokens, token{kind: tokMul, text: "*", pos: i})
		case r == '/':
			flush(i)
			tokens = append(tokens, token{kind: tokDiv, text: "/", pos: i})
		case r == '^':
			flush(i)
			tokens = append(tokens, token{kind: tokPow, text: "^", pos: i})
		case r == utf8.RuneError && size == 1:
			return nil, errs.Malformed(expr, i, "invalid UTF-8")
		case unicode.IsSpace(r) || unicode.IsControl(r):
			return nil, errs.Malformed(expr, i, "unexpected whitespace")
		default:
			if start < 0 {
				start = i
			}
		}
		i += size
	}
	flush(len(expr))
	return tokens, nil
}

// parseLocked parses expr resolving atoms with resolve. Callers hold r.mu.
func (r *Registry) parseLocked(expr string, resolve func(string) (*unit.Atomic, bool)) (unit.Unit, error) {
	tokens, err := lex(expr)
	if err != nil {
		return unit.Unit{}, err
	}
	if len(tokens) == 0 {
		return unit.Unit{}, errs.Malformed(expr, 0, "empty expression")
	}

	p := parser{expr: expr, tokens: tokens}
	sign := 1

	switch first := tokens[0]; {
	case first.kind == tokAtom && first.text == errs.UnitlessSymbol:
		if len(tokens) == 1 {
			return unit.Unitless(), nil
		}
		if tokens[1].kind != tokDiv {
			return unit.Unit{}, errs.Malformed(expr, tokens[1].pos, "'1' may only be followed by '/'")
		}
		p.i = 2
		sign = -1
	case first.kind == tokDiv:
		p.i = 1
		sign = -1
	}

	var terms []unit.Term
	totals := make(map[string]int)
	for {
		atom, exp, err := p.factor()
		if err != nil {
			return unit.Unit{}, err
		}
		a, ok := resolve(atom.text)
		if !ok {
			return unit.Unit{}, errs.New(errs.ErrCodeUnitNotFound,
				"unknown unit %q at offset %d in %q", atom.text, atom.pos, expr)
		}
		// Both operands are within MaxExponent, so the sum cannot overflow.
		total := totals[a.Symbol()] + sign*exp
		if total > unit.MaxExponent || total < -unit.MaxExponent {
			return unit.Unit{}, errs.Malformed(expr, atom.pos,
				fmt.Sprintf("exponent of %q exceeds %d", a.Symbol(), unit.MaxExponent))
		}
		totals[a.Symbol()] = total
		terms = append(terms, unit.Term{Atomic: a, Exp: sign * exp})

		op, ok := p.next()
		if !ok {
			break
		}
		switch op.kind {
		case tokMul:
			sign = 1
		case tokDiv:
			sign = -1
		default:
			return unit.Unit{}, errs.Malformed(expr, op.pos, "unexpected "+describe(op))
		}
	}

	return unit.FromTerms(terms...), nil
}

type parser struct {
	expr   string
	tokens []token
	i      int
}

func (p *parser) next() (token, bool) {
	if p.i >= len(p.tokens) {
		return token{}, false
	}
	t := p.tokens[p.i]
	p.i++
	return t, true
}

// factor reads ATOM ['^' DIGITS].
func (p *parser) factor() (token, int, error) {
	atom, ok := p.next()
	if !ok {
		return token{}, 0, errs.Malformed(p.expr, len(p.expr), "expected unit symbol at end of expression")
	}
	if atom.kind != tokAtom {
		return token{}, 0, errs.Malformed(p.expr, atom.pos, "expected unit symbol, found "+describe(atom))
	}
	if atom.text == errs.UnitlessSymbol {
		return token{}, 0, errs.Malformed(p.expr, atom.pos, "'1' is only valid as a reciprocal prefix")
	}

	if p.i >= len(p.tokens) || p.tokens[p.i].kind != tokPow {
		return atom, 1, nil
	}
	caret := p.tokens[p.i]
	p.i++

	digits, ok := p.next()
	if !ok || digits.kind != tokAtom {
		return token{}, 0, errs.Malformed(p.expr, caret.pos, "expected exponent after '^'")
	}
	exp, err := parseExponent(digits.text)
	if err != nil {
		return token{}, 0, errs.Malformed(p.expr, digits.pos, err.Error())
	}
	return atom, exp, nil
}

// parseExponent accepts a positive decimal integer without sign.
func parseExponent(s string) (int, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("exponent %q is not a positive integer", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > unit.MaxExponent {
		return 0, fmt.Errorf("exponent %q is out of range", s)
	}
	if n == 0 {
		return 0, fmt.Errorf("exponent must be positive")
	}
	return n, nil
}

func describe(t token) string {
	if t.kind == tokAtom {
		return strconv.Quote(t.text)
	}
	return "operator '" + t.text + "'"
}
