package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// reservedOperators are the characters of the unit expression grammar.
// They can never appear inside an atomic symbol.
const reservedOperators = "*/^"

// UnitlessSymbol is the rendering of the unit with no terms. It is reserved
// and cannot be used as an atomic symbol.
const UnitlessSymbol = "1"

// ValidateSymbol validates an atomic unit symbol.
//
// The rules are:
//   - No empty symbols
//   - Valid UTF-8
//   - None of the grammar operators '*', '/', '^'
//   - No whitespace or control characters
//   - Not the reserved unitless symbol "1"
func ValidateSymbol(symbol string) error {
	if symbol == "" {
		return New(ErrCodeInvalidSymbol, "symbol cannot be empty")
	}

	if !utf8.ValidString(symbol) {
		return New(ErrCodeInvalidSymbol, "symbol %q is not valid UTF-8", symbol)
	}

	if i := strings.IndexAny(symbol, reservedOperators); i >= 0 {
		return New(ErrCodeInvalidSymbol, "symbol %q contains reserved operator %q", symbol, symbol[i])
	}

	for _, r := range symbol {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidSymbol, "symbol %q contains whitespace or control characters", symbol)
		}
	}

	if symbol == UnitlessSymbol {
		return New(ErrCodeInvalidSymbol, "symbol %q is reserved for the unitless unit", symbol)
	}

	return nil
}

// ValidateName validates a unit's long name.
// Names may contain spaces (e.g. "pound force") but not control characters,
// and must not have leading or trailing whitespace.
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}

	if !utf8.ValidString(name) {
		return New(ErrCodeInvalidName, "name %q is not valid UTF-8", name)
	}

	if strings.TrimSpace(name) != name {
		return New(ErrCodeInvalidName, "name %q has leading or trailing whitespace", name)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "name %q contains control characters", name)
		}
	}

	return nil
}
