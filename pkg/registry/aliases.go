package registry

import (
	"slices"

	errs "github.com/matzehuels/units/pkg/errors"
	"github.com/matzehuels/units/pkg/observability"
	"github.com/matzehuels/units/pkg/unit"
)

// SetAliases replaces the alias set of the unit registered under symbol.
// Aliases not in the new set become unmapped; aliases held by other units
// move to this one. Calling it with no aliases clears the set.
func (r *Registry) SetAliases(symbol string, aliases ...string) error {
	if err := validateAliases(symbol, aliases); err != nil {
		return err
	}

	r.mu.Lock()
	a, ok := r.symbols[symbol]
	if !ok {
		r.mu.Unlock()
		return errs.New(errs.ErrCodeUnitNotFound, "no unit with symbol %q", symbol)
	}
	r.aliases.Set(a, aliases...)
	current := r.aliases.Values(a)
	r.mu.Unlock()

	r.logger.Debug("set aliases", "symbol", symbol, "aliases", current)
	observability.Registry().OnAliasChange(symbol, current)
	return nil
}

// CheckAliases reports the error SetAliases would return without changing
// anything. On success it returns the alias set SetAliases would leave on
// the unit, sorted and without duplicates.
func (r *Registry) CheckAliases(symbol string, aliases ...string) ([]string, error) {
	if err := validateAliases(symbol, aliases); err != nil {
		return nil, err
	}
	r.mu.RLock()
	_, ok := r.symbols[symbol]
	r.mu.RUnlock()
	if !ok {
		return nil, errs.New(errs.ErrCodeUnitNotFound, "no unit with symbol %q", symbol)
	}
	return slices.Compact(slices.Sorted(slices.Values(aliases))), nil
}

// SetAlias assigns a single alias to the unit registered under symbol.
// The alias is taken from whichever unit held it before; that unit keeps
// its other aliases.
func (r *Registry) SetAlias(alias, symbol string) error {
	if err := errs.ValidateSymbol(alias); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid alias %q", alias)
	}

	r.mu.Lock()
	a, ok := r.symbols[symbol]
	if !ok {
		r.mu.Unlock()
		return errs.New(errs.ErrCodeUnitNotFound, "no unit with symbol %q", symbol)
	}
	r.aliases.Assign(alias, a)
	current := r.aliases.Values(a)
	r.mu.Unlock()

	r.logger.Debug("set alias", "alias", alias, "symbol", symbol)
	observability.Registry().OnAliasChange(symbol, current)
	return nil
}

// RemoveAlias unmaps alias. It reports whether the alias was mapped.
func (r *Registry) RemoveAlias(alias string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.aliases.RemoveValue(alias)
}

// Aliases returns the aliases of the unit registered under symbol, sorted.
// Unknown symbols have no aliases.
func (r *Registry) Aliases(symbol string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.symbols[symbol]
	if !ok {
		return nil
	}
	return r.aliases.Values(a)
}

// AliasOwner returns the unit that currently holds alias.
func (r *Registry) AliasOwner(alias string) (*unit.Atomic, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.aliases.Key(alias)
}

// DisplayLabel returns the first alias of a, or its symbol when it has none.
func (r *Registry) DisplayLabel(a *unit.Atomic) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if aliases := r.aliases.Values(a); len(aliases) > 0 {
		return aliases[0]
	}
	return a.Symbol()
}

// Display renders u using each atomic unit's first alias, falling back to
// its symbol when it has none.
func (r *Registry) Display(u unit.Unit) string {
	return u.Format(r.DisplayLabel, unit.SymbolStyle)
}
