package registry

import (
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/units/pkg/bimap"
	"github.com/matzehuels/units/pkg/dimension"
	errs "github.com/matzehuels/units/pkg/errors"
	"github.com/matzehuels/units/pkg/observability"
	"github.com/matzehuels/units/pkg/unit"
)

// Registry is a symbol and name table of atomic units plus their display
// aliases. The zero value is not usable; create one with [New].
type Registry struct {
	mu      sync.RWMutex
	symbols map[string]*unit.Atomic
	names   map[string]*unit.Atomic
	defs    map[string]Definition
	order   []*unit.Atomic
	aliases *bimap.Bimap[*unit.Atomic, string]
	logger  *log.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for debug output about definitions and
// alias changes. By default nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		symbols: make(map[string]*unit.Atomic),
		names:   make(map[string]*unit.Atomic),
		defs:    make(map[string]Definition),
		aliases: bimap.New[*unit.Atomic, string](),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefineUnit registers a unit from its raw attributes.
// It is shorthand for [Registry.Define] without an expression or aliases.
func (r *Registry) DefineUnit(name, symbol string, dim dimension.Vector, coefficient, constant float64) (*unit.Atomic, error) {
	return r.Define(Definition{
		Name:        name,
		Symbol:      symbol,
		Dimension:   dim.Map(),
		Coefficient: coefficient,
		Constant:    constant,
	})
}

// Define validates def and registers the resulting atomic unit.
//
// Errors:
//   - ErrCodeInvalidSymbol, ErrCodeInvalidName, ErrCodeInvalidInput: def is invalid
//   - ErrCodeDuplicateSymbol: the symbol is already registered
//   - ErrCodeDuplicateName: the name is already registered
//   - ErrCodeUnitNotFound, ErrCodeMalformedExpression: def.Of does not parse
//   - ErrCodeNonLinearComposite: def.Of has no single multiplicative factor
//
// On error the registry is unchanged.
func (r *Registry) Define(def Definition) (*unit.Atomic, error) {
	a, err := r.define(def)
	observability.Registry().OnDefine(def.Symbol, err)
	return a, err
}

// Check reports the error Define would return for def without registering
// it. Callers that persist definitions run Check first so that a failed
// write never leaves a unit registered.
func (r *Registry) Check(def Definition) error {
	if err := validateAliases(def.Symbol, def.Aliases); err != nil {
		return err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, err := r.admit(def)
	return err
}

func (r *Registry) define(def Definition) (*unit.Atomic, error) {
	if err := validateAliases(def.Symbol, def.Aliases); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	a, err := r.admit(def)
	if err != nil {
		return nil, err
	}

	r.symbols[a.Symbol()] = a
	r.names[a.Name()] = a
	r.order = append(r.order, a)
	stored := def
	stored.Aliases = nil
	r.defs[a.Symbol()] = stored
	for _, alias := range def.Aliases {
		r.aliases.Assign(alias, a)
	}

	r.logger.Debug("defined unit", "symbol", a.Symbol(), "name", a.Name(), "dimension", a.Dimension())
	return a, nil
}

// admit builds def and rejects it when its symbol or name is taken.
// Callers hold r.mu.
func (r *Registry) admit(def Definition) (*unit.Atomic, error) {
	a, err := r.build(def)
	if err != nil {
		return nil, err
	}
	if _, ok := r.symbols[a.Symbol()]; ok {
		return nil, errs.New(errs.ErrCodeDuplicateSymbol, "symbol %q is already registered", a.Symbol())
	}
	if prev, ok := r.names[a.Name()]; ok {
		return nil, errs.New(errs.ErrCodeDuplicateName, "name %q is already registered to %q", a.Name(), prev.Symbol())
	}
	return a, nil
}

func validateAliases(symbol string, aliases []string) error {
	for _, alias := range aliases {
		if err := errs.ValidateSymbol(alias); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidInput, err, "unit %q: invalid alias %q", symbol, alias)
		}
	}
	return nil
}

// build turns def into an atomic unit. Callers hold r.mu.
func (r *Registry) build(def Definition) (*unit.Atomic, error) {
	dim, err := dimension.FromMap(def.Dimension)
	if err != nil {
		return nil, err
	}
	coefficient := def.Coefficient

	if def.Of != "" {
		base, err := r.parseLocked(def.Of, r.bySymbol)
		if err != nil {
			return nil, err
		}
		factor, err := base.Factor()
		if err != nil {
			return nil, err
		}
		if len(def.Dimension) > 0 && !dim.Equal(base.Dimension()) {
			return nil, errs.New(errs.ErrCodeInvalidInput,
				"unit %q: dimension %s does not match %q %s", def.Symbol, dim, def.Of, base.Dimension())
		}
		if coefficient == 0 {
			coefficient = 1
		}
		coefficient *= factor
		dim = base.Dimension()
	}

	return unit.NewAtomic(def.Name, def.Symbol, dim, coefficient, def.Constant)
}

// LookupSymbol returns the unit registered under symbol.
func (r *Registry) LookupSymbol(symbol string) (*unit.Atomic, error) {
	r.mu.RLock()
	a, ok := r.symbols[symbol]
	r.mu.RUnlock()

	observability.Registry().OnLookup(symbol, ok)
	if !ok {
		return nil, errs.New(errs.ErrCodeUnitNotFound, "no unit with symbol %q", symbol)
	}
	return a, nil
}

// LookupName returns the unit registered under its long name.
func (r *Registry) LookupName(name string) (*unit.Atomic, error) {
	r.mu.RLock()
	a, ok := r.names[name]
	r.mu.RUnlock()

	observability.Registry().OnLookup(name, ok)
	if !ok {
		return nil, errs.New(errs.ErrCodeUnitNotFound, "no unit named %q", name)
	}
	return a, nil
}

// Lookup resolves key as a symbol, then a name, then a display alias.
func (r *Registry) Lookup(key string) (*unit.Atomic, error) {
	r.mu.RLock()
	a, ok := r.lenient(key)
	r.mu.RUnlock()

	observability.Registry().OnLookup(key, ok)
	if !ok {
		return nil, errs.New(errs.ErrCodeUnitNotFound, "no unit with symbol, name or alias %q", key)
	}
	return a, nil
}

// bySymbol and lenient are atom resolvers. Callers hold r.mu.
func (r *Registry) bySymbol(key string) (*unit.Atomic, bool) {
	a, ok := r.symbols[key]
	return a, ok
}

func (r *Registry) lenient(key string) (*unit.Atomic, bool) {
	if a, ok := r.symbols[key]; ok {
		return a, true
	}
	if a, ok := r.names[key]; ok {
		return a, true
	}
	return r.aliases.Key(key)
}

// Units returns every registered atomic unit in definition order.
func (r *Registry) Units() []*unit.Atomic {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Len returns the number of registered units.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Definition returns the definition a unit was registered with, including
// its current aliases.
func (r *Registry) Definition(symbol string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[symbol]
	if !ok {
		return Definition{}, false
	}
	def.Aliases = r.aliases.Values(r.symbols[symbol])
	return def, true
}

// Definitions returns the definitions of every unit in definition order.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Definition, 0, len(r.order))
	for _, a := range r.order {
		def := r.defs[a.Symbol()]
		def.Aliases = r.aliases.Values(a)
		out = append(out, def)
	}
	return out
}
