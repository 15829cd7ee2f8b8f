package registry

import (
	"slices"

	"github.com/matzehuels/units/pkg/unit"
)

// Definition describes a unit to register. It is the serialized form used
// by configuration files, definition stores and the HTTP API.
//
// Either Dimension or Of describes the unit's dimension. When Of holds a
// unit expression ("kg*m/s^2"), the dimension is derived from it and the
// effective coefficient is Coefficient times the expression's factor, with
// a zero Coefficient meaning 1.
type Definition struct {
	Name        string         `json:"name" toml:"name"`
	Symbol      string         `json:"symbol" toml:"symbol"`
	Dimension   map[string]int `json:"dimension,omitempty" toml:"dimension,omitempty"`
	Coefficient float64        `json:"coefficient,omitempty" toml:"coefficient,omitzero"`
	Constant    float64        `json:"constant,omitempty" toml:"constant,omitzero"`
	Of          string         `json:"of,omitempty" toml:"of,omitempty"`
	Aliases     []string       `json:"aliases,omitempty" toml:"aliases,omitempty"`
}

// DefinitionOf describes an existing atomic unit as a plain Definition.
func DefinitionOf(a *unit.Atomic, aliases []string) Definition {
	return Definition{
		Name:        a.Name(),
		Symbol:      a.Symbol(),
		Dimension:   a.Dimension().Map(),
		Coefficient: a.Coefficient(),
		Constant:    a.Constant(),
		Aliases:     slices.Clone(aliases),
	}
}
