package dimension

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"
	"strings"

	errs "github.com/matzehuels/units/pkg/errors"
)

// ID identifies an independent base dimension.
type ID string

// The seven SI base dimensions.
const (
	Length      ID = "length"
	Mass        ID = "mass"
	Time        ID = "time"
	Current     ID = "current"
	Temperature ID = "temperature"
	Amount      ID = "amount"
	Luminosity  ID = "luminosity"
)

// Sign selects whether [Combine] adds or subtracts exponents.
type Sign int

const (
	// Add sums exponents, as when multiplying units.
	Add Sign = 1
	// Subtract subtracts exponents, as when dividing units.
	Subtract Sign = -1
)

// Vector is an immutable mapping from dimension to non-zero exponent.
// The zero value is the dimensionless vector.
type Vector struct {
	exps map[ID]int
}

// None returns the dimensionless vector.
func None() Vector { return Vector{} }

// Of returns the vector for a single base dimension with exponent 1.
func Of(id ID) Vector {
	return Vector{exps: map[ID]int{id: 1}}
}

// New builds a vector from explicit exponents. Zero exponents are dropped.
// Empty dimension identifiers are rejected with ErrCodeInvalidInput.
func New(exps map[ID]int) (Vector, error) {
	out := make(map[ID]int, len(exps))
	for id, e := range exps {
		if strings.TrimSpace(string(id)) == "" {
			return Vector{}, errs.New(errs.ErrCodeInvalidInput, "dimension identifier cannot be empty")
		}
		if e != 0 {
			out[id] = e
		}
	}
	return wrap(out), nil
}

// FromMap is [New] for string-keyed maps, as decoded from TOML or JSON.
func FromMap(m map[string]int) (Vector, error) {
	exps := make(map[ID]int, len(m))
	for k, v := range m {
		exps[ID(k)] = v
	}
	return New(exps)
}

// MustNew is like [New] but panics on error. Intended for static tables.
func MustNew(exps map[ID]int) Vector {
	v, err := New(exps)
	if err != nil {
		panic(err)
	}
	return v
}

func wrap(m map[ID]int) Vector {
	if len(m) == 0 {
		return Vector{}
	}
	return Vector{exps: m}
}

// Combine adds (sign = Add) or subtracts (sign = Subtract) the exponents of b
// to those of a. Dimensions whose exponents sum to zero are dropped.
func Combine(a, b Vector, sign Sign) Vector {
	out := make(map[ID]int, len(a.exps)+len(b.exps))
	maps.Copy(out, a.exps)
	for id, e := range b.exps {
		if sum := out[id] + int(sign)*e; sum != 0 {
			out[id] = sum
		} else {
			delete(out, id)
		}
	}
	return wrap(out)
}

// Scale multiplies every exponent by k. Scaling by zero yields the
// dimensionless vector.
func Scale(v Vector, k int) Vector {
	if k == 0 {
		return Vector{}
	}
	out := make(map[ID]int, len(v.exps))
	for id, e := range v.exps {
		out[id] = e * k
	}
	return wrap(out)
}

// Mul is shorthand for Combine(v, o, Add).
func (v Vector) Mul(o Vector) Vector { return Combine(v, o, Add) }

// Div is shorthand for Combine(v, o, Subtract).
func (v Vector) Div(o Vector) Vector { return Combine(v, o, Subtract) }

// Equal reports whether both vectors have identical non-zero entries.
func (v Vector) Equal(o Vector) bool {
	return maps.Equal(v.exps, o.exps)
}

// IsZero reports whether v is dimensionless.
func (v Vector) IsZero() bool { return len(v.exps) == 0 }

// Exponent returns the exponent of id, or 0 when absent.
func (v Vector) Exponent(id ID) int { return v.exps[id] }

// Len returns the number of dimensions with a non-zero exponent.
func (v Vector) Len() int { return len(v.exps) }

// IDs returns the dimensions with non-zero exponents in ascending order.
func (v Vector) IDs() []ID {
	return slices.Sorted(maps.Keys(v.exps))
}

// Map returns a copy of the entries keyed by plain strings.
func (v Vector) Map() map[string]int {
	out := make(map[string]int, len(v.exps))
	for id, e := range v.exps {
		out[string(id)] = e
	}
	return out
}

// String renders the vector as "{length:1, mass:1, time:-2}".
func (v Vector) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, id := range v.IDs() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(string(id))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(v.exps[id]))
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON encodes the vector as a JSON object of exponents.
func (v Vector) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Map())
}

// UnmarshalJSON decodes a JSON object of exponents.
func (v *Vector) UnmarshalJSON(data []byte) error {
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	parsed, err := FromMap(m)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
