package registry

import (
	"time"

	"github.com/matzehuels/units/pkg/observability"
	"github.com/matzehuels/units/pkg/unit"
)

// Conversion is the outcome of [Registry.Convert].
type Conversion struct {
	Value float64
	From  unit.Unit
	To    unit.Unit
}

// Convert parses both expressions leniently and converts value between them.
func (r *Registry) Convert(value float64, fromExpr, toExpr string) (Conversion, error) {
	start := time.Now()
	c, err := r.convert(value, fromExpr, toExpr)
	observability.Conversion().OnConvert(fromExpr, toExpr, time.Since(start), err)
	return c, err
}

func (r *Registry) convert(value float64, fromExpr, toExpr string) (Conversion, error) {
	from, err := r.ParseLenient(fromExpr)
	if err != nil {
		return Conversion{}, err
	}
	to, err := r.ParseLenient(toExpr)
	if err != nil {
		return Conversion{}, err
	}
	v, err := unit.Convert(value, from, to)
	if err != nil {
		return Conversion{}, err
	}
	return Conversion{Value: v, From: from, To: to}, nil
}
