package store

import (
	"context"

	errs "github.com/matzehuels/units/pkg/errors"
	"github.com/matzehuels/units/pkg/registry"
)

// Failure is a stored definition that could not be registered.
type Failure struct {
	Symbol string
	Err    error
}

// Report summarizes a [Load].
type Report struct {
	Loaded []string
	Failed []Failure
}

// Load registers every definition in s with reg.
//
// Definitions built from an expression may reference other stored units,
// so registration repeats over the unresolved remainder until a pass makes
// no progress. Definitions that still fail are reported individually; only
// a failure to list the store is returned as an error.
func Load(ctx context.Context, s Store, reg *registry.Registry) (Report, error) {
	defs, err := s.List(ctx)
	if err != nil {
		return Report{}, err
	}

	type attempt struct {
		def registry.Definition
		err error
	}
	pending := make([]attempt, len(defs))
	for i, def := range defs {
		pending[i] = attempt{def: def}
	}

	var report Report
	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		var next []attempt
		for _, a := range pending {
			_, err := reg.Define(a.def)
			switch {
			case err == nil:
				report.Loaded = append(report.Loaded, a.def.Symbol)
			case a.def.Of != "" && errs.Is(err, errs.ErrCodeUnitNotFound):
				next = append(next, attempt{def: a.def, err: err})
			default:
				report.Failed = append(report.Failed, Failure{Symbol: a.def.Symbol, Err: err})
			}
		}

		if len(next) == len(pending) {
			for _, a := range next {
				report.Failed = append(report.Failed, Failure{Symbol: a.def.Symbol, Err: a.err})
			}
			break
		}
		pending = next
	}
	return report, nil
}
