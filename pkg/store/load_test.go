package store

import (
	"context"
	"slices"
	"testing"

	"github.com/matzehuels/units/pkg/dimension"
	errs "github.com/matzehuels/units/pkg/errors"
	"github.com/matzehuels/units/pkg/registry"
)

func baseRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	for _, u := range []struct {
		name, symbol string
		id           dimension.ID
	}{
		{"meter", "m", dimension.Length},
		{"kilogram", "kg", dimension.Mass},
		{"second", "s", dimension.Time},
	} {
		if _, err := r.DefineUnit(u.name, u.symbol, dimension.Of(u.id), 1, 0); err != nil {
			t.Fatalf("DefineUnit(%s) error: %v", u.symbol, err)
		}
	}
	return r
}

func TestLoadResolvesDependencies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	// J lists before N, so it only resolves on the second pass.
	for _, def := range []registry.Definition{
		{Name: "newton", Symbol: "N", Of: "kg*m/s^2"},
		{Name: "kilonewton", Symbol: "kN", Of: "N", Coefficient: 1000},
		{Name: "joule", Symbol: "J", Of: "N*m"},
		{Name: "centimeter", Symbol: "cm", Dimension: map[string]int{"length": 1}, Coefficient: 0.01},
	} {
		if err := s.Put(ctx, def); err != nil {
			t.Fatalf("Put() error: %v", err)
		}
	}

	r := baseRegistry(t)
	report, err := Load(ctx, s, r)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(report.Failed) != 0 {
		t.Fatalf("Load() failures: %+v", report.Failed)
	}
	slices.Sort(report.Loaded)
	if want := []string{"J", "N", "cm", "kN"}; !slices.Equal(report.Loaded, want) {
		t.Errorf("Loaded = %v, want %v", report.Loaded, want)
	}

	kn, err := r.LookupSymbol("kN")
	if err != nil {
		t.Fatalf("LookupSymbol(kN) error: %v", err)
	}
	if kn.Coefficient() != 1000 {
		t.Errorf("kN coefficient = %v, want 1000", kn.Coefficient())
	}
}

func TestLoadReportsFailures(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Put(ctx, registry.Definition{Name: "metre", Symbol: "m", Dimension: map[string]int{"length": 1}, Coefficient: 1})
	_ = s.Put(ctx, registry.Definition{Name: "furlong", Symbol: "fur", Of: "ch*m"})
	_ = s.Put(ctx, registry.Definition{Name: "hand", Symbol: "hh", Dimension: map[string]int{"length": 1}, Coefficient: 0.1016})

	report, err := Load(ctx, s, baseRegistry(t))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !slices.Equal(report.Loaded, []string{"hh"}) {
		t.Errorf("Loaded = %v, want [hh]", report.Loaded)
	}

	codes := make(map[string]errs.Code)
	for _, f := range report.Failed {
		codes[f.Symbol] = errs.GetCode(f.Err)
	}
	want := map[string]errs.Code{
		"m":   errs.ErrCodeDuplicateSymbol,
		"fur": errs.ErrCodeUnitNotFound,
	}
	for sym, code := range want {
		if codes[sym] != code {
			t.Errorf("failure for %s = %s, want %s", sym, codes[sym], code)
		}
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewMemoryStore()
	_ = s.Put(context.Background(), centifoot)
	if _, err := Load(ctx, s, baseRegistry(t)); err == nil {
		t.Error("Load() with cancelled context should fail")
	}
}
