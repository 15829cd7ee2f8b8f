package unit

import "testing"

func TestSymbolRendering(t *testing.T) {
	tests := []struct {
		name string
		u    Unit
		want string
	}{
		{"unitless", Unitless(), "1"},
		{"atomic", Of(meter), "m"},
		{"velocity", Of(kilometer).Div(Of(hour)), "km/h"},
		{"force", Of(kilogram).Mul(Of(meter)).Div(Of(second).Pow(2)), "kg*m/s^2"},
		{"reciprocal", Of(second).Pow(-1), "1/s"},
		{"reciprocal pair", Of(second).Pow(-1).Div(Of(meter).Pow(2)), "1/s/m^2"},
		{"square", Of(meter).Pow(2), "m^2"},
		{"exponent ordering", Of(meter).Pow(3).Mul(Of(kilogram)).Mul(Of(foot).Pow(2)), "kg*ft^2*m^3"},
		{"alphabetical ties", Of(second).Mul(Of(meter)).Mul(Of(kilogram)), "kg*m*s"},
		{"negative ordering", Of(kilogram).Div(Of(second).Pow(3)).Div(Of(meter)), "kg/m/s^3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.u.Symbol(); got != tt.want {
				t.Errorf("Symbol() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSymbolIsDeterministic(t *testing.T) {
	a := Of(kilogram).Mul(Of(meter)).Div(Of(second).Pow(2)).Mul(Of(hour).Pow(-1))
	b := Of(hour).Pow(-1).Mul(Of(second).Pow(-2)).Mul(Of(meter)).Mul(Of(kilogram))
	for i := 0; i < 20; i++ {
		if a.Symbol() != b.Symbol() {
			t.Fatalf("equal units rendered differently: %q vs %q", a.Symbol(), b.Symbol())
		}
	}
	if got := a.Symbol(); got != "kg*m/h/s^2" {
		t.Errorf("Symbol() = %q", got)
	}
}

func TestNameRendering(t *testing.T) {
	force := Of(kilogram).Mul(Of(meter)).Div(Of(second).Pow(2))
	if got := force.Name(); got != "kilogram * meter / second^2" {
		t.Errorf("Name() = %q", got)
	}
	if got := Of(hour).Pow(-1).Name(); got != "1 / hour" {
		t.Errorf("Name() = %q", got)
	}
	if got := Of(foot).Name(); got != "foot" {
		t.Errorf("Name() = %q", got)
	}
}

func TestFormatCustomLabel(t *testing.T) {
	upper := func(a *Atomic) string {
		if a == meter {
			return "metre"
		}
		return a.Symbol()
	}
	u := Of(meter).Div(Of(second))
	if got := u.Format(upper, SymbolStyle); got != "metre/s" {
		t.Errorf("Format() = %q, want %q", got, "metre/s")
	}
}

func TestTermsOrder(t *testing.T) {
	u := Of(second).Pow(-2).Mul(Of(meter)).Mul(Of(kilogram))
	terms := u.Terms()
	want := []string{"kg", "m", "s"}
	if len(terms) != len(want) {
		t.Fatalf("Terms() len = %d, want %d", len(terms), len(want))
	}
	for i, sym := range want {
		if terms[i].Atomic.Symbol() != sym {
			t.Errorf("Terms()[%d] = %s, want %s", i, terms[i].Atomic.Symbol(), sym)
		}
	}
	if terms[2].Exp != -2 {
		t.Errorf("s exponent = %d, want -2", terms[2].Exp)
	}
}
