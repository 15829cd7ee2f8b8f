package registry_test

import (
	"fmt"

	"github.com/matzehuels/units/pkg/dimension"
	"github.com/matzehuels/units/pkg/registry"
)

func ExampleRegistry_Parse() {
	r := registry.New()
	_, _ = r.DefineUnit("kilogram", "kg", dimension.Of(dimension.Mass), 1, 0)
	_, _ = r.DefineUnit("meter", "m", dimension.Of(dimension.Length), 1, 0)
	_, _ = r.DefineUnit("second", "s", dimension.Of(dimension.Time), 1, 0)

	u, err := r.Parse("m*kg/s^2")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(u.Symbol())
	fmt.Println(u.Dimension())
	// Output:
	// kg*m/s^2
	// {length:1, mass:1, time:-2}
}

func ExampleRegistry_Convert() {
	r := registry.New()
	_, _ = r.DefineUnit("meter", "m", dimension.Of(dimension.Length), 1, 0)
	_, _ = r.DefineUnit("centifoot", "cft", dimension.Of(dimension.Length), 0.003048, 0)

	c, err := r.Convert(5, "cft", "m")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%.5f %s\n", c.Value, c.To)
	// Output:
	// 0.01524 m
}

func ExampleRegistry_SetAliases() {
	r := registry.New()
	_, _ = r.DefineUnit("foot", "ft", dimension.Of(dimension.Length), 0.3048, 0)

	_ = r.SetAliases("ft", "feet", "ft")
	_ = r.SetAliases("ft", "ft")

	_, ok := r.AliasOwner("feet")
	owner, _ := r.AliasOwner("ft")
	fmt.Println(ok, owner.Name())
	// Output:
	// false foot
}
