package bimap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetReplacesValueSet(t *testing.T) {
	b := New[string, string]()

	b.Set("foot", "feet", "ft")
	assert.Equal(t, []string{"feet", "ft"}, b.Values("foot"))

	b.Set("foot", "ft")
	assert.Equal(t, []string{"ft"}, b.Values("foot"))

	_, ok := b.Key("feet")
	assert.False(t, ok, "feet should be unmapped after reassignment")

	owner, ok := b.Key("ft")
	require.True(t, ok)
	assert.Equal(t, "foot", owner)
}

func TestSetEvictsFromPreviousOwner(t *testing.T) {
	b := New[string, string]()
	b.Set("meter", "metre", "m")
	b.Set("mile", "m", "mi")

	owner, _ := b.Key("m")
	assert.Equal(t, "mile", owner)
	assert.Equal(t, []string{"metre"}, b.Values("meter"))
	assert.Equal(t, []string{"m", "mi"}, b.Values("mile"))
	assert.Equal(t, 3, b.Len())
}

func TestAssign(t *testing.T) {
	b := New[string, string]()
	b.Set("inch", "in", "inches", "zoll")
	b.Set("foot", "ft")

	b.Assign("zoll", "foot")

	owner, ok := b.Key("zoll")
	require.True(t, ok)
	assert.Equal(t, "foot", owner)
	assert.Equal(t, []string{"in", "inches"}, b.Values("inch"), "other aliases of the dispossessed key stay")
	assert.Equal(t, []string{"ft", "zoll"}, b.Values("foot"))

	// Assigning to the current owner is a no-op.
	b.Assign("ft", "foot")
	assert.Equal(t, []string{"ft", "zoll"}, b.Values("foot"))
}

func TestAssignLastValueDropsKey(t *testing.T) {
	b := New[string, string]()
	b.Set("a", "x")
	b.Assign("x", "b")

	assert.False(t, b.Has("a"))
	assert.True(t, b.Has("b"))
	assert.ElementsMatch(t, []string{"b"}, b.Keys())
}

func TestRemove(t *testing.T) {
	b := New[string, string]()
	b.Set("k", "v1", "v2")

	assert.True(t, b.RemoveValue("v1"))
	assert.False(t, b.RemoveValue("v1"))
	assert.Equal(t, []string{"v2"}, b.Values("k"))

	b.RemoveKey("k")
	assert.Empty(t, b.Values("k"))
	assert.Equal(t, 0, b.Len())
}

func TestZeroValue(t *testing.T) {
	var b Bimap[int, string]
	_, ok := b.Key("x")
	assert.False(t, ok)
	assert.Empty(t, b.Values(1))

	b.Assign("x", 1)
	owner, ok := b.Key("x")
	require.True(t, ok)
	assert.Equal(t, 1, owner)
}

func TestPointerKeys(t *testing.T) {
	type unit struct{ symbol string }
	ft := &unit{"ft"}
	in := &unit{"in"}

	b := New[*unit, string]()
	b.Set(ft, "feet")
	b.Set(in, "feet")

	owner, _ := b.Key("feet")
	assert.Same(t, in, owner)
	assert.False(t, b.Has(ft))
}
