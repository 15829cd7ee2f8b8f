// Package bimap provides a two-way association between keys and sets of
// values where every value belongs to at most one key.
//
// It backs the registry's display aliases: a unit (key) owns a set of alias
// strings (values), and assigning an alias to a new unit detaches it from
// its previous owner.
//
// Eviction rules:
//   - [Bimap.Set] replaces a key's whole value set. Values of the old set
//     that are not in the new set become unmapped; values in the new set are
//     detached from whichever key held them before.
//   - [Bimap.Assign] moves a single value to a key, removing it from its
//     previous owner's set and leaving that owner's other values untouched.
//
// A Bimap is not safe for concurrent use; callers synchronize access.
package bimap

import (
	"cmp"
	"maps"
	"slices"
)

// Bimap associates keys with disjoint sets of values.
// The zero value is an empty map ready to use.
type Bimap[K comparable, V cmp.Ordered] struct {
	forward map[K]map[V]struct{}
	reverse map[V]K
}

// New returns an empty Bimap.
func New[K comparable, V cmp.Ordered]() *Bimap[K, V] {
	b := &Bimap[K, V]{}
	b.init()
	return b
}

func (b *Bimap[K, V]) init() {
	if b.forward == nil {
		b.forward = make(map[K]map[V]struct{})
		b.reverse = make(map[V]K)
	}
}

// Set replaces the value set of k. Calling Set with no values unmaps k.
func (b *Bimap[K, V]) Set(k K, values ...V) {
	b.init()
	for v := range b.forward[k] {
		delete(b.reverse, v)
	}
	delete(b.forward, k)

	for _, v := range values {
		b.Assign(v, k)
	}
}

// Assign maps v to k, evicting v from the key that held it before.
func (b *Bimap[K, V]) Assign(v V, k K) {
	b.init()
	if prev, ok := b.reverse[v]; ok {
		if prev == k {
			return
		}
		b.detach(prev, v)
	}
	set, ok := b.forward[k]
	if !ok {
		set = make(map[V]struct{})
		b.forward[k] = set
	}
	set[v] = struct{}{}
	b.reverse[v] = k
}

// detach removes v from k's set, dropping k once its set is empty.
func (b *Bimap[K, V]) detach(k K, v V) {
	set := b.forward[k]
	delete(set, v)
	if len(set) == 0 {
		delete(b.forward, k)
	}
	delete(b.reverse, v)
}

// Key returns the key that owns v.
func (b *Bimap[K, V]) Key(v V) (K, bool) {
	k, ok := b.reverse[v]
	return k, ok
}

// Values returns the values owned by k in ascending order.
func (b *Bimap[K, V]) Values(k K) []V {
	return slices.Sorted(maps.Keys(b.forward[k]))
}

// Has reports whether k owns at least one value.
func (b *Bimap[K, V]) Has(k K) bool {
	return len(b.forward[k]) > 0
}

// RemoveKey unmaps k and all of its values.
func (b *Bimap[K, V]) RemoveKey(k K) {
	b.Set(k)
}

// RemoveValue unmaps v. It reports whether v was mapped.
func (b *Bimap[K, V]) RemoveValue(v V) bool {
	k, ok := b.reverse[v]
	if ok {
		b.detach(k, v)
	}
	return ok
}

// Len returns the number of mapped values.
func (b *Bimap[K, V]) Len() int { return len(b.reverse) }

// Keys returns every key that owns at least one value, in no particular order.
func (b *Bimap[K, V]) Keys() []K {
	return slices.Collect(maps.Keys(b.forward))
}
