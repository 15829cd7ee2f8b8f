// Package registry maps unit symbols and names to atomic units and parses
// canonical unit expressions back into [unit.Unit] values.
//
// # Lifecycle
//
// A [Registry] is built in two phases: create it and register the units it
// should know (see package builtin for the default table), then share it
// with everything that parses or looks up units. After construction the
// only mutations are [Registry.Define] and the alias setters.
//
// # Concurrency
//
// A Registry is safe for concurrent use. Definitions are inserted under a
// write lock, so a reader never observes a unit that is present in the
// symbol table but missing from the name table. Lookups and parses share a
// read lock; a whole expression is resolved against one consistent view.
//
// # Expressions
//
// [Registry.Parse] accepts exactly the grammar produced by
// [unit.Unit.Symbol]:
//
//	kg*m/s^2     kilogram meter per second squared
//	1/s          reciprocal second
//	1            the unitless unit
//
// Each atom's sign comes from the operator before it: '*' (or the start of
// the expression) is positive, '/' is negative. Repeated atoms are merged
// by summing exponents, exactly as [unit.Unit.Mul] does. Malformed input is
// reported with [errors.ErrCodeMalformedExpression] and unknown atoms with
// [errors.ErrCodeUnitNotFound]; nothing silently falls back to the unitless
// unit.
//
// # Aliases
//
// Every unit may own a set of display aliases ("feet" for ft). Aliases are
// held in a [bimap.Bimap]: assigning an alias to a unit takes it away from
// its previous owner. [Registry.Display] renders units with their first
// alias and [Registry.ParseLenient] accepts aliases and names as atoms.
package registry
