// Package dimension tracks the dimensional signature of a unit.
//
// A [Vector] maps base dimensions (length, mass, time, ...) to non-zero
// integer exponents. Absent dimensions have exponent zero and are never
// stored, so two vectors are equal exactly when their stored entries match.
//
// Vectors are immutable values. [Combine] and [Scale] return new vectors and
// never modify their arguments, which makes a Vector safe to share between
// goroutines and between the units that reference it.
//
// # Example
//
//	force := dimension.Combine(
//	    dimension.Combine(dimension.Of(dimension.Mass), dimension.Of(dimension.Length), dimension.Add),
//	    dimension.Scale(dimension.Of(dimension.Time), 2),
//	    dimension.Subtract,
//	)
//	fmt.Println(force) // {length:1, mass:1, time:-2}
package dimension
