// Package conv provides checked integer conversions for automaton bookkeeping.
//
// State identifiers are 32-bit; counts and positions are ints. These helpers
// narrow with a bounds check and panic on overflow, since overflowing the
// identifier space means an automaton far beyond any supported size.
package conv

import "math"

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Use uint for comparison to avoid overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// UintToUint32 safely converts a uint to uint32.
// Panics if n > math.MaxUint32.
//
//go:inline
func UintToUint32(n uint) uint32 {
	if uint64(n) > math.MaxUint32 {
		panic("integer overflow: uint value out of uint32 range")
	}
	return uint32(n)
}
