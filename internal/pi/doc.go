// Package pi computes the decimal expansion of pi to arbitrary precision.
//
// It exposes a single narrow entry point, FractionalDigits, so callers stay
// independent of the arithmetic underneath. The implementation uses the
// Chudnovsky series with binary splitting over math/big integers; the large
// multiplications that dominate the splitting are delegated to bigfft.
package pi
