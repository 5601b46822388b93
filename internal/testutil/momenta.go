package testutil

import "math/rand"

// MomentumGrid returns n evenly spaced momenta from lo to hi. The end
// points are exact.
func MomentumGrid(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	if n == 1 {
		out[0] = lo
		return out
	}

	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	out[n-1] = hi
	return out
}

// DeterministicMomenta draws n momenta uniformly from [0, pMax) with a
// fixed seed for reproducibility.
func DeterministicMomenta(seed int64, pMax float64, n int) []float64 {
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = rng.Float64() * pMax
	}
	return out
}

// DeterministicFlags draws n booleans with a fixed seed.
func DeterministicFlags(seed int64, n int) []bool {
	out := make([]bool, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = rng.Intn(2) == 1
	}
	return out
}

// Flags returns a slice of length n filled with v.
func Flags(v bool, n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = v
	}
	return out
}
