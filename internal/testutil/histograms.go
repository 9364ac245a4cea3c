package testutil

import (
	"math"
	"math/rand/v2"
)

// UniformCounts returns n channels holding the same count.
func UniformCounts(count, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = count
	}

	return out
}

// DeterministicCounts returns n channel counts in [0, maxCount] drawn from a
// fixed seed for reproducibility.
func DeterministicCounts(seed uint64, maxCount, n int) []int {
	out := make([]int, n)
	rng := rand.New(rand.NewPCG(seed, 0))

	for i := range out {
		out[i] = rng.IntN(maxCount + 1)
	}

	return out
}

// Line returns n channel counts forming a Gaussian emission line of the given
// area centered at channel center, on top of a flat background.
func Line(n int, center, sigma float64, area, background int) []int {
	out := make([]int, n)
	norm := float64(area) / (sigma * math.Sqrt(2*math.Pi))

	for i := range out {
		d := (float64(i) - center) / sigma
		out[i] = background + int(norm*math.Exp(-0.5*d*d)+0.5)
	}

	return out
}

// Channels returns n consecutive channel labels starting at first.
func Channels(first, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = first + i
	}

	return out
}

// Sum returns the total of counts.
func Sum(counts []int) int {
	var total int
	for _, c := range counts {
		total += c
	}

	return total
}
