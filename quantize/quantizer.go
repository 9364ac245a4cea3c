// Package quantize converts fractional bin contents into integer counts.
package quantize

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Quantizer rounds accumulated fractional counts to non-negative integers.
type Quantizer struct {
	rounding Rounding
	snap     float64
	rng      *rand.Rand

	// seed is set when the quantizer owns its generator.
	seed    uint64
	ownSeed bool
}

// New creates a Quantizer. The default configuration is stochastic rounding
// with a 1e-9 snap tolerance and a PCG generator seeded from the process
// source; [Quantizer.Seed] reports that seed.
func New(opts ...Option) (*Quantizer, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	q := &Quantizer{
		rounding: cfg.rounding,
		snap:     cfg.snap,
		rng:      cfg.rng,
	}

	if q.rng == nil {
		seed := cfg.seed
		if !cfg.seeded {
			seed = rand.Uint64()
		}

		q.rng = rand.New(rand.NewPCG(seed, 0))
		q.seed = seed
		q.ownSeed = true
	}

	return q, nil
}

// Value quantizes a single accumulated count. Values <= 0 and NaN yield 0.
func (q *Quantizer) Value(x float64) int {
	if !(x > 0) {
		return 0
	}

	whole := math.Floor(x)
	frac := x - whole

	switch {
	case frac <= q.snap:
		return int(whole)
	case 1-frac <= q.snap:
		return int(whole) + 1
	}

	switch q.rounding {
	case RoundFloor:
		return int(whole)
	case RoundNearest:
		if frac >= 0.5 {
			return int(whole) + 1
		}

		return int(whole)
	default:
		// u is uniform in [0, 1).
		if frac > q.rng.Float64() {
			return int(whole) + 1
		}

		return int(whole)
	}
}

// QuantizeInto quantizes src into dst. It panics if the lengths differ.
func (q *Quantizer) QuantizeInto(dst []int, src []float64) {
	if len(dst) != len(src) {
		panic(fmt.Sprintf("quantize: length mismatch: dst %d, src %d", len(dst), len(src)))
	}

	for i, x := range src {
		dst[i] = q.Value(x)
	}
}

// Quantize returns a newly allocated integer histogram for src.
func (q *Quantizer) Quantize(src []float64) []int {
	out := make([]int, len(src))
	q.QuantizeInto(out, src)

	return out
}

// Rounding returns the rounding mode.
func (q *Quantizer) Rounding() Rounding { return q.rounding }

// SnapTolerance returns the snap tolerance.
func (q *Quantizer) SnapTolerance() float64 { return q.snap }

// Seed returns the PCG seed and true when the quantizer created its own
// generator. With [WithRNG] the seed is unknown and ok is false.
func (q *Quantizer) Seed() (seed uint64, ok bool) {
	return q.seed, q.ownSeed
}
