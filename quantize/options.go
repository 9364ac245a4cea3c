package quantize

import (
	"fmt"
	"math"
	"math/rand/v2"
)

const (
	defaultRounding      = RoundStochastic
	defaultSnapTolerance = 1e-9
	maxSnapTolerance     = 0.5
)

type config struct {
	rounding Rounding
	snap     float64
	rng      *rand.Rand
	seed     uint64
	seeded   bool
}

func defaultConfig() config {
	return config{
		rounding: defaultRounding,
		snap:     defaultSnapTolerance,
	}
}

// Option configures a [Quantizer].
type Option func(*config) error

// WithRounding sets the rounding mode (default [RoundStochastic]).
func WithRounding(r Rounding) Option {
	return func(cfg *config) error {
		if !r.Valid() {
			return fmt.Errorf("quantize: invalid rounding: %d", r)
		}

		cfg.rounding = r

		return nil
	}
}

// WithSnapTolerance sets the distance to the nearest integer below which a
// value is snapped before rounding (default 1e-9, range [0, 0.5)).
func WithSnapTolerance(eps float64) Option {
	return func(cfg *config) error {
		if eps < 0 || eps >= maxSnapTolerance || math.IsNaN(eps) {
			return fmt.Errorf("quantize: snap tolerance must be in [0, %g): %g", maxSnapTolerance, eps)
		}

		cfg.snap = eps

		return nil
	}
}

// WithRNG sets the random source for stochastic rounding. It takes precedence
// over [WithSeed].
func WithRNG(rng *rand.Rand) Option {
	return func(cfg *config) error {
		cfg.rng = rng
		return nil
	}
}

// WithSeed seeds a PCG generator for reproducible output.
func WithSeed(seed uint64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		cfg.seeded = true

		return nil
	}
}
