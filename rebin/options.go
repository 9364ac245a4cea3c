package rebin

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-rebin/quantize"
)

const (
	defaultBins     = DefaultBins
	defaultNominal  = DefaultNominalWidth
	defaultStrategy = StrategyConserving
)

type config struct {
	bins      int
	nominal   float64
	strategy  Strategy
	quantizer *quantize.Quantizer
	trace     func(Step)
}

func defaultConfig() config {
	return config{
		bins:     defaultBins,
		nominal:  defaultNominal,
		strategy: defaultStrategy,
	}
}

// Option configures a [Rebinner].
type Option func(*config) error

// WithBins sets the channel count of both grids (default 4096).
func WithBins(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return fmt.Errorf("%w: %d", ErrInvalidBins, n)
		}

		cfg.bins = n

		return nil
	}
}

// WithNominalWidth sets the nominal channel width in eV (default 3.65).
func WithNominalWidth(w float64) Option {
	return func(cfg *config) error {
		if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: nominal width %g", ErrInvalidWidth, w)
		}

		cfg.nominal = w

		return nil
	}
}

// WithStrategy selects the allocation strategy (default [StrategyConserving]).
func WithStrategy(s Strategy) Option {
	return func(cfg *config) error {
		if !s.Valid() {
			return fmt.Errorf("rebin: invalid strategy: %d", s)
		}

		cfg.strategy = s

		return nil
	}
}

// WithQuantizer sets the quantizer used by [Rebinner.Process]. Without it a
// stochastic quantizer with a random seed is created.
func WithQuantizer(q *quantize.Quantizer) Option {
	return func(cfg *config) error {
		cfg.quantizer = q
		return nil
	}
}

// WithTrace registers fn to receive every allocated destination bin.
func WithTrace(fn func(Step)) Option {
	return func(cfg *config) error {
		cfg.trace = fn
		return nil
	}
}
