package rebin

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cwbudde/algo-rebin/quantize"
)

var (
	// ErrLengthMismatch indicates a histogram whose length differs from the grid.
	ErrLengthMismatch = errors.New("rebin: histogram length mismatch")
	// ErrNegativeCount indicates a negative source count.
	ErrNegativeCount = errors.New("rebin: negative count")
)

// Rebinner converts source histograms onto the nominal grid.
type Rebinner struct {
	grid      *Grid
	strategy  Strategy
	quantizer *quantize.Quantizer
	trace     func(Step)
}

// New creates a Rebinner for a source calibrated at referenceEnergy whose
// channels physically correspond to trueEnergy. Both energies are in the same
// unit (keV by convention).
func New(referenceEnergy, trueEnergy float64, opts ...Option) (*Rebinner, error) {
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

	tw, err := TrueWidth(cfg.nominal, referenceEnergy, trueEnergy)
	if err != nil {
		return nil, err
	}

	grid, err := NewGrid(cfg.bins, cfg.nominal, tw)
	if err != nil {
		return nil, err
	}

	q := cfg.quantizer
	if q == nil {
		q, err = quantize.New()
		if err != nil {
			return nil, err
		}
	}

	return &Rebinner{
		grid:      grid,
		strategy:  cfg.strategy,
		quantizer: q,
		trace:     cfg.trace,
	}, nil
}

// Grid returns the underlying grid.
func (r *Rebinner) Grid() *Grid { return r.grid }

// Strategy returns the allocation strategy.
func (r *Rebinner) Strategy() Strategy { return r.strategy }

// Quantizer returns the quantizer used by Process.
func (r *Rebinner) Quantizer() *quantize.Quantizer { return r.quantizer }

// Accumulate distributes counts over the destination grid and returns the
// fractional accumulator. counts must have exactly Grid().Bins() entries.
func (r *Rebinner) Accumulate(counts []int) ([]float64, error) {
	if len(counts) != r.grid.bins {
		return nil, fmt.Errorf("%w: got %d channels, want %d", ErrLengthMismatch, len(counts), r.grid.bins)
	}

	for k, c := range counts {
		if c < 0 {
			return nil, fmt.Errorf("%w: channel %d has %d", ErrNegativeCount, k, c)
		}
	}

	a := allocator{
		grid:   r.grid,
		counts: counts,
		acc:    make([]float64, r.grid.bins),
		trace:  r.trace != nil,
	}

	for j := range r.grid.bins {
		if !r.grid.Covers(j) {
			break
		}

		w, err := r.grid.Locate(j)
		if err != nil {
			return nil, err
		}

		a.allocate(r.strategy, w)

		if a.trace {
			r.trace(Step{Window: w, Writes: slices.Clone(a.writes)})
			a.writes = a.writes[:0]
		}
	}

	return a.acc, nil
}

// Process rebins counts and quantizes the result to integer counts.
func (r *Rebinner) Process(counts []int) ([]int, error) {
	acc, err := r.Accumulate(counts)
	if err != nil {
		return nil, err
	}

	return r.quantizer.Quantize(acc), nil
}
