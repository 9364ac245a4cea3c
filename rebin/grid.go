package rebin

import (
	"errors"
	"fmt"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

const (
	// DefaultBins is the channel count shared by the source and destination grids.
	DefaultBins = 4096
	// DefaultNominalWidth is the nominal channel width in eV.
	DefaultNominalWidth = 3.65

	// maxMarkers bounds the marker array for extreme width ratios.
	maxMarkers = 1 << 24
)

var (
	// ErrOutOfRange indicates that no marker window exists for a destination bin.
	ErrOutOfRange = errors.New("rebin: index out of range")
	// ErrInvalidWidth indicates a non-finite or non-positive bin width.
	ErrInvalidWidth = errors.New("rebin: invalid bin width")
	// ErrInvalidEnergy indicates a non-finite or non-positive calibration energy.
	ErrInvalidEnergy = errors.New("rebin: invalid energy")
	// ErrInvalidBins indicates a bin count below one.
	ErrInvalidBins = errors.New("rebin: invalid bin count")
)

// TrueWidth derives the physical channel width from the nominal width and the
// ratio of the convergent (true) energy to the correlation (reference) energy.
func TrueWidth(nominalWidth, referenceEnergy, trueEnergy float64) (float64, error) {
	if !positiveFinite(nominalWidth) {
		return 0, fmt.Errorf("%w: nominal width %g", ErrInvalidWidth, nominalWidth)
	}

	if !positiveFinite(referenceEnergy) {
		return 0, fmt.Errorf("%w: reference energy %g", ErrInvalidEnergy, referenceEnergy)
	}

	if !positiveFinite(trueEnergy) {
		return 0, fmt.Errorf("%w: true energy %g", ErrInvalidEnergy, trueEnergy)
	}

	// Equal energies yield the nominal width exactly.
	w := nominalWidth * (trueEnergy / referenceEnergy)
	if !positiveFinite(w) {
		return 0, fmt.Errorf("%w: derived true width %g", ErrInvalidWidth, w)
	}

	return w, nil
}

// Window is the marker range overlapping one destination bin.
type Window struct {
	Bin      int
	Start    float64 // destination lower edge
	Stop     float64 // destination upper edge
	StopPlus float64 // upper edge of the next destination bin
	M        int     // first marker with e1[M] >= Start
	N        int     // first marker with e1[N] > 0 and e1[N] > Stop
}

// Span returns the number of markers between M and N.
func (w Window) Span() int { return w.N - w.M }

// Grid maps destination bins onto the source marker array.
type Grid struct {
	bins      int
	nominal   float64
	trueWidth float64
	markers   []float64
}

// NewGrid creates a grid of bins destination channels of nominalWidth over
// source channels of trueWidth.
//
// Markers are materialized past the last source channel far enough that every
// destination bin starting inside source coverage finds its closing marker.
func NewGrid(bins int, nominalWidth, trueWidth float64) (*Grid, error) {
	if bins < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBins, bins)
	}

	if !positiveFinite(nominalWidth) {
		return nil, fmt.Errorf("%w: nominal width %g", ErrInvalidWidth, nominalWidth)
	}

	if !positiveFinite(trueWidth) {
		return nil, fmt.Errorf("%w: true width %g", ErrInvalidWidth, trueWidth)
	}

	lookahead := math.Ceil(2*nominalWidth/trueWidth) + 1
	if float64(bins)+lookahead+1 > maxMarkers {
		return nil, fmt.Errorf("%w: width ratio %g needs more than %d markers",
			ErrInvalidWidth, nominalWidth/trueWidth, maxMarkers)
	}

	n := bins + int(lookahead) + 1
	ramp := make([]float64, n)

	for k := range ramp {
		ramp[k] = float64(k)
	}

	markers := make([]float64, n)
	vecmath.ScaleBlock(markers, ramp, trueWidth)

	return &Grid{
		bins:      bins,
		nominal:   nominalWidth,
		trueWidth: trueWidth,
		markers:   markers,
	}, nil
}

// Bins returns the channel count of both grids.
func (g *Grid) Bins() int { return g.bins }

// NominalWidth returns the destination channel width.
func (g *Grid) NominalWidth() float64 { return g.nominal }

// TrueWidth returns the source channel width.
func (g *Grid) TrueWidth() float64 { return g.trueWidth }

// CoverageEnd returns the upper edge of the last source channel.
func (g *Grid) CoverageEnd() float64 { return g.markers[g.bins] }

// Marker returns e1[k]. It panics if k is outside the materialized markers.
func (g *Grid) Marker(k int) float64 { return g.markers[k] }

// Covers reports whether destination bin j starts inside source coverage.
// Bins that start at or past the coverage end overlap no source channel.
func (g *Grid) Covers(j int) bool {
	return j >= 0 && j < g.bins && float64(j)*g.nominal < g.CoverageEnd()
}

// Locate returns the marker window for destination bin j. The search is a
// linear forward scan over the markers and depends only on j and the grid.
func (g *Grid) Locate(j int) (Window, error) {
	if j < 0 || j >= g.bins {
		return Window{}, fmt.Errorf("%w: destination bin %d not in [0, %d)", ErrOutOfRange, j, g.bins)
	}

	start := float64(j) * g.nominal
	stop := start + g.nominal
	w := Window{
		Bin:      j,
		Start:    start,
		Stop:     stop,
		StopPlus: stop + g.nominal,
		M:        -1,
		N:        -1,
	}

	for k, e := range g.markers {
		if e >= start {
			w.M = k
			break
		}
	}

	if w.M < 0 {
		return Window{}, fmt.Errorf("%w: bin %d: no marker at or past %g", ErrOutOfRange, j, start)
	}

	for k := w.M; k < len(g.markers); k++ {
		if e := g.markers[k]; e > 0 && e > stop {
			w.N = k
			break
		}
	}

	if w.N < 0 {
		return Window{}, fmt.Errorf("%w: bin %d: no marker past %g", ErrOutOfRange, j, stop)
	}

	return w, nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
