package rebin

import (
	"fmt"
	"strings"
)

// Strategy selects how source counts are split across destination bins.
type Strategy int

const (
	// StrategyCoarse splits only the channel at marker M. Span-1 windows push
	// the right remainder into bin j+1; windows whose closing marker lies past
	// StopPlus push left/center/right slices into j, j+1 and j+2.
	StrategyCoarse Strategy = iota
	// StrategyRefined splits the channels at M-1, M and M+1 into bin j only.
	// The right remainder of a span-1 window is dropped.
	StrategyRefined
	// StrategyConserving gathers the exact overlap of every source channel
	// with the destination bin. The total count is preserved.
	StrategyConserving

	strategyCount // sentinel for validation
)

var strategyNames = [strategyCount]string{
	"coarse", "refined", "conserving",
}

// String returns the name of the strategy.
func (s Strategy) String() string {
	if s >= 0 && s < strategyCount {
		return strategyNames[s]
	}

	return fmt.Sprintf("Strategy(%d)", s)
}

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	return s >= 0 && s < strategyCount
}

// ParseStrategy returns the strategy with the given (case-insensitive) name.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range strategyNames {
		if n == name {
			return Strategy(i), nil
		}
	}

	return 0, fmt.Errorf("rebin: unknown strategy %q", name)
}

// Contribution is one addition into the accumulator.
type Contribution struct {
	Source int     // source channel
	Target int     // destination bin
	Amount float64 // fractional count added
}

// Step describes the allocation of one destination bin.
type Step struct {
	Window Window
	Writes []Contribution
}

// allocator accumulates fractional counts for one pass over the grid.
type allocator struct {
	grid   *Grid
	counts []int
	acc    []float64

	trace  bool
	writes []Contribution
}

// count returns the source count at k; channels outside the histogram are empty.
func (a *allocator) count(k int) float64 {
	if k < 0 || k >= len(a.counts) {
		return 0
	}

	return float64(a.counts[k])
}

// add moves the share of source channel k covering length eV into target.
// Negative lengths are clamped to zero and targets past the grid are dropped.
func (a *allocator) add(target, k int, length float64) {
	if target < 0 || target >= len(a.acc) || !(length > 0) {
		return
	}

	c := a.count(k)
	if c == 0 {
		return
	}

	amount := c * length / a.grid.trueWidth
	a.acc[target] += amount

	if a.trace {
		a.writes = append(a.writes, Contribution{Source: k, Target: target, Amount: amount})
	}
}

func (a *allocator) allocate(s Strategy, w Window) {
	switch s {
	case StrategyCoarse:
		a.coarse(w)
	case StrategyRefined:
		a.refined(w)
	default:
		a.conserving(w)
	}
}

func (a *allocator) coarse(w Window) {
	e := a.grid.markers
	j, m, n := w.Bin, w.M, w.N

	if e[n] <= w.StopPlus {
		switch w.Span() {
		case 0:
			a.add(j, m, a.grid.trueWidth)
		case 1:
			a.add(j, m, w.Stop-e[m])
			a.add(j+1, m, e[n]-w.Stop)
		}

		return
	}

	// Source channel m reaches past the next destination bin.
	a.add(j, m, w.Stop-e[m])
	a.add(j+1, m, w.StopPlus-w.Stop)
	a.add(j+2, m, e[n]-w.StopPlus)
}

func (a *allocator) refined(w Window) {
	e := a.grid.markers
	tw := a.grid.trueWidth
	j, m, n := w.Bin, w.M, w.N

	left := func() {
		if m > 1 {
			a.add(j, m-1, e[m]-w.Start)
		}
	}

	if e[n] > w.StopPlus {
		left()
		a.add(j, m, w.Stop-e[m])

		return
	}

	switch w.Span() {
	case 0, 2:
		left()
		a.add(j, m, tw)
		a.add(j, m+1, w.Stop-e[m]-tw)
	case 1:
		left()
		a.add(j, m, w.Stop-e[m])
	}
}

func (a *allocator) conserving(w Window) {
	e := a.grid.markers

	for k := max(w.M-1, 0); k < w.N; k++ {
		lo := max(e[k], w.Start)
		hi := min(e[k+1], w.Stop)
		a.add(w.Bin, k, hi-lo)
	}
}
