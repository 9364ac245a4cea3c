// Package counts computes summary statistics of channel count histograms.
package counts

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// Stats holds statistics of an integer count histogram. Positions are bin
// indices; moments are count-weighted over bin index.
type Stats struct {
	Bins     int
	Total    int
	NonZero  int // bins with a count > 0
	First    int // first non-empty bin, -1 if none
	Last     int // last non-empty bin, -1 if none
	Max      int
	MaxPos   int
	Mean     float64
	Variance float64
	StdDev   float64
	FWHM     float64 // full width at half maximum of the highest peak, in bins
}

func emptyStats(n int) Stats {
	return Stats{Bins: n, First: -1, Last: -1}
}

// Calculate computes all statistics in a single pass using West's weighted
// form of Welford's algorithm for the moments.
func Calculate(counts []int) Stats {
	s := emptyStats(len(counts))

	var (
		wsum float64
		mean float64
		m2   float64
	)

	for i, c := range counts {
		if c > s.Max {
			s.Max = c
			s.MaxPos = i
		}

		if c <= 0 {
			continue
		}

		s.Total += c
		s.NonZero++

		if s.First < 0 {
			s.First = i
		}

		s.Last = i

		w := float64(c)
		wsum += w
		delta := float64(i) - mean
		r := delta * w / wsum
		mean += r
		m2 += (wsum - w) * delta * r
	}

	if wsum == 0 {
		return s
	}

	s.Mean = mean
	s.Variance = m2 / wsum
	s.StdDev = math.Sqrt(s.Variance)
	s.FWHM = fwhm(counts, s.MaxPos)

	return s
}

// fwhm measures the width of the peak at p where the counts fall to half of
// counts[p], interpolating linearly between bins. A side that never drops to
// half maximum extends to the histogram edge.
func fwhm(counts []int, p int) float64 {
	half := float64(counts[p]) / 2

	left := float64(p)
	for i := p; i > 0; i-- {
		if lo := float64(counts[i-1]); lo <= half {
			hi := float64(counts[i])
			left = float64(i-1) + (half-lo)/(hi-lo)

			break
		}

		left = float64(i - 1)
	}

	right := float64(p)
	for i := p; i < len(counts)-1; i++ {
		if lo := float64(counts[i+1]); lo <= half {
			hi := float64(counts[i])
			right = float64(i) + (hi-half)/(hi-lo)

			break
		}

		right = float64(i + 1)
	}

	return right - left
}

// Floats converts counts to float64.
func Floats(counts []int) []float64 {
	out := make([]float64, len(counts))
	for i, c := range counts {
		out[i] = float64(c)
	}

	return out
}

// Centroid returns the count-weighted mean energy of the bin centers for
// bins of the given width. It returns 0 for an empty histogram.
func Centroid(counts []int, width float64) float64 {
	x := Floats(counts)

	total := vecmath.Sum(x)
	if total == 0 {
		return 0
	}

	centers := make([]float64, len(x))
	for i := range centers {
		centers[i] = (float64(i) + 0.5) * width
	}

	return vecmath.DotProduct(x, centers) / total
}

// Summary describes a fractional accumulator before quantization.
type Summary struct {
	Total   float64
	Peak    float64 // largest magnitude
	PeakPos int
}

// Summarize returns the total and the largest entry of acc.
func Summarize(acc []float64) Summary {
	if len(acc) == 0 {
		return Summary{}
	}

	s := Summary{
		Total: vecmath.Sum(acc),
		Peak:  vecmath.MaxAbs(acc),
	}

	for i, v := range acc {
		if math.Abs(v) == s.Peak {
			s.PeakPos = i
			break
		}
	}

	return s
}
