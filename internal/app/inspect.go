package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-rebin/histogram"
	"github.com/cwbudde/algo-rebin/stats/counts"
)

// Inspect reads histogram files in either record format and prints one
// summary row per file. width converts bin positions to energies in eV.
func Inspect(w io.Writer, width float64, paths ...string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "File\tBins\tTotal\tNon-zero\tPeak\tPeak Ch\tFWHM [bins]\tCentroid [eV]\tStdDev [bins]\n"); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(tw, "----\t----\t-----\t--------\t----\t-------\t-----------\t-------------\t-------------\n"); err != nil {
		return err
	}

	for _, path := range paths {
		h, err := histogram.ReadFile(path, 0, histogram.FormatAuto)
		if err != nil {
			return err
		}

		s := counts.Calculate(h.Counts)

		peakCh := "-"
		if s.Total > 0 {
			peakCh = fmt.Sprint(h.Channels[s.MaxPos])
		}

		if _, err := fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%s\t%.2f\t%.2f\t%.3f\n",
			path,
			s.Bins,
			s.Total,
			s.NonZero,
			s.Max,
			peakCh,
			s.FWHM,
			counts.Centroid(h.Counts, width),
			s.StdDev,
		); err != nil {
			return err
		}
	}

	return tw.Flush()
}
