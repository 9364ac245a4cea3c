package counts_test

import (
	"fmt"

	"github.com/cwbudde/algo-rebin/stats/counts"
)

func ExampleCalculate() {
	s := counts.Calculate([]int{0, 2, 4, 2, 0})
	fmt.Printf("total=%d peak=%d@%d mean=%.1f fwhm=%.1f\n", s.Total, s.Max, s.MaxPos, s.Mean, s.FWHM)

	// Output:
	// total=8 peak=4@2 mean=2.0 fwhm=2.0
}

func ExampleCentroid() {
	fmt.Printf("%.2f eV\n", counts.Centroid([]int{0, 10, 10, 0}, 3.65))

	// Output:
	// 7.30 eV
}
