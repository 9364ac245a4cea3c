// Package rebin redistributes a count histogram recorded on one energy grid
// onto a grid with a different bin width.
//
// A source histogram of N channels is assumed to have been calibrated with the
// nominal width, while its channels physically span the true width
//
//	trueWidth = nominalWidth * trueEnergy / referenceEnergy
//
// Destination bin j covers [j*nominal, (j+1)*nominal). Source channel k starts
// at the marker e1[k] = k*trueWidth. For every destination bin the [Grid]
// locates the overlapping marker window, an allocation [Strategy] adds the
// overlapping fraction of each source count to an accumulator, and a
// quantize.Quantizer turns the fractional accumulator back into integer counts.
//
// Strategies:
//   - StrategyConserving: exact overlap gather, preserves the total (default)
//   - StrategyRefined: three-channel split, right remainder dropped
//   - StrategyCoarse: single-channel split with remainders pushed to j+1, j+2
//
// Common workflows:
//   - TrueWidth(nominal, referenceEnergy, trueEnergy)
//   - New(referenceEnergy, trueEnergy, opts...) then Process(counts)
//   - Accumulate(counts) to inspect the fractional result before rounding
package rebin
