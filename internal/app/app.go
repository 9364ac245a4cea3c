// Package app runs one gain-correction rebin from a configuration.
package app

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-rebin/histogram"
	"github.com/cwbudde/algo-rebin/internal/config"
	"github.com/cwbudde/algo-rebin/quantize"
	"github.com/cwbudde/algo-rebin/rebin"
	"github.com/cwbudde/algo-rebin/stats/counts"
)

// Result summarizes a completed run.
type Result struct {
	TrueWidth   float64
	Seed        uint64
	Input       counts.Stats
	Accumulated counts.Summary
	Output      counts.Stats
}

// Run validates cfg, reads the source histogram, rebins it onto the nominal
// grid and writes the output histogram. Nothing is read or written when the
// configuration is invalid, and the output file is only replaced once the
// whole histogram has been written.
func Run(cfg config.Config, log logrus.FieldLogger) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Validate has parsed all of these once already.
	tw, _ := cfg.TrueWidth()
	strategy, _ := cfg.StrategyValue()
	rounding, _ := cfg.RoundingValue()
	trace, _ := cfg.TraceRange()

	qopts := []quantize.Option{quantize.WithRounding(rounding)}
	if cfg.Seed != nil {
		qopts = append(qopts, quantize.WithSeed(*cfg.Seed))
	}

	q, err := quantize.New(qopts...)
	if err != nil {
		return nil, err
	}

	seed, _ := q.Seed()

	log.WithFields(logrus.Fields{
		"reference_kev": cfg.ReferenceEnergy,
		"true_kev":      cfg.TrueEnergy,
		"nominal_width": cfg.NominalWidth,
		"true_width":    tw,
		"input":         cfg.Input,
		"output":        cfg.Output,
		"bins":          cfg.Bins,
		"strategy":      strategy,
		"rounding":      rounding,
		"seed":          seed,
	}).Info("rebin configuration")

	in, err := histogram.ReadFile(cfg.Input, cfg.Bins, histogram.FormatSource)
	if err != nil {
		return nil, err
	}

	opts := []rebin.Option{
		rebin.WithBins(cfg.Bins),
		rebin.WithNominalWidth(cfg.NominalWidth),
		rebin.WithStrategy(strategy),
		rebin.WithQuantizer(q),
	}
	if trace != nil {
		opts = append(opts, rebin.WithTrace(traceLogger(log, *trace)))
	}

	r, err := rebin.New(cfg.ReferenceEnergy, cfg.TrueEnergy, opts...)
	if err != nil {
		return nil, err
	}

	acc, err := r.Accumulate(in.Counts)
	if err != nil {
		return nil, fmt.Errorf("rebin %s: %w", cfg.Input, err)
	}

	out, err := in.WithCounts(q.Quantize(acc))
	if err != nil {
		return nil, err
	}

	format := histogram.FormatOutput
	if cfg.WithRow {
		format = histogram.FormatSource
	}

	if err := histogram.WriteFile(cfg.Output, out, format); err != nil {
		return nil, err
	}

	res := &Result{
		TrueWidth:   tw,
		Seed:        seed,
		Input:       counts.Calculate(in.Counts),
		Accumulated: counts.Summarize(acc),
		Output:      counts.Calculate(out.Counts),
	}

	log.WithFields(logrus.Fields{
		"input_total":       res.Input.Total,
		"accumulated_total": res.Accumulated.Total,
		"output_total":      res.Output.Total,
		"input_peak":        in.Channels[res.Input.MaxPos],
		"output_peak":       out.Channels[res.Output.MaxPos],
	}).Info("rebin complete")

	return res, nil
}

func traceLogger(log logrus.FieldLogger, r config.Range) func(rebin.Step) {
	return func(s rebin.Step) {
		w := s.Window
		if !r.Contains(w.Bin) {
			return
		}

		entry := log.WithField("bin", w.Bin)
		entry.WithFields(logrus.Fields{
			"start":     w.Start,
			"stop":      w.Stop,
			"stop_plus": w.StopPlus,
			"m":         w.M,
			"n":         w.N,
			"span":      w.Span(),
		}).Debug("window")

		for _, c := range s.Writes {
			entry.WithFields(logrus.Fields{
				"source": c.Source,
				"target": c.Target,
				"amount": c.Amount,
			}).Debug("contribution")
		}
	}
}
