package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-rebin/internal/app"
	"github.com/cwbudde/algo-rebin/internal/config"
)

type rebinFlags struct {
	configPath   string
	bins         int
	nominalWidth float64
	strategy     string
	rounding     string
	seed         uint64
	withRow      bool
	trace        string
}

func newRebinCmd(c *cli) *cobra.Command {
	var f rebinFlags

	cmd := &cobra.Command{
		Use:   "rebin [INPUT OUTPUT REF_KEV TRUE_KEV]",
		Short: "Rebin a source histogram onto the nominal channel width",
		Long: `Rebin reads INPUT ("row channel count" per line), redistributes every
channel over the nominal grid using the channel width derived from the
reference and true energies, rounds the result stochastically and writes
OUTPUT ("channel count" per line).

The positional arguments may be omitted when --config supplies them.
Explicit arguments and flags override the configuration file.`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 4 {
				return fmt.Errorf("want INPUT OUTPUT REF_KEV TRUE_KEV, got %d arguments", len(args))
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd, args)
			if err != nil {
				return err
			}

			_, err = app.Run(cfg, c.log)

			return err
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "YAML run configuration")
	fl.IntVar(&f.bins, "bins", 0, "channels per histogram (default 4096)")
	fl.Float64Var(&f.nominalWidth, "nominal-width", 0, "nominal channel width in eV (default 3.65)")
	fl.StringVar(&f.strategy, "strategy", "", "overlap allocation: coarse, refined, conserving (default conserving)")
	fl.StringVar(&f.rounding, "rounding", "", "rounding: stochastic, floor, nearest (default stochastic)")
	fl.Uint64Var(&f.seed, "seed", 0, "random seed for stochastic rounding (default: fresh seed, logged)")
	fl.BoolVar(&f.withRow, "with-row", false, `write "row channel count" records`)
	fl.StringVar(&f.trace, "trace", "", "log allocation details for destination bins FROM:TO at debug level")

	return cmd
}

// resolve layers defaults, the configuration file, positional arguments and
// explicitly set flags.
func (f *rebinFlags) resolve(cmd *cobra.Command, args []string) (config.Config, error) {
	cfg := config.Default()

	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return cfg, err
		}
	}

	if len(args) == 4 {
		ref, err := parseEnergy("REF_KEV", args[2])
		if err != nil {
			return cfg, err
		}

		tru, err := parseEnergy("TRUE_KEV", args[3])
		if err != nil {
			return cfg, err
		}

		cfg.Input, cfg.Output = args[0], args[1]
		cfg.ReferenceEnergy, cfg.TrueEnergy = ref, tru
	}

	fl := cmd.Flags()
	if fl.Changed("bins") {
		cfg.Bins = f.bins
	}

	if fl.Changed("nominal-width") {
		cfg.NominalWidth = f.nominalWidth
	}

	if fl.Changed("strategy") {
		cfg.Strategy = f.strategy
	}

	if fl.Changed("rounding") {
		cfg.Rounding = f.rounding
	}

	if fl.Changed("seed") {
		seed := f.seed
		cfg.Seed = &seed
	}

	if fl.Changed("with-row") {
		cfg.WithRow = f.withRow
	}

	if fl.Changed("trace") {
		cfg.Trace = f.trace
	}

	return cfg, nil
}

func parseEnergy(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", config.ErrInvalidConfig, name, s)
	}

	return v, nil
}
