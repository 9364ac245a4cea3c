package main

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-rebin/internal/app"
	"github.com/cwbudde/algo-rebin/rebin"
)

func newInspectCmd() *cobra.Command {
	var width float64

	cmd := &cobra.Command{
		Use:   "inspect FILE ...",
		Short: "Print summary statistics of source or output histograms",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Inspect(cmd.OutOrStdout(), width, args...)
		},
	}

	cmd.Flags().Float64Var(&width, "width", rebin.DefaultNominalWidth, "channel width in eV used for the centroid")

	return cmd
}
