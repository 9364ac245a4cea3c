// Command pigain corrects the gain of a channel histogram by rebinning it
// from the channel width implied by a reference line energy onto the nominal
// channel width.
//
// Usage:
//
//	pigain rebin INPUT OUTPUT REF_KEV TRUE_KEV [flags]
//	pigain rebin --config run.yaml [flags]
//	pigain inspect FILE ...
//
// Examples:
//
//	pigain rebin spectrum.dat corrected.dat 6.40 6.25
//	pigain rebin spectrum.dat corrected.dat 6.40 6.25 --seed 42 --with-row
//	pigain rebin spectrum.dat corrected.dat 6.40 6.25 --trace 950:1000 --log-level debug
//	pigain inspect spectrum.dat corrected.dat
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	c := newCLI(os.Stdout, os.Stderr)

	if err := c.root.Execute(); err != nil {
		c.log.WithError(err).Error("pigain failed")
		os.Exit(1)
	}
}

type cli struct {
	root *cobra.Command
	log  *logrus.Logger

	logLevel  string
	logFormat string
}

func newCLI(stdout, stderr io.Writer) *cli {
	c := &cli{log: logrus.New()}
	c.log.SetOutput(stderr)

	c.root = &cobra.Command{
		Use:           "pigain",
		Short:         "Gain correction of channel histograms by energy rebinning",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.configureLogger()
		},
	}
	c.root.SetOut(stdout)
	c.root.SetErr(stderr)

	pf := c.root.PersistentFlags()
	pf.StringVar(&c.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&c.logFormat, "log-format", "text", "log format (text, json)")

	c.root.AddCommand(newRebinCmd(c), newInspectCmd())

	return c
}

func (c *cli) configureLogger() error {
	level, err := logrus.ParseLevel(c.logLevel)
	if err != nil {
		return err
	}

	c.log.SetLevel(level)

	switch c.logFormat {
	case "text":
		c.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case "json":
		c.log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.logFormat)
	}

	return nil
}
