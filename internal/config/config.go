// Package config holds the run configuration of a gain-correction rebin.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/cwbudde/algo-rebin/quantize"
	"github.com/cwbudde/algo-rebin/rebin"
)

// ErrInvalidConfig indicates a missing, malformed or out-of-range setting.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is one rebin run. Energies are in keV, widths in eV.
type Config struct {
	Input           string  `yaml:"input"`
	Output          string  `yaml:"output"`
	ReferenceEnergy float64 `yaml:"reference_energy"`
	TrueEnergy      float64 `yaml:"true_energy"`
	NominalWidth    float64 `yaml:"nominal_width"`
	Bins            int     `yaml:"bins"`
	Strategy        string  `yaml:"strategy"`
	Rounding        string  `yaml:"rounding"`
	Seed            *uint64 `yaml:"seed,omitempty"` // nil draws a fresh seed
	WithRow         bool    `yaml:"with_row"`
	Trace           string  `yaml:"trace,omitempty"` // FROM:TO destination bins
}

// Default returns a configuration with the package defaults and no paths or
// energies set.
func Default() Config {
	return Config{
		NominalWidth: rebin.DefaultNominalWidth,
		Bins:         rebin.DefaultBins,
		Strategy:     rebin.StrategyConserving.String(),
		Rounding:     quantize.RoundStochastic.String(),
	}
}

// Load reads a YAML file over [Default]. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	return cfg, nil
}

// Validate checks every setting. It touches no file.
func (c Config) Validate() error {
	if !positiveFinite(c.ReferenceEnergy) {
		return invalid("reference energy must be a positive finite number, got %g", c.ReferenceEnergy)
	}

	if !positiveFinite(c.TrueEnergy) {
		return invalid("true energy must be a positive finite number, got %g", c.TrueEnergy)
	}

	if !positiveFinite(c.NominalWidth) {
		return invalid("nominal width must be a positive finite number, got %g", c.NominalWidth)
	}

	if c.Bins < 1 {
		return invalid("bins must be at least 1, got %d", c.Bins)
	}

	if _, err := rebin.ParseStrategy(c.Strategy); err != nil {
		return invalid("%v", err)
	}

	if _, err := quantize.ParseRounding(c.Rounding); err != nil {
		return invalid("%v", err)
	}

	if c.Input == "" {
		return invalid("input path is empty")
	}

	if c.Output == "" {
		return invalid("output path is empty")
	}

	if filepath.Clean(c.Input) == filepath.Clean(c.Output) {
		return invalid("input and output are the same file %q", c.Input)
	}

	if _, err := c.TraceRange(); err != nil {
		return err
	}

	if _, err := c.TrueWidth(); err != nil {
		return invalid("%v", err)
	}

	return nil
}

// TrueWidth returns the derived source channel width in eV.
func (c Config) TrueWidth() (float64, error) {
	return rebin.TrueWidth(c.NominalWidth, c.ReferenceEnergy, c.TrueEnergy)
}

// StrategyValue returns the parsed allocation strategy.
func (c Config) StrategyValue() (rebin.Strategy, error) {
	return rebin.ParseStrategy(c.Strategy)
}

// RoundingValue returns the parsed rounding mode.
func (c Config) RoundingValue() (quantize.Rounding, error) {
	return quantize.ParseRounding(c.Rounding)
}

// Range is an inclusive range of destination bins.
type Range struct {
	From, To int
}

// Contains reports whether j lies in r.
func (r Range) Contains(j int) bool { return j >= r.From && j <= r.To }

// TraceRange parses Trace. An empty Trace yields a nil range.
func (c Config) TraceRange() (*Range, error) {
	if c.Trace == "" {
		return nil, nil
	}

	r, err := ParseRange(c.Trace)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// ParseRange parses "FROM:TO" or a single bin "J".
func ParseRange(s string) (Range, error) {
	from, to, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		to = from
	}

	a, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		return Range{}, invalid("trace range %q: bad start", s)
	}

	b, err := strconv.Atoi(strings.TrimSpace(to))
	if err != nil {
		return Range{}, invalid("trace range %q: bad end", s)
	}

	if a < 0 || b < a {
		return Range{}, invalid("trace range %q: want 0 <= FROM <= TO", s)
	}

	return Range{From: a, To: b}, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
