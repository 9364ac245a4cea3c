// Package histogram reads and writes channel histograms as whitespace
// separated integer records.
//
// Source files hold one "row channel count" record per line. Output files
// hold "channel count" records, or "row channel count" when the row index is
// carried through.
package histogram

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrShortInput indicates that fewer records were found than requested.
	ErrShortInput = errors.New("histogram: short input")
	// ErrMalformedRecord indicates a record that is not a list of integers.
	ErrMalformedRecord = errors.New("histogram: malformed record")
	// ErrInconsistent indicates that the parallel slices of a histogram differ in length.
	ErrInconsistent = errors.New("histogram: inconsistent lengths")
	// ErrInvalidFormat indicates an unknown record format.
	ErrInvalidFormat = errors.New("histogram: invalid format")
)

// Format selects the record layout.
type Format int

const (
	// FormatAuto picks the layout from the column count of the first record.
	// It is only valid for reading.
	FormatAuto Format = iota
	// FormatSource is "row channel count".
	FormatSource
	// FormatOutput is "channel count".
	FormatOutput

	formatCount
)

var formatNames = [...]string{
	FormatAuto:   "auto",
	FormatSource: "source",
	FormatOutput: "output",
}

func (f Format) String() string {
	if f.Valid() {
		return formatNames[f]
	}

	return fmt.Sprintf("Format(%d)", int(f))
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	return f >= 0 && f < formatCount
}

// Columns returns the number of fields per record, or 0 for FormatAuto.
func (f Format) Columns() int {
	switch f {
	case FormatSource:
		return 3
	case FormatOutput:
		return 2
	default:
		return 0
	}
}

// ParseFormat parses a format name case-insensitively.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f := range formatCount {
		if formatNames[f] == name {
			return f, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, name)
}

// Histogram is an ordered list of channels with their counts. Rows and
// Channels are carried through unchanged; only Counts takes part in
// rebinning.
type Histogram struct {
	Rows     []int
	Channels []int
	Counts   []int
}

// New returns a histogram whose rows are the record indices 0..len(counts)-1.
func New(channels, counts []int) (*Histogram, error) {
	h := &Histogram{
		Rows:     make([]int, len(counts)),
		Channels: channels,
		Counts:   counts,
	}
	for i := range h.Rows {
		h.Rows[i] = i
	}

	if err := h.Validate(); err != nil {
		return nil, err
	}

	return h, nil
}

// Len returns the number of records.
func (h *Histogram) Len() int { return len(h.Counts) }

// Total returns the sum of all counts.
func (h *Histogram) Total() int {
	var total int
	for _, c := range h.Counts {
		total += c
	}

	return total
}

// Validate checks that all slices have the same length and no count is negative.
func (h *Histogram) Validate() error {
	if len(h.Rows) != len(h.Counts) || len(h.Channels) != len(h.Counts) {
		return fmt.Errorf("%w: rows %d, channels %d, counts %d",
			ErrInconsistent, len(h.Rows), len(h.Channels), len(h.Counts))
	}

	for i, c := range h.Counts {
		if c < 0 {
			return fmt.Errorf("%w: record %d has negative count %d", ErrMalformedRecord, i, c)
		}
	}

	return nil
}

// WithCounts returns a copy of h that carries counts instead of h.Counts.
// The row and channel slices are shared.
func (h *Histogram) WithCounts(counts []int) (*Histogram, error) {
	out := &Histogram{Rows: h.Rows, Channels: h.Channels, Counts: counts}
	if err := out.Validate(); err != nil {
		return nil, err
	}

	return out, nil
}
