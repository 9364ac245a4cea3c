package quantize

import (
	"fmt"
	"strings"
)

// Rounding selects how a fractional count becomes an integer.
type Rounding int

const (
	// RoundStochastic rounds up with probability equal to the fractional part,
	// preserving the expected count.
	RoundStochastic Rounding = iota
	// RoundFloor truncates toward zero.
	RoundFloor
	// RoundNearest rounds half up.
	RoundNearest

	roundingCount // sentinel for validation
)

var roundingNames = [roundingCount]string{
	"stochastic", "floor", "nearest",
}

// String returns the name of the rounding mode.
func (r Rounding) String() string {
	if r >= 0 && r < roundingCount {
		return roundingNames[r]
	}

	return fmt.Sprintf("Rounding(%d)", r)
}

// Valid reports whether r is a known rounding mode.
func (r Rounding) Valid() bool {
	return r >= 0 && r < roundingCount
}

// ParseRounding returns the rounding mode with the given (case-insensitive) name.
func ParseRounding(name string) (Rounding, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range roundingNames {
		if n == name {
			return Rounding(i), nil
		}
	}

	return 0, fmt.Errorf("quantize: unknown rounding %q", name)
}
