package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/edaforge/ispice/pkg/circuit"
)

// unitSuffix maps SPICE-style unit suffixes to multipliers. M means milli;
// mega is spelled MEG.
var unitSuffix = map[string]float64{
	"F":   1e-15,
	"P":   1e-12,
	"N":   1e-9,
	"U":   1e-6,
	"M":   1e-3,
	"K":   1e3,
	"MEG": 1e6,
	"G":   1e9,
	"T":   1e12,
}

// ParseValue parses a numeric literal with an optional case-insensitive unit
// suffix, e.g. "1k", "159.1549n", "2MEG", "-3.3".
func ParseValue(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: value cannot be empty", circuit.ErrInvalidValue)
	}

	i := len(s)
	for i > 0 && isLetter(s[i-1]) {
		i--
	}
	numPart, suffix := s[:i], strings.ToUpper(s[i:])

	v, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad numeric literal %q", circuit.ErrInvalidValue, s)
	}
	if suffix == "" {
		return v, nil
	}
	mult, ok := unitSuffix[suffix]
	if !ok {
		return 0, fmt.Errorf("%w: unrecognized unit suffix %q in %q", circuit.ErrInvalidValue, suffix, s)
	}
	return v * mult, nil
}

// ParseCount parses a point count for sweeps; it accepts unit suffixes the
// same way values do, then truncates.
func ParseCount(s string) (int, error) {
	v, err := ParseValue(s)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
