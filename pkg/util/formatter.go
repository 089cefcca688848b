package util

import (
	"fmt"
	"math"
)

// FormatValueFactor renders a value with an engineering prefix and unit,
// e.g. 0.0047 with unit "V" becomes "4.700 mV".
func FormatValueFactor(value float64, unit string) string {
	abs := math.Abs(value)
	switch {
	case value == 0:
		return fmt.Sprintf("0.000 %s", unit)
	case abs >= 1:
		return fmt.Sprintf("%.3f %s", value, unit)
	case abs >= 1e-3:
		return fmt.Sprintf("%.3f m%s", value*1e3, unit)
	case abs >= 1e-6:
		return fmt.Sprintf("%.3f u%s", value*1e6, unit)
	case abs >= 1e-9:
		return fmt.Sprintf("%.3f n%s", value*1e9, unit)
	case abs >= 1e-12:
		return fmt.Sprintf("%.3f p%s", value*1e12, unit)
	default:
		return fmt.Sprintf("%.3e %s", value, unit)
	}
}

// FormatFrequency renders a frequency scaled to Hz, kHz or MHz.
func FormatFrequency(freq float64) string {
	switch {
	case freq >= 1e6:
		return fmt.Sprintf("%.4g MHz", freq/1e6)
	case freq >= 1e3:
		return fmt.Sprintf("%.4g kHz", freq/1e3)
	default:
		return fmt.Sprintf("%.4g Hz", freq)
	}
}

// FormatMagnitude renders a phasor magnitude, switching to scientific
// notation outside the comfortable fixed-point range.
func FormatMagnitude(value float64) string {
	if value >= 1000 || (value < 0.001 && value != 0) {
		return fmt.Sprintf("%.3e", value)
	}
	return fmt.Sprintf("%.4g", value)
}

// FormatPhase renders a phase angle in degrees.
func FormatPhase(deg float64) string {
	return fmt.Sprintf("%.1f", deg)
}
