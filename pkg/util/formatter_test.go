package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edaforge/ispice/pkg/util"
)

func TestFormatValueFactor(t *testing.T) {
	assert.Equal(t, "0.000 V", util.FormatValueFactor(0, "V"))
	assert.Equal(t, "5.000 V", util.FormatValueFactor(5, "V"))
	assert.Equal(t, "-5.000 mA", util.FormatValueFactor(-0.005, "A"))
	assert.Equal(t, "4.700 uF", util.FormatValueFactor(4.7e-6, "F"))
	assert.Equal(t, "159.155 nF", util.FormatValueFactor(159.1549e-9, "F"))
	assert.Equal(t, "10.000 ps", util.FormatValueFactor(1e-11, "s"))
	assert.Equal(t, "1.000e-14 F", util.FormatValueFactor(1e-14, "F"))
}

func TestFormatFrequency(t *testing.T) {
	assert.Equal(t, "100 Hz", util.FormatFrequency(100))
	assert.Equal(t, "1 kHz", util.FormatFrequency(1000))
	assert.Equal(t, "2.5 MHz", util.FormatFrequency(2.5e6))
}

func TestFormatMagnitude(t *testing.T) {
	assert.Equal(t, "0.7071", util.FormatMagnitude(0.70710678))
	assert.Equal(t, "1.500e+03", util.FormatMagnitude(1500))
	assert.Equal(t, "2.000e-04", util.FormatMagnitude(2e-4))
	assert.Equal(t, "0", util.FormatMagnitude(0))
}

func TestFormatPhase(t *testing.T) {
	assert.Equal(t, "-45.0", util.FormatPhase(-45))
	assert.Equal(t, "90.0", util.FormatPhase(90))
}
