package element

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/edaforge/ispice/pkg/matrix"
)

// CurrentSource is an independent current source. It needs no branch
// variable: it only contributes to the RHS, drawing its current out of n1
// and injecting it into n2.
type CurrentSource struct {
	base
	dc         float64
	ac         bool
	acMag      float64
	acPhaseDeg float64
	acFreq     float64
}

// NewDCCurrentSource creates a source with a constant value.
func NewDCCurrentSource(name, node1, node2 string, dc float64) *CurrentSource {
	return &CurrentSource{base: newBase(name, node1, node2), dc: dc}
}

// NewACCurrentSource creates a sinusoidal source described by magnitude,
// phase in degrees and frequency in Hz.
func NewACCurrentSource(name, node1, node2 string, mag, phaseDeg, freq float64) *CurrentSource {
	return &CurrentSource{
		base:       newBase(name, node1, node2),
		ac:         true,
		acMag:      mag,
		acPhaseDeg: phaseDeg,
		acFreq:     freq,
	}
}

func (i *CurrentSource) Type() string     { return "I" }
func (i *CurrentSource) TypeName() string { return "CurrentSource" }

func (i *CurrentSource) DC() float64       { return i.dc }
func (i *CurrentSource) SetDC(val float64) { i.dc = val }

// Phasor follows the same rule as VoltageSource.Phasor.
func (i *CurrentSource) Phasor() complex128 {
	if i.ac {
		return cmplx.Rect(i.acMag, i.acPhaseDeg*math.Pi/180.0)
	}
	return complex(i.dc, 0)
}

// Instantaneous returns the source value at time t for transient analysis.
func (i *CurrentSource) Instantaneous(t float64) float64 {
	if i.acMag > 0 && i.acFreq > 0 {
		return i.acMag * math.Sin(2.0*math.Pi*i.acFreq*t+i.acPhaseDeg*math.Pi/180.0)
	}
	return i.dc
}

func (i *CurrentSource) StampDC(sys *matrix.System[float64]) error {
	sys.AddB(i.n1, -i.dc)
	sys.AddB(i.n2, i.dc)
	return nil
}

func (i *CurrentSource) StampAC(sys *matrix.System[complex128], omega float64) error {
	p := i.Phasor()
	sys.AddB(i.n1, -p)
	sys.AddB(i.n2, p)
	return nil
}

func (i *CurrentSource) StampTransient(sys *matrix.System[float64], dt, t float64) error {
	val := i.Instantaneous(t)
	sys.AddB(i.n1, -val)
	sys.AddB(i.n2, val)
	return nil
}

func (i *CurrentSource) InitState() {}

func (i *CurrentSource) UpdateState(solution []float64, dt float64) {}

func (i *CurrentSource) String() string {
	if i.ac {
		return fmt.Sprintf("CurrentSource %s %s %s AC Mag=%gA Phase=%gdeg Freq=%gHz",
			i.name, i.node1, i.node2, i.acMag, i.acPhaseDeg, i.acFreq)
	}
	return fmt.Sprintf("CurrentSource %s %s %s DC=%gA", i.name, i.node1, i.node2, i.dc)
}
