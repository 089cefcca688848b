package element

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/edaforge/ispice/pkg/matrix"
)

// VoltageSource is an independent voltage source. It always carries a
// branch-current variable; the branch row enforces v(n1) - v(n2) = V where V
// depends on the analysis mode.
type VoltageSource struct {
	base
	dc         float64
	ac         bool
	acMag      float64
	acPhaseDeg float64
	acFreq     float64
	branch     int
}

// NewDCVoltageSource creates a source with a constant value.
func NewDCVoltageSource(name, node1, node2 string, dc float64) *VoltageSource {
	return &VoltageSource{base: newBase(name, node1, node2), dc: dc, branch: matrix.Ground}
}

// NewACVoltageSource creates a sinusoidal source described by magnitude,
// phase in degrees and frequency in Hz.
func NewACVoltageSource(name, node1, node2 string, mag, phaseDeg, freq float64) *VoltageSource {
	return &VoltageSource{
		base:       newBase(name, node1, node2),
		ac:         true,
		acMag:      mag,
		acPhaseDeg: phaseDeg,
		acFreq:     freq,
		branch:     matrix.Ground,
	}
}

func (v *VoltageSource) Type() string     { return "V" }
func (v *VoltageSource) TypeName() string { return "VoltageSource" }

func (v *VoltageSource) BranchIndex() int       { return v.branch }
func (v *VoltageSource) SetBranchIndex(idx int) { v.branch = idx }

func (v *VoltageSource) DC() float64       { return v.dc }
func (v *VoltageSource) SetDC(val float64) { v.dc = val }

// Phasor returns the source's complex amplitude for AC analysis. An AC
// source contributes mag*e^(j*phase) at every sweep frequency regardless of
// its declared frequency; a DC source contributes its constant value as a
// real phasor.
func (v *VoltageSource) Phasor() complex128 {
	if v.ac {
		return cmplx.Rect(v.acMag, v.acPhaseDeg*math.Pi/180.0)
	}
	return complex(v.dc, 0)
}

// Instantaneous returns the source value at time t for transient analysis.
func (v *VoltageSource) Instantaneous(t float64) float64 {
	if v.acMag > 0 && v.acFreq > 0 {
		return v.acMag * math.Sin(2.0*math.Pi*v.acFreq*t+v.acPhaseDeg*math.Pi/180.0)
	}
	return v.dc
}

func (v *VoltageSource) stampBranch(sys *matrix.System[float64], value float64) {
	stampCouplings(sys, v.n1, v.n2, v.branch, 1.0)
	sys.AddB(v.branch, value)
}

func (v *VoltageSource) StampDC(sys *matrix.System[float64]) error {
	v.stampBranch(sys, v.dc)
	return nil
}

func (v *VoltageSource) StampAC(sys *matrix.System[complex128], omega float64) error {
	stampCouplings(sys, v.n1, v.n2, v.branch, complex(1, 0))
	sys.AddB(v.branch, v.Phasor())
	return nil
}

func (v *VoltageSource) StampTransient(sys *matrix.System[float64], dt, t float64) error {
	// Sources carry no history; only the instantaneous value is stamped.
	v.stampBranch(sys, v.Instantaneous(t))
	return nil
}

func (v *VoltageSource) InitState() {}

func (v *VoltageSource) UpdateState(solution []float64, dt float64) {}

func (v *VoltageSource) String() string {
	if v.ac {
		return fmt.Sprintf("VoltageSource %s %s %s AC Mag=%gV Phase=%gdeg Freq=%gHz",
			v.name, v.node1, v.node2, v.acMag, v.acPhaseDeg, v.acFreq)
	}
	return fmt.Sprintf("VoltageSource %s %s %s DC=%gV", v.name, v.node1, v.node2, v.dc)
}
