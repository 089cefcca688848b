package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/edaforge/ispice/pkg/circuit"
	"github.com/edaforge/ispice/pkg/matrix"
)

// BuildAC assembles the complex MNA system at the given frequency in Hz.
func BuildAC(ckt *circuit.Circuit, freq float64) (*matrix.System[complex128], error) {
	omega := 2.0 * math.Pi * freq
	sys := matrix.NewSystem[complex128](ckt.Size())
	for _, el := range ckt.Elements() {
		if err := el.StampAC(sys, omega); err != nil {
			return nil, fmt.Errorf("stamping %s: %w", el.Name(), err)
		}
	}
	return sys, nil
}

// ACSweep solves the circuit at every frequency of the sweep and collects
// the phasors of all node voltages and branch currents. sweepType is LIN,
// DEC or OCT; DEC and OCT both space points logarithmically between f0 and
// f1, so they produce the same ratios here.
func ACSweep(ckt *circuit.Circuit, sweepType string, f0, f1 float64, n int) (*ACResult, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: sweep needs at least one point, got %d", circuit.ErrInvalidValue, n)
	}
	if f0 <= 0 || f1 <= 0 {
		return nil, fmt.Errorf("%w: frequencies must be positive", circuit.ErrInvalidValue)
	}
	if f0 > f1 {
		return nil, fmt.Errorf("%w: start frequency above end frequency", circuit.ErrInvalidValue)
	}
	freqs, err := frequencyPoints(sweepType, f0, f1, n)
	if err != nil {
		return nil, err
	}

	res := &ACResult{}
	for _, f := range freqs {
		sys, err := BuildAC(ckt, f)
		if err != nil {
			return nil, err
		}
		x, err := sys.Solve()
		if err != nil {
			return nil, fmt.Errorf("f=%g Hz: %w", f, err)
		}

		phasors := make(map[string]complex128)
		for name, idx := range ckt.NodeIndex() {
			if idx >= 0 {
				phasors[fmt.Sprintf("V(%s)", name)] = x[idx]
			}
		}
		for name, idx := range ckt.BranchIndex() {
			phasors[fmt.Sprintf("I(%s)", name)] = x[idx]
		}
		res.Points = append(res.Points, ACPoint{Freq: f, Phasors: phasors})
	}
	return res, nil
}

func frequencyPoints(sweepType string, f0, f1 float64, n int) ([]float64, error) {
	switch strings.ToUpper(sweepType) {
	case "LIN", "DEC", "OCT":
	default:
		return nil, fmt.Errorf("%w: sweep type %q (use LIN, DEC or OCT)", circuit.ErrUnsupported, sweepType)
	}

	freqs := make([]float64, n)
	if n == 1 {
		freqs[0] = f0
		return freqs, nil
	}

	switch strings.ToUpper(sweepType) {
	case "LIN":
		for i := range freqs {
			freqs[i] = f0 + (f1-f0)*float64(i)/float64(n-1)
		}
	case "DEC", "OCT":
		logStart := math.Log10(f0)
		logEnd := math.Log10(f1)
		for i := range freqs {
			freqs[i] = math.Pow(10, logStart+(logEnd-logStart)*float64(i)/float64(n-1))
		}
	}
	return freqs, nil
}
