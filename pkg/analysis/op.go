package analysis

import (
	"fmt"

	"github.com/edaforge/ispice/pkg/circuit"
	"github.com/edaforge/ispice/pkg/matrix"
)

// BuildDC assembles the DC MNA system for the circuit: capacitors open,
// inductors short (zero-voltage source), sources at their DC values.
func BuildDC(ckt *circuit.Circuit) (*matrix.System[float64], error) {
	sys := matrix.NewSystem[float64](ckt.Size())
	for _, el := range ckt.Elements() {
		if err := el.StampDC(sys); err != nil {
			return nil, fmt.Errorf("stamping %s: %w", el.Name(), err)
		}
	}
	return sys, nil
}

// OperatingPoint solves the DC operating point of the circuit.
func OperatingPoint(ckt *circuit.Circuit) (*OPResult, error) {
	sys, err := BuildDC(ckt)
	if err != nil {
		return nil, err
	}
	x, err := sys.Solve()
	if err != nil {
		return nil, err
	}
	return &OPResult{Solution: x, Values: realValues(ckt, x)}, nil
}
