// Package analysis implements the three engines that read a circuit and
// solve it: operating point (with DC sweep), AC frequency sweep, and
// time-domain transient integration. Each engine assembles its own MNA
// system, delegates per-element stamping, and returns a typed result; only
// the transient engine writes back into elements, through UpdateState.
package analysis

import (
	"fmt"

	"github.com/edaforge/ispice/pkg/circuit"
	"github.com/edaforge/ispice/pkg/element"
)

// Kind identifies which analysis produced a result.
type Kind int

const (
	None Kind = iota
	DC
	AC
	Tran
)

func (k Kind) String() string {
	switch k {
	case DC:
		return "DC"
	case AC:
		return "AC"
	case Tran:
		return "TRANSIENT"
	default:
		return "NONE"
	}
}

// OPResult holds a DC operating point: the raw MNA vector and the named
// projections V(node) / I(element).
type OPResult struct {
	Solution []float64
	Values   map[string]float64
}

// SweepPoint is one sample of a DC sweep.
type SweepPoint struct {
	SourceValue float64
	Values      map[string]float64
}

// SweepResult holds a DC source sweep. Last is the operating point of the
// final sample, which becomes the circuit's current DC solution.
type SweepResult struct {
	Source string
	Points []SweepPoint
	Last   *OPResult
}

// ACPoint holds the phasors solved at one sweep frequency.
type ACPoint struct {
	Freq    float64
	Phasors map[string]complex128
}

// ACResult holds a full AC sweep; Last returns the final point, the one
// .print projects from.
type ACResult struct {
	Points []ACPoint
}

func (r *ACResult) Last() *ACPoint {
	if len(r.Points) == 0 {
		return nil
	}
	return &r.Points[len(r.Points)-1]
}

// TranPoint is one emitted transient row.
type TranPoint struct {
	Time   float64
	Values map[string]float64
}

// TranResult holds the emitted rows of a transient run plus the raw MNA
// vector of the last integrated step.
type TranResult struct {
	Points   []TranPoint
	Solution []float64
}

func (r *TranResult) Last() *TranPoint {
	if len(r.Points) == 0 {
		return nil
	}
	return &r.Points[len(r.Points)-1]
}

// realValues projects a real MNA solution into named values: V(node) for
// every non-GND node, I(name) for every branch element, and the Ohm's-law
// current for resistors.
func realValues(ckt *circuit.Circuit, x []float64) map[string]float64 {
	values := make(map[string]float64)
	for name, idx := range ckt.NodeIndex() {
		if idx >= 0 {
			values[fmt.Sprintf("V(%s)", name)] = x[idx]
		}
	}
	for name, idx := range ckt.BranchIndex() {
		values[fmt.Sprintf("I(%s)", name)] = x[idx]
	}
	for _, el := range ckt.Elements() {
		r, ok := el.(*element.Resistor)
		if !ok {
			continue
		}
		v1 := nodeVoltage(ckt, x, r.Node1())
		v2 := nodeVoltage(ckt, x, r.Node2())
		values[fmt.Sprintf("I(%s)", r.Name())] = (v1 - v2) / r.Value()
	}
	return values
}

func nodeVoltage(ckt *circuit.Circuit, x []float64, node string) float64 {
	idx := ckt.NodeIndex()[node]
	if idx < 0 {
		return 0
	}
	return x[idx]
}
