package element

import (
	"fmt"

	"github.com/edaforge/ispice/pkg/matrix"
)

// Resistor is a linear resistance. Its stamp is the same conductance block
// in every analysis mode; it carries no state and no branch variable.
type Resistor struct {
	base
	ohms float64
}

func NewResistor(name, node1, node2 string, ohms float64) *Resistor {
	return &Resistor{base: newBase(name, node1, node2), ohms: ohms}
}

func (r *Resistor) Type() string     { return "R" }
func (r *Resistor) TypeName() string { return "Resistor" }
func (r *Resistor) Value() float64   { return r.ohms }

func (r *Resistor) StampDC(sys *matrix.System[float64]) error {
	stampAdmittance(sys, r.n1, r.n2, 1.0/r.ohms)
	return nil
}

func (r *Resistor) StampAC(sys *matrix.System[complex128], omega float64) error {
	stampAdmittance(sys, r.n1, r.n2, complex(1.0/r.ohms, 0))
	return nil
}

func (r *Resistor) StampTransient(sys *matrix.System[float64], dt, t float64) error {
	return r.StampDC(sys)
}

func (r *Resistor) InitState() {}

func (r *Resistor) UpdateState(solution []float64, dt float64) {}

func (r *Resistor) String() string {
	return fmt.Sprintf("Resistor %s %s %s %gOhm", r.name, r.node1, r.node2, r.ohms)
}
