package element

import (
	"fmt"

	"github.com/edaforge/ispice/pkg/matrix"
)

// Capacitor is a linear capacitance: open in DC, admittance jwC in AC, and a
// trapezoidal Norton companion (conductance plus history current source) in
// transient analysis.
type Capacitor struct {
	base
	farads float64
	prevV  float64 // voltage across n1->n2 at the last accepted step
	prevI  float64 // current through n1->n2 at the last accepted step
}

func NewCapacitor(name, node1, node2 string, farads float64) *Capacitor {
	return &Capacitor{base: newBase(name, node1, node2), farads: farads}
}

func (c *Capacitor) Type() string     { return "C" }
func (c *Capacitor) TypeName() string { return "Capacitor" }
func (c *Capacitor) Value() float64   { return c.farads }

// StampDC is a no-op: a capacitor is an open circuit in DC.
func (c *Capacitor) StampDC(sys *matrix.System[float64]) error { return nil }

func (c *Capacitor) StampAC(sys *matrix.System[complex128], omega float64) error {
	stampAdmittance(sys, c.n1, c.n2, complex(0, omega*c.farads))
	return nil
}

func (c *Capacitor) StampTransient(sys *matrix.System[float64], dt, t float64) error {
	if dt <= 0 {
		return fmt.Errorf("%w: capacitor %s, dt=%g", ErrBadTimeStep, c.name, dt)
	}
	geq := 2.0 * c.farads / dt
	ieq := geq*c.prevV + c.prevI

	stampAdmittance(sys, c.n1, c.n2, geq)
	// The history source injects ieq into n1 and draws it from n2; moved to
	// the RHS this keeps i(n) = geq*v(n) - ieq consistent with the DC steady
	// state.
	sys.AddB(c.n1, ieq)
	sys.AddB(c.n2, -ieq)
	return nil
}

func (c *Capacitor) InitState() {
	c.prevV = 0
	c.prevI = 0
}

func (c *Capacitor) UpdateState(solution []float64, dt float64) {
	vNew := voltageAt(solution, c.n1) - voltageAt(solution, c.n2)
	geq := 2.0 * c.farads / dt
	iNew := geq*(vNew-c.prevV) - c.prevI
	c.prevV = vNew
	c.prevI = iNew
}

func (c *Capacitor) String() string {
	return fmt.Sprintf("Capacitor %s %s %s %gF", c.name, c.node1, c.node2, c.farads)
}
