package element

import (
	"fmt"

	"github.com/edaforge/ispice/pkg/matrix"
)

// Inductor is a linear inductance. It always carries a branch-current
// variable: a zero-voltage source in DC (short circuit), impedance jwL in
// AC, and a trapezoidal Thevenin companion (resistance plus history voltage
// source) in transient analysis.
type Inductor struct {
	base
	henries float64
	branch  int
	prevI   float64 // branch current at the last accepted step
	prevV   float64 // voltage across n1->n2 at the last accepted step
}

func NewInductor(name, node1, node2 string, henries float64) *Inductor {
	return &Inductor{base: newBase(name, node1, node2), henries: henries, branch: matrix.Ground}
}

func (l *Inductor) Type() string     { return "L" }
func (l *Inductor) TypeName() string { return "Inductor" }
func (l *Inductor) Value() float64   { return l.henries }

func (l *Inductor) BranchIndex() int       { return l.branch }
func (l *Inductor) SetBranchIndex(idx int) { l.branch = idx }

// stampcouplings adds the +-1 pattern tying the branch current into the node
// KCL rows and the node voltages into the branch constraint row.
func stampCouplings[T matrix.Scalar](sys *matrix.System[T], n1, n2, branch int, one T) {
	sys.AddA(n1, branch, one)
	sys.AddA(n2, branch, -one)
	sys.AddA(branch, n1, one)
	sys.AddA(branch, n2, -one)
}

func (l *Inductor) StampDC(sys *matrix.System[float64]) error {
	// Short circuit: v(n1) - v(n2) = 0, RHS stays zero.
	stampCouplings(sys, l.n1, l.n2, l.branch, 1.0)
	return nil
}

func (l *Inductor) StampAC(sys *matrix.System[complex128], omega float64) error {
	// v(n1) - v(n2) - Z*i = 0 with Z = jwL.
	stampCouplings(sys, l.n1, l.n2, l.branch, complex(1, 0))
	sys.AddA(l.branch, l.branch, -complex(0, omega*l.henries))
	return nil
}

func (l *Inductor) StampTransient(sys *matrix.System[float64], dt, t float64) error {
	if dt <= 0 {
		return fmt.Errorf("%w: inductor %s, dt=%g", ErrBadTimeStep, l.name, dt)
	}
	req := 2.0 * l.henries / dt
	veq := l.prevV + req*l.prevI

	// v(n1) - v(n2) - req*i = -veq.
	stampCouplings(sys, l.n1, l.n2, l.branch, 1.0)
	sys.AddA(l.branch, l.branch, -req)
	sys.AddB(l.branch, -veq)
	return nil
}

func (l *Inductor) InitState() {
	l.prevI = 0
	l.prevV = 0
}

func (l *Inductor) UpdateState(solution []float64, dt float64) {
	l.prevI = solution[l.branch]
	l.prevV = voltageAt(solution, l.n1) - voltageAt(solution, l.n2)
}

func (l *Inductor) String() string {
	return fmt.Sprintf("Inductor %s %s %s %gH", l.name, l.node1, l.node2, l.henries)
}
