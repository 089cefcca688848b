// Package element implements the five lumped element kinds and their MNA
// stamping rules. An element contributes to the system matrix differently per
// analysis mode: a conductance pattern for DC, a complex admittance for AC,
// and a trapezoidal companion model for transient steps.
package element

import (
	"errors"

	"github.com/edaforge/ispice/pkg/matrix"
)

// ErrBadTimeStep indicates a non-positive dt reached a transient stamp.
var ErrBadTimeStep = errors.New("element: time step must be positive")

// Element is the stamping contract every circuit element satisfies. Node and
// branch indices are resolved by the circuit after each mutation and pushed
// into the element, so stamps work on plain ints with matrix.Ground marking
// the GND node.
type Element interface {
	Name() string
	// Type returns the SPICE-style single-letter kind: R, C, L, V or I.
	Type() string
	// TypeName returns the spelled-out kind, e.g. "Resistor".
	TypeName() string
	Node1() string
	Node2() string
	SetNode1(name string)
	SetNode2(name string)
	// SetNodeIndices installs the resolved matrix rows of the two nodes.
	SetNodeIndices(n1, n2 int)

	StampDC(sys *matrix.System[float64]) error
	StampAC(sys *matrix.System[complex128], omega float64) error
	StampTransient(sys *matrix.System[float64], dt, t float64) error

	// InitState resets transient history before an integration run.
	InitState()
	// UpdateState commits the accepted step's solution into the element's
	// history. solution is the full MNA vector of length K+M.
	UpdateState(solution []float64, dt float64)

	String() string
}

// BranchElement is implemented by elements that add a branch-current
// variable to the MNA system (voltage sources and inductors).
type BranchElement interface {
	Element
	BranchIndex() int
	SetBranchIndex(idx int)
}

// Source is implemented by independent sources; the DC sweep engine uses it
// to substitute sample values and restore the original afterwards.
type Source interface {
	Element
	DC() float64
	SetDC(v float64)
}

type base struct {
	name   string
	node1  string
	node2  string
	n1, n2 int
}

func newBase(name, node1, node2 string) base {
	return base{name: name, node1: node1, node2: node2, n1: matrix.Ground, n2: matrix.Ground}
}

func (b *base) Name() string         { return b.name }
func (b *base) Node1() string        { return b.node1 }
func (b *base) Node2() string        { return b.node2 }
func (b *base) SetNode1(name string) { b.node1 = name }
func (b *base) SetNode2(name string) { b.node2 = name }
func (b *base) SetNodeIndices(n1, n2 int) {
	b.n1 = n1
	b.n2 = n2
}

// stampAdmittance adds the 2x2 conductance/admittance block for a two-node
// element: +y on the diagonals, -y on the off-diagonals. Ground rows and
// columns drop out inside AddA.
func stampAdmittance[T matrix.Scalar](sys *matrix.System[T], n1, n2 int, y T) {
	sys.AddA(n1, n1, y)
	sys.AddA(n2, n2, y)
	sys.AddA(n1, n2, -y)
	sys.AddA(n2, n1, -y)
}

// voltageAt reads a node voltage from the solution vector, treating the
// ground row as 0.
func voltageAt(solution []float64, idx int) float64 {
	if idx == matrix.Ground {
		return 0
	}
	return solution[idx]
}
