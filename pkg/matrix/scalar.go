// Package matrix provides the dense linear algebra kernel shared by every
// analysis mode: a matrix type and Gaussian solver generic over real and
// complex scalars, and an MNA assembly wrapper that hides ground handling.
package matrix

import (
	"math"
	"math/cmplx"

	"github.com/edaforge/ispice/internal/consts"
)

// Scalar is the element type the solver is parameterised over. DC and
// transient analyses run on float64, AC runs on complex128; pivoting and
// singularity detection are identical for both.
type Scalar interface {
	float64 | complex128
}

// Magnitude returns |x|: absolute value for reals, modulus for complex.
func Magnitude[T Scalar](x T) float64 {
	switch v := any(x).(type) {
	case float64:
		return math.Abs(v)
	case complex128:
		return cmplx.Abs(v)
	}
	return 0
}

// NearZero reports whether x is too small to be accepted as a pivot.
func NearZero[T Scalar](x T) bool {
	return Magnitude(x) < consts.PivotTol
}
