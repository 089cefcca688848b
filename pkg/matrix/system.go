package matrix

// Ground is the row index assigned to the GND node. Stamps against a Ground
// row or column are dropped, so elements never special-case the ground node.
const Ground = -1

// System is an MNA system under assembly: the coefficient matrix A and the
// right-hand side B of A·x = B. Stamping is additive; elements sharing a
// matrix cell accumulate into it in any order.
type System[T Scalar] struct {
	A *Dense[T]
	B []T
}

// NewSystem creates an n x n system filled with zeros.
func NewSystem[T Scalar](n int) *System[T] {
	return &System[T]{
		A: NewDense[T](n, n),
		B: make([]T, n),
	}
}

// Size returns the system dimension.
func (s *System[T]) Size() int { return len(s.B) }

// AddA accumulates v into A at (i, j). Ground rows and columns are skipped.
func (s *System[T]) AddA(i, j int, v T) {
	if i == Ground || j == Ground {
		return
	}
	s.A.Add(i, j, v)
}

// AddB accumulates v into the RHS at row i. Ground rows are skipped.
func (s *System[T]) AddB(i int, v T) {
	if i == Ground {
		return
	}
	s.B[i] += v
}

// Solve solves the assembled system, leaving A and B intact.
func (s *System[T]) Solve() ([]T, error) {
	return Solve(s.A, s.B)
}
