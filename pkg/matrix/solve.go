package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrSingular indicates the coefficient matrix is singular or too
	// ill-conditioned to produce a pivot above the tolerance.
	ErrSingular = errors.New("matrix: singular or ill-conditioned matrix")
	// ErrDimension indicates the system is empty, non-square, or the RHS
	// length does not match the matrix.
	ErrDimension = errors.New("matrix: dimension mismatch")
)

// Solve returns x with a·x = b using Gaussian elimination with partial
// pivoting. The caller's matrix and RHS are left untouched; elimination runs
// on copies.
func Solve[T Scalar](a *Dense[T], b []T) ([]T, error) {
	n := a.Rows()
	if n == 0 {
		return nil, fmt.Errorf("%w: empty system", ErrDimension)
	}
	if a.Cols() != n {
		return nil, fmt.Errorf("%w: matrix is %dx%d, want square", ErrDimension, n, a.Cols())
	}
	if len(b) != n {
		return nil, fmt.Errorf("%w: rhs has length %d, want %d", ErrDimension, len(b), n)
	}

	u := a.Clone()
	rhs := make([]T, n)
	copy(rhs, b)

	// Forward elimination with partial pivoting.
	for k := 0; k < n; k++ {
		pivot := k
		for i := k + 1; i < n; i++ {
			if Magnitude(u.At(i, k)) > Magnitude(u.At(pivot, k)) {
				pivot = i
			}
		}
		if NearZero(u.At(pivot, k)) {
			return nil, ErrSingular
		}
		if pivot != k {
			u.swapRows(k, pivot)
			rhs[k], rhs[pivot] = rhs[pivot], rhs[k]
		}

		for i := k + 1; i < n; i++ {
			factor := u.At(i, k) / u.At(k, k)
			for j := k; j < n; j++ {
				u.Add(i, j, -factor*u.At(k, j))
			}
			rhs[i] -= factor * rhs[k]
		}
	}

	// Back substitution.
	x := make([]T, n)
	for i := n - 1; i >= 0; i-- {
		sum := rhs[i]
		for j := i + 1; j < n; j++ {
			sum -= u.At(i, j) * x[j]
		}
		x[i] = sum / u.At(i, i)
	}
	return x, nil
}
