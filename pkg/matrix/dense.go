package matrix

// Dense is a row-major dense matrix of scalars.
type Dense[T Scalar] struct {
	rows, cols int
	data       []T
}

// NewDense creates a rows x cols matrix filled with zeros.
func NewDense[T Scalar](rows, cols int) *Dense[T] {
	return &Dense[T]{
		rows: rows,
		cols: cols,
		data: make([]T, rows*cols),
	}
}

func (m *Dense[T]) Rows() int { return m.rows }
func (m *Dense[T]) Cols() int { return m.cols }

// At returns the value at row r, column c.
func (m *Dense[T]) At(r, c int) T {
	return m.data[r*m.cols+c]
}

// Set overwrites the value at row r, column c.
func (m *Dense[T]) Set(r, c int, v T) {
	m.data[r*m.cols+c] = v
}

// Add accumulates v into the value at row r, column c.
func (m *Dense[T]) Add(r, c int, v T) {
	m.data[r*m.cols+c] += v
}

// Resize changes the dimensions and clears every entry to zero.
func (m *Dense[T]) Resize(rows, cols int) {
	m.rows = rows
	m.cols = cols
	m.data = make([]T, rows*cols)
}

// Clone returns an independent copy of the matrix.
func (m *Dense[T]) Clone() *Dense[T] {
	c := NewDense[T](m.rows, m.cols)
	copy(c.data, m.data)
	return c
}

func (m *Dense[T]) swapRows(i, j int) {
	if i == j {
		return
	}
	ri := m.data[i*m.cols : (i+1)*m.cols]
	rj := m.data[j*m.cols : (j+1)*m.cols]
	for k := range ri {
		ri[k], rj[k] = rj[k], ri[k]
	}
}
