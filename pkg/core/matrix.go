package core

import (
	"fmt"
	"strings"
)

// Matrix is an immutable square matrix stored row-major. Transforms are 4x4.
type Matrix struct {
	size  int
	cells []float64
}

// NewMatrix builds a matrix from row literals. Rows must be non-empty, equally long and square.
func NewMatrix(rows [][]float64) (Matrix, error) {
	n := len(rows)
	if n == 0 {
		return Matrix{}, fmt.Errorf("matrix literal has no rows: %w", ErrInvalidArgument)
	}
	cells := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return Matrix{}, fmt.Errorf("matrix row %d has %d columns, want %d: %w", i, len(row), n, ErrInvalidArgument)
		}
		cells = append(cells, row...)
	}
	return Matrix{size: n, cells: cells}, nil
}

// Identity returns the n x n identity matrix
func Identity(n int) Matrix {
	m := Matrix{size: n, cells: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		m.cells[i*n+i] = 1
	}
	return m
}

// Size returns the number of rows (and columns)
func (m Matrix) Size() int { return m.size }

// At returns the cell at row, col
func (m Matrix) At(row, col int) float64 {
	return m.cells[row*m.size+col]
}

// Mul returns the matrix product m * other. Mismatched sizes are a programming error.
func (m Matrix) Mul(other Matrix) Matrix {
	if m.size != other.size {
		panic(fmt.Sprintf("matrix: cannot multiply %dx%d by %dx%d", m.size, m.size, other.size, other.size))
	}
	n := m.size
	out := Matrix{size: n, cells: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var sum float64
			for k := 0; k < n; k++ {
				sum += m.cells[i*n+k] * other.cells[k*n+j]
			}
			out.cells[i*n+j] = sum
		}
	}
	return out
}

// MulTuple transforms a tuple by a 4x4 matrix using its homogeneous w.
// The result keeps the input kind, so a vector never picks up a translation
// component even when the matrix (e.g. an inverse transpose) would produce w != 0.
func (m Matrix) MulTuple(t Tuple) Tuple {
	if m.size != 4 {
		panic(fmt.Sprintf("matrix: cannot transform a tuple by a %dx%d matrix", m.size, m.size))
	}
	w := t.W()
	c := m.cells
	return Tuple{
		X:    c[0]*t.X + c[1]*t.Y + c[2]*t.Z + c[3]*w,
		Y:    c[4]*t.X + c[5]*t.Y + c[6]*t.Z + c[7]*w,
		Z:    c[8]*t.X + c[9]*t.Y + c[10]*t.Z + c[11]*w,
		Kind: t.Kind,
	}
}

// Transpose swaps rows and columns
func (m Matrix) Transpose() Matrix {
	n := m.size
	out := Matrix{size: n, cells: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.cells[j*n+i] = m.cells[i*n+j]
		}
	}
	return out
}

// Submatrix returns a copy with the given row and column removed
func (m Matrix) Submatrix(row, col int) Matrix {
	n := m.size - 1
	out := Matrix{size: n, cells: make([]float64, 0, n*n)}
	for i := 0; i < m.size; i++ {
		if i == row {
			continue
		}
		for j := 0; j < m.size; j++ {
			if j == col {
				continue
			}
			out.cells = append(out.cells, m.cells[i*m.size+j])
		}
	}
	return out
}

// Minor is the determinant of the submatrix at row, col
func (m Matrix) Minor(row, col int) float64 {
	return m.Submatrix(row, col).Determinant()
}

// Cofactor is the minor negated when row+col is odd
func (m Matrix) Cofactor(row, col int) float64 {
	minor := m.Minor(row, col)
	if (row+col)%2 == 1 {
		return -minor
	}
	return minor
}

// Determinant expands recursively along the first row
func (m Matrix) Determinant() float64 {
	switch m.size {
	case 0:
		return 0
	case 1:
		return m.cells[0]
	case 2:
		return m.cells[0]*m.cells[3] - m.cells[1]*m.cells[2]
	}
	var det float64
	for col := 0; col < m.size; col++ {
		det += m.cells[col] * m.Cofactor(0, col)
	}
	return det
}

// IsInvertible reports whether the determinant is non-zero
func (m Matrix) IsInvertible() bool {
	return m.Determinant() != 0
}

// Inverse returns the transposed cofactor matrix divided by the determinant
func (m Matrix) Inverse() (Matrix, error) {
	det := m.Determinant()
	if det == 0 {
		return Matrix{}, fmt.Errorf("invert %dx%d matrix: %w", m.size, m.size, ErrSingularMatrix)
	}
	n := m.size
	out := Matrix{size: n, cells: make([]float64, n*n)}
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			out.cells[col*n+row] = m.Cofactor(row, col) / det
		}
	}
	return out, nil
}

// Equal compares sizes and every cell within Epsilon
func (m Matrix) Equal(other Matrix) bool {
	if m.size != other.size {
		return false
	}
	for i := range m.cells {
		if !FloatEqual(m.cells[i], other.cells[i]) {
			return false
		}
	}
	return true
}

func (m Matrix) String() string {
	var b strings.Builder
	for i := 0; i < m.size; i++ {
		b.WriteString("|")
		for j := 0; j < m.size; j++ {
			fmt.Fprintf(&b, " %8.5f", m.cells[i*m.size+j])
		}
		b.WriteString(" |\n")
	}
	return b.String()
}
