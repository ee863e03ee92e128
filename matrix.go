package marionette

import (
	"errors"
	"fmt"
)

// ErrRaggedMatrix is returned when building a Matrix2D from columns of
// unequal length.
var ErrRaggedMatrix = errors.New("marionette: matrix columns differ in length")

// Matrix2D is a dense width x height grid indexed as (x, y). Binding
// values use x for the parameter's first axis and y for its second.
type Matrix2D[T any] struct {
	width  int
	height int
	data   []T
}

// NewMatrix2D returns a zero-filled width x height matrix.
func NewMatrix2D[T any](width, height int) Matrix2D[T] {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("marionette: invalid matrix size %dx%d", width, height))
	}
	return Matrix2D[T]{width: width, height: height, data: make([]T, width*height)}
}

// Matrix2DFromColumns builds a matrix from cols[x][y], the layout used by
// Inochi2D binding values.
func Matrix2DFromColumns[T any](cols [][]T) (Matrix2D[T], error) {
	if len(cols) == 0 {
		return Matrix2D[T]{}, nil
	}
	h := len(cols[0])
	m := NewMatrix2D[T](len(cols), h)
	for x, col := range cols {
		if len(col) != h {
			return Matrix2D[T]{}, fmt.Errorf("%w: column %d has %d rows, want %d", ErrRaggedMatrix, x, len(col), h)
		}
		for y, v := range col {
			m.Set(x, y, v)
		}
	}
	return m, nil
}

// Width is the number of x positions.
func (m Matrix2D[T]) Width() int { return m.width }

// Height is the number of y positions.
func (m Matrix2D[T]) Height() int { return m.height }

// At returns the value at (x, y). Panics when out of bounds.
func (m Matrix2D[T]) At(x, y int) T {
	m.check(x, y)
	return m.data[y*m.width+x]
}

// Set stores v at (x, y). Panics when out of bounds.
func (m Matrix2D[T]) Set(x, y int, v T) {
	m.check(x, y)
	m.data[y*m.width+x] = v
}

func (m Matrix2D[T]) check(x, y int) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		panic(fmt.Sprintf("marionette: matrix index (%d, %d) out of bounds (%d, %d)", x, y, m.width, m.height))
	}
}
