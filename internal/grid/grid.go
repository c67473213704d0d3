package grid

import (
	"fmt"
)

// Grid is a dense row-major matrix of float64 coefficients. It owns its
// backing storage; views created over it alias that storage directly.
type Grid struct {
	data []float64
	rows int
	cols int
}

// New creates a zero-filled Grid with the given dimensions.
func New(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", cols, rows)
	}

	return &Grid{
		data: make([]float64, rows*cols),
		rows: rows,
		cols: cols,
	}, nil
}

// FromData wraps an existing row-major slice without copying.
// The slice length must equal rows*cols.
func FromData(data []float64, rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", cols, rows)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("data length %d does not match %dx%d", len(data), cols, rows)
	}

	return &Grid{data: data, rows: rows, cols: cols}, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// Data returns the backing slice. Writes through it are visible to every
// view over this grid.
func (g *Grid) Data() []float64 { return g.data }

// At returns the element at (row, col). Bounds are the caller's
// responsibility; the hot paths index the backing slice directly.
func (g *Grid) At(row, col int) float64 {
	return g.data[row*g.cols+col]
}

// Set writes the element at (row, col).
func (g *Grid) Set(row, col int, v float64) {
	g.data[row*g.cols+col] = v
}

// Clone produces a detached copy sharing no storage with the original.
func (g *Grid) Clone() *Grid {
	data := make([]float64, len(g.data))
	copy(data, g.data)
	return &Grid{data: data, rows: g.rows, cols: g.cols}
}

// Empty reports whether the grid holds no elements.
func (g *Grid) Empty() bool {
	return g == nil || len(g.data) == 0
}
