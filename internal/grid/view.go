package grid

import (
	"fmt"
)

// View is a non-owning rectangular window over a Grid. Reads and writes
// through the view go straight to the owner's storage; Clone detaches a
// copy for statistics that must not perturb the band being measured.
type View struct {
	owner  *Grid
	rowOff int
	colOff int
	rows   int
	cols   int
}

// NewView creates a window of extent rows x cols anchored at
// (rowOff, colOff) in the owner grid.
func NewView(owner *Grid, rowOff, colOff, rows, cols int) (View, error) {
	if owner == nil {
		return View{}, fmt.Errorf("view requires an owner grid")
	}
	if rows <= 0 || cols <= 0 {
		return View{}, fmt.Errorf("invalid view extent: %dx%d", cols, rows)
	}
	if rowOff < 0 || colOff < 0 || rowOff+rows > owner.rows || colOff+cols > owner.cols {
		return View{}, fmt.Errorf("view %dx%d at (%d,%d) exceeds grid %dx%d",
			cols, rows, colOff, rowOff, owner.cols, owner.rows)
	}

	return View{owner: owner, rowOff: rowOff, colOff: colOff, rows: rows, cols: cols}, nil
}

// Whole views the entire grid.
func Whole(owner *Grid) View {
	return View{owner: owner, rows: owner.rows, cols: owner.cols}
}

func (v View) Rows() int { return v.rows }
func (v View) Cols() int { return v.cols }

// Len returns the number of elements covered by the view.
func (v View) Len() int { return v.rows * v.cols }

// Empty reports whether the view covers no elements.
func (v View) Empty() bool { return v.owner == nil || v.rows == 0 || v.cols == 0 }

// At reads through to the owner.
func (v View) At(row, col int) float64 {
	return v.owner.data[(v.rowOff+row)*v.owner.cols+v.colOff+col]
}

// Set writes through to the owner.
func (v View) Set(row, col int, val float64) {
	v.owner.data[(v.rowOff+row)*v.owner.cols+v.colOff+col] = val
}

// Row returns the owner-backed slice for one row of the window.
// Mutations through the slice are visible in the owner.
func (v View) Row(row int) []float64 {
	start := (v.rowOff+row)*v.owner.cols + v.colOff
	return v.owner.data[start : start+v.cols]
}

// Flatten copies the window into a fresh contiguous row-major slice.
func (v View) Flatten() []float64 {
	out := make([]float64, 0, v.rows*v.cols)
	for r := 0; r < v.rows; r++ {
		out = append(out, v.Row(r)...)
	}
	return out
}

// Clone produces a detached grid holding a copy of the window.
func (v View) Clone() *Grid {
	return &Grid{data: v.Flatten(), rows: v.rows, cols: v.cols}
}

// Store writes a flat row-major slice of length Len back into the window,
// mutating the owner.
func (v View) Store(data []float64) error {
	if len(data) != v.rows*v.cols {
		return fmt.Errorf("store length %d does not match view %dx%d", len(data), v.cols, v.rows)
	}
	for r := 0; r < v.rows; r++ {
		copy(v.Row(r), data[r*v.cols:(r+1)*v.cols])
	}
	return nil
}

// CopyFrom writes the contents of an equally-shaped view into this one.
func (v View) CopyFrom(src View) error {
	if src.rows != v.rows || src.cols != v.cols {
		return fmt.Errorf("shape mismatch: %dx%d vs %dx%d", src.cols, src.rows, v.cols, v.rows)
	}
	for r := 0; r < v.rows; r++ {
		copy(v.Row(r), src.Row(r))
	}
	return nil
}
