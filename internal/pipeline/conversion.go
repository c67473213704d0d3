package pipeline

import (
	"fmt"
	"math"

	"gocv.io/x/gocv"

	"wavelet-denoiser/internal/grid"
)

// MatToGrid copies a single-channel 8-bit Mat into a float64
// coefficient grid with values in [0, 255].
func MatToGrid(mat gocv.Mat) (*grid.Grid, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("source Mat is empty")
	}
	if mat.Channels() != 1 || mat.Type() != gocv.MatTypeCV8UC1 {
		return nil, fmt.Errorf("expected single-channel 8-bit Mat, got type %d with %d channels",
			mat.Type(), mat.Channels())
	}

	rows, cols := mat.Rows(), mat.Cols()
	g, err := grid.New(rows, cols)
	if err != nil {
		return nil, err
	}

	data := g.Data()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			data[r*cols+c] = float64(mat.GetUCharAt(r, c))
		}
	}
	return g, nil
}

// GridToMat renders a coefficient grid into a single-channel 8-bit Mat,
// rounding and clamping to [0, 255]. Reconstruction can overshoot the
// displayable range slightly; the clamp keeps the output valid.
func GridToMat(g *grid.Grid) (gocv.Mat, error) {
	if g.Empty() {
		return gocv.Mat{}, fmt.Errorf("grid is empty")
	}

	rows, cols := g.Rows(), g.Cols()
	mat := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8UC1)
	if mat.Empty() {
		return gocv.Mat{}, fmt.Errorf("failed to create %dx%d Mat", cols, rows)
	}

	data := g.Data()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := math.Round(data[r*cols+c])
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			mat.SetUCharAt(r, c, uint8(v))
		}
	}
	return mat, nil
}
