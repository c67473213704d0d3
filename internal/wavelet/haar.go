package wavelet

import (
	"fmt"
	"math"

	"wavelet-denoiser/internal/grid"
)

// Transform is the collaborator contract between the thresholding
// engine and the wavelet transform: decomposition fills the quadrant
// layout documented on Pyramid, reconstruction inverts it exactly.
type Transform interface {
	Decompose(g *grid.Grid, levels int) (*Pyramid, error)
	Reconstruct(p *Pyramid) (*grid.Grid, error)
}

// Haar is the orthonormal Haar wavelet transform, applied separably and
// in place: each level runs the pair transform over the rows then the
// columns of the current approximation square.
type Haar struct{}

func NewHaar() *Haar { return &Haar{} }

const invSqrt2 = 1.0 / math.Sqrt2

// Decompose transforms the grid in place into a levels-deep pyramid.
func (h *Haar) Decompose(g *grid.Grid, levels int) (*Pyramid, error) {
	if err := checkDims(g, levels); err != nil {
		return nil, err
	}

	rows, cols := g.Rows(), g.Cols()
	colBuf := make([]float64, rows)
	scratch := make([]float64, max(rows, cols))

	for level := 0; level < levels; level++ {
		levelRows := rows >> level
		levelCols := cols >> level

		for r := 0; r < levelRows; r++ {
			forwardPairs(gridRow(g, r)[:levelCols], scratch)
		}
		for c := 0; c < levelCols; c++ {
			col := colBuf[:levelRows]
			for r := 0; r < levelRows; r++ {
				col[r] = g.At(r, c)
			}
			forwardPairs(col, scratch)
			for r := 0; r < levelRows; r++ {
				g.Set(r, c, col[r])
			}
		}
	}

	return &Pyramid{grid: g, levels: levels}, nil
}

// Reconstruct inverts the decomposition in place and returns the
// restored image grid.
func (h *Haar) Reconstruct(p *Pyramid) (*grid.Grid, error) {
	if p == nil || p.grid.Empty() {
		return nil, fmt.Errorf("reconstruction requires a decomposed pyramid")
	}

	g := p.grid
	rows, cols := g.Rows(), g.Cols()
	colBuf := make([]float64, rows)
	scratch := make([]float64, max(rows, cols))

	for level := p.levels - 1; level >= 0; level-- {
		levelRows := rows >> level
		levelCols := cols >> level

		for c := 0; c < levelCols; c++ {
			col := colBuf[:levelRows]
			for r := 0; r < levelRows; r++ {
				col[r] = g.At(r, c)
			}
			inversePairs(col, scratch)
			for r := 0; r < levelRows; r++ {
				g.Set(r, c, col[r])
			}
		}
		for r := 0; r < levelRows; r++ {
			inversePairs(gridRow(g, r)[:levelCols], scratch)
		}
	}

	return g, nil
}

// forwardPairs applies the 1D Haar step: averages to the front half,
// differences to the back half, both scaled by 1/sqrt2.
func forwardPairs(data, scratch []float64) {
	half := len(data) / 2
	for i := 0; i < half; i++ {
		a, b := data[2*i], data[2*i+1]
		scratch[i] = (a + b) * invSqrt2
		scratch[half+i] = (a - b) * invSqrt2
	}
	copy(data, scratch[:len(data)])
}

// inversePairs undoes forwardPairs.
func inversePairs(data, scratch []float64) {
	half := len(data) / 2
	for i := 0; i < half; i++ {
		l, d := data[i], data[half+i]
		scratch[2*i] = (l + d) * invSqrt2
		scratch[2*i+1] = (l - d) * invSqrt2
	}
	copy(data, scratch[:len(data)])
}

func gridRow(g *grid.Grid, r int) []float64 {
	return g.Data()[r*g.Cols() : (r+1)*g.Cols()]
}
