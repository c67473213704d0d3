// Package wavelet provides the multi-level pyramid layout contract and
// the Haar transform used to produce and consume it. The thresholding
// engine is agnostic to which transform filled the pyramid as long as
// the quadrant offsets here hold.
package wavelet

import (
	"fmt"

	"wavelet-denoiser/internal/grid"
)

// Quadrant names one sub-band of a decomposition level.
type Quadrant int

const (
	LL Quadrant = iota // approximation, top-left
	HL                 // horizontal detail, top-right
	LH                 // vertical detail, bottom-left
	HH                 // diagonal detail, bottom-right
)

func (q Quadrant) String() string {
	switch q {
	case LL:
		return "LL"
	case HL:
		return "HL"
	case LH:
		return "LH"
	case HH:
		return "HH"
	default:
		return fmt.Sprintf("quadrant(%d)", int(q))
	}
}

// Pyramid is a coefficient grid holding a nested quadrant decomposition.
// Level 1 is the finest; each level's detail quadrants measure
// rows>>level x cols>>level, with deeper levels nested in the LL
// corner. The offsets below are a contract with whichever transform
// produced the grid.
type Pyramid struct {
	grid   *grid.Grid
	levels int
}

// NewPyramid wraps a decomposed grid. The grid dimensions must support
// the requested depth.
func NewPyramid(g *grid.Grid, levels int) (*Pyramid, error) {
	if err := checkDims(g, levels); err != nil {
		return nil, err
	}
	return &Pyramid{grid: g, levels: levels}, nil
}

func checkDims(g *grid.Grid, levels int) error {
	if g.Empty() {
		return fmt.Errorf("pyramid requires a non-empty grid")
	}
	if levels < 1 {
		return fmt.Errorf("decomposition level must be at least 1, got: %d", levels)
	}
	div := 1 << levels
	if g.Rows()%div != 0 || g.Cols()%div != 0 {
		return fmt.Errorf("grid %dx%d not divisible by 2^%d", g.Cols(), g.Rows(), levels)
	}
	return nil
}

func (p *Pyramid) Grid() *grid.Grid { return p.grid }
func (p *Pyramid) Levels() int      { return p.levels }

// Subband views one quadrant of one level without copying. Writes
// through the view land in the pyramid.
func (p *Pyramid) Subband(level int, q Quadrant) (grid.View, error) {
	if level < 1 || level > p.levels {
		return grid.View{}, fmt.Errorf("level %d outside pyramid depth %d", level, p.levels)
	}

	rows := p.grid.Rows() >> level
	cols := p.grid.Cols() >> level

	var rowOff, colOff int
	switch q {
	case LL:
	case HL:
		colOff = cols
	case LH:
		rowOff = rows
	case HH:
		rowOff = rows
		colOff = cols
	default:
		return grid.View{}, fmt.Errorf("unknown quadrant: %d", int(q))
	}

	return grid.NewView(p.grid, rowOff, colOff, rows, cols)
}

// DetailQuadrants lists the three detail bands thresholded per level.
// The approximation band is never part of the list.
func DetailQuadrants() []Quadrant {
	return []Quadrant{HL, LH, HH}
}
