package kernels

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbsInPlace(t *testing.T) {
	data := []float64{-1, 2, -3.5, 0, -0.25}
	AbsInPlace(data)
	assert.Equal(t, []float64{1, 2, 3.5, 0, 0.25}, data)
}

func TestSumSquares(t *testing.T) {
	assert.Equal(t, 0.0, SumSquares(nil))
	assert.Equal(t, 30.0, SumSquares([]float64{1, -2, 3, -4}))

	// Large enough to exercise multiple blocks.
	big := make([]float64, 10000)
	for i := range big {
		big[i] = 2
	}
	assert.InDelta(t, 40000.0, SumSquares(big), 1e-9)
}

func TestParseMode(t *testing.T) {
	for name, want := range map[string]Mode{"hard": Hard, "Soft": Soft, "GARROTE": Garrote} {
		got, err := ParseMode(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseMode("median")
	assert.Error(t, err)
}

func TestShrinkZeroThresholdIsIdentity(t *testing.T) {
	for _, mode := range []Mode{Hard, Soft, Garrote} {
		data := []float64{-3, -1, 0, 0.5, 2}
		Shrink(data, 0, mode)
		assert.Equal(t, []float64{-3, -1, 0, 0.5, 2}, data, mode.String())
	}
}

func TestShrinkHard(t *testing.T) {
	data := []float64{-3, -1, 0, 1, 3}
	Shrink(data, 2, Hard)
	assert.Equal(t, []float64{-3, 0, 0, 0, 3}, data)
}

func TestShrinkSoftFormula(t *testing.T) {
	xs := []float64{-5, -2.5, -1, 0, 0.5, 2, 7}
	th := 1.5

	data := append([]float64(nil), xs...)
	Shrink(data, th, Soft)

	for i, x := range xs {
		want := 0.0
		if math.Abs(x) > th {
			want = math.Copysign(math.Abs(x)-th, x)
		}
		assert.InDelta(t, want, data[i], 1e-12, "x=%v", x)
	}
}

func TestShrinkGarroteGuardsZero(t *testing.T) {
	data := []float64{0, 1, -4, 4}
	Shrink(data, 2, Garrote)

	assert.Equal(t, 0.0, data[0])
	assert.Equal(t, 0.0, data[1])
	assert.InDelta(t, -3.0, data[2], 1e-12) // -4 - 4/-4
	assert.InDelta(t, 3.0, data[3], 1e-12)
	for _, v := range data {
		assert.False(t, math.IsNaN(v))
	}
}

func TestShrinkInfiniteThresholdZeroesBand(t *testing.T) {
	for _, mode := range []Mode{Hard, Soft, Garrote} {
		data := []float64{-100, 3, 0.001}
		Shrink(data, math.Inf(1), mode)
		assert.Equal(t, []float64{0, 0, 0}, data, mode.String())
	}
}

func TestNeighborhoodShrinkUniformBand(t *testing.T) {
	// Constant-magnitude interior: every full 3x3 window sums to the
	// same energy, so interior coefficients share one scaling factor.
	const rows, cols = 6, 6
	src := make([]float64, rows*cols)
	for i := range src {
		src[i] = 2
	}
	dst := make([]float64, rows*cols)

	th := 3.0
	NeighborhoodShrink(dst, src, rows, cols, 1, th, 1)

	windowSum := 9 * 4.0
	want := 2 * (1 - th*th/windowSum)
	for r := 1; r < rows-1; r++ {
		for c := 1; c < cols-1; c++ {
			assert.InDelta(t, want, dst[r*cols+c], 1e-12)
		}
	}
}

func TestNeighborhoodShrinkClipsWindowAtEdges(t *testing.T) {
	// Corner window covers 4 cells, not 9: with zero-padding the corner
	// would keep the interior factor; clipping shrinks its energy sum
	// and therefore attenuates the corner harder.
	const rows, cols = 4, 4
	src := make([]float64, rows*cols)
	for i := range src {
		src[i] = 2
	}
	dst := make([]float64, rows*cols)

	th := 3.0
	NeighborhoodShrink(dst, src, rows, cols, 1, th, 1)

	cornerSum := 4 * 4.0
	wantCorner := 2 * (1 - th*th/cornerSum)
	assert.InDelta(t, wantCorner, dst[0], 1e-12)

	interiorSum := 9 * 4.0
	wantInterior := 2 * (1 - th*th/interiorSum)
	assert.InDelta(t, wantInterior, dst[1*cols+1], 1e-12)
	assert.Greater(t, wantInterior, wantCorner)
}

func TestNeighborhoodShrinkFloorsAtZero(t *testing.T) {
	src := []float64{0.1, 0.1, 0.1, 0.1}
	dst := make([]float64, 4)

	NeighborhoodShrink(dst, src, 2, 2, 1, 10, 1)
	assert.Equal(t, []float64{0, 0, 0, 0}, dst)
}

func TestNeighborhoodShrinkZeroWindowSum(t *testing.T) {
	src := make([]float64, 9)
	dst := make([]float64, 9)

	NeighborhoodShrink(dst, src, 3, 3, 1, 5, 1)
	for _, v := range dst {
		assert.Equal(t, 0.0, v)
		assert.False(t, math.IsNaN(v))
	}
}

func TestNeighborhoodShrinkModiConstant(t *testing.T) {
	src := make([]float64, 25)
	for i := range src {
		src[i] = 1
	}
	dstFull := make([]float64, 25)
	dstModi := make([]float64, 25)

	th := 2.0
	NeighborhoodShrink(dstFull, src, 5, 5, 1, th, 1)
	NeighborhoodShrink(dstModi, src, 5, 5, 1, th, 0.75)

	center := 2*5 + 2
	windowSum := 9.0
	assert.InDelta(t, 1-th*th/windowSum, dstFull[center], 1e-12)
	assert.InDelta(t, 1-0.75*th*th/windowSum, dstModi[center], 1e-12)
}
