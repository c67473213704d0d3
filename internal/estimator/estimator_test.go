package estimator

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wavelet-denoiser/internal/grid"
)

func bandFrom(t *testing.T, data []float64, rows, cols int) grid.View {
	t.Helper()
	g, err := grid.FromData(data, rows, cols)
	require.NoError(t, err)
	return grid.Whole(g)
}

func TestSigmaRejectsEmptyBand(t *testing.T) {
	_, err := Sigma(grid.View{})
	require.Error(t, err)
}

func TestSigmaAlternatingSign(t *testing.T) {
	// All-identical magnitude with alternating sign: median of |x| is v.
	const v = 2.5
	data := make([]float64, 16)
	for i := range data {
		if i%2 == 0 {
			data[i] = v
		} else {
			data[i] = -v
		}
	}

	sigma, err := Sigma(bandFrom(t, data, 4, 4))
	require.NoError(t, err)
	assert.InDelta(t, v/0.6745, sigma, 1e-12)
}

func TestSigmaDoesNotPerturbBand(t *testing.T) {
	data := []float64{-3, 1, -2, 4}
	band := bandFrom(t, append([]float64(nil), data...), 2, 2)

	_, err := Sigma(band)
	require.NoError(t, err)
	assert.Equal(t, data, band.Flatten())
}

func TestSelectKthAgainstSort(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.Intn(200)
		data := make([]float64, n)
		for i := range data {
			data[i] = rng.NormFloat64()
		}

		sorted := append([]float64(nil), data...)
		sort.Float64s(sorted)

		k := rng.Intn(n)
		got := selectKth(append([]float64(nil), data...), k)
		require.Equal(t, sorted[k], got, "n=%d k=%d", n, k)
	}
}

func TestUniversalThreshold(t *testing.T) {
	const sigma = 1.5
	const n = 8
	want := sigma * math.Sqrt(2*math.Log(n*n))
	assert.InDelta(t, want, UniversalThreshold(sigma, n, n), 1e-12)
}

func TestBayesThresholdFormula(t *testing.T) {
	// Band of constant magnitude 3: total variance 9. With noise sigma
	// 1, signal variance is 8 and the threshold is 1/sqrt(8).
	data := []float64{3, -3, 3, -3}
	th, err := BayesThreshold(bandFrom(t, data, 2, 2), 1)
	require.NoError(t, err)
	assert.InDelta(t, 1/math.Sqrt(8), th, 1e-12)
}

func TestBayesThresholdDegenerateIsInf(t *testing.T) {
	// Total variance exactly equals the noise variance: zero estimated
	// signal, threshold +Inf, never NaN.
	data := []float64{2, -2, 2, -2}
	th, err := BayesThreshold(bandFrom(t, data, 2, 2), 2)
	require.NoError(t, err)
	assert.True(t, math.IsInf(th, 1))
	assert.False(t, math.IsNaN(th))

	// Noise variance above the total variance behaves the same.
	th, err = BayesThreshold(bandFrom(t, data, 2, 2), 5)
	require.NoError(t, err)
	assert.True(t, math.IsInf(th, 1))
}

func TestBayesThresholdValidation(t *testing.T) {
	_, err := BayesThreshold(grid.View{}, 1)
	require.Error(t, err)

	data := []float64{1, 2, 3, 4}
	_, err = BayesThreshold(bandFrom(t, data, 2, 2), -0.5)
	require.Error(t, err)
}
