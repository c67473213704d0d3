package neighshrink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wavelet-denoiser/internal/device"
	"wavelet-denoiser/internal/grid"
	"wavelet-denoiser/internal/logger"
	"wavelet-denoiser/internal/wavelet"
)

func newTestProcessors() (*Processor, *Processor) {
	pool := device.NewPool(4)
	return NewProcessor(wavelet.NewHaar(), pool, logger.Nop{}),
		NewModifiedProcessor(wavelet.NewHaar(), pool, logger.Nop{})
}

func checkerboard(t *testing.T, n int, base, eps float64) *grid.Grid {
	t.Helper()
	g, err := grid.New(n, n)
	require.NoError(t, err)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if (r+c)%2 == 0 {
				g.Set(r, c, base+eps)
			} else {
				g.Set(r, c, base-eps)
			}
		}
	}
	return g
}

func TestNames(t *testing.T) {
	plain, modified := newTestProcessors()
	assert.Equal(t, "NeighShrink", plain.GetName())
	assert.Equal(t, "ModiNeighShrink", modified.GetName())
}

func TestValidateParameters(t *testing.T) {
	plain, _ := newTestProcessors()

	require.NoError(t, plain.ValidateParameters(plain.GetDefaultParameters()))
	require.Error(t, plain.ValidateParameters(map[string]interface{}{"level": 0}))
	require.Error(t, plain.ValidateParameters(map[string]interface{}{"window_size": 4}))
	require.Error(t, plain.ValidateParameters(map[string]interface{}{"window_size": -3}))
}

func TestZeroImageIsFixedPoint(t *testing.T) {
	plain, modified := newTestProcessors()
	for _, p := range []*Processor{plain, modified} {
		g, err := grid.New(4, 4)
		require.NoError(t, err)

		out, err := p.Process(g, map[string]interface{}{"level": 1, "window_size": 3})
		require.NoError(t, err)
		for _, v := range out.Data() {
			require.Equal(t, 0.0, v, p.GetName())
		}
	}
}

func TestLowEnergyDetailIsSuppressed(t *testing.T) {
	// The checkerboard detail band carries uniform energy well below
	// the squared per-level threshold, so every window factor floors
	// at zero and the flat image comes back exactly.
	plain, modified := newTestProcessors()
	for _, p := range []*Processor{plain, modified} {
		in := checkerboard(t, 8, 100, 1)

		out, err := p.Process(in, map[string]interface{}{"level": 1, "window_size": 3})
		require.NoError(t, err)
		for _, v := range out.Data() {
			assert.InDelta(t, 100.0, v, 1e-9, p.GetName())
		}
	}
}

func TestModifiedShrinksLessThanPlain(t *testing.T) {
	// With k = 0.75 the modified variant keeps more of each
	// coefficient whenever the factor does not floor at zero.
	plain, modified := newTestProcessors()
	in := checkerboard(t, 16, 0, 40)

	outPlain, err := plain.Process(in, map[string]interface{}{"level": 1, "window_size": 3})
	require.NoError(t, err)
	outModified, err := modified.Process(in, map[string]interface{}{"level": 1, "window_size": 3})
	require.NoError(t, err)

	energy := func(g *grid.Grid) float64 {
		sum := 0.0
		for _, v := range g.Data() {
			sum += v * v
		}
		return sum
	}
	assert.GreaterOrEqual(t, energy(outModified), energy(outPlain))
}

func TestProcessDoesNotMutateInput(t *testing.T) {
	plain, _ := newTestProcessors()
	in := checkerboard(t, 8, 20, 3)
	before := append([]float64(nil), in.Data()...)

	_, err := plain.Process(in, map[string]interface{}{"level": 1, "window_size": 5})
	require.NoError(t, err)
	assert.Equal(t, before, in.Data())
}
