package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wavelet-denoiser/internal/grid"
)

func TestManagerRegistersAllPolicies(t *testing.T) {
	m := NewManager(nil)
	defer m.Cleanup()

	assert.Equal(t,
		[]string{"BayesShrink", "ModiNeighShrink", "NeighShrink", "VisuShrink"},
		m.GetAvailableAlgorithms())

	for _, name := range m.GetAvailableAlgorithms() {
		alg, err := m.GetAlgorithm(name)
		require.NoError(t, err)
		assert.Equal(t, name, alg.GetName())
		assert.NotEmpty(t, m.GetParameters(name))
	}

	_, err := m.GetAlgorithm("WienerShrink")
	assert.Error(t, err)
}

func TestManagerParameterUpdates(t *testing.T) {
	m := NewManager(nil)
	defer m.Cleanup()

	require.NoError(t, m.SetParameter("VisuShrink", "mode", "hard"))
	assert.Equal(t, "hard", m.GetParameters("VisuShrink")["mode"])

	require.Error(t, m.SetParameter("WienerShrink", "mode", "hard"))
}

func TestAllPoliciesDenoiseZeroImage(t *testing.T) {
	m := NewManager(nil)
	defer m.Cleanup()

	for _, name := range m.GetAvailableAlgorithms() {
		alg, err := m.GetAlgorithm(name)
		require.NoError(t, err)

		g, err := grid.New(4, 4)
		require.NoError(t, err)

		out, err := alg.Process(g, m.GetParameters(name))
		require.NoError(t, err, name)
		for _, v := range out.Data() {
			require.Equal(t, 0.0, v, name)
		}
	}
}
