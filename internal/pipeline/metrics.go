package pipeline

import (
	"fmt"
	"math"

	"wavelet-denoiser/internal/grid"
)

// DenoisingMetrics summarizes how far the denoised output moved from
// the noisy input.
type DenoisingMetrics struct {
	MSE  float64 // mean squared difference
	PSNR float64 // peak signal-to-noise ratio in dB, +Inf for identical grids
}

// CalculateDenoisingMetrics compares two equally-shaped grids over the
// 8-bit intensity range.
func CalculateDenoisingMetrics(reference, denoised *grid.Grid) (*DenoisingMetrics, error) {
	if reference.Empty() || denoised.Empty() {
		return nil, fmt.Errorf("metrics require two non-empty grids")
	}
	if reference.Rows() != denoised.Rows() || reference.Cols() != denoised.Cols() {
		return nil, fmt.Errorf("grid dimensions must match: %dx%d vs %dx%d",
			reference.Cols(), reference.Rows(), denoised.Cols(), denoised.Rows())
	}

	refData := reference.Data()
	outData := denoised.Data()

	sum := 0.0
	for i := range refData {
		d := refData[i] - outData[i]
		sum += d * d
	}
	mse := sum / float64(len(refData))

	psnr := math.Inf(1)
	if mse > 0 {
		psnr = 10 * math.Log10(255*255/mse)
	}

	return &DenoisingMetrics{MSE: mse, PSNR: psnr}, nil
}
