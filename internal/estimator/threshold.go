package estimator

import (
	"fmt"
	"math"

	"wavelet-denoiser/internal/grid"
	"wavelet-denoiser/internal/kernels"
)

// UniversalThreshold computes the VisuShrink threshold
// sigma * sqrt(2 * ln(rows*cols)) for a band of the given extent.
func UniversalThreshold(sigma float64, rows, cols int) float64 {
	return sigma * math.Sqrt(2*math.Log(float64(rows*cols)))
}

// BayesThreshold computes the per-band BayesShrink threshold
// sigmaNoise^2 / sigmaSignal, with the signal variance recovered by
// variance decomposition: max(totalVariance - sigmaNoise^2, 0).
//
// A band whose total variance does not exceed the noise variance has
// zero estimated signal; the threshold is +Inf, which the shrinkage
// kernels treat as "zero the whole band". The degenerate case never
// produces NaN.
func BayesThreshold(band grid.View, sigmaNoise float64) (float64, error) {
	if band.Empty() {
		return 0, fmt.Errorf("bayes threshold requires a non-empty band")
	}
	if sigmaNoise < 0 {
		return 0, fmt.Errorf("noise sigma must be non-negative, got: %f", sigmaNoise)
	}

	work := band.Flatten()
	totalVariance := kernels.SumSquares(work) / float64(len(work))

	signalVariance := totalVariance - sigmaNoise*sigmaNoise
	if signalVariance <= 0 {
		return math.Inf(1), nil
	}

	return sigmaNoise * sigmaNoise / math.Sqrt(signalVariance), nil
}
