// Package estimator derives the noise and threshold statistics the
// shrinkage policies consume: the MAD-based sigma estimate from a
// high-frequency sub-band, the universal (VisuShrink) threshold, and
// the per-band Bayes threshold.
package estimator

import (
	"fmt"

	"wavelet-denoiser/internal/grid"
	"wavelet-denoiser/internal/kernels"
)

// madScale converts the median absolute deviation of Gaussian noise
// into its standard deviation.
const madScale = 0.6745

// Sigma estimates the noise standard deviation from a detail band as
// median(|x|) / 0.6745. The band is flattened into a detached copy, so
// the statistic never perturbs the coefficients being measured. The
// median comes from a partial selection: only the middle order
// statistic is placed, the rest of the copy stays unsorted.
func Sigma(band grid.View) (float64, error) {
	if band.Empty() {
		return 0, fmt.Errorf("sigma estimation requires a non-empty band")
	}

	work := band.Flatten()
	kernels.AbsInPlace(work)

	median := selectKth(work, len(work)/2)
	return median / madScale, nil
}

// selectKth places the k-th smallest element (0-based) of data at
// index k and returns it. Hoare-style quickselect; data is mutated.
func selectKth(data []float64, k int) float64 {
	lo, hi := 0, len(data)-1
	for lo < hi {
		pivot := data[(lo+hi)/2]
		i, j := lo, hi
		for i <= j {
			for data[i] < pivot {
				i++
			}
			for data[j] > pivot {
				j--
			}
			if i <= j {
				data[i], data[j] = data[j], data[i]
				i++
				j--
			}
		}
		if k <= j {
			hi = j
		} else if k >= i {
			lo = i
		} else {
			break
		}
	}
	return data[k]
}
