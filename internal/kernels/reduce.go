package kernels

import (
	"math"
)

// AbsInPlace replaces every element with its absolute value, one worker
// per block of the slice.
func AbsInPlace(data []float64) {
	parallelBlocks(len(data), func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			data[i] = math.Abs(data[i])
		}
	})
}

// SumSquares reduces the slice to the sum of squared elements.
// Each block accumulates a local partial sum; the caller's goroutine
// performs the final summation over the per-block partials.
func SumSquares(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}

	partials := make([]float64, numBlocks(len(data)))
	blocks := parallelBlocks(len(data), func(b, lo, hi int) {
		sum := 0.0
		for i := lo; i < hi; i++ {
			sum += data[i] * data[i]
		}
		partials[b] = sum
	})

	total := 0.0
	for b := 0; b < blocks; b++ {
		total += partials[b]
	}
	return total
}
