package kernels

// NeighborhoodShrink scales each coefficient by the local-energy factor
// max(1 - k*t*t/S, 0), where S is the sum of squares over the square
// window of half-width halfWindow centered on the coefficient. src is a
// detached copy of the band read for the window sums; dst receives the
// scaled values. Window cells outside the band are excluded from S, not
// zero-padded, so edge coefficients see a smaller effective window.
// A zero window sum means the center coefficient itself is zero; the
// factor is forced to 0 rather than dividing.
func NeighborhoodShrink(dst, src []float64, rows, cols, halfWindow int, t, k float64) {
	tt := k * t * t
	parallelBlocks(rows*cols, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			r := i / cols
			c := i % cols

			rLo := r - halfWindow
			if rLo < 0 {
				rLo = 0
			}
			rHi := r + halfWindow
			if rHi >= rows {
				rHi = rows - 1
			}
			cLo := c - halfWindow
			if cLo < 0 {
				cLo = 0
			}
			cHi := c + halfWindow
			if cHi >= cols {
				cHi = cols - 1
			}

			sum := 0.0
			for wr := rLo; wr <= rHi; wr++ {
				base := wr * cols
				for wc := cLo; wc <= cHi; wc++ {
					v := src[base+wc]
					sum += v * v
				}
			}

			factor := 0.0
			if sum > 0 {
				factor = 1 - tt/sum
				if factor < 0 {
					factor = 0
				}
			}
			dst[i] = src[i] * factor
		}
	})
}
