package kernels

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects the pointwise shrinkage nonlinearity.
type Mode int

const (
	Hard Mode = iota
	Soft
	Garrote
)

func (m Mode) String() string {
	switch m {
	case Hard:
		return "hard"
	case Soft:
		return "soft"
	case Garrote:
		return "garrote"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps a user-facing selector onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "hard":
		return Hard, nil
	case "soft":
		return Soft, nil
	case "garrote":
		return Garrote, nil
	default:
		return 0, fmt.Errorf("shrinkage mode must be 'hard', 'soft', or 'garrote', got: %s", s)
	}
}

// Shrink applies the selected nonlinearity to every element at
// threshold t. Precondition: t >= 0. The |x| > t guard runs before the
// garrote division, so x == 0 never reaches t*t/x. A +Inf threshold
// zeroes the whole slice under every mode.
func Shrink(data []float64, t float64, mode Mode) {
	parallelBlocks(len(data), func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			x := data[i]
			if math.Abs(x) <= t {
				data[i] = 0
				continue
			}
			switch mode {
			case Hard:
				// keep x
			case Soft:
				if x > 0 {
					data[i] = x - t
				} else {
					data[i] = x + t
				}
			case Garrote:
				data[i] = x - t*t/x
			}
		}
	})
}
