package algorithms

import (
	"wavelet-denoiser/internal/grid"
)

// Algorithm defines the interface for denoising policies. Process
// never mutates its input grid; the returned grid has the same shape.
type Algorithm interface {
	Process(input *grid.Grid, params map[string]interface{}) (*grid.Grid, error)
	ValidateParameters(params map[string]interface{}) error
	GetDefaultParameters() map[string]interface{}
	GetName() string
}
