// Package neighshrink implements local-window energy shrinkage: each
// detail coefficient is scaled by max(1 - k*t^2/S, 0), where S sums
// squared coefficients over a square window around it. NeighShrink
// uses k = 1; the modified variant softens the attenuation with
// k = 0.75.
package neighshrink

import (
	"fmt"

	"wavelet-denoiser/internal/device"
	"wavelet-denoiser/internal/estimator"
	"wavelet-denoiser/internal/grid"
	"wavelet-denoiser/internal/kernels"
	"wavelet-denoiser/internal/logger"
	"wavelet-denoiser/internal/wavelet"
)

type Processor struct {
	name      string
	scale     float64
	transform wavelet.Transform
	pool      *device.Pool
	logger    logger.Logger
}

func NewProcessor(transform wavelet.Transform, pool *device.Pool, log logger.Logger) *Processor {
	return &Processor{
		name:      "NeighShrink",
		scale:     1,
		transform: transform,
		pool:      pool,
		logger:    log,
	}
}

// NewModifiedProcessor builds the ModiNeighShrink variant.
func NewModifiedProcessor(transform wavelet.Transform, pool *device.Pool, log logger.Logger) *Processor {
	return &Processor{
		name:      "ModiNeighShrink",
		scale:     0.75,
		transform: transform,
		pool:      pool,
		logger:    log,
	}
}

func (p *Processor) GetName() string {
	return p.name
}

func (p *Processor) GetDefaultParameters() map[string]interface{} {
	return map[string]interface{}{
		"level":       1,
		"window_size": 3,
	}
}

func (p *Processor) ValidateParameters(params map[string]interface{}) error {
	if level, ok := params["level"].(int); ok {
		if level < 1 {
			return fmt.Errorf("level must be at least 1, got: %d", level)
		}
	}

	if windowSize, ok := params["window_size"].(int); ok {
		if windowSize < 1 || windowSize%2 == 0 {
			return fmt.Errorf("window_size must be a positive odd number, got: %d", windowSize)
		}
	}

	return nil
}

func (p *Processor) Process(input *grid.Grid, params map[string]interface{}) (*grid.Grid, error) {
	if input.Empty() {
		return nil, fmt.Errorf("input image is empty")
	}
	if err := p.ValidateParameters(params); err != nil {
		return nil, fmt.Errorf("parameter validation failed: %w", err)
	}

	level := intParam(params, "level", 1)
	windowSize := intParam(params, "window_size", 3)
	halfWindow := windowSize / 2

	pyramid, err := p.transform.Decompose(input.Clone(), level)
	if err != nil {
		return nil, fmt.Errorf("decomposition failed: %w", err)
	}

	finestHH, err := pyramid.Subband(1, wavelet.HH)
	if err != nil {
		return nil, fmt.Errorf("noise band extraction failed: %w", err)
	}
	sigma, err := estimator.Sigma(finestHH)
	if err != nil {
		return nil, fmt.Errorf("noise estimation failed: %w", err)
	}

	p.logger.Debug(p.name, "thresholding detail bands", map[string]interface{}{
		"sigma":       sigma,
		"level":       level,
		"window_size": windowSize,
	})

	stream := device.NewStream()
	defer stream.Close()

	for lvl := 1; lvl <= level; lvl++ {
		for _, q := range wavelet.DetailQuadrants() {
			band, err := pyramid.Subband(lvl, q)
			if err != nil {
				return nil, err
			}

			// One threshold per level, sized to that level's band.
			threshold := estimator.UniversalThreshold(sigma, band.Rows(), band.Cols())
			if err := p.shrinkBand(stream, band, threshold, halfWindow); err != nil {
				return nil, fmt.Errorf("shrink %s level %d failed: %w", q, lvl, err)
			}
		}
	}

	return p.transform.Reconstruct(pyramid)
}

// shrinkBand runs the neighborhood kernel over one band. The source
// stays in a detached buffer so window sums read the original
// coefficients while the destination fills.
func (p *Processor) shrinkBand(stream *device.Stream, band grid.View, threshold float64, halfWindow int) error {
	src, err := p.pool.Alloc(band.Len())
	if err != nil {
		return fmt.Errorf("device allocation failed: %w", err)
	}
	defer src.Close()

	dst, err := p.pool.Alloc(band.Len())
	if err != nil {
		return fmt.Errorf("device allocation failed: %w", err)
	}
	defer dst.Close()

	if err := src.CopyIn(band.Flatten()); err != nil {
		return err
	}

	rows, cols := band.Rows(), band.Cols()
	stream.Launch(func() error {
		srcData, err := src.Data()
		if err != nil {
			return err
		}
		dstData, err := dst.Data()
		if err != nil {
			return err
		}
		kernels.NeighborhoodShrink(dstData, srcData, rows, cols, halfWindow, threshold, p.scale)
		return nil
	})
	if err := stream.Synchronize(); err != nil {
		return err
	}

	out := make([]float64, band.Len())
	if err := dst.CopyOut(out); err != nil {
		return err
	}
	return band.Store(out)
}

func intParam(params map[string]interface{}, key string, fallback int) int {
	if v, ok := params[key].(int); ok {
		return v
	}
	return fallback
}
