// Package visushrink implements global-threshold denoising: one
// universal threshold derived from the noise sigma and band size,
// applied pointwise to every detail coefficient at every level.
package visushrink

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
	transform wavelet.Transform
	pool      *device.Pool
	logger    logger.Logger
}

func NewProcessor(transform wavelet.Transform, pool *device.Pool, log logger.Logger) *Processor {
	return &Processor{
		name:      "VisuShrink",
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
		"level": 1,
		"mode":  "soft",
	}
}

func (p *Processor) ValidateParameters(params map[string]interface{}) error {
	if level, ok := params["level"].(int); ok {
		if level < 1 {
			return fmt.Errorf("level must be at least 1, got: %d", level)
		}
	}

	if mode, ok := params["mode"].(string); ok {
		if _, err := kernels.ParseMode(mode); err != nil {
			return err
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
	mode, _ := kernels.ParseMode(stringParam(params, "mode", "soft"))

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

	threshold := estimator.UniversalThreshold(sigma, finestHH.Rows(), finestHH.Cols())

	p.logger.Debug(p.name, "thresholding detail bands", map[string]interface{}{
		"sigma":     sigma,
		"threshold": threshold,
		"level":     level,
		"mode":      mode.String(),
	})

	stream := device.NewStream()
	defer stream.Close()

	for lvl := 1; lvl <= level; lvl++ {
		for _, q := range wavelet.DetailQuadrants() {
			band, err := pyramid.Subband(lvl, q)
			if err != nil {
				return nil, err
			}
			if err := shrinkBand(stream, p.pool, band, threshold, mode); err != nil {
				return nil, fmt.Errorf("shrink %s level %d failed: %w", q, lvl, err)
			}
		}
	}

	return p.transform.Reconstruct(pyramid)
}

// shrinkBand stages one band on the device, runs the pointwise kernel
// on the stream, synchronizes, and writes the result back through the
// view. The buffer is released on every path.
func shrinkBand(stream *device.Stream, pool *device.Pool, band grid.View, threshold float64, mode kernels.Mode) error {
	buf, err := pool.Alloc(band.Len())
	if err != nil {
		return fmt.Errorf("device allocation failed: %w", err)
	}
	defer buf.Close()

	if err := buf.CopyIn(band.Flatten()); err != nil {
		return err
	}

	stream.Launch(func() error {
		data, err := buf.Data()
		if err != nil {
			return err
		}
		kernels.Shrink(data, threshold, mode)
		return nil
	})
	if err := stream.Synchronize(); err != nil {
		return err
	}

	out := make([]float64, band.Len())
	if err := buf.CopyOut(out); err != nil {
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

func stringParam(params map[string]interface{}, key, fallback string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return fallback
}
