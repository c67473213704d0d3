// Package bayesshrink implements per-band adaptive denoising: every
// detail band at every level gets its own threshold from the variance
// decomposition of that band against the global noise estimate. The
// three bands of a level are processed on three independent device
// streams over disjoint buffers.
package bayesshrink

import (
	"fmt"

	"golang.org/x/sync/errgroup"

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
		name:      "BayesShrink",
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

	// Noise estimation completes before any dependent threshold.
	finestHH, err := pyramid.Subband(1, wavelet.HH)
	if err != nil {
		return nil, fmt.Errorf("noise band extraction failed: %w", err)
	}
	sigma, err := estimator.Sigma(finestHH)
	if err != nil {
		return nil, fmt.Errorf("noise estimation failed: %w", err)
	}

	p.logger.Debug(p.name, "thresholding detail bands", map[string]interface{}{
		"sigma": sigma,
		"level": level,
		"mode":  mode.String(),
	})

	for lvl := 1; lvl <= level; lvl++ {
		if err := p.shrinkLevel(pyramid, lvl, sigma, mode); err != nil {
			return nil, fmt.Errorf("level %d failed: %w", lvl, err)
		}
	}

	return p.transform.Reconstruct(pyramid)
}

// shrinkLevel thresholds the three detail bands of one level
// concurrently. Each band owns its buffer and stream; the bands map to
// disjoint pyramid regions, so the kernels may overlap freely. All
// streams are drained before any result is stored back.
func (p *Processor) shrinkLevel(pyramid *wavelet.Pyramid, level int, sigma float64, mode kernels.Mode) error {
	quadrants := wavelet.DetailQuadrants()

	bands := make([]grid.View, len(quadrants))
	buffers := make([]*device.Buffer, len(quadrants))
	streams := make([]*device.Stream, len(quadrants))

	defer func() {
		for _, buf := range buffers {
			if buf != nil {
				buf.Close()
			}
		}
		for _, s := range streams {
			if s != nil {
				s.Close()
			}
		}
	}()

	var group errgroup.Group
	for i, q := range quadrants {
		band, err := pyramid.Subband(level, q)
		if err != nil {
			return err
		}
		bands[i] = band

		buf, err := p.pool.Alloc(band.Len())
		if err != nil {
			return fmt.Errorf("device allocation failed: %w", err)
		}
		buffers[i] = buf
		streams[i] = device.NewStream()

		group.Go(func() error {
			threshold, err := estimator.BayesThreshold(bands[i], sigma)
			if err != nil {
				return fmt.Errorf("bayes threshold for %s: %w", q, err)
			}

			if err := buffers[i].CopyIn(bands[i].Flatten()); err != nil {
				return err
			}
			streams[i].Launch(func() error {
				data, err := buffers[i].Data()
				if err != nil {
					return err
				}
				kernels.Shrink(data, threshold, mode)
				return nil
			})
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	// Drain every stream before copying back into the shared pyramid.
	for i := range streams {
		if err := streams[i].Synchronize(); err != nil {
			return err
		}
	}

	for i := range bands {
		out := make([]float64, bands[i].Len())
		if err := buffers[i].CopyOut(out); err != nil {
			return err
		}
		if err := bands[i].Store(out); err != nil {
			return err
		}
	}

	return nil
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
