// Package pipeline wires image I/O, the policy registry, and quality
// metrics into a single denoising run.
package pipeline

import (
	"fmt"
	"time"

	"wavelet-denoiser/internal/algorithms"
	"wavelet-denoiser/internal/grid"
	"wavelet-denoiser/internal/logger"
)

type Denoiser struct {
	manager *algorithms.Manager
	loader  *imageLoader
	saver   *imageSaver
	logger  logger.Logger
}

func NewDenoiser(manager *algorithms.Manager, log logger.Logger) *Denoiser {
	if log == nil {
		log = logger.Nop{}
	}
	return &Denoiser{
		manager: manager,
		loader:  &imageLoader{logger: log},
		saver:   &imageSaver{logger: log},
		logger:  log,
	}
}

// Result reports one completed denoising run.
type Result struct {
	Algorithm   string
	Metrics     *DenoisingMetrics
	ProcessTime time.Duration
}

// Run loads inputPath, denoises it with the named policy, and writes
// the result to outputPath.
func (d *Denoiser) Run(inputPath, outputPath, algorithm string, params map[string]interface{}) (*Result, error) {
	input, err := d.loader.Load(inputPath)
	if err != nil {
		return nil, fmt.Errorf("load failed: %w", err)
	}

	output, result, err := d.Denoise(input, algorithm, params)
	if err != nil {
		return nil, err
	}

	if err := d.saver.Save(outputPath, output); err != nil {
		return nil, fmt.Errorf("save failed: %w", err)
	}

	return result, nil
}

// Denoise runs the named policy over an in-memory grid.
func (d *Denoiser) Denoise(input *grid.Grid, algorithm string, params map[string]interface{}) (*grid.Grid, *Result, error) {
	alg, err := d.manager.GetAlgorithm(algorithm)
	if err != nil {
		return nil, nil, err
	}

	merged := d.manager.GetParameters(algorithm)
	for k, v := range params {
		merged[k] = v
	}

	d.logger.Info("Denoiser", "processing started", map[string]interface{}{
		"algorithm": algorithm,
		"width":     input.Cols(),
		"height":    input.Rows(),
	})

	start := time.Now()
	output, err := alg.Process(input, merged)
	if err != nil {
		return nil, nil, fmt.Errorf("algorithm processing failed: %w", err)
	}
	elapsed := time.Since(start)

	metrics, err := CalculateDenoisingMetrics(input, output)
	if err != nil {
		return nil, nil, fmt.Errorf("metrics calculation failed: %w", err)
	}

	d.logger.Info("Denoiser", "processing completed", map[string]interface{}{
		"algorithm":  algorithm,
		"elapsed_ms": elapsed.Milliseconds(),
		"mse":        metrics.MSE,
		"psnr_db":    metrics.PSNR,
	})

	return output, &Result{Algorithm: algorithm, Metrics: metrics, ProcessTime: elapsed}, nil
}
