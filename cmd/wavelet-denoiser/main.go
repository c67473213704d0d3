package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"wavelet-denoiser/internal/algorithms"
	"wavelet-denoiser/internal/logger"
	"wavelet-denoiser/internal/pipeline"
)

const (
	AppName    = "Wavelet Denoiser"
	AppVersion = "1.0.0"
)

func main() {
	input := flag.String("input", "", "path to the noisy input image")
	output := flag.String("output", "", "path for the denoised output image")
	algorithm := flag.String("algorithm", "BayesShrink", "denoising policy")
	level := flag.Int("level", 2, "decomposition depth")
	mode := flag.String("mode", "soft", "shrinkage mode for VisuShrink/BayesShrink: hard, soft, garrote")
	window := flag.Int("window", 3, "odd window size for NeighShrink/ModiNeighShrink")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	logLevel := zerolog.InfoLevel
	if *verbose {
		logLevel = zerolog.DebugLevel
	}
	log := logger.NewConsoleLogger(logLevel)

	if err := run(log, *input, *output, *algorithm, *level, *mode, *window); err != nil {
		log.Error("Main", err, map[string]interface{}{
			"app":     AppName,
			"version": AppVersion,
		})
		os.Exit(1)
	}
}

func run(log logger.Logger, input, output, algorithm string, level int, mode string, window int) error {
	if input == "" || output == "" {
		return fmt.Errorf("both -input and -output are required")
	}

	manager := algorithms.NewManager(log)
	defer manager.Cleanup()

	if _, err := manager.GetAlgorithm(algorithm); err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(manager.GetAvailableAlgorithms(), ", "))
	}

	params := map[string]interface{}{
		"level":       level,
		"mode":        mode,
		"window_size": window,
	}

	denoiser := pipeline.NewDenoiser(manager, log)
	result, err := denoiser.Run(input, output, algorithm, params)
	if err != nil {
		return err
	}

	log.Info("Main", "denoising finished", map[string]interface{}{
		"algorithm":  result.Algorithm,
		"elapsed_ms": result.ProcessTime.Milliseconds(),
		"psnr_db":    result.Metrics.PSNR,
		"output":     output,
	})
	return nil
}
