package pipeline

import (
	"fmt"

	"gocv.io/x/gocv"

	"wavelet-denoiser/internal/grid"
	"wavelet-denoiser/internal/logger"
)

type imageLoader struct {
	logger logger.Logger
}

// Load reads an image from disk as grayscale and converts it into a
// coefficient grid.
func (l *imageLoader) Load(path string) (*grid.Grid, error) {
	mat := gocv.IMRead(path, gocv.IMReadGrayScale)
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("failed to read image: %s", path)
	}

	l.logger.Debug("ImageLoader", "image loaded", map[string]interface{}{
		"path":   path,
		"width":  mat.Cols(),
		"height": mat.Rows(),
	})

	g, err := MatToGrid(mat)
	if err != nil {
		return nil, fmt.Errorf("Mat conversion failed: %w", err)
	}
	return g, nil
}
