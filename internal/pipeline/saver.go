package pipeline

import (
	"fmt"

	"gocv.io/x/gocv"

	"wavelet-denoiser/internal/grid"
	"wavelet-denoiser/internal/logger"
)

type imageSaver struct {
	logger logger.Logger
}

// Save writes a coefficient grid to disk; the format follows the file
// extension.
func (s *imageSaver) Save(path string, g *grid.Grid) error {
	mat, err := GridToMat(g)
	if err != nil {
		return fmt.Errorf("grid conversion failed: %w", err)
	}
	defer mat.Close()

	if ok := gocv.IMWrite(path, mat); !ok {
		return fmt.Errorf("failed to write image: %s", path)
	}

	s.logger.Debug("ImageSaver", "image saved", map[string]interface{}{
		"path":   path,
		"width":  g.Cols(),
		"height": g.Rows(),
	})
	return nil
}
