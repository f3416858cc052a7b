//go:build !gocv

package ai

import (
	"context"
	"errors"
	"image"

	"github.com/example/layoutcanvas/internal/layout"
)

const ContourAvailable = false

var errNoOpenCV = errors.New("contour detector requires a build with -tags gocv")

func (ContourDetector) DetectLayout(context.Context, image.Image) ([]layout.Rect, error) {
	return nil, serviceErr("contour detect", errNoOpenCV)
}
