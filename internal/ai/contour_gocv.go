//go:build gocv

package ai

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/example/layoutcanvas/internal/layout"
)

// ContourAvailable reports whether this build carries the OpenCV detector.
const ContourAvailable = true

// DetectLayout thresholds the image against its light background and returns
// the bounding rectangles of the outer contours.
func (d ContourDetector) DetectLayout(ctx context.Context, img image.Image) ([]layout.Rect, error) {
	if err := ctx.Err(); err != nil {
		return nil, serviceErr("contour detect", err)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, nil
	}
	mat := gocv.NewMatWithSize(b.Dy(), b.Dx(), gocv.MatTypeCV8UC3)
	defer mat.Close()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			mat.SetUCharAt(y, x*3+0, uint8(bl>>8))
			mat.SetUCharAt(y, x*3+1, uint8(g>>8))
			mat.SetUCharAt(y, x*3+2, uint8(r>>8))
		}
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(gray, &mask, float32(d.threshold()), 255, gocv.ThresholdBinaryInv)

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	minArea := d.minArea(b.Dx() * b.Dy())
	var out []layout.Rect
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		if gocv.ContourArea(c) < minArea {
			continue
		}
		r := gocv.BoundingRect(c)
		out = append(out, layout.Rect{
			X: float64(r.Min.X), Y: float64(r.Min.Y),
			Width: float64(r.Dx()), Height: float64(r.Dy()),
		})
	}
	if err := ctx.Err(); err != nil {
		return nil, serviceErr("contour detect", fmt.Errorf("after %d contours: %w", len(out), err))
	}
	return out, nil
}
