// Package fit computes cover placements of bitmaps inside boxes.
package fit

import (
	"fmt"
	"image"
	"math"

	"github.com/example/layoutcanvas/internal/boxes"
)

// InvalidImageError reports a bitmap that cannot be placed.
type InvalidImageError struct {
	Width, Height float64
}

func (e *InvalidImageError) Error() string {
	return fmt.Sprintf("invalid image dimensions %vx%v", e.Width, e.Height)
}

// Placement is the uniform scale and box-local offset of a bitmap.
type Placement struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Cover scales an iw×ih bitmap so it covers a bw×bh box and centres it.
func Cover(iw, ih, bw, bh float64) (Placement, error) {
	if !(iw > 0) || !(ih > 0) || math.IsInf(iw, 0) || math.IsInf(ih, 0) {
		return Placement{}, &InvalidImageError{Width: iw, Height: ih}
	}
	scale := math.Max(bw/iw, bh/ih)
	return Placement{
		Scale:   scale,
		OffsetX: (bw - iw*scale) / 2,
		OffsetY: (bh - ih*scale) / 2,
	}, nil
}

// NeedsExtension reports whether the bitmap is smaller than the box in either
// dimension and would have to be upscaled to cover it.
func NeedsExtension(iw, ih, bw, bh float64) bool {
	return iw < bw || ih < bh
}

// Dims returns the pixel size of img as floats.
func Dims(img image.Image) (float64, float64) {
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Apply builds a cover-fitted fill for img in a bw×bh box.
func Apply(img image.Image, bw, bh float64) (*boxes.ImageFill, error) {
	iw, ih := Dims(img)
	p, err := Cover(iw, ih, bw, bh)
	if err != nil {
		return nil, err
	}
	return &boxes.ImageFill{Bitmap: img, OffsetX: p.OffsetX, OffsetY: p.OffsetY, Scale: p.Scale}, nil
}
