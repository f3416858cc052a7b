// Package boxes owns the rectangles placed on the canvas: their geometry,
// image fills, z-order and the current selection.
package boxes

import (
	"image"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// ClickTolerance widens hit tests by this many screen pixels.
	ClickTolerance = 4
	// HandleSize is the side of a resize handle in screen pixels.
	HandleSize = 8
)

// Rect is an axis-aligned rectangle in canvas coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Bounds returns r as a gonum box.
func (r Rect) Bounds() r2.Box {
	return r2.Box{
		Min: r2.Vec{X: r.X, Y: r.Y},
		Max: r2.Vec{X: r.X + r.Width, Y: r.Y + r.Height},
	}
}

// Normalize flips negative extents so width and height are never negative.
// The origin moves by the negative extent.
func (r Rect) Normalize() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

func (r Rect) finite() bool {
	for _, v := range [...]float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ImageFill is a bitmap drawn inside a box. Offsets are box-local and
// independent of the viewport zoom. Scale is uniform.
type ImageFill struct {
	Bitmap  image.Image
	OffsetX float64
	OffsetY float64
	Scale   float64
}

// Clone returns a copy sharing the bitmap.
func (f *ImageFill) Clone() *ImageFill {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

// Size returns the scaled bitmap extent.
func (f *ImageFill) Size() (float64, float64) {
	b := f.Bitmap.Bounds()
	return float64(b.Dx()) * f.Scale, float64(b.Dy()) * f.Scale
}

// Covers reports whether the placed bitmap covers a w×h box. eps absorbs
// floating point error.
func (f *ImageFill) Covers(w, h, eps float64) bool {
	if f == nil || f.Bitmap == nil {
		return false
	}
	sw, sh := f.Size()
	return f.OffsetX <= eps && f.OffsetY <= eps &&
		f.OffsetX+sw >= w-eps && f.OffsetY+sh >= h-eps
}

// Box is one rectangle on the canvas.
type Box struct {
	ID int
	Rect
	Z    int
	Fill *ImageFill
	// Locked boxes ignore geometry drags. Crop mode sets it.
	Locked bool
}
