// Package viewport maps between screen pixels and canvas coordinates.
//
// The draw-time transform translates by the pan vector and then scales by the
// zoom factor, so a canvas point c lands on screen at c*Zoom + Pan. Every
// conversion in this package is the exact algebraic inverse of that mapping.
package viewport

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// MinZoom and MaxZoom bound the zoom factor after every mutation.
	MinZoom = 0.01
	MaxZoom = 20.0

	// WheelBase is raised to the wheel delta to get a multiplicative zoom step.
	WheelBase = 0.999

	// fitMargin leaves a border around the canvas when fitting it into its container.
	fitMargin = 0.9
)

// Viewport holds the zoom scalar and the pan vector of one editor.
type Viewport struct {
	Zoom float64
	PanX float64
	PanY float64
}

// New returns an identity viewport.
func New() Viewport {
	return Viewport{Zoom: 1}
}

// Clamp limits z to [MinZoom, MaxZoom]. NaN collapses to 1.
func Clamp(z float64) float64 {
	if math.IsNaN(z) {
		return 1
	}
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// WheelFactor converts a wheel deltaY into a zoom factor.
func WheelFactor(deltaY float64) float64 {
	return math.Pow(WheelBase, deltaY)
}

// ScreenToCanvas converts a screen pixel position into canvas coordinates.
func (v Viewport) ScreenToCanvas(px, py float64) (float64, float64) {
	z := v.zoom()
	return (px - v.PanX) / z, (py - v.PanY) / z
}

// CanvasToScreen converts canvas coordinates into a screen pixel position.
func (v Viewport) CanvasToScreen(cx, cy float64) (float64, float64) {
	z := v.zoom()
	return cx*z + v.PanX, cy*z + v.PanY
}

// ScreenRect maps a canvas-space rectangle into absolute screen space.
func (v Viewport) ScreenRect(r r2.Box) r2.Box {
	x0, y0 := v.CanvasToScreen(r.Min.X, r.Min.Y)
	x1, y1 := v.CanvasToScreen(r.Max.X, r.Max.Y)
	return r2.Box{Min: r2.Vec{X: x0, Y: y0}, Max: r2.Vec{X: x1, Y: y1}}.Canon()
}

// ZoomAt multiplies the zoom by factor while keeping the canvas point under
// (px, py) fixed on screen.
func (v *Viewport) ZoomAt(px, py, factor float64) {
	v.SetZoomAt(px, py, v.zoom()*factor)
}

// SetZoomAt sets an absolute zoom anchored at the screen point (px, py).
func (v *Viewport) SetZoomAt(px, py, zoom float64) {
	cx, cy := v.ScreenToCanvas(px, py)
	v.Zoom = Clamp(zoom)
	v.PanX = px - cx*v.Zoom
	v.PanY = py - cy*v.Zoom
}

// Pan shifts the viewport by raw screen pixels.
func (v *Viewport) Pan(dx, dy float64) {
	v.PanX += dx
	v.PanY += dy
}

// Fit zooms so the canvas fills the container with a margin and centres it.
// Degenerate sizes reset the viewport to identity.
func (v *Viewport) Fit(canvasW, canvasH, containerW, containerH float64) {
	if canvasW <= 0 || canvasH <= 0 || containerW <= 0 || containerH <= 0 {
		*v = New()
		return
	}
	z := math.Min(containerW/canvasW, containerH/canvasH) * fitMargin
	v.Zoom = Clamp(z)
	v.PanX = (containerW - canvasW*v.Zoom) / 2
	v.PanY = (containerH - canvasH*v.Zoom) / 2
}

// zoom guards against a zero-value Viewport being used directly.
func (v Viewport) zoom() float64 {
	if v.Zoom == 0 {
		return 1
	}
	return v.Zoom
}
