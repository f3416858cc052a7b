package crop

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/example/layoutcanvas/internal/boxes"
	"github.com/example/layoutcanvas/internal/viewport"
)

// Overlay describes the dimming layer shown while cropping: a rectangle over
// the whole view with a clear hole over the cropped box.
type Overlay struct {
	// View covers the full viewport in screen pixels.
	View r2.Box
	// Hole is the box bounds in screen pixels.
	Hole r2.Box
	// Absolute marks Hole as already in final screen space. Renderers must
	// not apply View's origin or the viewport transform to it again.
	Absolute bool
}

// NewOverlay builds the overlay for b under vp in a viewW×viewH view.
func NewOverlay(vp viewport.Viewport, b *boxes.Box, viewW, viewH float64) Overlay {
	o := Overlay{
		View:     r2.Box{Max: r2.Vec{X: viewW, Y: viewH}},
		Absolute: true,
	}
	if b != nil {
		o.Hole = vp.ScreenRect(b.Normalize().Bounds())
	}
	return o
}
