package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/example/layoutcanvas/internal/crop"
)

// DrawOverlay dims the whole view except the overlay hole. The hole is in
// absolute screen space so the context transform is reset first.
func DrawOverlay(dc *gg.Context, o crop.Overlay, c color.Color) {
	dc.Push()
	defer dc.Pop()
	dc.Identity()
	dc.ResetClip()
	dc.SetFillRuleEvenOdd()
	dc.DrawRectangle(o.View.Min.X, o.View.Min.Y, o.View.Max.X-o.View.Min.X, o.View.Max.Y-o.View.Min.Y)
	if o.Absolute {
		dc.DrawRectangle(o.Hole.Min.X, o.Hole.Min.Y, o.Hole.Max.X-o.Hole.Min.X, o.Hole.Max.Y-o.Hole.Min.Y)
	} else {
		// a hole relative to the overlay origin
		dc.DrawRectangle(o.View.Min.X+o.Hole.Min.X, o.View.Min.Y+o.Hole.Min.Y, o.Hole.Max.X-o.Hole.Min.X, o.Hole.Max.Y-o.Hole.Min.Y)
	}
	dc.SetColor(c)
	dc.Fill()
	dc.SetFillRuleWinding()
}

// OverlayImage rasterizes o alone onto a transparent w×h image.
func OverlayImage(o crop.Overlay, w, h int, c color.Color) *image.RGBA {
	dc := gg.NewContext(w, h)
	DrawOverlay(dc, o, c)
	return dc.Image().(*image.RGBA)
}
