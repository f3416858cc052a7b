package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/example/layoutcanvas/internal/boxes"
	"github.com/example/layoutcanvas/internal/crop"
	"github.com/example/layoutcanvas/internal/viewport"
)

// ViewOptions describes one frame of the editor window.
type ViewOptions struct {
	Viewport      viewport.Viewport
	Width, Height int
	// Selected is the ID of the active box, 0 for none.
	Selected int
	// Overlay is set while cropping.
	Overlay *crop.Overlay
	// Message is shown in a strip along the bottom edge when non-empty.
	Message string
}

// View composes the live editor frame: workspace, canvas, boxes, selection
// handles, crop overlay and message strip.
func View(s Scene, o ViewOptions) *image.RGBA {
	w, h := max(o.Width, 1), max(o.Height, 1)
	dc := gg.NewContext(w, h)
	th := s.theme()
	dc.SetColor(th.Workspace)
	dc.Clear()

	vp := o.Viewport
	dc.Push()
	dc.Translate(vp.PanX, vp.PanY)
	dc.Scale(vp.Zoom, vp.Zoom)
	dc.SetColor(s.Background)
	dc.DrawRectangle(0, 0, s.Width, s.Height)
	dc.Fill()
	var selected *boxes.Box
	for _, b := range s.Boxes {
		drawBox(dc, b, th)
		if b.ID == o.Selected {
			selected = b
		}
	}
	dc.Pop()

	if selected != nil && o.Overlay == nil {
		drawSelection(dc, vp, selected, th.Selection, th.Handle, th.HandleBorder)
	}
	if o.Overlay != nil {
		DrawOverlay(dc, *o.Overlay, th.CropOverlay)
		if selected != nil {
			r := vp.ScreenRect(selected.Normalize().Bounds())
			dc.SetColor(th.Selection)
			dc.SetLineWidth(1)
			dc.DrawRectangle(r.Min.X, r.Min.Y, r.Max.X-r.Min.X, r.Max.Y-r.Min.Y)
			dc.Stroke()
		}
	}
	if o.Message != "" {
		drawMessage(dc, o.Message, th.MessageBackground, th.MessageText)
	}
	return dc.Image().(*image.RGBA)
}

func drawSelection(dc *gg.Context, vp viewport.Viewport, b *boxes.Box, outline, fill, border color.Color) {
	r := vp.ScreenRect(b.Normalize().Bounds())
	dc.SetLineWidth(1)
	dc.SetColor(outline)
	dc.DrawRectangle(r.Min.X, r.Min.Y, r.Max.X-r.Min.X, r.Max.Y-r.Min.Y)
	dc.Stroke()
	if b.Locked {
		return
	}
	for _, hr := range boxes.HandleRects(b.Rect, vp.Zoom) {
		s := vp.ScreenRect(hr)
		dc.DrawRectangle(s.Min.X, s.Min.Y, s.Max.X-s.Min.X, s.Max.Y-s.Min.Y)
		dc.SetColor(fill)
		dc.FillPreserve()
		dc.SetColor(border)
		dc.Stroke()
	}
}

func drawMessage(dc *gg.Context, msg string, bg, fg color.Color) {
	const pad = 6
	face := basicfont.Face7x13
	dc.SetFontFace(face)
	tw, _ := dc.MeasureString(msg)
	th := float64(face.Height)
	w, h := float64(dc.Width()), float64(dc.Height())
	x := (w - tw) / 2
	y := h - th - 3*pad
	dc.SetColor(bg)
	dc.DrawRectangle(x-pad, y-pad, tw+2*pad, th+2*pad)
	dc.Fill()
	dc.SetColor(fg)
	dc.DrawStringAnchored(msg, x, y+th/2, 0, 0.5)
}
