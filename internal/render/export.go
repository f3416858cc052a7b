// Package render rasterizes the canvas for export and for the editor window.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/example/layoutcanvas/internal/boxes"
	"github.com/example/layoutcanvas/internal/theme"
)

var ErrEmptyCanvas = errors.New("canvas has no area")

// Scene is everything the renderer needs to draw a canvas.
type Scene struct {
	Width, Height float64
	Background    color.RGBA
	// Boxes must be in ascending z order.
	Boxes []*boxes.Box
	Theme *theme.Theme
}

func (s Scene) theme() *theme.Theme {
	if s.Theme == nil {
		return theme.Default()
	}
	return s.Theme
}

func (s Scene) pixelSize() (int, int, error) {
	w, h := int(math.Round(s.Width)), int(math.Round(s.Height))
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("export %vx%v: %w", s.Width, s.Height, ErrEmptyCanvas)
	}
	return w, h, nil
}

// Export draws the scene at native size with no zoom or pan.
func Export(s Scene) (image.Image, error) {
	dc, err := exportContext(s)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// ExportPNG draws the scene and writes it as PNG.
func ExportPNG(w io.Writer, s Scene) error {
	dc, err := exportContext(s)
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func exportContext(s Scene) (*gg.Context, error) {
	w, h, err := s.pixelSize()
	if err != nil {
		return nil, err
	}
	dc := gg.NewContext(w, h)
	dc.SetColor(s.Background)
	dc.Clear()
	th := s.theme()
	for _, b := range s.Boxes {
		drawBox(dc, b, th)
	}
	return dc, nil
}

// drawBox strokes the border and then paints the fill clipped to the box,
// in whatever transform dc currently carries.
func drawBox(dc *gg.Context, b *boxes.Box, th *theme.Theme) {
	r := b.Normalize()
	if th.BorderWidth > 0 {
		dc.SetColor(th.BoxBorder)
		dc.SetLineWidth(th.BorderWidth)
		dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
		dc.Stroke()
	}
	if b.Fill == nil || b.Fill.Bitmap == nil || r.Width <= 0 || r.Height <= 0 {
		return
	}
	dc.Push()
	dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	dc.Clip()
	dc.Translate(r.X+b.Fill.OffsetX, r.Y+b.Fill.OffsetY)
	dc.Scale(b.Fill.Scale, b.Fill.Scale)
	bm := b.Fill.Bitmap.Bounds()
	dc.DrawImage(b.Fill.Bitmap, -bm.Min.X, -bm.Min.Y)
	dc.Pop()
	// Pop keeps the current mask
	dc.ResetClip()
}
