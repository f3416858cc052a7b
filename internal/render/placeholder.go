package render

import (
	"fmt"
	"image"
	"log"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/example/layoutcanvas/internal/theme"
)

var (
	labelFontOnce sync.Once
	labelFont     *truetype.Font
)

func loadLabelFont() *truetype.Font {
	labelFontOnce.Do(func() {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			log.Printf("parse label font: %v", err)
			return
		}
		labelFont = f
	})
	return labelFont
}

// labelFace returns a face sized to roughly a tenth of the smaller side.
func labelFace(w, h int) font.Face {
	f := loadLabelFont()
	if f == nil {
		return nil
	}
	size := math.Max(10, math.Min(48, float64(min(w, h))/10))
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
}

// Placeholder returns a flat w×h bitmap for an empty box. When label is set
// and the bitmap is large enough the dimensions are printed in the middle.
func Placeholder(w, h int, th *theme.Theme, label bool) *image.RGBA {
	if th == nil {
		th = theme.Default()
	}
	w, h = max(w, 1), max(h, 1)
	dc := gg.NewContext(w, h)
	dc.SetColor(th.Placeholder)
	dc.Clear()
	if label && w >= 60 && h >= 30 {
		if face := labelFace(w, h); face != nil {
			dc.SetFontFace(face)
			dc.SetColor(th.PlaceholderText)
			dc.DrawStringAnchored(fmt.Sprintf("%d × %d", w, h), float64(w)/2, float64(h)/2, 0.5, 0.5)
		}
	}
	return dc.Image().(*image.RGBA)
}
