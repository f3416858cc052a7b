package render

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
)

// BlurRadius is the box blur radius used behind extended images.
const BlurRadius = 12

// BlurFill extends img to at least w×h by drawing a cover-scaled, blurred
// copy behind the original centred at native size. Images that already cover
// w×h are returned as an RGBA copy.
func BlurFill(img image.Image, w, h int) *image.RGBA {
	src := img.Bounds()
	if src.Empty() {
		return image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	}
	ow, oh := max(w, src.Dx()), max(h, src.Dy())
	dst := image.NewRGBA(image.Rect(0, 0, ow, oh))

	if src.Dx() < ow || src.Dy() < oh {
		scale := math.Max(float64(ow)/float64(src.Dx()), float64(oh)/float64(src.Dy()))
		sw := int(math.Ceil(float64(src.Dx()) * scale))
		sh := int(math.Ceil(float64(src.Dy()) * scale))
		bg := image.NewRGBA(image.Rect(0, 0, sw, sh))
		xdraw.BiLinear.Scale(bg, bg.Bounds(), img, src, draw.Src, nil)
		blurRGBA(bg, BlurRadius)
		off := image.Pt((sw-ow)/2, (sh-oh)/2)
		draw.Draw(dst, dst.Bounds(), bg, off, draw.Src)
	}

	at := image.Pt((ow-src.Dx())/2, (oh-src.Dy())/2)
	draw.Draw(dst, src.Sub(src.Min).Add(at), img, src.Min, draw.Over)
	return dst
}

// blurRGBA applies a separable box blur to every channel of img in place.
func blurRGBA(img *image.RGBA, radius int) {
	if radius <= 0 {
		return
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	tmp := make([]uint8, len(img.Pix))

	// horizontal pass into tmp
	prefix := make([]int, w+1)
	for y := 0; y < h; y++ {
		row := y * img.Stride
		for c := 0; c < 4; c++ {
			for x := 0; x < w; x++ {
				prefix[x+1] = prefix[x] + int(img.Pix[row+x*4+c])
			}
			for x := 0; x < w; x++ {
				x0, x1 := max(x-radius, 0), min(x+radius, w-1)
				tmp[row+x*4+c] = uint8((prefix[x1+1] - prefix[x0]) / (x1 - x0 + 1))
			}
		}
	}

	// vertical pass back into img
	prefix = make([]int, h+1)
	for x := 0; x < w; x++ {
		for c := 0; c < 4; c++ {
			for y := 0; y < h; y++ {
				prefix[y+1] = prefix[y] + int(tmp[y*img.Stride+x*4+c])
			}
			for y := 0; y < h; y++ {
				y0, y1 := max(y-radius, 0), min(y+radius, h-1)
				img.Pix[y*img.Stride+x*4+c] = uint8((prefix[y1+1] - prefix[y0]) / (y1 - y0 + 1))
			}
		}
	}
}
