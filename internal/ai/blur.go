package ai

import (
	"context"
	"image"

	"github.com/example/layoutcanvas/internal/render"
)

// BlurFiller extends images locally by placing them over a blurred,
// upscaled copy of themselves.
type BlurFiller struct{}

func (BlurFiller) ExtendBackground(ctx context.Context, img image.Image, w, h int) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, serviceErr("blur fill", err)
	}
	return render.BlurFill(img, w, h), nil
}
