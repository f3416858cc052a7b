// Package clipboard moves canvas exports and pasted images through the
// system clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"strings"

	"github.com/example/layoutcanvas/internal/ai"
)

var (
	ErrNoImage   = errors.New("clipboard does not contain image data")
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
)

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// WriteImage encodes the provided image as PNG and publishes it to the clipboard.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return writePNG(buf.Bytes())
}

// ReadImage retrieves PNG image data from the clipboard and decodes it.
func ReadImage() (image.Image, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data, err := readPNG()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNoImage
	}
	return png.Decode(bytes.NewReader(data))
}

// Paste returns the clipboard image. When the clipboard holds text instead,
// a data URI or the path of an image file is accepted.
func Paste() (image.Image, error) {
	img, err := ReadImage()
	if err == nil {
		return img, nil
	}
	if errors.Is(err, errNoDisplay) {
		return nil, err
	}
	text, terr := readText()
	if terr != nil || strings.TrimSpace(text) == "" {
		return nil, err
	}
	return imageFromText(text)
}

func imageFromText(text string) (image.Image, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "data:") {
		return ai.DecodeDataURI(text)
	}
	path := strings.TrimPrefix(text, "file://")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoImage, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
