package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/example/layoutcanvas/internal/capture"
	"github.com/example/layoutcanvas/internal/clipboard"
)

var (
	captureScreenFn = capture.Screen
	captureRegionFn = capture.Region
	pasteFn         = clipboard.Paste
)

// imageSource is where a command reads its input image from: a file
// argument, the clipboard or the screen.
type imageSource struct {
	fromClipboard bool
	fromScreen    string
	region        string
	screen        bool
}

func (s *imageSource) register(fs *flag.FlagSet) {
	fs.BoolVar(&s.fromClipboard, "from-clipboard", false, "read the image from the clipboard")
	fs.StringVar(&s.fromScreen, "from-screen", "", "capture a monitor (primary, index or name) instead of reading a file")
	fs.StringVar(&s.region, "region", "", "capture the screen rectangle x,y,w,h instead of reading a file")
}

// validate checks that exactly one source is chosen once args are known.
func (s *imageSource) validate(args []string) error {
	n := 0
	if s.fromClipboard {
		n++
	}
	if s.fromScreen != "" || s.region != "" {
		s.screen = true
		n++
	}
	if len(args) > 0 {
		n++
	}
	switch {
	case n == 0:
		return errors.New("an image file, -from-clipboard or -from-screen is required")
	case n > 1:
		return errors.New("choose only one of an image file, -from-clipboard or -from-screen/-region")
	case len(args) > 1:
		return fmt.Errorf("expected one image file, got %d", len(args))
	}
	return nil
}

func (s *imageSource) load(args []string) (image.Image, error) {
	switch {
	case s.fromClipboard:
		img, err := pasteFn()
		if err != nil {
			return nil, fmt.Errorf("failed to read clipboard: %w", err)
		}
		return img, nil
	case s.region != "":
		rect, err := capture.ParseRegion(s.region)
		if err != nil {
			return nil, err
		}
		img, err := captureRegionFn(rect)
		if err != nil {
			return nil, fmt.Errorf("failed to capture region: %w", err)
		}
		return img, nil
	case s.screen:
		img, err := captureScreenFn(s.fromScreen)
		if err != nil {
			return nil, fmt.Errorf("failed to capture screen: %w", err)
		}
		return img, nil
	}
	return loadImage(args[0])
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
