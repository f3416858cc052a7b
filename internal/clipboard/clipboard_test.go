package clipboard

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/layoutcanvas/internal/ai"
)

func TestImageFromText(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))

	uri, err := ai.EncodeDataURI(src)
	if err != nil {
		t.Fatal(err)
	}
	img, err := imageFromText("  " + uri + "\n")
	if err != nil || img.Bounds().Dx() != 3 {
		t.Fatalf("data uri: %v %v", img, err)
	}

	path := filepath.Join(t.TempDir(), "pasted.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()
	for _, text := range []string{path, "file://" + path} {
		img, err := imageFromText(text)
		if err != nil || img.Bounds().Dy() != 2 {
			t.Fatalf("%s: %v %v", text, img, err)
		}
	}

	if _, err := imageFromText(filepath.Join(t.TempDir(), "missing.png")); !errors.Is(err, ErrNoImage) {
		t.Fatalf("expected ErrNoImage, got %v", err)
	}
}
