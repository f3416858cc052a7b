package fit

import (
	"errors"
	"image"
	"testing"
)

func TestCoverTallImage(t *testing.T) {
	p, err := Cover(50, 200, 100, 100)
	if err != nil {
		t.Fatalf("cover: %v", err)
	}
	if p.Scale != 2 || p.OffsetX != 0 || p.OffsetY != -150 {
		t.Fatalf("unexpected placement %+v", p)
	}
}

func TestCoverInvariant(t *testing.T) {
	sizes := [][2]float64{{1, 1}, {50, 200}, {200, 50}, {1920, 1080}, {3, 7}, {100, 100}}
	boxes := [][2]float64{{100, 100}, {1, 400}, {400, 1}, {333.3, 17.5}, {0, 0}}
	for _, img := range sizes {
		for _, box := range boxes {
			p, err := Cover(img[0], img[1], box[0], box[1])
			if err != nil {
				t.Fatalf("cover %v in %v: %v", img, box, err)
			}
			const eps = 1e-9
			w, h := img[0]*p.Scale, img[1]*p.Scale
			if p.OffsetX > eps || p.OffsetY > eps || p.OffsetX+w < box[0]-eps || p.OffsetY+h < box[1]-eps {
				t.Fatalf("%v in %v not covered: %+v", img, box, p)
			}
		}
	}
}

func TestCoverRejectsEmptyImage(t *testing.T) {
	for _, dims := range [][2]float64{{0, 10}, {10, 0}, {-1, 5}} {
		_, err := Cover(dims[0], dims[1], 10, 10)
		var inv *InvalidImageError
		if !errors.As(err, &inv) {
			t.Fatalf("%v: expected InvalidImageError, got %v", dims, err)
		}
	}
}

func TestNeedsExtension(t *testing.T) {
	if !NeedsExtension(50, 200, 100, 100) {
		t.Fatalf("narrow image should need extension")
	}
	if NeedsExtension(100, 100, 100, 100) {
		t.Fatalf("exact size should not need extension")
	}
}

func TestApply(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 200))
	f, err := Apply(img, 100, 100)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if f.Bitmap != img || !f.Covers(100, 100, 1e-9) {
		t.Fatalf("unexpected fill %+v", f)
	}
	if _, err := Apply(image.NewRGBA(image.Rect(0, 0, 0, 0)), 10, 10); err == nil {
		t.Fatalf("expected error for empty bitmap")
	}
}
