package capture

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

type fakeBackend struct {
	monitors []Monitor
	shot     *image.RGBA
	err      error
}

func (f fakeBackend) Monitors() ([]Monitor, error) { return f.monitors, f.err }

func (f fakeBackend) Root() (*image.RGBA, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.shot, nil
}

func useBackend(t *testing.T, b platformBackend) {
	t.Helper()
	prev := backend
	backend = b
	t.Cleanup(func() { backend = prev })
}

func desktop() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	for y := 0; y < 100; y++ {
		for x := 100; x < 200; x++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	return img
}

func TestScreenSelectsMonitor(t *testing.T) {
	useBackend(t, fakeBackend{
		shot: desktop(),
		monitors: []Monitor{
			{Index: 0, Name: "eDP-1", Rect: image.Rect(0, 0, 100, 100)},
			{Index: 1, Name: "HDMI-1", Rect: image.Rect(100, 0, 200, 100), Primary: true},
		},
	})
	for _, sel := range []string{"primary", "1", "#1", "hdmi"} {
		img, err := Screen(sel)
		if err != nil {
			t.Fatalf("%s: %v", sel, err)
		}
		if img.Bounds().Dx() != 100 || img.RGBAAt(0, 0).R != 255 {
			t.Fatalf("%s: wrong monitor %v", sel, img.Bounds())
		}
	}
	img, err := Screen("")
	if err != nil || img.Bounds().Dx() != 200 {
		t.Fatalf("full screen: %v %v", img, err)
	}
	if _, err := Screen("7"); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestRegion(t *testing.T) {
	useBackend(t, fakeBackend{shot: desktop()})
	img, err := Region(image.Rect(90, 10, 110, 20))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 20, 10) || img.RGBAAt(15, 0).R != 255 || img.RGBAAt(5, 0).R != 0 {
		t.Fatalf("region = %v", img.Bounds())
	}
	if _, err := Region(image.Rect(300, 300, 310, 310)); err == nil {
		t.Fatalf("expected error outside the screen")
	}
}

func TestBackendErrorsPropagate(t *testing.T) {
	useBackend(t, fakeBackend{err: ErrUnsupported})
	if _, err := Screen(""); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestParseRegion(t *testing.T) {
	r, err := ParseRegion("10, 20, 30, 40")
	if err != nil || r != image.Rect(10, 20, 40, 60) {
		t.Fatalf("got %v %v", r, err)
	}
	for _, bad := range []string{"1,2,3", "a,b,c,d", "0,0,0,5"} {
		if _, err := ParseRegion(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
